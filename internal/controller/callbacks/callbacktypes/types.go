// Package callbacktypes holds the dependency bundle shared by every callback
// handler, split out so the per-role packages don't import each other.
package callbacktypes

import (
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/controller/state"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

// Handler carries the shared dependencies for all callback handlers.
type Handler struct {
	Accounts    *service.AccountService
	Sessions    *service.SessionRequestService
	Moderation  *service.ModerationService
	Communities *service.CommunityService
	Search      *service.SearchService
	States      *state.Manager
	Logger      *zap.Logger
}
