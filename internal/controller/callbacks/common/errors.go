package common

import (
	"errors"

	"github.com/mentorhub/mentorhub-bot/internal/platform"
	"github.com/mentorhub/mentorhub-bot/internal/service"
)

// ErrorMessage maps an error onto the text shown to the user. Server-sent
// messages are forwarded verbatim; everything else gets a specific local
// explanation or the generic fallback.
func ErrorMessage(err error) string {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		return "⚠️ " + apiErr.Message
	}

	switch {
	case errors.Is(err, service.ErrNotLinked):
		return "❌ You are not logged in. Use /login first"
	case errors.Is(err, service.ErrRequestNotPending):
		return "❌ This request has already been handled"
	case errors.Is(err, service.ErrRequestNotAccepted):
		return "❌ Only accepted sessions can be cancelled"
	case errors.Is(err, service.ErrRequestTerminal):
		return "❌ This request is already resolved"
	case errors.Is(err, service.ErrCancellationWindow):
		return "⏰ Too late to cancel: sessions can be cancelled up to 6 hours before they start"
	case errors.Is(err, service.ErrBanReasonTooShort):
		return "❌ The ban reason must be at least 10 characters"
	case errors.Is(err, service.ErrBanReasonTooLong):
		return "❌ The ban reason must be at most 500 characters"
	case errors.Is(err, service.ErrReportResolved):
		return "❌ This report is already resolved"
	case errors.Is(err, service.ErrUserNotBanned):
		return "❌ This user is not banned"
	case errors.Is(err, service.ErrCommunityNotFound):
		return "❌ Community not found"
	case errors.Is(err, service.ErrEmptyQuery):
		return "❌ Type something to search for"
	case errors.Is(err, service.ErrEmptySession):
		return "❌ The session token is empty"
	case errors.Is(err, ErrNotAdmin):
		return "❌ This action is for platform admins only"
	case errors.Is(err, ErrNotMentor):
		return "❌ This action is for mentors only"
	case errors.Is(err, ErrNoMessage):
		return "❌ Failed to process the message"
	default:
		return "❌ Something went wrong. Please try again"
	}
}
