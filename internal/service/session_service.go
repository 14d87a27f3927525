package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/cache"
	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
)

// Session-request rule violations, all raised before any network call.
var (
	ErrRequestNotPending  = errors.New("session request is not pending")
	ErrRequestNotAccepted = errors.New("session request is not accepted")
	ErrRequestTerminal    = errors.New("session request is already resolved")
	ErrCancellationWindow = errors.New("session starts in less than 6 hours")
)

// sessionAPI is the slice of the platform client this service needs.
type sessionAPI interface {
	ListSessionRequests(ctx context.Context, session, serviceID string) (*platform.SessionRequestGroups, error)
	UpdateSessionRequest(ctx context.Context, session, serviceID, requestID string, update platform.SessionRequestUpdate) (*model.SessionRequest, error)
}

// SessionRequestService drives the request lifecycle for a mentor: it decides
// which transitions may even be attempted and shapes the mutation payloads.
// The backend performs the actual mutation and its side effects (calendar
// invites, mentee notifications).
type SessionRequestService struct {
	api    sessionAPI
	store  *cache.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewSessionRequestService(api sessionAPI, store *cache.Store, logger *zap.Logger) *SessionRequestService {
	return &SessionRequestService{
		api:    api,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ListRequests returns a service's requests grouped by status, read through
// the query cache.
func (s *SessionRequestService) ListRequests(ctx context.Context, session, serviceID string) (*platform.SessionRequestGroups, error) {
	key := cache.KeySessionRequests(serviceID)
	if cached, ok := s.store.Get(key); ok {
		if groups, ok := cached.(*platform.SessionRequestGroups); ok {
			return groups, nil
		}
	}

	groups, err := s.api.ListSessionRequests(ctx, session, serviceID)
	if err != nil {
		return nil, err
	}
	s.store.Set(key, groups)
	return groups, nil
}

// Refresh force-fetches a service's requests, bypassing the cache. Backs the
// refresh button under the request list.
func (s *SessionRequestService) Refresh(ctx context.Context, session, serviceID string) (*platform.SessionRequestGroups, error) {
	groups, err := s.api.ListSessionRequests(ctx, session, serviceID)
	if err != nil {
		return nil, err
	}
	s.store.Set(cache.KeySessionRequests(serviceID), groups)
	return groups, nil
}

// FindRequest looks a request up by id across all status groups.
func FindRequest(groups *platform.SessionRequestGroups, requestID string) *model.SessionRequest {
	for _, list := range [][]model.SessionRequest{groups.Pending, groups.Accepted, groups.Rejected, groups.Cancelled} {
		for i := range list {
			if list[i].ID == requestID {
				return &list[i]
			}
		}
	}
	return nil
}

// Accept confirms a pending request, optionally revising the agenda.
func (s *SessionRequestService) Accept(ctx context.Context, session, serviceID string, req *model.SessionRequest, agenda string) (*model.SessionRequest, error) {
	if err := requireTransition(req.Status, model.SessionRequestAccepted); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateSessionRequest(ctx, session, serviceID, req.ID, platform.SessionRequestUpdate{
		Status: "accepted",
		Agenda: agenda,
	})
	if err != nil {
		return nil, fmt.Errorf("accept session request: %w", err)
	}

	s.store.Invalidate(cache.KeySessionRequests(serviceID))
	s.logger.Info("Session request accepted",
		zap.String("request_id", req.ID),
		zap.String("service_id", serviceID))
	return updated, nil
}

// Reject declines a pending request. The reason is free text; the transport
// allows it to be empty, the UI just strongly prompts for one.
func (s *SessionRequestService) Reject(ctx context.Context, session, serviceID string, req *model.SessionRequest, reason string) (*model.SessionRequest, error) {
	if err := requireTransition(req.Status, model.SessionRequestRejected); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateSessionRequest(ctx, session, serviceID, req.ID, platform.SessionRequestUpdate{
		Status:          "rejected",
		RejectionReason: reason,
	})
	if err != nil {
		return nil, fmt.Errorf("reject session request: %w", err)
	}

	s.store.Invalidate(cache.KeySessionRequests(serviceID))
	s.logger.Info("Session request rejected",
		zap.String("request_id", req.ID),
		zap.String("service_id", serviceID))
	return updated, nil
}

// Cancel withdraws an accepted session. The cancellation gate is enforced
// here as well as at display time, so the bot never offers an action the
// server would refuse on timing grounds.
func (s *SessionRequestService) Cancel(ctx context.Context, session, serviceID string, req *model.SessionRequest, reason string) (*model.SessionRequest, error) {
	if err := requireTransition(req.Status, model.SessionRequestCancelled); err != nil {
		return nil, err
	}
	if !req.CanCancel(s.now()) {
		return nil, ErrCancellationWindow
	}

	updated, err := s.api.UpdateSessionRequest(ctx, session, serviceID, req.ID, platform.SessionRequestUpdate{
		Status:          "cancelled",
		RejectionReason: reason,
	})
	if err != nil {
		return nil, fmt.Errorf("cancel session request: %w", err)
	}

	s.store.Invalidate(cache.KeySessionRequests(serviceID))
	s.logger.Info("Session request cancelled",
		zap.String("request_id", req.ID),
		zap.String("service_id", serviceID))
	return updated, nil
}

// requireTransition maps a forbidden transition to the matching sentinel.
func requireTransition(from, to model.SessionRequestStatus) error {
	if from.CanTransitionTo(to) {
		return nil
	}
	if from.IsTerminal() {
		return ErrRequestTerminal
	}
	switch to {
	case model.SessionRequestAccepted, model.SessionRequestRejected:
		return ErrRequestNotPending
	case model.SessionRequestCancelled:
		return ErrRequestNotAccepted
	default:
		return fmt.Errorf("invalid target status %q", to)
	}
}
