package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
)

var (
	ErrCommunityNotFound  = errors.New("community not found")
	ErrCommunityNameEmpty = errors.New("community name is empty")
)

// communityAPI is the slice of the platform client this service needs.
type communityAPI interface {
	CreateCommunity(ctx context.Context, session string, params platform.CommunityParams) (*model.Community, error)
	GetCommunity(ctx context.Context, session, communityID string) (*model.Community, error)
	ListMyCommunities(ctx context.Context, session string) ([]model.Community, error)
	UpdateCommunity(ctx context.Context, session, communityID string, params platform.CommunityParams) (*model.Community, error)
	DeleteCommunity(ctx context.Context, session, communityID string) error
	SubmitJoinRequest(ctx context.Context, session, communityID, message string) (*model.JoinRequest, error)
	CancelJoinRequest(ctx context.Context, session, communityID, requestID string) error
	RespondJoinRequest(ctx context.Context, session, communityID, requestID string, approve bool) (*model.JoinRequest, error)
	ListJoinRequests(ctx context.Context, session, communityID string) ([]model.JoinRequest, error)
	ListCommunityMembers(ctx context.Context, session, communityID string) ([]model.CommunityMember, error)
	LeaveCommunity(ctx context.Context, session, communityID string) error
}

// CommunityService wraps the community API family, mapping a missing
// community onto a specific error instead of a bare 404.
type CommunityService struct {
	api    communityAPI
	logger *zap.Logger
}

func NewCommunityService(api communityAPI, logger *zap.Logger) *CommunityService {
	return &CommunityService{api: api, logger: logger}
}

func (s *CommunityService) Create(ctx context.Context, session, name, description string) (*model.Community, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCommunityNameEmpty
	}
	community, err := s.api.CreateCommunity(ctx, session, platform.CommunityParams{
		Name:        strings.TrimSpace(name),
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("create community: %w", err)
	}
	s.logger.Info("Community created", zap.String("community_id", community.ID))
	return community, nil
}

func (s *CommunityService) Get(ctx context.Context, session, communityID string) (*model.Community, error) {
	community, err := s.api.GetCommunity(ctx, session, communityID)
	if err != nil {
		if platform.IsStatus(err, http.StatusNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) Mine(ctx context.Context, session string) ([]model.Community, error) {
	return s.api.ListMyCommunities(ctx, session)
}

func (s *CommunityService) Update(ctx context.Context, session, communityID, name, description string) (*model.Community, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCommunityNameEmpty
	}
	community, err := s.api.UpdateCommunity(ctx, session, communityID, platform.CommunityParams{
		Name:        strings.TrimSpace(name),
		Description: description,
	})
	if err != nil {
		if platform.IsStatus(err, http.StatusNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("update community: %w", err)
	}
	return community, nil
}

func (s *CommunityService) Delete(ctx context.Context, session, communityID string) error {
	if err := s.api.DeleteCommunity(ctx, session, communityID); err != nil {
		if platform.IsStatus(err, http.StatusNotFound) {
			return ErrCommunityNotFound
		}
		return fmt.Errorf("delete community: %w", err)
	}
	s.logger.Info("Community deleted", zap.String("community_id", communityID))
	return nil
}

// Join submits a membership application with an optional message.
func (s *CommunityService) Join(ctx context.Context, session, communityID, message string) (*model.JoinRequest, error) {
	request, err := s.api.SubmitJoinRequest(ctx, session, communityID, message)
	if err != nil {
		if platform.IsStatus(err, http.StatusNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("submit join request: %w", err)
	}
	s.logger.Info("Join request submitted",
		zap.String("community_id", communityID),
		zap.String("request_id", request.ID))
	return request, nil
}

func (s *CommunityService) WithdrawJoin(ctx context.Context, session, communityID, requestID string) error {
	if err := s.api.CancelJoinRequest(ctx, session, communityID, requestID); err != nil {
		return fmt.Errorf("cancel join request: %w", err)
	}
	return nil
}

// Respond approves or rejects a pending join request (manager only).
func (s *CommunityService) Respond(ctx context.Context, session, communityID, requestID string, approve bool) (*model.JoinRequest, error) {
	request, err := s.api.RespondJoinRequest(ctx, session, communityID, requestID, approve)
	if err != nil {
		return nil, fmt.Errorf("respond to join request: %w", err)
	}
	s.logger.Info("Join request resolved",
		zap.String("request_id", requestID),
		zap.Bool("approved", approve))
	return request, nil
}

func (s *CommunityService) JoinRequests(ctx context.Context, session, communityID string) ([]model.JoinRequest, error) {
	return s.api.ListJoinRequests(ctx, session, communityID)
}

func (s *CommunityService) Members(ctx context.Context, session, communityID string) ([]model.CommunityMember, error) {
	members, err := s.api.ListCommunityMembers(ctx, session, communityID)
	if err != nil {
		if platform.IsStatus(err, http.StatusNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return members, nil
}

func (s *CommunityService) Leave(ctx context.Context, session, communityID string) error {
	if err := s.api.LeaveCommunity(ctx, session, communityID); err != nil {
		return fmt.Errorf("leave community: %w", err)
	}
	s.logger.Info("Left community", zap.String("community_id", communityID))
	return nil
}
