package model

import "time"

// Community is a membership group independent of the session-request flow.
type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ManagerID   string    `json:"managerId"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JoinRequestStatus mirrors the community join-request lifecycle.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a user's pending application to join a community.
type JoinRequest struct {
	ID          string            `json:"id"`
	CommunityID string            `json:"communityId"`
	UserID      string            `json:"userId"`
	UserName    string            `json:"userName,omitempty"`
	Message     string            `json:"message,omitempty"`
	Status      JoinRequestStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// CommunityMember is an entry of the community members list.
type CommunityMember struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
