package model

import "time"

// ReportAction is the resolution applied to a pending user report.
type ReportAction string

const (
	ReportActionBan     ReportAction = "ban"
	ReportActionDiscard ReportAction = "discard"
)

// Ban reason bounds enforced locally before any network call.
const (
	BanReasonMinLength = 10
	BanReasonMaxLength = 500
)

// BanReport is a user-submitted report against another platform user.
type BanReport struct {
	ID                string    `json:"id"`
	ReporterID        string    `json:"reporterId"`
	ReporterName      string    `json:"reporterName,omitempty"`
	ReportedUserID    string    `json:"reportedUserId"`
	ReportedUserName  string    `json:"reportedUserName,omitempty"`
	Violation         string    `json:"violation"`
	AdditionalDetails string    `json:"additionalDetails,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`

	// Filled in once the report is resolved.
	Resolution ReportAction `json:"resolution,omitempty"`
	BanReason  string       `json:"banReason,omitempty"`
}

// UserReports groups reports the way the admin endpoint returns them.
type UserReports struct {
	Pending  []BanReport `json:"pending"`
	Resolved []BanReport `json:"resolved"`
}

// BannedUser is an entry of the admin banned-users list.
type BannedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	BanReason string    `json:"banReason"`
	BannedAt  time.Time `json:"bannedAt"`
}
