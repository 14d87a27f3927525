package state

// UserState is the current dialog step for one Telegram user.
type UserState string

const (
	StateNone UserState = ""

	// Linking
	StateEnteringSessionToken UserState = "entering_session_token"

	// Session-request actions (mentor)
	StateEnteringServiceID    UserState = "entering_service_id"
	StateEditingAgenda        UserState = "editing_agenda"
	StateEnteringRejectReason UserState = "entering_reject_reason"
	StateEnteringCancelReason UserState = "entering_cancel_reason"

	// Moderation (admin)
	StateEnteringBanReason UserState = "entering_ban_reason"

	// Communities
	StateEnteringCommunityName UserState = "entering_community_name"
	StateEnteringCommunityDesc UserState = "entering_community_desc"
	StateEnteringJoinMessage   UserState = "entering_join_message"

	// Dashboard search
	StateSearching UserState = "searching"
)

// Draft carries the identifiers a multi-step dialog accumulates before the
// final action fires.
type Draft struct {
	ServiceID     string
	RequestID     string
	ReportID      string
	CommunityID   string
	JoinRequestID string
	CommunityName string
}
