package model

import "time"

// Platform roles as the API reports them.
const (
	RoleMentee  = "mentee"
	RoleMentor  = "mentor"
	RoleManager = "community_manager"
	RoleAdmin   = "admin"
)

// Account links a Telegram user to a platform session. Only client-local
// state lives here; everything about the user itself is owned by the backend.
type Account struct {
	ID               int64     `json:"id"`
	TelegramID       int64     `json:"telegram_id"`
	PlatformUserID   string    `json:"platform_user_id"`
	DisplayName      string    `json:"display_name"`
	Role             string    `json:"role"`
	SessionCookie    string    `json:"-"`
	CompactDurations bool      `json:"compact_durations"` // compact duration display preference
	CreatedAt        time.Time `json:"created_at"`
}

func (a *Account) IsMentor() bool {
	return a.Role == RoleMentor
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a *Account) IsManager() bool {
	return a.Role == RoleManager
}
