package formatting

import "github.com/mentorhub/mentorhub-bot/internal/model"

// StatusDisplay pairs the emoji and label a status renders with.
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetSessionRequestStatusDisplay returns the emoji and label for a
// session-request status.
func GetSessionRequestStatusDisplay(status model.SessionRequestStatus) StatusDisplay {
	displays := map[model.SessionRequestStatus]StatusDisplay{
		model.SessionRequestPending:   {"⏳", "Pending"},
		model.SessionRequestAccepted:  {"✅", "Accepted"},
		model.SessionRequestRejected:  {"🚫", "Rejected"},
		model.SessionRequestCancelled: {"❌", "Cancelled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}

// GetJoinRequestStatusDisplay returns the emoji and label for a community
// join-request status.
func GetJoinRequestStatusDisplay(status model.JoinRequestStatus) StatusDisplay {
	displays := map[model.JoinRequestStatus]StatusDisplay{
		model.JoinRequestPending:  {"⏳", "Pending"},
		model.JoinRequestApproved: {"✅", "Approved"},
		model.JoinRequestRejected: {"🚫", "Rejected"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}
