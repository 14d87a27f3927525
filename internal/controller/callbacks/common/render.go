package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/common/formatting"
	"github.com/mentorhub/mentorhub-bot/internal/model"
	"github.com/mentorhub/mentorhub-bot/internal/platform"
)

// Duration renders a session length honoring the account's display preference.
func Duration(minutes int, compact bool) string {
	if compact {
		return formatting.FormatDurationCompact(minutes)
	}
	return formatting.FormatDuration(minutes)
}

// RequestLine is the one-line list row for a session request.
func RequestLine(req *model.SessionRequest, compact bool) string {
	display := formatting.GetSessionRequestStatusDisplay(req.Status)
	when := req.Date + " " + req.StartTime
	if start, err := req.StartsAt(); err == nil {
		when = formatting.FormatDateTime(start)
	}
	return fmt.Sprintf("%s %s · %s · %s", display.Emoji, req.MenteeName, when, Duration(req.Duration, compact))
}

// RequestDetails is the full detail block shown before an action is taken.
func RequestDetails(req *model.SessionRequest, compact bool, now time.Time) string {
	display := formatting.GetSessionRequestStatusDisplay(req.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s session request\n\n", display.Emoji, display.Text)
	fmt.Fprintf(&b, "Mentee: %s\n", req.MenteeName)
	if start, err := req.StartsAt(); err == nil {
		fmt.Fprintf(&b, "When: %s\n", formatting.FormatDateWithWeekday(start))
		fmt.Fprintf(&b, "Time: %s\n", formatting.FormatTimeRange(start, start.Add(time.Duration(req.Duration)*time.Minute)))
	} else {
		fmt.Fprintf(&b, "When: %s %s\n", req.Date, req.StartTime)
	}
	fmt.Fprintf(&b, "Duration: %s\n", Duration(req.Duration, compact))
	if req.Agenda != "" {
		fmt.Fprintf(&b, "Agenda: %s\n", req.Agenda)
	}
	if req.RejectionReason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", req.RejectionReason)
	}
	if req.IsAccepted() && !req.CanCancel(now) {
		b.WriteString("\n⏰ Less than 6 hours to start, cancellation is closed")
	}
	return b.String()
}

// RequestsOverview renders the grouped request list for one service.
func RequestsOverview(groups *platform.SessionRequestGroups, compact bool) string {
	var b strings.Builder
	b.WriteString("📋 Session requests\n")

	sections := []struct {
		title string
		list  []model.SessionRequest
	}{
		{"Pending", groups.Pending},
		{"Accepted", groups.Accepted},
		{"Rejected", groups.Rejected},
		{"Cancelled", groups.Cancelled},
	}
	for _, section := range sections {
		if len(section.list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d)\n", section.title, len(section.list))
		for i := range section.list {
			b.WriteString(RequestLine(&section.list[i], compact) + "\n")
		}
	}

	if len(groups.Pending)+len(groups.Accepted)+len(groups.Rejected)+len(groups.Cancelled) == 0 {
		b.WriteString("\nNo requests yet")
	}
	return b.String()
}

// ReportDetails is the detail block for one pending user report.
func ReportDetails(report *model.BanReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 Report on %s\n\n", report.ReportedUserName)
	fmt.Fprintf(&b, "Reported by: %s\n", report.ReporterName)
	fmt.Fprintf(&b, "Violation: %s\n", report.Violation)
	if report.AdditionalDetails != "" {
		fmt.Fprintf(&b, "Details: %s\n", report.AdditionalDetails)
	}
	fmt.Fprintf(&b, "Filed: %s", formatting.FormatDateTime(report.CreatedAt))
	if report.Resolution != "" {
		fmt.Fprintf(&b, "\n\nResolved: %s", report.Resolution)
		if report.BanReason != "" {
			fmt.Fprintf(&b, " (%s)", report.BanReason)
		}
	}
	return b.String()
}

// BannedUserLine is the one-line list row for a banned user.
func BannedUserLine(user *model.BannedUser) string {
	return fmt.Sprintf("⛔ %s · banned %s · %s",
		user.Name, formatting.FormatDate(user.BannedAt), user.BanReason)
}

// CommunityLine is the one-line list row for a community.
func CommunityLine(community *model.Community) string {
	return fmt.Sprintf("👥 %s · %d members", community.Name, community.MemberCount)
}

// SearchResultsText renders both sections of a dashboard search response.
func SearchResultsText(results *model.SearchResults) string {
	if len(results.Users) == 0 && len(results.Communities) == 0 {
		return "🔍 Nothing found"
	}

	var b strings.Builder
	b.WriteString("🔍 Search results\n")
	if len(results.Users) > 0 {
		fmt.Fprintf(&b, "\nUsers (%d)\n", len(results.Users))
		for _, u := range results.Users {
			if u.Role != "" {
				fmt.Fprintf(&b, "• %s (%s)\n", u.Name, u.Role)
			} else {
				fmt.Fprintf(&b, "• %s\n", u.Name)
			}
		}
	}
	if len(results.Communities) > 0 {
		fmt.Fprintf(&b, "\nCommunities (%d)\n", len(results.Communities))
		for _, c := range results.Communities {
			fmt.Fprintf(&b, "• %s · %d members\n", c.Name, c.MemberCount)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
