package domain

import "time"

// ReportStatus enumerates triage states for incident reports. The literals
// are part of the admin API contract and are matched case-sensitively.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "Pending"
	ReportStatusInProgress ReportStatus = "In Progress"
	ReportStatusResolved   ReportStatus = "Resolved"
	ReportStatusDismissed  ReportStatus = "Dismissed"
)

// Valid reports whether the status is one of the four accepted values.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// ReportCategory enumerates incident types offered in the category quick reply.
type ReportCategory string

const (
	CategoryFlood    ReportCategory = "Flood"
	CategoryFire     ReportCategory = "Fire"
	CategoryAccident ReportCategory = "Accident"
	CategoryOther    ReportCategory = "Other"
)

// Report is the persisted incident record submitted through the bot.
type Report struct {
	ID          string
	UserID      *string
	Category    ReportCategory
	Description string
	Location    string
	Status      ReportStatus
	CreatedAt   time.Time
}

// ReportWithReporter joins a report with its submitter's display info for
// the admin listing. Reporter is nil for orphaned reports.
type ReportWithReporter struct {
	Report
	Reporter *Reporter
}

// Reporter is the subset of user fields exposed to the admin dashboard.
type Reporter struct {
	FacebookID string
	Name       *string
}

// StatusSnapshot is the projection used by stats aggregation.
type StatusSnapshot struct {
	Status    ReportStatus
	Category  ReportCategory
	CreatedAt time.Time
}
