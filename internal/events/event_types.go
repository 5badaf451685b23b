package events

import (
	"time"

	"github.com/spec-kit/incident-report-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated       EventType = "report_created"
	EventReportStatusChanged EventType = "report_status_changed"
	EventReportDeleted       EventType = "report_deleted"
)

// Event represents a domain event emitted by the engine and services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  string      `json:"report_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	SenderID string                `json:"sender_id"`
	Category domain.ReportCategory `json:"category"`
	Location string                `json:"location"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	NewStatus domain.ReportStatus `json:"new_status"`
}

// ReportDeletedPayload payload.
type ReportDeletedPayload struct{}
