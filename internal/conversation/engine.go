// Package conversation implements the report-collection state machine that
// drives the multi-turn Messenger dialogue.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-report-service/internal/domain"
	"github.com/spec-kit/incident-report-service/internal/events"
	"github.com/spec-kit/incident-report-service/internal/hotline"
	"github.com/spec-kit/incident-report-service/internal/messenger"
	"github.com/spec-kit/incident-report-service/internal/repository"
	"github.com/spec-kit/incident-report-service/internal/session"
)

// Payload strings carried by postbacks and quick replies.
const (
	PayloadReportIncident     = "report_incident"
	PayloadReportStart        = "report_start"
	PayloadViewUpdates        = "view_updates"
	PayloadContactBarangay    = "contact_barangay"
	PayloadEmergencyHotlines  = "emergency_hotlines"
	categoryPayloadPrefix     = "CATEGORY_"
	municipalityPayloadPrefix = "MUNICIPALITY_"
)

const recentUpdatesLimit = 5

const (
	greetingText = "Hi! 👋 I'm Bantay Barangay, your disaster and incident reporting assistant. What would you like to do today?"

	categoryPromptText     = "What type of incident?"
	locationPromptText     = "Where did this happen? (Please provide brgy/landmark/address)"
	reportReceivedText     = "✅ Your report has been received. The response team will review it shortly. Thank you!"
	reportFailedText       = "Sorry, we could not save your report. Please try again later."
	updatesUnavailableText = "Sorry, I could not fetch updates right now."
	noUpdatesText          = "No updates available at the moment."

	municipalityNotRecognizedText = `Sorry, I didn't recognize that municipality. Please type the exact name from the list, or type "all" to see all hotlines.`
	municipalityNotFoundText      = "Sorry, I couldn't find hotlines for that municipality. Please select from the available options."

	payloadFallbackText = "I didn't understand that. You can type 'Report' or use the quick replies."
	textFallbackText    = "I didn't understand that. Use the quick replies to start a report or view updates."
)

// Engine owns the per-sender conversation state machine. Every outbound
// send is fire-and-forget: delivery failures are logged and never roll
// back state transitions already applied.
type Engine struct {
	sessions   session.Store
	sender     messenger.Sender
	users      repository.UserRepository
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles collaborators for the engine.
type Dependencies struct {
	Sessions   session.Store
	Sender     messenger.Sender
	UserRepo   repository.UserRepository
	ReportRepo repository.ReportRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewEngine constructs the engine.
func NewEngine(deps Dependencies) *Engine {
	return &Engine{
		sessions:   deps.Sessions,
		sender:     deps.Sender,
		users:      deps.UserRepo,
		reports:    deps.ReportRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// HandlePayload dispatches a postback or quick-reply payload. Payloads
// always take precedence over the sender's current session step.
func (e *Engine) HandlePayload(ctx context.Context, senderID, payload string) {
	lower := strings.ToLower(payload)

	switch {
	case lower == PayloadReportIncident || lower == PayloadReportStart:
		e.startReportFlow(ctx, senderID)
	case strings.HasPrefix(payload, categoryPayloadPrefix):
		e.captureCategory(ctx, senderID, strings.TrimPrefix(payload, categoryPayloadPrefix))
	case lower == PayloadViewUpdates:
		e.sendLatestUpdates(ctx, senderID)
	case lower == PayloadContactBarangay || lower == PayloadEmergencyHotlines:
		e.startHotlineFlow(ctx, senderID)
	case strings.HasPrefix(payload, municipalityPayloadPrefix):
		e.resolveHotline(ctx, senderID, strings.TrimPrefix(payload, municipalityPayloadPrefix), municipalityNotFoundText)
	default:
		e.send(ctx, senderID, messenger.Text(payloadFallbackText))
	}
}

// HandleText dispatches free text against the sender's current session.
// With no session the text, whatever it says, produces the greeting.
func (e *Engine) HandleText(ctx context.Context, senderID, text string) {
	text = strings.TrimSpace(text)

	sess := e.currentSession(ctx, senderID)
	if sess == nil {
		e.send(ctx, senderID, messenger.WithQuickReplies(greetingText, []messenger.ReplyOption{
			{Title: "Report an Incident", Payload: PayloadReportIncident},
			{Title: "View Updates", Payload: PayloadViewUpdates},
			{Title: "Emergency Hotlines", Payload: PayloadContactBarangay},
		}))
		return
	}

	switch sess.Step {
	case domain.StepMunicipalitySelection:
		e.resolveHotline(ctx, senderID, text, municipalityNotRecognizedText)
	case domain.StepDescription:
		sess.Description = text
		sess.Step = domain.StepLocation
		e.saveSession(ctx, senderID, sess)
		e.send(ctx, senderID, messenger.Text(locationPromptText))
	case domain.StepLocation:
		e.submitReport(ctx, senderID, sess, text)
		e.clearSession(ctx, senderID)
	default:
		e.send(ctx, senderID, messenger.Text(textFallbackText))
	}
}

func (e *Engine) startReportFlow(ctx context.Context, senderID string) {
	e.saveSession(ctx, senderID, &domain.Session{Step: domain.StepCategory})
	e.send(ctx, senderID, messenger.WithQuickReplies(categoryPromptText, []messenger.ReplyOption{
		{Title: "Flood", Payload: categoryPayloadPrefix + string(domain.CategoryFlood)},
		{Title: "Fire", Payload: categoryPayloadPrefix + string(domain.CategoryFire)},
		{Title: "Accident", Payload: categoryPayloadPrefix + string(domain.CategoryAccident)},
		{Title: "Other", Payload: categoryPayloadPrefix + string(domain.CategoryOther)},
	}))
}

func (e *Engine) captureCategory(ctx context.Context, senderID, category string) {
	e.saveSession(ctx, senderID, &domain.Session{
		Step:     domain.StepDescription,
		Category: category,
	})
	e.send(ctx, senderID, messenger.Text(fmt.Sprintf("You selected *%s*. Please describe what happened.", category)))
}

func (e *Engine) startHotlineFlow(ctx context.Context, senderID string) {
	e.saveSession(ctx, senderID, &domain.Session{Step: domain.StepMunicipalitySelection})
	e.send(ctx, senderID, messenger.Text(hotline.PromptMessage()))
}

// resolveHotline answers a municipality lookup and clears the session in
// both the matched and unmatched cases; the sender must re-trigger the
// flow to retry.
func (e *Engine) resolveHotline(ctx context.Context, senderID, input, notFoundText string) {
	if msg, ok := hotline.ResolveMessage(input); ok {
		e.send(ctx, senderID, messenger.Text(msg))
	} else {
		e.send(ctx, senderID, messenger.Text(notFoundText))
	}
	e.clearSession(ctx, senderID)
}

func (e *Engine) sendLatestUpdates(ctx context.Context, senderID string) {
	reports, err := e.reports.ListRecentNonPending(ctx, recentUpdatesLimit)
	if err != nil {
		e.logger.Error("failed to fetch latest updates", zap.Error(err))
		e.send(ctx, senderID, messenger.Text(updatesUnavailableText))
		return
	}
	if len(reports) == 0 {
		e.send(ctx, senderID, messenger.Text(noUpdatesText))
		return
	}

	var b strings.Builder
	b.WriteString("📰 Latest Updates:")
	for _, r := range reports {
		b.WriteString(fmt.Sprintf("\n• %s — %s", r.Category, r.Status))
		if r.Location != "" {
			b.WriteString(" at " + r.Location)
		}
	}
	e.send(ctx, senderID, messenger.Text(b.String()))
}

// submitReport persists the collected report. The user upsert is best
// effort: a failed lookup or insert is logged and the report is stored
// with a null user reference.
func (e *Engine) submitReport(ctx context.Context, senderID string, sess *domain.Session, location string) {
	var userID *string
	user, err := e.users.GetByFacebookID(ctx, senderID)
	switch {
	case err == nil:
		userID = &user.ID
	case errors.Is(err, pgx.ErrNoRows):
		created := &domain.User{FacebookID: senderID}
		if err := e.users.Create(ctx, created); err != nil {
			e.logger.Error("user upsert failed", zap.String("sender", senderID), zap.Error(err))
		} else {
			userID = &created.ID
		}
	default:
		e.logger.Error("user lookup failed", zap.String("sender", senderID), zap.Error(err))
	}

	report := &domain.Report{
		UserID:      userID,
		Category:    domain.ReportCategory(sess.Category),
		Description: sess.Description,
		Location:    location,
		Status:      domain.ReportStatusPending,
	}
	if err := e.reports.Create(ctx, report); err != nil {
		e.logger.Error("report insert failed", zap.String("sender", senderID), zap.Error(err))
		e.send(ctx, senderID, messenger.Text(reportFailedText))
		return
	}

	e.send(ctx, senderID, messenger.Text(reportReceivedText))

	if e.dispatcher != nil {
		_ = e.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReportCreated,
			ReportID:  report.ID,
			Timestamp: time.Now(),
			Payload: events.ReportCreatedPayload{
				SenderID: senderID,
				Category: report.Category,
				Location: report.Location,
			},
		})
	}
}

func (e *Engine) currentSession(ctx context.Context, senderID string) *domain.Session {
	sess, err := e.sessions.Get(ctx, senderID)
	if err != nil {
		e.logger.Error("session read failed", zap.String("sender", senderID), zap.Error(err))
		return nil
	}
	return sess
}

func (e *Engine) saveSession(ctx context.Context, senderID string, sess *domain.Session) {
	if err := e.sessions.Set(ctx, senderID, sess); err != nil {
		e.logger.Error("session write failed", zap.String("sender", senderID), zap.Error(err))
	}
}

func (e *Engine) clearSession(ctx context.Context, senderID string) {
	if err := e.sessions.Delete(ctx, senderID); err != nil {
		e.logger.Error("session delete failed", zap.String("sender", senderID), zap.Error(err))
	}
}

func (e *Engine) send(ctx context.Context, recipientID string, msg messenger.Message) {
	if err := e.sender.Send(ctx, recipientID, msg); err != nil {
		e.logger.Error("outbound message delivery failed",
			zap.String("recipient", recipientID), zap.Error(err))
	}
}
