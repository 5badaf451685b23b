package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-report-service/internal/domain"
	"github.com/spec-kit/incident-report-service/internal/messenger"
	"github.com/spec-kit/incident-report-service/internal/session"
)

type sentMessage struct {
	recipient string
	msg       messenger.Message
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(ctx context.Context, recipientID string, msg messenger.Message) error {
	f.sent = append(f.sent, sentMessage{recipient: recipientID, msg: msg})
	return f.err
}

func (f *fakeSender) last(t *testing.T) messenger.Message {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1].msg
}

type fakeUserRepo struct {
	users     map[string]*domain.User
	nextID    string
	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: "user-1"}
}

func (f *fakeUserRepo) GetByFacebookID(ctx context.Context, fbID string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.users[fbID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.FacebookID] = &copied
	return nil
}

type fakeReportRepo struct {
	created   []*domain.Report
	recent    []domain.Report
	recentErr error
	createErr error
}

func (f *fakeReportRepo) Create(ctx context.Context, report *domain.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	report.ID = "report-1"
	report.CreatedAt = time.Now()
	copied := *report
	f.created = append(f.created, &copied)
	return nil
}

func (f *fakeReportRepo) ListRecentNonPending(ctx context.Context, limit int) ([]domain.Report, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeReportRepo) ListWithReporters(ctx context.Context) ([]domain.ReportWithReporter, error) {
	return nil, nil
}

func (f *fakeReportRepo) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeReportRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeReportRepo) StatusSnapshots(ctx context.Context) ([]domain.StatusSnapshot, error) {
	return nil, nil
}

type fixture struct {
	engine   *Engine
	sender   *fakeSender
	sessions session.Store
	users    *fakeUserRepo
	reports  *fakeReportRepo
}

func newFixture() *fixture {
	f := &fixture{
		sender:   &fakeSender{},
		sessions: session.NewMemoryStore(),
		users:    newFakeUserRepo(),
		reports:  &fakeReportRepo{},
	}
	f.engine = NewEngine(Dependencies{
		Sessions:   f.sessions,
		Sender:     f.sender,
		UserRepo:   f.users,
		ReportRepo: f.reports,
		Logger:     zap.NewNop(),
	})
	return f
}

func (f *fixture) session(t *testing.T, senderID string) *domain.Session {
	t.Helper()
	sess, err := f.sessions.Get(context.Background(), senderID)
	require.NoError(t, err)
	return sess
}

func TestTextWithoutSessionSendsGreeting(t *testing.T) {
	f := newFixture()

	f.engine.HandleText(context.Background(), "U1", "hi")

	msg := f.sender.last(t)
	assert.Contains(t, msg.Text, "Bantay Barangay")
	require.Len(t, msg.QuickReplies, 3)
	assert.Equal(t, PayloadReportIncident, msg.QuickReplies[0].Payload)
	assert.Equal(t, PayloadViewUpdates, msg.QuickReplies[1].Payload)
	assert.Equal(t, PayloadContactBarangay, msg.QuickReplies[2].Payload)

	assert.Nil(t, f.session(t, "U1"), "greeting must not create a session")
}

func TestReportIncidentStartsFlow(t *testing.T) {
	f := newFixture()

	for _, payload := range []string{"report_incident", "REPORT_START"} {
		f.engine.HandlePayload(context.Background(), "U1", payload)

		sess := f.session(t, "U1")
		require.NotNil(t, sess)
		assert.Equal(t, domain.StepCategory, sess.Step)

		msg := f.sender.last(t)
		require.Len(t, msg.QuickReplies, 4)
		assert.Equal(t, "CATEGORY_Flood", msg.QuickReplies[0].Payload)
		assert.Equal(t, "CATEGORY_Other", msg.QuickReplies[3].Payload)
	}
}

func TestCategorySelectionAdvancesToDescription(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "report_incident")
	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Fire")

	sess := f.session(t, "U1")
	require.NotNil(t, sess)
	assert.Equal(t, domain.StepDescription, sess.Step)
	assert.Equal(t, "Fire", sess.Category)
	assert.Contains(t, f.sender.last(t).Text, "*Fire*")
}

func TestFullReportFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandleText(ctx, "U1", "hi")
	f.engine.HandlePayload(ctx, "U1", "report_incident")
	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Fire")
	f.engine.HandleText(ctx, "U1", "Building on fire near market")

	sess := f.session(t, "U1")
	require.NotNil(t, sess)
	assert.Equal(t, domain.StepLocation, sess.Step)
	assert.Equal(t, "Building on fire near market", sess.Description)
	assert.Contains(t, f.sender.last(t).Text, "Where did this happen?")

	f.engine.HandleText(ctx, "U1", "Barangay Poblacion")

	require.Len(t, f.reports.created, 1)
	report := f.reports.created[0]
	assert.Equal(t, domain.CategoryFire, report.Category)
	assert.Equal(t, "Building on fire near market", report.Description)
	assert.Equal(t, "Barangay Poblacion", report.Location)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	require.NotNil(t, report.UserID)
	assert.Equal(t, "user-1", *report.UserID)

	assert.Contains(t, f.sender.last(t).Text, "report has been received")
	assert.Nil(t, f.session(t, "U1"), "session must be removed after submission")
}

func TestReportFlowReusesExistingUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.users["U1"] = &domain.User{ID: "existing", FacebookID: "U1"}

	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Flood")
	f.engine.HandleText(ctx, "U1", "knee-deep water")
	f.engine.HandleText(ctx, "U1", "Sitio Proper")

	require.Len(t, f.reports.created, 1)
	require.NotNil(t, f.reports.created[0].UserID)
	assert.Equal(t, "existing", *f.reports.created[0].UserID)
}

func TestUserUpsertFailureStillInsertsReport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.createErr = errors.New("db down")

	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Other")
	f.engine.HandleText(ctx, "U1", "something happened")
	f.engine.HandleText(ctx, "U1", "somewhere")

	require.Len(t, f.reports.created, 1)
	assert.Nil(t, f.reports.created[0].UserID)
	assert.Contains(t, f.sender.last(t).Text, "report has been received")
}

func TestReportInsertFailureSendsApology(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.reports.createErr = errors.New("insert failed")

	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Fire")
	f.engine.HandleText(ctx, "U1", "desc")
	f.engine.HandleText(ctx, "U1", "loc")

	assert.Contains(t, f.sender.last(t).Text, "could not save your report")
	assert.Nil(t, f.session(t, "U1"), "session is cleared even when the insert fails")
}

func TestEmptySymbolOnlyTextIsCaptured(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Other")
	f.engine.HandleText(ctx, "U1", "!!!")
	f.engine.HandleText(ctx, "U1", "???")

	require.Len(t, f.reports.created, 1)
	assert.Equal(t, "!!!", f.reports.created[0].Description)
	assert.Equal(t, "???", f.reports.created[0].Location)
}

func TestHotlineFlowViaText(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "contact_barangay")
	sess := f.session(t, "U1")
	require.NotNil(t, sess)
	assert.Equal(t, domain.StepMunicipalitySelection, sess.Step)
	assert.Contains(t, f.sender.last(t).Text, "Available municipalities")

	f.engine.HandleText(ctx, "U1", "culasi")
	assert.Contains(t, f.sender.last(t).Text, "EMERGENCY HOTLINES FOR CULASI")
	assert.Nil(t, f.session(t, "U1"))
}

func TestHotlineMismatchClearsSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "emergency_hotlines")
	f.engine.HandleText(ctx, "U1", "Atlantis")

	assert.Contains(t, f.sender.last(t).Text, "didn't recognize that municipality")
	assert.Nil(t, f.session(t, "U1"), "mismatch still clears the session")
}

func TestHotlineAllViaText(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "contact_barangay")
	f.engine.HandleText(ctx, "U1", "ALL")

	assert.Contains(t, f.sender.last(t).Text, "ANTIQUE EMERGENCY HOTLINES")
	assert.Nil(t, f.session(t, "U1"))
}

func TestMunicipalityPayloadResolvesAndClears(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "contact_barangay")
	f.engine.HandlePayload(ctx, "U1", "MUNICIPALITY_San Jose")

	assert.Contains(t, f.sender.last(t).Text, "EMERGENCY HOTLINES FOR SAN JOSE")
	assert.Nil(t, f.session(t, "U1"))
}

func TestMunicipalityPayloadUnknown(t *testing.T) {
	f := newFixture()

	f.engine.HandlePayload(context.Background(), "U1", "MUNICIPALITY_Nowhere")

	assert.Contains(t, f.sender.last(t).Text, "couldn't find hotlines")
}

func TestViewUpdatesListsRecentReports(t *testing.T) {
	f := newFixture()
	f.reports.recent = []domain.Report{
		{Category: domain.CategoryFire, Status: domain.ReportStatusResolved, Location: "Poblacion"},
		{Category: domain.CategoryFlood, Status: domain.ReportStatusInProgress},
	}

	f.engine.HandlePayload(context.Background(), "U1", "view_updates")

	msg := f.sender.last(t)
	assert.Contains(t, msg.Text, "📰 Latest Updates:")
	assert.Contains(t, msg.Text, "• Fire — Resolved at Poblacion")
	assert.Contains(t, msg.Text, "• Flood — In Progress")
}

func TestViewUpdatesEmptyAndError(t *testing.T) {
	f := newFixture()

	f.engine.HandlePayload(context.Background(), "U1", "view_updates")
	assert.Contains(t, f.sender.last(t).Text, "No updates available")

	f.reports.recentErr = errors.New("query failed")
	f.engine.HandlePayload(context.Background(), "U1", "view_updates")
	assert.Contains(t, f.sender.last(t).Text, "could not fetch updates")
}

func TestViewUpdatesDoesNotTouchSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Fire")
	f.engine.HandlePayload(ctx, "U1", "view_updates")

	sess := f.session(t, "U1")
	require.NotNil(t, sess)
	assert.Equal(t, domain.StepDescription, sess.Step)
}

func TestUnrecognizedPayloadKeepsSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Fire")
	f.engine.HandlePayload(ctx, "U1", "bogus_payload")

	assert.Contains(t, f.sender.last(t).Text, "didn't understand")
	sess := f.session(t, "U1")
	require.NotNil(t, sess, "fallback must not clear the session")
	assert.Equal(t, "Fire", sess.Category)
}

func TestDeliveryFailureDoesNotBlockTransition(t *testing.T) {
	f := newFixture()
	f.sender.err = errors.New("network down")

	f.engine.HandlePayload(context.Background(), "U1", "report_incident")

	sess := f.session(t, "U1")
	require.NotNil(t, sess, "state advances even when the send fails")
	assert.Equal(t, domain.StepCategory, sess.Step)
}

func TestNewFlowStartOverwritesSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.engine.HandlePayload(ctx, "U1", "CATEGORY_Fire")
	f.engine.HandleText(ctx, "U1", "half-finished description")
	f.engine.HandlePayload(ctx, "U1", "report_incident")

	sess := f.session(t, "U1")
	require.NotNil(t, sess)
	assert.Equal(t, domain.StepCategory, sess.Step)
	assert.Empty(t, sess.Category)
	assert.Empty(t, sess.Description)
}
