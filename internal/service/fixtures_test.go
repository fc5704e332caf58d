package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"eviden-bot/internal/dto"
	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/blob"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/pkg/testdb"
	"eviden-bot/internal/repository/unitofwork"
	"eviden-bot/pkg/events"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testUser       = int64(42)
	testPhotoBytes = "\xff\xd8\xff\xe0fake-jpeg"
)

var testNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

type fakeMessenger struct {
	mu       sync.Mutex
	replies  []dto.Reply
	fileBase string
	fileErr  error
	sendErr  error
}

func (m *fakeMessenger) SendText(ctx context.Context, chatId int64, text string, keyboard dto.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, dto.SendReply(chatId, text, keyboard))
	return m.sendErr
}

func (m *fakeMessenger) EditText(ctx context.Context, chatId int64, messageId int, text string, keyboard dto.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, dto.EditReply(chatId, messageId, text, keyboard))
	return nil
}

func (m *fakeMessenger) AnswerCallback(ctx context.Context, callbackId, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, dto.AnswerReply(callbackId, text))
	return nil
}

func (m *fakeMessenger) FileURL(ctx context.Context, fileId string) (string, error) {
	if m.fileErr != nil {
		return "", m.fileErr
	}
	return m.fileBase + "/" + fileId, nil
}

// take returns and clears the recorded replies.
func (m *fakeMessenger) take() []dto.Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.replies
	m.replies = nil
	return out
}

func texts(replies []dto.Reply) []string {
	out := make([]string, 0, len(replies))
	for _, r := range replies {
		if r.Kind != dto.ReplyAnswer {
			out = append(out, r.Text)
		}
	}
	return out
}

type recordingPublisher struct {
	mu      sync.Mutex
	reports []*entity.Report
	err     error
}

func (p *recordingPublisher) PublishReportSubmitted(ctx context.Context, report *entity.Report) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports = append(p.reports, report)
	return p.err
}

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *recordingForwarder) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *recordingForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type logLine struct {
	Module  string
	Message string
	Details map[string]interface{}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *recordingLogger) record(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{Module: module, Message: message, Details: details})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record(module, message, details)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record(module, message, details)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record(module, message, details)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record(module, message, details)
}

func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) snapshot() []logLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logLine(nil), l.lines...)
}

type fixture struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
	messenger  *fakeMessenger
	publisher  *recordingPublisher
	storeDir   string
	sessions   ISessionService
	catalog    ICatalogService
	conv       *conversationService
	updateId   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newBareFixture(t)
	f.seedCatalog(t)
	return f
}

// newBareFixture wires the services against an empty catalog.
func newBareFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.New(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()

	photos := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		fmt.Fprint(w, testPhotoBytes)
	}))
	t.Cleanup(photos.Close)

	messenger := &fakeMessenger{fileBase: photos.URL + "/file"}
	storeDir := t.TempDir()
	store := blob.NewLocalStore(storeDir, "http://localhost:8080/uploads")
	publisher := &recordingPublisher{}

	sessions := NewSessionService(uowFactory, log)
	// No cache: tests change the catalog tables directly.
	catalog := NewCatalogService(uowFactory, nil, log)
	evidence := NewEvidenceService(messenger, store, photos.Client(), "EVIDENCE_FOLDER", log)
	reports := NewReportService(uowFactory, publisher, log)

	conv := NewConversationService(sessions, catalog, evidence, reports, messenger, log).(*conversationService)
	conv.clock = func() time.Time { return testNow }

	return &fixture{
		db:         db,
		uowFactory: uowFactory,
		messenger:  messenger,
		publisher:  publisher,
		storeDir:   storeDir,
		sessions:   sessions,
		catalog:    catalog,
		conv:       conv,
	}
}

func (f *fixture) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	uow := f.uowFactory.NewUnitOfWork(ctx)
	for _, s := range []*entity.Segment{
		{Id: 1, DisplayName: "JT.01 - JT.02"},
		{Id: 2, DisplayName: "JT.03 - JT.04"},
	} {
		require.NoError(t, uow.SegmentRepository().Create(ctx, s))
	}
	for _, d := range []*entity.Designator{
		{Code: "DC-OF-SM-48D", DisplayName: "DC-OF-SM-48D", Description: "Penarikan kabel duct 48 core"},
		{Code: "PU-AS-HL", DisplayName: "PU-AS-HL", Description: "Pemasangan aksesoris tiang"},
	} {
		require.NoError(t, uow.DesignatorRepository().Create(ctx, d))
	}
}

func (f *fixture) next() int {
	f.updateId++
	return f.updateId
}

func (f *fixture) command(name string) dto.InboundEvent {
	return dto.InboundEvent{UpdateId: f.next(), Kind: dto.EventCommand, UserId: testUser, ChatId: testUser, MessageId: 1, Command: name, Text: "/" + name}
}

func (f *fixture) selection(data string) dto.InboundEvent {
	id := f.next()
	return dto.InboundEvent{UpdateId: id, Kind: dto.EventSelection, UserId: testUser, ChatId: testUser, MessageId: 10, CallbackId: fmt.Sprintf("cb-%d", id), Data: data}
}

func (f *fixture) photo(fileId string) dto.InboundEvent {
	return dto.InboundEvent{
		UpdateId: f.next(),
		Kind:     dto.EventPhoto,
		UserId:   testUser,
		ChatId:   testUser,
		Photos: []dto.PhotoVariant{
			{FileId: "thumb", Width: 90, Height: 67, FileSize: 1200},
			{FileId: fileId, Width: 1280, Height: 960, FileSize: 98000},
			{FileId: "medium", Width: 320, Height: 240, FileSize: 14000},
		},
	}
}

func (f *fixture) text(s string) dto.InboundEvent {
	return dto.InboundEvent{UpdateId: f.next(), Kind: dto.EventText, UserId: testUser, ChatId: testUser, Text: s}
}

func (f *fixture) location(lat, lon float64) dto.InboundEvent {
	return dto.InboundEvent{UpdateId: f.next(), Kind: dto.EventLocation, UserId: testUser, ChatId: testUser, Latitude: lat, Longitude: lon}
}

func (f *fixture) handle(t *testing.T, evt dto.InboundEvent) []dto.Reply {
	t.Helper()
	require.NoError(t, f.conv.Handle(context.Background(), evt))
	return f.messenger.take()
}

func (f *fixture) session(t *testing.T) *entity.Session {
	t.Helper()
	s, err := f.sessions.Load(context.Background(), testUser)
	require.NoError(t, err)
	return s
}

// driveTo walks the happy path until the session waits at stage.
func (f *fixture) driveTo(t *testing.T, stage entity.Stage) {
	t.Helper()
	steps := []struct {
		reached entity.Stage
		evt     func() dto.InboundEvent
	}{
		{entity.StageAwaitingSegment, func() dto.InboundEvent { return f.command("lapor") }},
		{entity.StageAwaitingDesignator, func() dto.InboundEvent { return f.selection("SEGMENTASI_1") }},
		{entity.StageAwaitingPhoto, func() dto.InboundEvent { return f.selection("DESIGNATOR_DC-OF-SM-48D") }},
		{entity.StageAwaitingDescription, func() dto.InboundEvent { return f.photo("large") }},
		{entity.StageAwaitingLocation, func() dto.InboundEvent { return f.text("Tiang miring di depan gardu") }},
	}
	for _, step := range steps {
		f.handle(t, step.evt())
		require.Equal(t, step.reached, f.session(t).Stage)
		if step.reached == stage {
			return
		}
	}
	t.Fatalf("stage %s is not on the happy path", stage)
}

var errBoom = errors.New("boom")
