package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
)

const adminChat int64 = 777

type adminFixture struct {
	uc         *AdminUsecase
	chats      *mockChatRepo
	words      *mockBlacklistRepo
	violations *mockViolationRepo
	gw         *mockGateway
	policy     *PolicyState
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		chats:      &mockChatRepo{},
		words:      &mockBlacklistRepo{},
		violations: &mockViolationRepo{},
		gw:         &mockGateway{},
		policy:     NewPolicyState(),
	}
	f.uc = NewAdminUsecase(f.chats, f.words, f.violations, f.gw, f.policy, "secret", testLogger())
	return f
}

func (f *adminFixture) text(t *testing.T, s string) {
	t.Helper()
	msg := &domain.InboundMessage{ChatID: adminChat, ChatType: domain.ChatTypePrivate, Text: s}
	if err := f.uc.HandleText(context.Background(), msg); err != nil {
		t.Fatalf("HandleText(%q) failed: %v", s, err)
	}
}

func (f *adminFixture) authenticate(t *testing.T) {
	t.Helper()
	if err := f.uc.HandleStart(context.Background(), adminChat); err != nil {
		t.Fatalf("HandleStart failed: %v", err)
	}
	f.text(t, "secret")
	f.gw.calls = nil
}

func TestAuthentication(t *testing.T) {
	f := newAdminFixture()

	if err := f.uc.HandleStart(context.Background(), adminChat); err != nil {
		t.Fatalf("HandleStart failed: %v", err)
	}
	if got := f.gw.last("send"); got == nil || got.text != "Enter password to continue:" {
		t.Fatalf("Expected password prompt, got %+v", got)
	}

	f.text(t, "wrong")
	if got := f.gw.last("send"); !strings.HasPrefix(got.text, "Access denied") {
		t.Errorf("Expected denial, got %q", got.text)
	}

	// wrong attempt leaves the session repeatable
	f.text(t, "secret")
	if got := f.gw.last("menu"); got == nil || !strings.HasPrefix(got.text, "Access granted") {
		t.Fatalf("Expected access granted with menu, got %+v", got)
	}
}

func TestUnauthenticatedMenuIgnored(t *testing.T) {
	f := newAdminFixture()

	f.text(t, "Show blacklist")
	if len(f.gw.calls) != 0 {
		t.Errorf("Expected no response before authentication, got %d calls", len(f.gw.calls))
	}
}

func TestBlacklistAddDuplicate(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)

	f.text(t, "Add to blacklist")
	if got := f.gw.last("send"); !strings.Contains(got.text, "add to the blacklist") {
		t.Fatalf("Expected add prompt, got %q", got.text)
	}
	f.text(t, "spam")
	if got := f.gw.last("menu"); got.text != "Added 'spam' to the blacklist." {
		t.Errorf("Unexpected confirmation: %q", got.text)
	}

	f.text(t, "Add to blacklist")
	f.text(t, "spam")
	if got := f.gw.last("menu"); got.text != "'spam' is already in the blacklist." {
		t.Errorf("Expected duplicate notice, got %q", got.text)
	}
	if len(f.words.words) != 1 {
		t.Errorf("Expected exactly one stored word, got %d", len(f.words.words))
	}
}

func TestBlacklistDeleteAbsentWord(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)

	f.text(t, "Delete blacklist word")
	f.text(t, "ghost")
	if got := f.gw.last("menu"); got.text != "Deleted word 'ghost' from the blacklist." {
		t.Errorf("Absence is not an error, got %q", got.text)
	}
}

func TestShowBlacklist(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)

	f.text(t, "Show blacklist")
	if got := f.gw.last("send"); got.text != "The blacklist is empty." {
		t.Errorf("Expected empty-list message, got %q", got.text)
	}

	f.words.words = []string{"spam", "scam"}
	f.text(t, "Show blacklist")
	if got := f.gw.last("send"); got.text != "Blacklist:\nspam\nscam" {
		t.Errorf("Unexpected listing: %q", got.text)
	}
}

func TestShowChats(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)

	f.text(t, "Show chats")
	if got := f.gw.last("send"); got.text != "No chats found." {
		t.Errorf("Expected no-chats message, got %q", got.text)
	}

	f.chats.chats = []*domain.Chat{
		{ID: -100, Name: "Alpha", MonitoringEnabled: true},
		{ID: -200, Name: "Beta"},
	}
	f.text(t, "Show chats")
	got := f.gw.last("send").text
	if !strings.Contains(got, "Chat ID: -100, Name: Alpha, Monitoring: Enabled") ||
		!strings.Contains(got, "Chat ID: -200, Name: Beta, Monitoring: Disabled") {
		t.Errorf("Unexpected chat listing: %q", got)
	}
}

func TestEnableMonitoringFlow(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)
	f.chats.chats = []*domain.Chat{
		{ID: -100, Name: "Alpha"},
		{ID: -200, Name: "Beta", MonitoringEnabled: true},
	}

	// only chats in the opposite state are offered
	f.text(t, "Enable monitoring")
	if len(f.gw.inline) != 1 || f.gw.inline[0].Data != "enable:-100" {
		t.Fatalf("Expected one enable button for Alpha, got %+v", f.gw.inline)
	}

	if err := f.uc.HandleCallback(context.Background(), "cb-1", "enable:-100"); err != nil {
		t.Fatalf("HandleCallback failed: %v", err)
	}
	chat, _ := f.chats.Get(context.Background(), -100)
	if !chat.MonitoringEnabled {
		t.Error("Expected monitoring enabled after callback")
	}
	if got := f.gw.last("answer"); got.text != "Monitoring enabled for chat -100." {
		t.Errorf("Unexpected callback answer: %q", got.text)
	}
}

func TestDisableMonitoringFlow(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)
	f.chats.chats = []*domain.Chat{{ID: -200, Name: "Beta", MonitoringEnabled: true}}

	f.text(t, "Disable monitoring")
	if len(f.gw.inline) != 1 || f.gw.inline[0].Data != "disable:-200" {
		t.Fatalf("Expected one disable button for Beta, got %+v", f.gw.inline)
	}

	if err := f.uc.HandleCallback(context.Background(), "cb-2", "disable:-200"); err != nil {
		t.Fatalf("HandleCallback failed: %v", err)
	}
	chat, _ := f.chats.Get(context.Background(), -200)
	if chat.MonitoringEnabled {
		t.Error("Expected monitoring disabled after callback")
	}
}

func TestEnableMonitoringNoCandidates(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)
	f.chats.chats = []*domain.Chat{{ID: -100, Name: "Alpha", MonitoringEnabled: true}}

	f.text(t, "Enable monitoring")
	if got := f.gw.last("send"); got.text != "No chats with disabled monitoring were found." {
		t.Errorf("Unexpected message: %q", got.text)
	}
}

func TestCallbackMalformedPayload(t *testing.T) {
	f := newAdminFixture()

	if err := f.uc.HandleCallback(context.Background(), "cb-3", "garbage"); err == nil {
		t.Error("Expected error for malformed payload")
	}
	if err := f.uc.HandleCallback(context.Background(), "cb-4", "enable:notanumber"); err == nil {
		t.Error("Expected error for non-numeric chat id")
	}
}

func TestTogglePolicy(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)

	f.text(t, "Action:Delete")
	if f.policy.Current() != domain.PolicyWarn {
		t.Errorf("Expected policy Warning, got %s", f.policy.Current())
	}
	if got := f.gw.last("menu"); got.text != "Changed forbidden word usage action to Warning" {
		t.Errorf("Unexpected confirmation: %q", got.text)
	}

	f.text(t, "Action:Warning")
	if f.policy.Current() != domain.PolicyDelete {
		t.Errorf("Expected policy Delete, got %s", f.policy.Current())
	}
}

func TestHistoryShowAndPurge(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)

	f.text(t, "Show messages history")
	if got := f.gw.last("send"); got.text != "No messages history found." {
		t.Errorf("Expected empty-history message, got %q", got.text)
	}

	f.violations.records = []*domain.Violation{{
		ChatName:     "Alpha",
		Username:     "offender",
		MessageText:  "spam here",
		SentAt:       time.Date(2024, 3, 1, 12, 30, 0, 0, time.Local),
		MatchedWords: []string{"spam"},
	}}
	f.text(t, "Show messages history")
	got := f.gw.last("send").text
	if !strings.HasPrefix(got, "1) Chat Name: Alpha") {
		t.Errorf("Expected 1-indexed rendering, got %q", got)
	}
	if !strings.Contains(got, "User: @offender") || !strings.Contains(got, "Forbidden Words: spam") {
		t.Errorf("Missing fields in rendering: %q", got)
	}

	f.text(t, "Delete all messages history")
	if len(f.violations.records) != 0 {
		t.Error("Expected history purged")
	}
	f.text(t, "Show messages history")
	if got := f.gw.last("send"); got.text != "No messages history found." {
		t.Errorf("Purge then show must report empty history, got %q", got.text)
	}
}

func TestHistoryFallsBackToDocument(t *testing.T) {
	f := newAdminFixture()
	f.authenticate(t)
	f.gw.limit = 64

	f.violations.records = []*domain.Violation{{
		ChatName:     "Alpha",
		Username:     "offender",
		MessageText:  strings.Repeat("very long spam ", 20),
		SentAt:       time.Now(),
		MatchedWords: []string{"spam"},
	}}
	f.text(t, "Show messages history")

	if f.gw.count("send") != 0 {
		t.Error("Oversized history must not go out as a text message")
	}
	doc := f.gw.last("document")
	if doc == nil || doc.text != "here's your history" {
		t.Fatalf("Expected document with history caption, got %+v", doc)
	}
	if !strings.Contains(string(f.gw.document), "Chat Name: Alpha") {
		t.Error("Document should carry the rendered history")
	}
}
