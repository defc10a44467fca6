package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
	"github.com/chatwarden/chatwarden/internal/biz/repo"
)

// Mock implementations shared by the usecase tests

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockChatRepo struct {
	chats []*domain.Chat
}

func (m *mockChatRepo) EnsureRegistered(ctx context.Context, chatID int64, name string) error {
	for _, c := range m.chats {
		if c.ID == chatID {
			return nil
		}
	}
	m.chats = append(m.chats, &domain.Chat{ID: chatID, Name: name})
	return nil
}

func (m *mockChatRepo) Get(ctx context.Context, chatID int64) (*domain.Chat, error) {
	for _, c := range m.chats {
		if c.ID == chatID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockChatRepo) SetMonitoring(ctx context.Context, chatID int64, enabled bool) error {
	for _, c := range m.chats {
		if c.ID == chatID {
			c.MonitoringEnabled = enabled
		}
	}
	return nil
}

func (m *mockChatRepo) List(ctx context.Context, filter domain.ChatFilter) ([]*domain.Chat, error) {
	var result []*domain.Chat
	for _, c := range m.chats {
		switch filter {
		case domain.ChatFilterMonitored:
			if !c.MonitoringEnabled {
				continue
			}
		case domain.ChatFilterUnmonitored:
			if c.MonitoringEnabled {
				continue
			}
		}
		result = append(result, c)
	}
	return result, nil
}

type mockBlacklistRepo struct {
	words []string
}

func (m *mockBlacklistRepo) Add(ctx context.Context, word string) error {
	for _, w := range m.words {
		if w == word {
			return domain.ErrDuplicateWord
		}
	}
	m.words = append(m.words, word)
	return nil
}

func (m *mockBlacklistRepo) Remove(ctx context.Context, word string) error {
	for i, w := range m.words {
		if w == word {
			m.words = append(m.words[:i], m.words[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockBlacklistRepo) List(ctx context.Context) ([]string, error) {
	return m.words, nil
}

type mockViolationRepo struct {
	records    []*domain.Violation
	failAppend bool
}

func (m *mockViolationRepo) Append(ctx context.Context, v *domain.Violation) error {
	if m.failAppend {
		return errors.New("store unavailable")
	}
	m.records = append(m.records, v)
	return nil
}

func (m *mockViolationRepo) ListAll(ctx context.Context) ([]*domain.Violation, error) {
	return m.records, nil
}

func (m *mockViolationRepo) PurgeAll(ctx context.Context) error {
	m.records = nil
	return nil
}

type gatewayCall struct {
	method    string
	chatID    int64
	messageID int
	text      string
}

type mockGateway struct {
	calls      []gatewayCall
	inline     []repo.MenuButton
	document   []byte
	limit      int
	failSend   bool
	failDelete bool
}

func (m *mockGateway) SendText(ctx context.Context, chatID int64, text string) error {
	if m.failSend {
		return errors.New("transport failure")
	}
	m.calls = append(m.calls, gatewayCall{method: "send", chatID: chatID, text: text})
	return nil
}

func (m *mockGateway) SendMenu(ctx context.Context, chatID int64, text string, rows [][]string) error {
	m.calls = append(m.calls, gatewayCall{method: "menu", chatID: chatID, text: text})
	return nil
}

func (m *mockGateway) SendInline(ctx context.Context, chatID int64, text string, buttons []repo.MenuButton) error {
	m.inline = buttons
	m.calls = append(m.calls, gatewayCall{method: "inline", chatID: chatID, text: text})
	return nil
}

func (m *mockGateway) Reply(ctx context.Context, chatID int64, messageID int, text string) error {
	m.calls = append(m.calls, gatewayCall{method: "reply", chatID: chatID, messageID: messageID, text: text})
	return nil
}

func (m *mockGateway) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if m.failDelete {
		return errors.New("transport failure")
	}
	m.calls = append(m.calls, gatewayCall{method: "delete", chatID: chatID, messageID: messageID})
	return nil
}

func (m *mockGateway) SendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) error {
	m.document = data
	m.calls = append(m.calls, gatewayCall{method: "document", chatID: chatID, text: caption})
	return nil
}

func (m *mockGateway) AnswerCallback(ctx context.Context, callbackID, text string) error {
	m.calls = append(m.calls, gatewayCall{method: "answer", text: text})
	return nil
}

func (m *mockGateway) TextLimit() int {
	if m.limit > 0 {
		return m.limit
	}
	return 4096
}

func (m *mockGateway) count(method string) int {
	n := 0
	for _, c := range m.calls {
		if c.method == method {
			n++
		}
	}
	return n
}

func (m *mockGateway) last(method string) *gatewayCall {
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].method == method {
			return &m.calls[i]
		}
	}
	return nil
}
