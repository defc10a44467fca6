package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
	"github.com/chatwarden/chatwarden/internal/biz/repo"
)

// Menu button labels
const (
	menuShowBlacklist     = "Show blacklist"
	menuAddToBlacklist    = "Add to blacklist"
	menuDeleteWord        = "Delete blacklist word"
	menuShowChats         = "Show chats"
	menuEnableMonitoring  = "Enable monitoring"
	menuDisableMonitoring = "Disable monitoring"
	menuShowHistory       = "Show messages history"
	menuDeleteHistory     = "Delete all messages history"
	menuActionPrefix      = "Action:"
)

// AdminUsecase implements the password-gated command protocol through which
// the administrator manages the blacklist, chat monitoring, the remediation
// policy and the violation history
type AdminUsecase struct {
	chatRepo      repo.ChatRepo
	blacklistRepo repo.BlacklistRepo
	violationRepo repo.ViolationRepo
	gateway       repo.MessageGateway
	policy        *PolicyState
	password      string
	log           *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*domain.AdminSession
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	chatRepo repo.ChatRepo,
	blacklistRepo repo.BlacklistRepo,
	violationRepo repo.ViolationRepo,
	gateway repo.MessageGateway,
	policy *PolicyState,
	password string,
	log *slog.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		chatRepo:      chatRepo,
		blacklistRepo: blacklistRepo,
		violationRepo: violationRepo,
		gateway:       gateway,
		policy:        policy,
		password:      password,
		log:           log,
		sessions:      make(map[int64]*domain.AdminSession),
	}
}

// session gets or creates the session for a private conversation
func (uc *AdminUsecase) session(chatID int64) *domain.AdminSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[chatID]
	if !ok {
		s = &domain.AdminSession{ChatID: chatID}
		uc.sessions[chatID] = s
	}
	return s
}

// HandleStart handles /start in a private conversation: prompt for the
// password and arm a one-shot expectation for it
func (uc *AdminUsecase) HandleStart(ctx context.Context, chatID int64) error {
	uc.session(chatID).Expect(domain.AwaitPassword)
	uc.send(ctx, chatID, "Enter password to continue:")
	return nil
}

// HandleText handles a text message in a private conversation. A pending
// expectation consumes the message; otherwise authenticated menu options are
// dispatched. Anything else is ignored.
func (uc *AdminUsecase) HandleText(ctx context.Context, msg *domain.InboundMessage) error {
	sess := uc.session(msg.ChatID)

	switch sess.TakeAwait() {
	case domain.AwaitPassword:
		return uc.checkPassword(ctx, sess, msg.Text)
	case domain.AwaitWordToAdd:
		return uc.addWord(ctx, msg.ChatID, msg.Text)
	case domain.AwaitWordToDelete:
		return uc.deleteWord(ctx, msg.ChatID, msg.Text)
	}

	if !sess.Authenticated {
		return nil
	}
	return uc.dispatchMenu(ctx, sess, msg.Text)
}

// HandleCallback handles an inline button press carrying an
// "<enable|disable>:<chatId>" payload
func (uc *AdminUsecase) HandleCallback(ctx context.Context, callbackID, payload string) error {
	action, rawID, ok := strings.Cut(payload, ":")
	if !ok {
		return fmt.Errorf("malformed callback payload: %q", payload)
	}
	chatID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed chat id in callback payload %q: %w", payload, err)
	}

	switch action {
	case "enable":
		if err := uc.chatRepo.SetMonitoring(ctx, chatID, true); err != nil {
			return fmt.Errorf("enable monitoring: %w", err)
		}
		uc.answer(ctx, callbackID, fmt.Sprintf("Monitoring enabled for chat %d.", chatID))
	case "disable":
		if err := uc.chatRepo.SetMonitoring(ctx, chatID, false); err != nil {
			return fmt.Errorf("disable monitoring: %w", err)
		}
		uc.answer(ctx, callbackID, fmt.Sprintf("Monitoring disabled for chat %d.", chatID))
	default:
		return fmt.Errorf("unknown callback action: %q", action)
	}
	return nil
}

func (uc *AdminUsecase) checkPassword(ctx context.Context, sess *domain.AdminSession, text string) error {
	if text != uc.password {
		// no lockout: the next text is treated as another attempt
		sess.Expect(domain.AwaitPassword)
		uc.send(ctx, sess.ChatID, "Access denied. Invalid password.")
		return nil
	}
	sess.Authenticated = true
	uc.sendMenu(ctx, sess.ChatID, "Access granted. You can now manage the bot.")
	return nil
}

func (uc *AdminUsecase) dispatchMenu(ctx context.Context, sess *domain.AdminSession, text string) error {
	switch text {
	case menuShowBlacklist:
		return uc.showBlacklist(ctx, sess.ChatID)
	case menuAddToBlacklist:
		sess.Expect(domain.AwaitWordToAdd)
		uc.send(ctx, sess.ChatID, "Enter the word you want to add to the blacklist:")
		return nil
	case menuDeleteWord:
		sess.Expect(domain.AwaitWordToDelete)
		uc.send(ctx, sess.ChatID, "Enter the word you want to delete from the blacklist:")
		return nil
	case menuShowChats:
		return uc.showChats(ctx, sess.ChatID)
	case menuEnableMonitoring:
		return uc.offerChats(ctx, sess.ChatID, true)
	case menuDisableMonitoring:
		return uc.offerChats(ctx, sess.ChatID, false)
	case menuShowHistory:
		return uc.showHistory(ctx, sess.ChatID)
	case menuDeleteHistory:
		return uc.purgeHistory(ctx, sess.ChatID)
	}
	if strings.HasPrefix(text, menuActionPrefix) {
		return uc.togglePolicy(ctx, sess.ChatID)
	}
	return nil
}

func (uc *AdminUsecase) showBlacklist(ctx context.Context, chatID int64) error {
	words, err := uc.blacklistRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list blacklist: %w", err)
	}
	if len(words) == 0 {
		uc.send(ctx, chatID, "The blacklist is empty.")
		return nil
	}
	uc.send(ctx, chatID, "Blacklist:\n"+strings.Join(words, "\n"))
	return nil
}

func (uc *AdminUsecase) addWord(ctx context.Context, chatID int64, word string) error {
	err := uc.blacklistRepo.Add(ctx, word)
	if errors.Is(err, domain.ErrDuplicateWord) {
		uc.sendMenu(ctx, chatID, fmt.Sprintf("'%s' is already in the blacklist.", word))
		return nil
	}
	if err != nil {
		return fmt.Errorf("add blacklist word: %w", err)
	}
	uc.sendMenu(ctx, chatID, fmt.Sprintf("Added '%s' to the blacklist.", word))
	return nil
}

func (uc *AdminUsecase) deleteWord(ctx context.Context, chatID int64, word string) error {
	if err := uc.blacklistRepo.Remove(ctx, word); err != nil {
		return fmt.Errorf("delete blacklist word: %w", err)
	}
	uc.sendMenu(ctx, chatID, fmt.Sprintf("Deleted word '%s' from the blacklist.", word))
	return nil
}

func (uc *AdminUsecase) showChats(ctx context.Context, chatID int64) error {
	chats, err := uc.chatRepo.List(ctx, domain.ChatFilterAll)
	if err != nil {
		return fmt.Errorf("list chats: %w", err)
	}
	if len(chats) == 0 {
		uc.send(ctx, chatID, "No chats found.")
		return nil
	}

	lines := make([]string, 0, len(chats))
	for _, c := range chats {
		status := "Disabled"
		if c.MonitoringEnabled {
			status = "Enabled"
		}
		lines = append(lines, fmt.Sprintf("Chat ID: %d, Name: %s, Monitoring: %s", c.ID, c.Name, status))
	}
	uc.send(ctx, chatID, "Chats:\n"+strings.Join(lines, "\n"))
	return nil
}

// offerChats presents the chats currently in the opposite monitoring state
// as inline buttons whose payload flips that chat's flag
func (uc *AdminUsecase) offerChats(ctx context.Context, chatID int64, enable bool) error {
	filter := domain.ChatFilterUnmonitored
	action, prompt, empty := "enable", "Select a chat to enable monitoring:", "No chats with disabled monitoring were found."
	if !enable {
		filter = domain.ChatFilterMonitored
		action, prompt, empty = "disable", "Select a chat to disable monitoring:", "No chats with enabled monitoring were found."
	}

	chats, err := uc.chatRepo.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("list chats: %w", err)
	}
	if len(chats) == 0 {
		uc.send(ctx, chatID, empty)
		return nil
	}

	buttons := make([]repo.MenuButton, 0, len(chats))
	for _, c := range chats {
		buttons = append(buttons, repo.MenuButton{
			Label: c.Name,
			Data:  fmt.Sprintf("%s:%d", action, c.ID),
		})
	}
	if err := uc.gateway.SendInline(ctx, chatID, prompt, buttons); err != nil {
		uc.log.Warn("failed to send chat list", "chat_id", chatID, "error", err)
	}
	return nil
}

func (uc *AdminUsecase) showHistory(ctx context.Context, chatID int64) error {
	violations, err := uc.violationRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(violations) == 0 {
		uc.send(ctx, chatID, "No messages history found.")
		return nil
	}

	text := RenderHistory(violations)
	if len([]rune(text)) > uc.gateway.TextLimit() {
		return uc.sendHistoryDocument(ctx, chatID, text)
	}
	if err := uc.gateway.SendText(ctx, chatID, text); err != nil {
		// oversized or otherwise undeliverable as a message
		return uc.sendHistoryDocument(ctx, chatID, text)
	}
	return nil
}

func (uc *AdminUsecase) sendHistoryDocument(ctx context.Context, chatID int64, text string) error {
	err := uc.gateway.SendDocument(ctx, chatID, "history.txt", []byte(text), "here's your history")
	if err != nil {
		uc.log.Warn("failed to send history document", "chat_id", chatID, "error", err)
	}
	return nil
}

func (uc *AdminUsecase) purgeHistory(ctx context.Context, chatID int64) error {
	if err := uc.violationRepo.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge history: %w", err)
	}
	uc.send(ctx, chatID, "Deleted all messages history.")
	return nil
}

func (uc *AdminUsecase) togglePolicy(ctx context.Context, chatID int64) error {
	updated := uc.policy.Toggle()
	uc.sendMenu(ctx, chatID, fmt.Sprintf("Changed forbidden word usage action to %s", updated))
	return nil
}

// MenuRows renders the administrator keyboard for the given policy value
func MenuRows(policy domain.Policy) [][]string {
	return [][]string{
		{menuShowBlacklist, menuAddToBlacklist, menuDeleteWord},
		{menuShowChats, menuEnableMonitoring, menuDisableMonitoring},
		{menuShowHistory, menuDeleteHistory, menuActionPrefix + string(policy)},
	}
}

// send delivers an informational reply; transport failures never abort the session
func (uc *AdminUsecase) send(ctx context.Context, chatID int64, text string) {
	if err := uc.gateway.SendText(ctx, chatID, text); err != nil {
		uc.log.Warn("failed to send admin reply", "chat_id", chatID, "error", err)
	}
}

// answer acknowledges an inline button press; transport failures never abort the session
func (uc *AdminUsecase) answer(ctx context.Context, callbackID, text string) {
	if err := uc.gateway.AnswerCallback(ctx, callbackID, text); err != nil {
		uc.log.Warn("failed to answer callback", "callback_id", callbackID, "error", err)
	}
}

func (uc *AdminUsecase) sendMenu(ctx context.Context, chatID int64, text string) {
	if err := uc.gateway.SendMenu(ctx, chatID, text, MenuRows(uc.policy.Current())); err != nil {
		uc.log.Warn("failed to send admin menu", "chat_id", chatID, "error", err)
	}
}
