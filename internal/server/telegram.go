package server

import (
	"context"
	"log/slog"
	"strings"

	"github.com/chatwarden/chatwarden/internal/biz"
	"github.com/chatwarden/chatwarden/internal/biz/domain"
	"github.com/chatwarden/chatwarden/internal/biz/usecase"

	tb "gopkg.in/telebot.v3"
)

// TelegramServer routes Telegram updates to the moderation and admin
// usecases. The long poller dispatches updates sequentially, so handlers run
// to completion before the next update is processed.
type TelegramServer struct {
	bot          *tb.Bot
	moderationUC *usecase.ModerationUsecase
	adminUC      *usecase.AdminUsecase
	log          *slog.Logger
}

// NewTelegramServer creates a new Telegram server
func NewTelegramServer(bot *tb.Bot, ucs *biz.Usecases, log *slog.Logger) *TelegramServer {
	s := &TelegramServer{
		bot:          bot,
		moderationUC: ucs.Moderation,
		adminUC:      ucs.Admin,
		log:          log,
	}

	bot.Handle("/start", s.onStart)
	bot.Handle(tb.OnText, s.onText)
	bot.Handle(tb.OnChannelPost, s.onText)
	bot.Handle(tb.OnCallback, s.onCallback)

	return s
}

// Start starts the long-poll event loop, blocking until Stop
func (s *TelegramServer) Start() {
	s.log.Info("starting event loop")
	s.bot.Start()
}

// Stop stops the event loop
func (s *TelegramServer) Stop() {
	s.bot.Stop()
}

// onStart handles the /start command. Only private conversations enter the
// admin protocol; in group chats the command is ignored.
func (s *TelegramServer) onStart(c tb.Context) error {
	if c.Chat() == nil || c.Chat().Type != tb.ChatPrivate {
		return nil
	}
	ctx := context.Background()
	if err := s.adminUC.HandleStart(ctx, c.Chat().ID); err != nil {
		s.log.Error("start handler failed", "chat_id", c.Chat().ID, "error", err)
	}
	return nil
}

// onText handles inbound text: private conversations go to the admin
// session, everything else to the moderation engine
func (s *TelegramServer) onText(c tb.Context) error {
	msg := toInbound(c)
	if msg == nil {
		return nil
	}

	s.log.Debug("received message", "chat_id", msg.ChatID, "chat_type", string(msg.ChatType))

	ctx := context.Background()
	var err error
	if msg.IsPrivate() {
		err = s.adminUC.HandleText(ctx, msg)
	} else {
		err = s.moderationUC.HandleGroupMessage(ctx, msg)
	}
	if err != nil {
		s.log.Error("message handler failed", "chat_id", msg.ChatID, "error", err)
	}
	return nil
}

// onCallback handles inline button presses carrying monitoring toggles
func (s *TelegramServer) onCallback(c tb.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}

	// telebot prefixes unique-button payloads with \f
	payload := strings.TrimPrefix(strings.TrimSpace(cb.Data), "\f")

	ctx := context.Background()
	if err := s.adminUC.HandleCallback(ctx, cb.ID, payload); err != nil {
		s.log.Error("callback handler failed", "payload", payload, "error", err)
	}
	return nil
}

// toInbound converts a telebot update to the transport-neutral message form
func toInbound(c tb.Context) *domain.InboundMessage {
	m := c.Message()
	chat := c.Chat()
	if m == nil || chat == nil {
		return nil
	}

	chatType := domain.ChatTypeGroup
	if chat.Type == tb.ChatPrivate {
		chatType = domain.ChatTypePrivate
	}

	name := chat.Title
	if name == "" {
		name = chat.Username
	}

	// anonymous senders leave the username empty
	username := ""
	if m.Sender != nil {
		username = m.Sender.Username
	}

	return &domain.InboundMessage{
		ChatID:    chat.ID,
		ChatName:  name,
		ChatType:  chatType,
		MessageID: m.ID,
		Username:  username,
		Text:      m.Text,
	}
}
