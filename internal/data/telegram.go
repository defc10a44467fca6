package data

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/chatwarden/chatwarden/internal/biz/repo"

	tb "gopkg.in/telebot.v3"
)

// telegramMessageLimit is the Telegram Bot API maximum text message size
const telegramMessageLimit = 4096

// telegramGateway implements the messaging gateway over the Telegram Bot API
type telegramGateway struct {
	bot *tb.Bot
}

// NewTelegramGateway creates a new Telegram gateway.
// The Bot API is not context-aware, so ctx is accepted for interface
// symmetry only.
func NewTelegramGateway(bot *tb.Bot) repo.MessageGateway {
	return &telegramGateway{bot: bot}
}

// SendText sends a plain text message
func (g *telegramGateway) SendText(_ context.Context, chatID int64, text string) error {
	_, err := g.bot.Send(tb.ChatID(chatID), text)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendMenu sends a text message with a persistent reply keyboard
func (g *telegramGateway) SendMenu(_ context.Context, chatID int64, text string, rows [][]string) error {
	keyboard := make([][]tb.ReplyButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tb.ReplyButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tb.ReplyButton{Text: label})
		}
		keyboard = append(keyboard, buttons)
	}

	markup := &tb.ReplyMarkup{
		ReplyKeyboard:  keyboard,
		ResizeKeyboard: true,
	}
	_, err := g.bot.Send(tb.ChatID(chatID), text, markup)
	if err != nil {
		return fmt.Errorf("failed to send menu: %w", err)
	}
	return nil
}

// SendInline sends a text message with inline buttons, one per row
func (g *telegramGateway) SendInline(_ context.Context, chatID int64, text string, buttons []repo.MenuButton) error {
	keyboard := make([][]tb.InlineButton, 0, len(buttons))
	for _, btn := range buttons {
		keyboard = append(keyboard, []tb.InlineButton{{
			Text: btn.Label,
			Data: btn.Data,
		}})
	}

	markup := &tb.ReplyMarkup{InlineKeyboard: keyboard}
	_, err := g.bot.Send(tb.ChatID(chatID), text, markup)
	if err != nil {
		return fmt.Errorf("failed to send inline keyboard: %w", err)
	}
	return nil
}

// Reply replies to a specific message
func (g *telegramGateway) Reply(_ context.Context, chatID int64, messageID int, text string) error {
	target := &tb.Message{ID: messageID, Chat: &tb.Chat{ID: chatID}}
	_, err := g.bot.Send(tb.ChatID(chatID), text, &tb.SendOptions{ReplyTo: target})
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// DeleteMessage removes a message from a chat
func (g *telegramGateway) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	stored := tb.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    chatID,
	}
	if err := g.bot.Delete(stored); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// SendDocument uploads a named file with a caption
func (g *telegramGateway) SendDocument(_ context.Context, chatID int64, name string, data []byte, caption string) error {
	doc := &tb.Document{
		File:     tb.FromReader(bytes.NewReader(data)),
		FileName: name,
		Caption:  caption,
	}
	_, err := g.bot.Send(tb.ChatID(chatID), doc)
	if err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges an inline button press
func (g *telegramGateway) AnswerCallback(_ context.Context, callbackID, text string) error {
	err := g.bot.Respond(&tb.Callback{ID: callbackID}, &tb.CallbackResponse{Text: text})
	if err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// TextLimit returns the transport's maximum text message size in runes
func (g *telegramGateway) TextLimit() int {
	return telegramMessageLimit
}
