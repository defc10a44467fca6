package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
	"github.com/chatwarden/chatwarden/internal/biz/repo"
)

// ModerationUsecase decides, per inbound group message, whether a violation
// occurred and applies the active remediation policy
type ModerationUsecase struct {
	chatRepo      repo.ChatRepo
	blacklistRepo repo.BlacklistRepo
	violationRepo repo.ViolationRepo
	gateway       repo.MessageGateway
	policy        *PolicyState
	log           *slog.Logger
}

// NewModerationUsecase creates a new moderation usecase
func NewModerationUsecase(
	chatRepo repo.ChatRepo,
	blacklistRepo repo.BlacklistRepo,
	violationRepo repo.ViolationRepo,
	gateway repo.MessageGateway,
	policy *PolicyState,
	log *slog.Logger,
) *ModerationUsecase {
	return &ModerationUsecase{
		chatRepo:      chatRepo,
		blacklistRepo: blacklistRepo,
		violationRepo: violationRepo,
		gateway:       gateway,
		policy:        policy,
		log:           log,
	}
}

// HandleGroupMessage processes one message from a group or channel chat.
// The violation record is persisted before any gateway action, so a failed
// delete or notice never loses the record.
func (uc *ModerationUsecase) HandleGroupMessage(ctx context.Context, msg *domain.InboundMessage) error {
	if err := uc.chatRepo.EnsureRegistered(ctx, msg.ChatID, msg.ChatName); err != nil {
		return fmt.Errorf("register chat: %w", err)
	}

	chat, err := uc.chatRepo.Get(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("get chat: %w", err)
	}
	if chat == nil || !chat.MonitoringEnabled {
		return nil
	}

	if msg.Text == "" {
		return nil
	}

	blacklist, err := uc.blacklistRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load blacklist: %w", err)
	}

	matched := domain.MatchForbidden(msg.Text, blacklist)
	if len(matched) == 0 {
		return nil
	}

	violation := &domain.Violation{
		ChatName:     msg.ChatName,
		Username:     msg.Username,
		MessageText:  msg.Text,
		SentAt:       time.Now(),
		MatchedWords: matched,
	}
	if err := uc.violationRepo.Append(ctx, violation); err != nil {
		return fmt.Errorf("record violation: %w", err)
	}

	uc.remediate(ctx, msg, violation)
	return nil
}

// remediate applies the active policy. Gateway failures are logged and
// swallowed: the record above is already committed.
func (uc *ModerationUsecase) remediate(ctx context.Context, msg *domain.InboundMessage, v *domain.Violation) {
	switch uc.policy.Current() {
	case domain.PolicyDelete:
		if err := uc.gateway.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
			uc.log.Warn("failed to delete message", "chat_id", msg.ChatID, "message_id", msg.MessageID, "error", err)
		}
		notice := fmt.Sprintf("@%s sent a message containing forbidden words: %s", msg.Username, v.MatchedList())
		if err := uc.gateway.SendText(ctx, msg.ChatID, notice); err != nil {
			uc.log.Warn("failed to send notice", "chat_id", msg.ChatID, "error", err)
		}
	default:
		reply := fmt.Sprintf("You've sent forbidden words: %s", v.MatchedList())
		if err := uc.gateway.Reply(ctx, msg.ChatID, msg.MessageID, reply); err != nil {
			uc.log.Warn("failed to send warning", "chat_id", msg.ChatID, "error", err)
		}
	}
}
