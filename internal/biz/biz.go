package biz

import (
	"github.com/chatwarden/chatwarden/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Moderation *usecase.ModerationUsecase
	Admin      *usecase.AdminUsecase
}
