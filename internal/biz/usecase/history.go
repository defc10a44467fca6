package usecase

import (
	"fmt"
	"strings"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
)

// RenderHistory formats violation records as readable text, oldest first,
// 1-indexed. An absent username renders as a bare "@".
func RenderHistory(violations []*domain.Violation) string {
	var b strings.Builder
	for i, v := range violations {
		fmt.Fprintf(&b, "%d) Chat Name: %s\n", i+1, v.ChatName)
		fmt.Fprintf(&b, "   User: @%s\n", v.Username)
		fmt.Fprintf(&b, "   Message: %s\n", v.MessageText)
		fmt.Fprintf(&b, "   Sent: %s\n", v.SentAt.Format(domain.TimeLayout))
		fmt.Fprintf(&b, "   Forbidden Words: %s\n\n", v.MatchedList())
	}
	return b.String()
}
