package usecase

import (
	"sync"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
)

// PolicyState holds the process-wide remediation policy.
// It is deliberately not persisted: a restart resets it to Delete.
type PolicyState struct {
	mu      sync.RWMutex
	current domain.Policy
}

// NewPolicyState creates the policy state with the Delete default
func NewPolicyState() *PolicyState {
	return &PolicyState{current: domain.PolicyDelete}
}

// Current returns the active policy
func (p *PolicyState) Current() domain.Policy {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Toggle flips the policy and returns the new value
func (p *PolicyState) Toggle() domain.Policy {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = p.current.Toggle()
	return p.current
}
