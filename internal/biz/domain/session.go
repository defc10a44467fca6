package domain

// AwaitKind represents what text input a private conversation expects next
type AwaitKind int

const (
	AwaitNothing AwaitKind = iota
	AwaitPassword
	AwaitWordToAdd
	AwaitWordToDelete
)

// AdminSession represents the state of one private conversation with the
// administrator. A pending expectation is one-shot: it is consumed by the
// next text message and has no timeout.
type AdminSession struct {
	ChatID        int64
	Authenticated bool
	Await         AwaitKind
}

// Expect arms a one-shot input expectation, superseding any pending one
func (s *AdminSession) Expect(kind AwaitKind) {
	s.Await = kind
}

// TakeAwait consumes and clears the pending expectation
func (s *AdminSession) TakeAwait() AwaitKind {
	kind := s.Await
	s.Await = AwaitNothing
	return kind
}
