package yafsm

import (
	"context"
	"fmt"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// ChatUserKey is the conversation key of one user inside one chat.
func ChatUserKey(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}

// Scope is an FSM bound to one conversation key.
type Scope struct {
	storage FSM
	key     string
}

func NewScope(storage FSM, key string) *Scope {
	return &Scope{
		storage: storage,
		key:     key,
	}
}

func (s *Scope) Key() string {
	return s.key
}

// SetState stores state for the conversation.
//
// Example usage:
//
//	err := scope.SetState(ctx, AwaitingCity{Attempts: 1})
func (s *Scope) SetState(ctx context.Context, state State) yaerrors.Error {
	return s.storage.SetState(ctx, s.key, state)
}

// GetState returns the current state name and its snapshot.
func (s *Scope) GetState(ctx context.Context) (string, Snapshot, yaerrors.Error) {
	return s.storage.GetState(ctx, s.key)
}

// Reset returns the conversation to EmptyState.
func (s *Scope) Reset(ctx context.Context) yaerrors.Error {
	return s.storage.Reset(ctx, s.key)
}
