// Package yafsm keeps a small finite-state machine per conversation, so a
// bot can ask a question in one update and read the answer in the next.
//
// A state is any msgpack-encodable struct naming itself through StateName.
// Embedding BaseState derives the name from the type:
//
//	type AwaitingCity struct {
//		yafsm.BaseState[AwaitingCity]
//
//		Attempts int
//	}
//
//	fsm := yafsm.NewStorage(yacache.NewCache(yacache.NewMemoryContainer()), time.Hour)
//	scope := fsm.Scope(yafsm.ChatUserKey(chatID, userID))
//	_ = scope.SetState(ctx, AwaitingCity{Attempts: 1})
//
//	name, snapshot, _ := scope.GetState(ctx)
//	if name == (AwaitingCity{}).StateName() {
//		state, _ := yafsm.Data[AwaitingCity](snapshot)
//	}
package yafsm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaencoding"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

const keyPrefix = "yafsm:"

type State interface {
	StateName() string
}

// BaseState names a state after its type parameter.
type BaseState[T any] struct{}

func (BaseState[T]) StateName() string {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}

// EmptyState is reported for conversations without a stored state.
type EmptyState struct {
	BaseState[EmptyState]
}

// Snapshot is a stored state with its data still encoded.
type Snapshot struct {
	State string `msgpack:"state"`
	Data  []byte `msgpack:"data"`
}

// Data decodes snapshot into T. It fails with ErrStateMismatch when the
// snapshot holds another state.
func Data[T State](snapshot Snapshot) (*T, yaerrors.Error) {
	var zero T

	if snapshot.State != zero.StateName() {
		return nil, yaerrors.FromError(
			http.StatusConflict,
			ErrStateMismatch,
			fmt.Sprintf("[FSM] want %s, got %s", zero.StateName(), snapshot.State),
		)
	}

	if len(snapshot.Data) == 0 {
		return &zero, nil
	}

	value, err := yaencoding.DecodeMessagePack[T](snapshot.Data)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToDecodeState),
			"[FSM] state "+snapshot.State,
		)
	}

	return value, nil
}

// FSM stores one state per conversation key.
type FSM interface {
	SetState(ctx context.Context, key string, state State) yaerrors.Error
	GetState(ctx context.Context, key string) (string, Snapshot, yaerrors.Error)
	Reset(ctx context.Context, key string) yaerrors.Error
}

// Storage is an FSM over a yacache backend.
type Storage[T yacache.Container] struct {
	cache yacache.Cache[T]
	ttl   time.Duration
}

// NewStorage keeps states in cache. A zero ttl keeps them until Reset.
func NewStorage[T yacache.Container](cache yacache.Cache[T], ttl time.Duration) *Storage[T] {
	return &Storage[T]{
		cache: cache,
		ttl:   ttl,
	}
}

// SetState replaces the state stored under key.
func (s *Storage[T]) SetState(ctx context.Context, key string, state State) yaerrors.Error {
	data, err := yaencoding.EncodeMessagePack(state)
	if err != nil {
		return err.Wrap("[FSM] failed to encode " + state.StateName())
	}

	encoded, err := yaencoding.EncodeMessagePackString(Snapshot{
		State: state.StateName(),
		Data:  data,
	})
	if err != nil {
		return err.Wrap("[FSM] failed to encode snapshot")
	}

	if err := s.cache.Set(ctx, keyPrefix+key, encoded, s.ttl); err != nil {
		return yaerrors.FromError(
			err.Code(),
			errors.Join(err, ErrFailedToStoreState),
			"[FSM] key "+key,
		)
	}

	return nil
}

// GetState returns the stored state name and snapshot. A conversation
// without a state reports EmptyState.
func (s *Storage[T]) GetState(ctx context.Context, key string) (string, Snapshot, yaerrors.Error) {
	empty := Snapshot{State: EmptyState{}.StateName()}

	encoded, err := s.cache.Get(ctx, keyPrefix+key)
	if errors.Is(err, yacache.ErrKeyNotFound) {
		return empty.State, empty, nil
	}

	if err != nil {
		return "", Snapshot{}, yaerrors.FromError(
			err.Code(),
			errors.Join(err, ErrFailedToLoadState),
			"[FSM] key "+key,
		)
	}

	snapshot, err := yaencoding.DecodeMessagePackString[Snapshot](encoded)
	if err != nil {
		return "", Snapshot{}, err.Wrap("[FSM] failed to decode snapshot of " + key)
	}

	return snapshot.State, *snapshot, nil
}

// Reset drops the state of key.
func (s *Storage[T]) Reset(ctx context.Context, key string) yaerrors.Error {
	return s.cache.Delete(ctx, keyPrefix+key)
}

// Scope binds fsm to one conversation.
func (s *Storage[T]) Scope(key string) *Scope {
	return NewScope(s, key)
}
