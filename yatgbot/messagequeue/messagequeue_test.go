package messagequeue_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/messagequeue"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

func message(text string) *yatgmethods.SendMessage {
	return yatgmethods.NewSendMessage(yatgmethods.ChatIDFromInt(42), text)
}

// blockingSender holds the call named "first" until release is closed and
// records the order of every call.
type blockingSender struct {
	mu      sync.Mutex
	sent    []string
	started chan struct{}
	release chan struct{}
}

func newBlockingSender() *blockingSender {
	return &blockingSender{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (s *blockingSender) send(ctx context.Context, method yatgmethods.Method) (json.RawMessage, yaerrors.Error) {
	text := method.(*yatgmethods.SendMessage).Text

	s.mu.Lock()
	s.sent = append(s.sent, text)
	s.mu.Unlock()

	if text == "first" {
		s.started <- struct{}{}

		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, yaerrors.FromError(http.StatusBadGateway, ctx.Err(), "send")
		}
	}

	return json.RawMessage(`true`), nil
}

func (s *blockingSender) order() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.sent...)
}

func newDispatcher(t *testing.T, send messagequeue.Sender) (*messagequeue.Dispatcher, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return messagequeue.NewDispatcher(ctx, send, &messagequeue.Options{
		Workers:  1,
		Interval: time.Millisecond,
	}), cancel
}

func TestDispatcher_PriorityOrder(t *testing.T) {
	t.Parallel()

	sender := newBlockingSender()
	queue, _ := newDispatcher(t, sender.send)

	_, first := queue.Enqueue(message("first"), 5)
	<-sender.started

	_, low := queue.Enqueue(message("low"), 9)
	_, urgentA := queue.Enqueue(message("urgent-a"), 1)
	_, urgentB := queue.Enqueue(message("urgent-b"), 1)

	assert.Equal(t, 3, queue.Len())

	close(sender.release)

	for _, ch := range []<-chan messagequeue.JobResult{first, low, urgentA, urgentB} {
		result := <-ch
		require.Nil(t, result.Err)
		assert.JSONEq(t, `true`, string(result.Result))
	}

	assert.Equal(t, []string{"first", "urgent-a", "urgent-b", "low"}, sender.order())
}

func TestDispatcher_DeleteJob(t *testing.T) {
	t.Parallel()

	sender := newBlockingSender()
	queue, _ := newDispatcher(t, sender.send)

	_, first := queue.Enqueue(message("first"), 0)
	<-sender.started

	id, dropped := queue.Enqueue(message("dropped"), 0)
	_, spam1 := queue.Enqueue(message("spam"), 100)
	_, spam2 := queue.Enqueue(message("spam"), 200)
	_, kept := queue.Enqueue(message("kept"), 0)

	assert.True(t, queue.DeleteJob(id))
	assert.False(t, queue.DeleteJob(id))

	result := <-dropped
	assert.ErrorIs(t, result.Err, messagequeue.ErrJobCanceled)

	ids := queue.DeleteJobFunc(func(job messagequeue.Job) bool { return job.Priority >= 100 })
	assert.Len(t, ids, 2)

	for _, ch := range []<-chan messagequeue.JobResult{spam1, spam2} {
		assert.ErrorIs(t, (<-ch).Err, messagequeue.ErrJobCanceled)
	}

	close(sender.release)

	require.Nil(t, (<-first).Err)
	require.Nil(t, (<-kept).Err)

	assert.Equal(t, []string{"first", "kept"}, sender.order())
}

func TestDispatcher_RetriesFloodWait(t *testing.T) {
	t.Parallel()

	calls := 0

	queue, _ := newDispatcher(t, func(context.Context, yatgmethods.Method) (json.RawMessage, yaerrors.Error) {
		calls++

		if calls == 1 {
			return nil, yaerrors.FromError(http.StatusTooManyRequests, &yatgclient.APIError{
				Method:      "sendMessage",
				Code:        http.StatusTooManyRequests,
				Description: "Too Many Requests: retry after 1",
				Parameters:  yatgtypes.ResponseParameters{RetryAfter: 1},
			}, "[BOTAPI] sendMessage")
		}

		return json.RawMessage(`{"message_id":1}`), nil
	})

	_, resultCh := queue.Enqueue(message("hello"), 0)

	select {
	case result := <-resultCh:
		require.Nil(t, result.Err)
		assert.Equal(t, 2, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("flood-waited job never finished")
	}
}

func TestDispatcher_FailureIsReported(t *testing.T) {
	t.Parallel()

	queue, _ := newDispatcher(t, func(context.Context, yatgmethods.Method) (json.RawMessage, yaerrors.Error) {
		return nil, yaerrors.FromString(http.StatusForbidden, "bot was blocked by the user")
	})

	_, resultCh := queue.Enqueue(message("hello"), 0)

	result := <-resultCh
	require.NotNil(t, result.Err)
	assert.Equal(t, http.StatusForbidden, result.Err.Code())
}

func TestDispatcher_CancelFinishesPending(t *testing.T) {
	t.Parallel()

	sender := newBlockingSender()
	queue, cancel := newDispatcher(t, sender.send)

	_, first := queue.Enqueue(message("first"), 0)
	<-sender.started

	_, pending := queue.Enqueue(message("pending"), 0)

	cancel()

	assert.ErrorIs(t, (<-pending).Err, messagequeue.ErrJobCanceled)
	assert.NotNil(t, (<-first).Err)

	queue.Wait()

	_, late := queue.Enqueue(message("late"), 0)
	assert.ErrorIs(t, (<-late).Err, messagequeue.ErrQueueClosed)

	assert.Equal(t, []string{"first"}, sender.order())
}

func TestNewClientSender(t *testing.T) {
	t.Parallel()

	const token = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+token+"/sendMessage", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7}}`))
	}))
	t.Cleanup(server.Close)

	client, err := yatgclient.NewClient(token, &yatgclient.Options{APIURL: server.URL})
	require.Nil(t, err)

	queue, _ := newDispatcher(t, messagequeue.NewClientSender(client))

	_, resultCh := queue.Enqueue(message("hello"), 0)

	result := <-resultCh
	require.Nil(t, result.Err)
	assert.JSONEq(t, `{"message_id":7}`, string(result.Result))
}
