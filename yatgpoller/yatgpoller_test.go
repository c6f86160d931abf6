package yatgpoller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/yabackoff"
	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgpoller"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgstorage"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

const botID = 123456

type step struct {
	updates []yatgtypes.Update
	err     yaerrors.Error
}

// fakeSource replays steps and cancels the run once they are used up.
type fakeSource struct {
	steps    []step
	requests []*yatgmethods.GetUpdates
	cancel   context.CancelFunc
}

func (s *fakeSource) GetUpdates(
	_ context.Context,
	req *yatgmethods.GetUpdates,
) ([]yatgtypes.Update, yaerrors.Error) {
	s.requests = append(s.requests, req)

	if len(s.steps) == 0 {
		s.cancel()

		return nil, yaerrors.FromError(http.StatusBadGateway, context.Canceled, "canceled")
	}

	current := s.steps[0]
	s.steps = s.steps[1:]

	return current.updates, current.err
}

func (*fakeSource) BotID() int64 {
	return botID
}

func (s *fakeSource) offsets() []int64 {
	offsets := make([]int64, 0, len(s.requests))

	for _, req := range s.requests {
		offsets = append(offsets, req.Offset)
	}

	return offsets
}

func updates(ids ...int64) []yatgtypes.Update {
	result := make([]yatgtypes.Update, 0, len(ids))

	for _, id := range ids {
		result = append(result, yatgtypes.Update{
			UpdateID: id,
			Message:  &yatgtypes.Message{MessageID: int(id), Text: "hi"},
		})
	}

	return result
}

func fastBackoff() yabackoff.Backoff {
	backoff := yabackoff.NewExponential(time.Millisecond, 1.5, 5*time.Millisecond)

	return &backoff
}

func newRun(t *testing.T, steps ...step) (context.Context, *fakeSource) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx, &fakeSource{steps: steps, cancel: cancel}
}

func collect(handled *[]int64) yatgpoller.Handler {
	return func(_ context.Context, update *yatgtypes.Update) yaerrors.Error {
		*handled = append(*handled, update.UpdateID)

		return nil
	}
}

func TestRun_AdvancesOffset(t *testing.T) {
	t.Parallel()

	ctx, source := newRun(t,
		step{updates: updates(1, 2)},
		step{updates: updates(3)},
	)

	poller := yatgpoller.New(source, &yatgpoller.Options{
		Timeout:        10 * time.Second,
		Limit:          50,
		AllowedUpdates: []yatgtypes.UpdateType{yatgtypes.UpdateTypeMessage},
		Log:            yalogger.NewDefaultLogger(),
	})

	var handled []int64

	require.Nil(t, poller.Run(ctx, collect(&handled)))

	assert.Equal(t, []int64{1, 2, 3}, handled)
	assert.Equal(t, []int64{0, 3, 4}, source.offsets())
	assert.Equal(t, int64(4), poller.Offset())

	first := source.requests[0]
	assert.Equal(t, 10, first.Timeout)
	assert.Equal(t, 50, first.Limit)
	assert.Equal(t, []yatgtypes.UpdateType{yatgtypes.UpdateTypeMessage}, first.AllowedUpdates)
}

func TestRun_Defaults(t *testing.T) {
	t.Parallel()

	ctx, source := newRun(t)

	require.Nil(t, yatgpoller.New(source, nil).Run(ctx, collect(new([]int64))))

	require.Len(t, source.requests, 1)
	assert.Equal(t, 30, source.requests[0].Timeout)
	assert.Equal(t, yatgmethods.MaxUpdatesLimit, source.requests[0].Limit)
}

func TestRun_RestoresAndPersistsOffset(t *testing.T) {
	t.Parallel()

	cache := yacache.NewCache(yacache.NewMemoryContainer())
	t.Cleanup(func() { _ = cache.Close() })

	storage := yatgstorage.NewCacheStorage(cache, nil)
	require.Nil(t, storage.SetOffset(context.Background(), botID, 10))

	ctx, source := newRun(t, step{updates: updates(9, 10, 11)})

	poller := yatgpoller.New(source, &yatgpoller.Options{Storage: storage})

	var handled []int64

	require.Nil(t, poller.Run(ctx, collect(&handled)))

	assert.Equal(t, []int64{10, 11}, handled)
	assert.Equal(t, []int64{10, 12}, source.offsets())

	offset, found, err := storage.GetOffset(context.Background(), botID)
	require.Nil(t, err)

	assert.True(t, found)
	assert.Equal(t, int64(12), offset)
}

func TestRun_RetriesAfterFailure(t *testing.T) {
	t.Parallel()

	ctx, source := newRun(t,
		step{err: yaerrors.FromError(http.StatusBadGateway, yatgclient.ErrTransport, "down")},
		step{err: yaerrors.FromError(http.StatusBadGateway, yatgclient.ErrTransport, "still down")},
		step{updates: updates(5)},
	)

	poller := yatgpoller.New(source, &yatgpoller.Options{Backoff: fastBackoff()})

	var handled []int64

	require.Nil(t, poller.Run(ctx, collect(&handled)))

	assert.Equal(t, []int64{5}, handled)
	assert.Equal(t, []int64{0, 0, 0, 6}, source.offsets())
}

// floorBackoff records the floors it was asked to wait for without sleeping.
type floorBackoff struct {
	yabackoff.Exponential

	floors []time.Duration
}

func (b *floorBackoff) WaitAtLeast(ctx context.Context, floor time.Duration) error {
	b.floors = append(b.floors, floor)

	return ctx.Err()
}

func TestRun_FloodWaitSetsFloor(t *testing.T) {
	t.Parallel()

	flood := yaerrors.FromError(http.StatusTooManyRequests, &yatgclient.APIError{
		Method:      "getUpdates",
		Code:        http.StatusTooManyRequests,
		Description: "Too Many Requests: retry after 3",
		Parameters:  yatgtypes.ResponseParameters{RetryAfter: 3},
	}, "flood")

	ctx, source := newRun(t,
		step{err: flood},
		step{err: yaerrors.FromError(http.StatusBadGateway, yatgclient.ErrTransport, "down")},
		step{updates: updates(2)},
	)

	backoff := &floorBackoff{}
	poller := yatgpoller.New(source, &yatgpoller.Options{Backoff: backoff})

	var handled []int64

	require.Nil(t, poller.Run(ctx, collect(&handled)))

	assert.Equal(t, []int64{2}, handled)
	assert.Equal(t, []time.Duration{3 * time.Second, 0}, backoff.floors)
}

func TestRun_HandlerErrorStillConfirms(t *testing.T) {
	t.Parallel()

	ctx, source := newRun(t, step{updates: updates(7, 8)})

	poller := yatgpoller.New(source, nil)

	calls := 0

	err := poller.Run(ctx, func(context.Context, *yatgtypes.Update) yaerrors.Error {
		calls++

		return yaerrors.FromString(http.StatusInternalServerError, "boom")
	})
	require.Nil(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(9), poller.Offset())
}

type brokenStorage struct{}

func (brokenStorage) GetOffset(context.Context, int64) (int64, bool, yaerrors.Error) {
	return 0, false, yaerrors.FromError(http.StatusServiceUnavailable, errors.New("offline"), "get")
}

func (brokenStorage) SetOffset(context.Context, int64, int64) yaerrors.Error {
	return nil
}

func TestRun_StorageFailure(t *testing.T) {
	t.Parallel()

	ctx, source := newRun(t)

	err := yatgpoller.New(source, &yatgpoller.Options{Storage: brokenStorage{}}).
		Run(ctx, collect(new([]int64)))
	require.NotNil(t, err)

	assert.ErrorIs(t, err, yatgpoller.ErrFailedToLoadOffset)
	assert.Empty(t, source.requests)
}

func TestRun_WithClient(t *testing.T) {
	t.Parallel()

	const token = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+token+"/getUpdates", r.URL.Path)

		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}

		result := []map[string]any{}

		offset, _ := body["offset"].(float64)
		if offset == 0 {
			result = append(result, map[string]any{
				"update_id": 1,
				"message": map[string]any{
					"message_id": 1,
					"date":       1700000000,
					"chat":       map[string]any{"id": 42, "type": "private"},
					"text":       "Hello, 🌍",
				},
			})
		} else {
			cancel()
		}

		w.Header().Set("Content-Type", "application/json")

		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
	}))
	t.Cleanup(server.Close)

	client, err := yatgclient.NewClient(token, &yatgclient.Options{APIURL: server.URL})
	require.Nil(t, err)

	var texts []string

	err = yatgpoller.New(client, &yatgpoller.Options{Backoff: fastBackoff()}).
		Run(ctx, func(_ context.Context, update *yatgtypes.Update) yaerrors.Error {
			texts = append(texts, update.Message.Text)

			return nil
		})
	require.Nil(t, err)

	assert.Equal(t, []string{"Hello, 🌍"}, texts)
}
