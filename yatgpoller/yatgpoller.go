// Package yatgpoller long-polls getUpdates and feeds every update to a
// handler, one at a time and in update_id order.
//
// After each update the poller moves its offset past it, so Telegram drops
// it on the next request. With an OffsetStorage the offset also survives a
// restart.
//
// Example usage:
//
//	poller := yatgpoller.New(client, &yatgpoller.Options{
//		AllowedUpdates: []yatgtypes.UpdateType{yatgtypes.UpdateTypeMessage},
//		Storage:        yatgstorage.NewCacheStorage(cache, log),
//	})
//
//	err := poller.Run(ctx, func(ctx context.Context, upd *yatgtypes.Update) yaerrors.Error {
//		log.Infof("update %d of type %s", upd.UpdateID, upd.Type())
//
//		return nil
//	})
package yatgpoller

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yabackoff"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgstorage"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultLimit   = yatgmethods.MaxUpdatesLimit
)

// Source is the part of yatgclient.Client the poller needs.
type Source interface {
	GetUpdates(ctx context.Context, req *yatgmethods.GetUpdates) ([]yatgtypes.Update, yaerrors.Error)
	BotID() int64
}

// Handler processes one update. A returned error is logged and the update
// is still confirmed.
type Handler func(ctx context.Context, update *yatgtypes.Update) yaerrors.Error

// Options tune a Poller. Zero fields fall back to the defaults.
type Options struct {
	// Timeout is the long-polling timeout. Negative means short polling.
	Timeout        time.Duration
	Limit          int
	AllowedUpdates []yatgtypes.UpdateType
	Storage        yatgstorage.OffsetStorage
	Backoff        yabackoff.Backoff
	Log            yalogger.Logger
}

type Poller struct {
	source         Source
	timeout        int
	limit          int
	allowedUpdates []yatgtypes.UpdateType
	storage        yatgstorage.OffsetStorage
	backoff        yabackoff.Backoff
	log            yalogger.Logger
	offset         atomic.Int64
}

func New(source Source, options *Options) *Poller {
	if options == nil {
		options = &Options{}
	}

	poller := &Poller{
		source:         source,
		timeout:        int(DefaultTimeout / time.Second),
		limit:          DefaultLimit,
		allowedUpdates: options.AllowedUpdates,
		storage:        options.Storage,
		backoff:        options.Backoff,
		log:            options.Log,
	}

	switch {
	case options.Timeout < 0:
		poller.timeout = 0
	case options.Timeout > 0:
		poller.timeout = int(options.Timeout / time.Second)
	}

	if options.Limit > 0 {
		poller.limit = options.Limit
	}

	if poller.backoff == nil {
		exponential := yabackoff.NewExponential(time.Second, 2, time.Minute)
		poller.backoff = &exponential
	}

	if poller.log == nil {
		poller.log = yalogger.NewDefaultLogger()
	}

	poller.log = poller.log.WithField(yalogger.KeyUserID, source.BotID())

	return poller
}

// Offset is the update_id the next getUpdates starts from.
func (p *Poller) Offset() int64 {
	return p.offset.Load()
}

// Run polls until ctx is done and then returns nil. It fails only when the
// stored offset cannot be read.
func (p *Poller) Run(ctx context.Context, handle Handler) yaerrors.Error {
	if err := p.restoreOffset(ctx); err != nil {
		return err
	}

	p.log.Infof("Polling updates from offset %d", p.Offset())

	for ctx.Err() == nil {
		req := yatgmethods.NewGetUpdates(p.Offset(), p.limit, p.timeout).
			WithAllowedUpdates(p.allowedUpdates...)

		updates, err := p.source.GetUpdates(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				break
			}

			if !p.wait(ctx, err) {
				break
			}

			continue
		}

		p.backoff.Reset()

		for i := range updates {
			p.handle(ctx, handle, &updates[i])
		}
	}

	p.log.Infof("Polling stopped at offset %d", p.Offset())

	return nil
}

func (p *Poller) restoreOffset(ctx context.Context) yaerrors.Error {
	if p.storage == nil {
		return nil
	}

	offset, found, err := p.storage.GetOffset(ctx, p.source.BotID())
	if err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToLoadOffset),
			"[POLLER] failed to start",
			p.log,
		)
	}

	if found {
		p.offset.Store(offset)
	}

	return nil
}

func (p *Poller) handle(ctx context.Context, handle Handler, update *yatgtypes.Update) {
	if update.UpdateID < p.Offset() {
		return
	}

	if err := handle(ctx, update); err != nil {
		p.log.WithField(yalogger.KeyUpdateID, update.UpdateID).
			Errorf("Failed to handle %s update: %v", update.Type(), err)
	}

	p.offset.Store(update.UpdateID + 1)

	if p.storage == nil {
		return
	}

	if err := p.storage.SetOffset(ctx, p.source.BotID(), update.UpdateID+1); err != nil {
		p.log.Warnf("Failed to persist offset %d: %v", update.UpdateID+1, err)
	}
}

// wait sleeps before the next request, never shorter than a flood wait.
// It reports false when ctx ended first.
func (p *Poller) wait(ctx context.Context, err yaerrors.Error) bool {
	retryAfter := yatgclient.RetryAfter(err)
	if retryAfter > 0 {
		p.log.Warnf("Flood wait for %s", retryAfter)
	} else {
		p.log.Warnf("Failed to get updates: %v", err)
	}

	return p.backoff.WaitAtLeast(ctx, retryAfter) == nil
}
