// Package messagequeue sends Bot API requests through a pool of workers
// that respect a per-worker rate, so bulk notifications stay below the
// flood limits. Jobs with lower priority values go first.
//
// Example usage:
//
//	queue := messagequeue.NewDispatcher(ctx, messagequeue.NewClientSender(client), &messagequeue.Options{
//		Workers: 25,
//	})
//
//	_, resultCh := queue.Enqueue(yatgmethods.NewSendMessage(chatID, "Maintenance at 03:00"), 10)
//
//	if result := <-resultCh; result.Err != nil {
//		log.Errorf("failed to notify: %v", result.Err)
//	}
package messagequeue

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
)

const (
	DefaultWorkers  = 1
	DefaultInterval = time.Second
	DefaultRetries  = 3
)

// Sender performs one Bot API call.
type Sender func(ctx context.Context, method yatgmethods.Method) (json.RawMessage, yaerrors.Error)

// NewClientSender sends through client and keeps results undecoded.
func NewClientSender(client *yatgclient.Client) Sender {
	return func(ctx context.Context, method yatgmethods.Method) (json.RawMessage, yaerrors.Error) {
		return yatgclient.Call[json.RawMessage](ctx, client, method)
	}
}

type Options struct {
	Workers uint

	// Interval is the minimal time between two calls of one worker.
	Interval time.Duration

	// Retries bounds how many times a call answered with 429 is repeated
	// after the requested delay.
	Retries int

	Log yalogger.Logger
}

// Dispatcher owns the heap and the workers.
type Dispatcher struct {
	send     Sender
	heap     messageHeap
	cond     *sync.Cond
	closed   bool
	seq      uint64
	interval time.Duration
	retries  int
	log      yalogger.Logger
	workers  sync.WaitGroup
}

// NewDispatcher starts the workers. They stop when ctx is done, and every
// job still queued then finishes with ErrJobCanceled.
func NewDispatcher(ctx context.Context, send Sender, options *Options) *Dispatcher {
	if options == nil {
		options = &Options{}
	}

	dispatcher := &Dispatcher{
		send:     send,
		heap:     newMessageHeap(),
		cond:     sync.NewCond(&sync.Mutex{}),
		interval: options.Interval,
		retries:  options.Retries,
		log:      options.Log,
	}

	if dispatcher.interval <= 0 {
		dispatcher.interval = DefaultInterval
	}

	if dispatcher.retries <= 0 {
		dispatcher.retries = DefaultRetries
	}

	if dispatcher.log == nil {
		dispatcher.log = yalogger.NewDefaultLogger()
	}

	workers := options.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}

	for i := range workers {
		dispatcher.workers.Add(1)

		go dispatcher.worker(ctx, i)
	}

	go dispatcher.closeOnDone(ctx)

	return dispatcher
}

// Enqueue adds a call and returns its job id with a channel that receives
// exactly one result.
//
// Example usage:
//
//	id, resultCh := queue.Enqueue(yatgmethods.NewSendMessage(chatID, "Hi"), 0)
func (d *Dispatcher) Enqueue(method yatgmethods.Method, priority uint16) (uint64, <-chan JobResult) {
	job := Job{
		ID:        rand.Uint64(), //nolint:gosec // job ids only have to be unique enough
		Priority:  priority,
		Timestamp: time.Now(),
		Method:    method,
		ResultCh:  make(chan JobResult, 1),
	}

	d.cond.L.Lock()
	defer d.cond.L.Unlock()

	if d.closed {
		job.finish(JobResult{Err: yaerrors.FromError(
			http.StatusServiceUnavailable,
			ErrQueueClosed,
			"[QUEUE] "+method.MethodName(),
		)})

		return job.ID, job.ResultCh
	}

	d.seq++
	job.seq = d.seq

	d.heap.Push(job)
	d.cond.Signal()

	return job.ID, job.ResultCh
}

// DeleteJob cancels a queued job. It reports false when the job already
// started or never existed.
func (d *Dispatcher) DeleteJob(id uint64) bool {
	d.cond.L.Lock()
	job, ok := d.heap.Delete(id)
	d.cond.L.Unlock()

	if ok {
		job.finish(canceled(job))
	}

	return ok
}

// DeleteJobFunc cancels every queued job matching fn and returns their ids.
//
// Example usage:
//
//	ids := queue.DeleteJobFunc(func(job messagequeue.Job) bool {
//		return job.Priority > 100
//	})
func (d *Dispatcher) DeleteJobFunc(fn func(Job) bool) []uint64 {
	d.cond.L.Lock()
	deleted := d.heap.DeleteFunc(fn)
	d.cond.L.Unlock()

	ids := make([]uint64, 0, len(deleted))

	for _, job := range deleted {
		job.finish(canceled(job))

		ids = append(ids, job.ID)
	}

	return ids
}

// Len is the number of jobs waiting for a worker.
func (d *Dispatcher) Len() int {
	d.cond.L.Lock()
	defer d.cond.L.Unlock()

	return d.heap.Len()
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.workers.Wait()
}

func (d *Dispatcher) closeOnDone(ctx context.Context) {
	<-ctx.Done()

	d.cond.L.Lock()
	d.closed = true
	pending := d.heap.DeleteFunc(func(Job) bool { return true })
	d.cond.Broadcast()
	d.cond.L.Unlock()

	for _, job := range pending {
		job.finish(canceled(job))
	}
}

// next blocks until a job is available. It reports false once the queue
// is closed.
func (d *Dispatcher) next() (Job, bool) {
	d.cond.L.Lock()
	defer d.cond.L.Unlock()

	for d.heap.Len() == 0 && !d.closed {
		d.cond.Wait()
	}

	if d.closed {
		return Job{}, false
	}

	return d.heap.Pop()
}

func (d *Dispatcher) worker(ctx context.Context, id uint) {
	defer d.workers.Done()

	log := d.log.WithField("worker", id)

	for ctx.Err() == nil {
		job, ok := d.next()
		if !ok {
			return
		}

		started := time.Now()

		job.finish(d.execute(ctx, job, log))

		timer := time.NewTimer(d.interval - time.Since(started))

		select {
		case <-ctx.Done():
			timer.Stop()

			return
		case <-timer.C:
		}
	}
}

func (d *Dispatcher) execute(ctx context.Context, job Job, log yalogger.Logger) JobResult {
	log = log.WithField(yalogger.KeyMethod, job.Method.MethodName())

	for attempt := 0; ; attempt++ {
		result, err := d.send(ctx, job.Method)
		if err == nil {
			return JobResult{Result: result}
		}

		retryAfter := yatgclient.RetryAfter(err)
		if retryAfter <= 0 || attempt >= d.retries {
			log.Warnf("Job %d failed: %v", job.ID, err)

			return JobResult{Err: err}
		}

		log.Debugf("Job %d hit flood wait, retrying in %s", job.ID, retryAfter)

		timer := time.NewTimer(retryAfter)

		select {
		case <-ctx.Done():
			timer.Stop()

			return canceled(job)
		case <-timer.C:
		}
	}
}

func canceled(job Job) JobResult {
	return JobResult{Err: yaerrors.FromError(
		http.StatusRequestTimeout,
		ErrJobCanceled,
		"[QUEUE] "+job.Method.MethodName(),
	)}
}
