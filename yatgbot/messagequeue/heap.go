package messagequeue

import (
	"container/heap"
	"encoding/json"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
)

// Job is one queued Bot API call. Lower Priority values are sent first,
// equal priorities in arrival order.
type Job struct {
	ID        uint64
	Priority  uint16
	Timestamp time.Time
	Method    yatgmethods.Method
	ResultCh  chan JobResult

	seq uint64
}

// JobResult carries the raw result of the call or its error.
type JobResult struct {
	Result json.RawMessage
	Err    yaerrors.Error
}

func (j Job) finish(result JobResult) {
	if j.ResultCh == nil {
		return
	}

	j.ResultCh <- result
	close(j.ResultCh)
}

type jobs []Job

func (h jobs) Len() int { return len(h) }

func (h jobs) Less(i int, j int) bool {
	if h[i].Priority == h[j].Priority {
		return h[i].seq < h[j].seq
	}

	return h[i].Priority < h[j].Priority
}

func (h jobs) Swap(i int, j int) { h[i], h[j] = h[j], h[i] }

func (h *jobs) Push(x any) {
	job, ok := x.(Job)
	if !ok {
		return
	}

	*h = append(*h, job)
}

func (h *jobs) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

// messageHeap is a priority queue of jobs. It is not safe for concurrent
// use.
type messageHeap struct {
	items jobs
}

func newMessageHeap() messageHeap {
	return messageHeap{}
}

func (h *messageHeap) Len() int {
	return h.items.Len()
}

func (h *messageHeap) Push(job Job) {
	heap.Push(&h.items, job)
}

func (h *messageHeap) Pop() (Job, bool) {
	if h.items.Len() == 0 {
		return Job{}, false
	}

	job, _ := heap.Pop(&h.items).(Job)

	return job, true
}

// Delete removes the job with id and returns it.
func (h *messageHeap) Delete(id uint64) (Job, bool) {
	for i, job := range h.items {
		if job.ID == id {
			heap.Remove(&h.items, i)

			return job, true
		}
	}

	return Job{}, false
}

// DeleteFunc removes every job matching fn.
func (h *messageHeap) DeleteFunc(fn func(Job) bool) []Job {
	var deleted []Job

	kept := h.items[:0]

	for _, job := range h.items {
		if fn(job) {
			deleted = append(deleted, job)

			continue
		}

		kept = append(kept, job)
	}

	h.items = kept
	heap.Init(&h.items)

	return deleted
}
