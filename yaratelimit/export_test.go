package yaratelimit

import "time"

func (r *RateLimit[T]) SetClock(now func() time.Time) {
	r.now = now
}
