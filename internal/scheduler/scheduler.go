package scheduler

import (
	"container/heap"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer struct {
	due      time.Duration
	interval time.Duration
	seq      uint64
	session  *Session
	fn       func(*Timer)
	stopped  bool
	fired    int
	index    int
}

// Stop prevents any further firing. Safe to call from inside the callback.
func (t *Timer) Stop() {
	t.stopped = true
}

// Fired returns how many times the timer has run.
func (t *Timer) Fired() int {
	return t.fired
}

// Active reports whether the timer can still fire.
func (t *Timer) Active() bool {
	return !t.stopped && t.session.Live()
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler runs callbacks on the game clock. It is advanced explicitly by the
// frame loop, so everything it fires runs on the caller's goroutine.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
}

// New creates a scheduler with the clock at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the game clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending counts timers that have not been dropped yet.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.Active() {
			n++
		}
	}
	return n
}

// After runs fn once, d after the current game time.
func (s *Scheduler) After(session *Session, d time.Duration, fn func()) *Timer {
	return s.add(session, d, 0, func(*Timer) { fn() })
}

// Every runs fn each interval until the timer is stopped or the session ends.
func (s *Scheduler) Every(session *Session, interval time.Duration, fn func(*Timer)) *Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(session, interval, interval, fn)
}

func (s *Scheduler) add(session *Session, d, interval time.Duration, fn func(*Timer)) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{
		due:      s.now + d,
		interval: interval,
		seq:      s.seq,
		session:  session,
		fn:       fn,
	}
	heap.Push(&s.timers, t)
	return t
}

// Advance moves the clock forward by dt and fires every timer that became due,
// in due-time order. A repeating timer that missed several intervals fires once
// per interval, each with the clock set to its own due time.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for len(s.timers) > 0 {
		next := s.timers[0]
		if !next.Active() {
			heap.Pop(&s.timers)
			continue
		}
		if next.due > target {
			break
		}

		heap.Pop(&s.timers)
		s.now = next.due
		next.fired++
		next.fn(next)

		if next.interval > 0 && next.Active() {
			next.due += next.interval
			s.seq++
			next.seq = s.seq
			heap.Push(&s.timers, next)
		}
	}

	s.now = target
}

// Cancel drops every timer bound to session and cancels it.
func (s *Scheduler) Cancel(session *Session) {
	if session == nil {
		return
	}
	session.Cancel()
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.session != session {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
	heap.Init(&s.timers)
	for i, t := range s.timers {
		t.index = i
	}
}
