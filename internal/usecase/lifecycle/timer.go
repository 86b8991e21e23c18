package lifecycle

import (
	"sync"
	"time"

	"cinema-seat-hold/internal/pkg/clock"
)

// HoldTimer fires onFire at most once for a single reservation. The callback
// only asks for expiry; the state machine decides whether it still applies.
type HoldTimer struct {
	clock  clock.Clock
	onFire func(holdCode string)

	mu        sync.Mutex
	t         clock.Timer
	started   bool
	fired     bool
	cancelled bool
}

func NewHoldTimer(clk clock.Clock, onFire func(holdCode string)) *HoldTimer {
	return &HoldTimer{clock: clk, onFire: onFire}
}

// Start schedules the expiry signal d from now. Only the first call counts.
func (h *HoldTimer) Start(holdCode string, d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started || h.cancelled {
		return
	}
	h.started = true
	h.t = h.clock.AfterFunc(d, func() { h.fire(holdCode) })
}

func (h *HoldTimer) fire(holdCode string) {
	h.mu.Lock()
	if h.cancelled || h.fired {
		h.mu.Unlock()
		return
	}
	h.fired = true
	h.mu.Unlock()

	h.onFire(holdCode)
}

// Cancel is idempotent and safe after the timer has fired.
func (h *HoldTimer) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelled || h.fired {
		return
	}
	h.cancelled = true
	if h.t != nil {
		h.t.Stop()
	}
}

func (h *HoldTimer) Fired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fired
}

func (h *HoldTimer) Cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}
