package lifecycle

import (
	"crypto/rand"
	"sync"
	"time"

	"cinema-seat-hold/internal/domain/reservation"
	"cinema-seat-hold/internal/pkg/errs"
)

const (
	codeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength     = 10
	codeMaxAttempt = 8
)

// RandomCodes draws hold codes from crypto/rand over an alphabet without
// look-alike characters. 32 symbols divide 256 evenly, so there is no modulo bias.
type RandomCodes struct{}

func NewRandomCodes() *RandomCodes {
	return &RandomCodes{}
}

func (RandomCodes) NewCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "read random bytes")
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

type machineFactory func(res *reservation.Reservation) *StateMachine

// Registry maps hold codes to their state machines. mu guards the map only;
// each machine has its own lock, and the registry never waits on a machine
// lock while holding mu.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*StateMachine
	codes    CodeGenerator
	newEntry machineFactory
}

func newRegistry(codes CodeGenerator, factory machineFactory) *Registry {
	return &Registry{
		entries:  make(map[string]*StateMachine),
		codes:    codes,
		newEntry: factory,
	}
}

// NextCode returns a code that is not currently registered.
func (r *Registry) NextCode() (string, error) {
	for range codeMaxAttempt {
		code, err := r.codes.NewCode()
		if err != nil {
			return "", err
		}
		r.mu.RLock()
		_, taken := r.entries[code]
		r.mu.RUnlock()
		if !taken {
			return code, nil
		}
	}
	return "", errCodeExhausted
}

// Create registers a held reservation under code.
func (r *Registry) Create(code string, screeningID int64, seat reservation.Seat, now time.Time) (*StateMachine, error) {
	res, err := reservation.NewReservation(code, screeningID, seat, now)
	if err != nil {
		return nil, err
	}
	m := r.newEntry(res)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[code]; exists {
		return nil, errs.Wrapf(errCodeCollision, "code %s", code)
	}
	r.entries[code] = m
	return m, nil
}

func (r *Registry) Get(code string) (*StateMachine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.entries[code]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, code)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Active counts reservations still held.
func (r *Registry) Active() int {
	n := 0
	for _, m := range r.list() {
		if m.isHeld() {
			n++
		}
	}
	return n
}

// Sweep evicts reservations that reached a terminal state at least retention ago.
func (r *Registry) Sweep(now time.Time, retention time.Duration) int {
	cutoff := now.Add(-retention)

	var retired []*StateMachine
	for _, m := range r.list() {
		if m.retiredBefore(cutoff) {
			retired = append(retired, m)
		}
	}
	if len(retired) == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range retired {
		code := m.HoldCode()
		if r.entries[code] == m {
			delete(r.entries, code)
			n++
		}
	}
	return n
}

func (r *Registry) list() []*StateMachine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*StateMachine, 0, len(r.entries))
	for _, m := range r.entries {
		out = append(out, m)
	}
	return out
}
