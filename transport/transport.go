// Package transport implements a vendor-neutral simulated acoustic modem
// transport: a connect/disconnect state machine over a time-ordered
// delivery queue, modeling transmission delay, packet loss, and per-bit
// error injection the way a real underwater modem link behaves, for use
// in tests of the framing layer above it.
package transport

import (
	"container/heap"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oceancomm/uwacodec"
)

// ErrNotConnected is returned by SendFrame when the transport is not in
// the Connected state.
var ErrNotConnected = errors.New("transport: not connected")

// ConnState is the transport's connection state.
type ConnState int

const (
	Disconnected ConnState = iota
	Connected
)

// Clock abstracts the transport's notion of "now" so tests can drive
// simulated time deterministically instead of depending on wall-clock
// delay. Production use passes SystemClock().
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the real wall clock.
func SystemClock() Clock { return systemClock{} }

// ManualClock is a Clock a test can advance explicitly, letting delivery
// timing be asserted without sleeping real time.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// RXCallback receives a delivered (possibly corrupted) frame and, as
// sourceID, the destID that was passed to the SendFrame call that sent it;
// the transport keeps no source id of its own. Implementations must not block and must not call
// back into the transport synchronously during delivery.
type RXCallback func(frame []byte, sourceID uint8)

// Limits bounds the transport's behavior: delay, loss, bit errors and MTU.
type Limits struct {
	// TransmissionDelay is the simulated propagation/processing delay
	// applied to every sent frame before it becomes eligible for delivery.
	TransmissionDelay time.Duration

	// PacketLossProbability is the independent per-frame chance of silent
	// drop at delivery time, in [0,1].
	PacketLossProbability float64

	// BitErrorRate is the independent per-bit chance of a flipped bit in a
	// surviving frame at delivery time, in [0,1].
	BitErrorRate float64

	// MaxFrameSize is the hard modem MTU in bytes. SendFrame fails
	// synchronously for larger frames.
	MaxFrameSize int
}

// DefaultLimits models a slow, lossy acoustic link: a few hundred
// milliseconds of delay, modest loss, and a low but nonzero bit error rate.
var DefaultLimits = Limits{
	TransmissionDelay:     500 * time.Millisecond,
	PacketLossProbability: 0.01,
	BitErrorRate:          0.0001,
	MaxFrameSize:          2048,
}

type delivery struct {
	at     time.Time
	seq    uint64
	frame  []byte
	source uint8
}

// deliveryQueue orders pending deliveries by scheduled time, breaking ties
// by submission order (seq), implementing container/heap.Interface.
type deliveryQueue []*delivery

func (q deliveryQueue) Len() int { return len(q) }
func (q deliveryQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}
func (q deliveryQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *deliveryQueue) Push(x any)   { *q = append(*q, x.(*delivery)) }
func (q *deliveryQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Transport is a simulated acoustic modem link. It is purely cooperative:
// SendFrame only schedules a delivery event; nothing is dispatched to
// callbacks until a worker calls Pump to advance simulated time.
type Transport struct {
	Limits

	mu        sync.Mutex
	state     ConnState
	clock     Clock
	rng       *rand.Rand
	pending   deliveryQueue
	nextSeq   uint64
	callbacks []RXCallback
}

// New returns a disconnected Transport using clock for scheduling and seed
// for its loss/bit-error randomness.
func New(clock Clock, seed int64, limits Limits) *Transport {
	return &Transport{
		Limits: limits,
		clock:  clock,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Connect transitions the transport to Connected.
func (t *Transport) Connect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Connected
}

// Disconnect terminates any pending deliveries, detaches all callbacks, and
// transitions back to Disconnected.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Disconnected
	t.pending = nil
	t.callbacks = nil
}

// State reports the transport's current connection state.
func (t *Transport) State() ConnState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// OnReceive registers a callback invoked for every frame delivered after
// this call, until the next Disconnect.
func (t *Transport) OnReceive(cb RXCallback) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callbacks = append(t.callbacks, cb)
}

// SendFrame schedules frame for delivery at now + TransmissionDelay, tagged
// with the given destination id. destID does not select receivers: the
// simulated channel fans out to every callback, which receives destID as
// its sourceID argument.
// It fails synchronously with ErrOversizeMessage if frame exceeds
// MaxFrameSize - modeling a hard modem MTU - and fails if the transport is
// not Connected.
func (t *Transport) SendFrame(frame []byte, destID uint8) error {
	if t.MaxFrameSize > 0 && len(frame) > t.MaxFrameSize {
		return fmt.Errorf("transport: frame of %d bytes exceeds MTU %d: %w", len(frame), t.MaxFrameSize, uwacodec.ErrOversizeMessage)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Connected {
		return ErrNotConnected
	}

	cp := make([]byte, len(frame))
	copy(cp, frame)

	d := &delivery{
		at:     t.clock.Now().Add(t.TransmissionDelay),
		seq:    t.nextSeq,
		frame:  cp,
		source: destID,
	}
	t.nextSeq++
	heap.Push(&t.pending, d)
	return nil
}

// Pump delivers every pending frame whose scheduled time is at or before
// the clock's current time, applying loss and bit-error simulation, and
// fanning the surviving bytes out to every registered callback. It returns
// the number of frames delivered (including silently dropped ones).
// Callbacks run synchronously on the calling goroutine, matching the "no
// per-frame timeouts at transport level" design: Pump IS the delivery
// worker: call it from a dedicated goroutine on a ticker for production use,
// or directly from a test after advancing a ManualClock.
func (t *Transport) Pump() int {
	now := t.clock.Now()

	t.mu.Lock()
	var due []*delivery
	for t.pending.Len() > 0 && !t.pending[0].at.After(now) {
		due = append(due, heap.Pop(&t.pending).(*delivery))
	}
	callbacks := make([]RXCallback, len(t.callbacks))
	copy(callbacks, t.callbacks)
	t.mu.Unlock()

	for _, d := range due {
		t.deliverOne(d, callbacks)
	}
	return len(due)
}

func (t *Transport) deliverOne(d *delivery, callbacks []RXCallback) {
	if t.rng.Float64() < t.PacketLossProbability {
		return
	}

	frame := applyBitErrors(d.frame, t.BitErrorRate, t.rng)
	for _, cb := range callbacks {
		cb(frame, d.source)
	}
}

// applyBitErrors flips each bit of frame independently with probability
// rate, returning a new slice (the input is never mutated).
func applyBitErrors(frame []byte, rate float64, rng *rand.Rand) []byte {
	if rate <= 0 {
		return frame
	}
	out := make([]byte, len(frame))
	copy(out, frame)
	for i := range out {
		for bit := 0; bit < 8; bit++ {
			if rng.Float64() < rate {
				out[i] ^= 1 << uint(bit)
			}
		}
	}
	return out
}
