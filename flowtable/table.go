package flowtable

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// byteRateScale converts a Gb/s rate into bytes/sec: rate · 10⁹ / 8. The
// rates passed to Drain and NextNaturalCompletion are already weighted
// (waterfill.Allocate multiplies by weight before returning), so this
// constant must not be multiplied by weight again.
const byteRateScale = 1e9 / 8

// negativeDurationTolerance is the clamp window for near-zero or slightly
// negative drain durations that spec §7 treats as warn-and-continue rather
// than fatal.
const negativeDurationTolerance = -1e-6

// underflowTolerance is how far below zero a post-drain remaining_bytes may
// fall before it is treated as a fatal numeric inconsistency.
const underflowTolerance = -1

// Table is the associative store of C4: active flows keyed by fid.
// Membership mutation (Add/Remove) is the scheduler's exclusive privilege;
// Table itself enforces no cross-flow invariant.
type Table struct {
	flows map[int]*Flow
}

// New returns an empty flow table.
func New() *Table {
	return &Table{flows: make(map[int]*Flow)}
}

// Add inserts f, keyed by f.Fid. A pre-existing entry with the same fid is
// overwritten — the scheduler is responsible for not reusing a live fid.
func (t *Table) Add(f *Flow) {
	t.flows[f.Fid] = f
}

// Remove deletes the flow with the given fid, if present.
func (t *Table) Remove(fid int) {
	delete(t.flows, fid)
}

// Get returns the flow with the given fid and whether it was found.
func (t *Table) Get(fid int) (*Flow, bool) {
	f, ok := t.flows[fid]

	return f, ok
}

// Len reports the number of active flows.
func (t *Table) Len() int {
	return len(t.flows)
}

// Fids returns every active fid in ascending order, giving callers a
// deterministic iteration order (supports P5).
func (t *Table) Fids() []int {
	fids := make([]int, 0, len(t.flows))
	for fid := range t.flows {
		fids = append(fids, fid)
	}
	sort.Ints(fids)

	return fids
}

// Drain reduces every active flow's remaining bytes by
// rate(f)·10⁹·duration/8 (invariant I3); rate(f) is already weighted.
// rates need not cover
// every flow in the table — a flow absent from rates is left untouched,
// which happens for the instant between membership application and the
// allocator's first invocation. A duration within
// (negativeDurationTolerance, 0] is clamped to zero with a warning; a more
// negative duration is rejected. A resulting remaining_bytes below
// underflowTolerance is rejected; a milder undershoot is clamped to zero
// with a warning.
func (t *Table) Drain(duration float64, rates map[int]float64, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	if duration <= 0 {
		if duration < negativeDurationTolerance {
			return ErrNegativeDuration
		}
		if duration < 0 {
			log.Warn("flowtable: clamping negative drain duration to zero", zap.Float64("duration", duration))
		}

		return nil
	}

	for _, fid := range t.Fids() {
		rate, ok := rates[fid]
		if !ok {
			continue
		}
		f := t.flows[fid]
		consumed := rate * byteRateScale * duration
		next := f.RemainingBytes - consumed
		if next < underflowTolerance {
			return ErrDrainUnderflow
		}
		if next < 0 {
			log.Warn("flowtable: clamping drain underflow to zero",
				zap.Int("fid", fid), zap.Float64("remaining_bytes", next))
			next = 0
		}
		f.RemainingBytes = next
	}

	return nil
}

// NextNaturalCompletion returns the smallest time-to-completion among
// active flows with a known positive rate, i.e.
// min_f remaining_bytes(f)·8/(rate(f)·10⁹) — rate(f) already weighted —
// and whether any such flow exists. Flows absent from rates or with a
// non-positive rate are excluded, since they have no defined completion
// time yet.
func (t *Table) NextNaturalCompletion(rates map[int]float64) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, fid := range t.Fids() {
		rate, ok := rates[fid]
		if !ok || rate <= 0 {
			continue
		}
		f := t.flows[fid]
		ttl := f.RemainingBytes / (rate * byteRateScale)
		if !found || ttl < best {
			found = true
			best = ttl
		}
	}

	return best, found
}

// Completed returns the fids of every active flow whose remaining bytes
// have fallen below the natural-completion threshold, in ascending order.
func (t *Table) Completed() []int {
	const threshold = 1e-3

	var done []int
	for _, fid := range t.Fids() {
		if t.flows[fid].RemainingBytes < threshold {
			done = append(done, fid)
		}
	}

	return done
}
