// Package scheduler implements C5: the discrete-event simulation loop. It
// owns the flow table, drives the trace reader, re-invokes the allocator on
// every membership change, and writes completion records and protocol
// lines through the sink and eventlog collaborators.
package scheduler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lavanyaj/waterfilling/eventlog"
	"github.com/lavanyaj/waterfilling/flowtable"
	"github.com/lavanyaj/waterfilling/metrics"
	"github.com/lavanyaj/waterfilling/sink"
	"github.com/lavanyaj/waterfilling/topology"
	"github.com/lavanyaj/waterfilling/trace"
	"github.com/lavanyaj/waterfilling/waterfill"
)

// StopReason reports why Run returned.
type StopReason int

const (
	// StopExhausted means the trace and the flow table were both empty.
	StopExhausted StopReason = iota
	// StopMaxSimTime means the chosen event's time reached Config.MaxSimTime.
	StopMaxSimTime
	// StopSafetyBound means the iteration safety bound was reached; a
	// non-fatal early stop per spec §4.5.
	StopSafetyBound
)

func (r StopReason) String() string {
	switch r {
	case StopExhausted:
		return "exhausted"
	case StopMaxSimTime:
		return "max_sim_time"
	case StopSafetyBound:
		return "safety_bound"
	default:
		return "unknown"
	}
}

// Scheduler drives the event loop. It is not safe for concurrent use — the
// whole simulation is single-threaded by design (spec §5).
type Scheduler struct {
	topo   *topology.Topology
	reader *trace.Reader
	table  *flowtable.Table
	rates  map[int]float64
	t      float64

	cfg Config

	sink *sink.Sink
	log  *eventlog.Writer
	met  *metrics.Metrics

	zapLog *zap.Logger
}

// New constructs a Scheduler. sk and evlog are required collaborators; met
// and zapLog default to a private registry and a no-op logger when nil.
func New(topo *topology.Topology, reader *trace.Reader, sk *sink.Sink, evlog *eventlog.Writer, met *metrics.Metrics, cfg Config, zapLog *zap.Logger) *Scheduler {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	if met == nil {
		met = metrics.New(nil)
	}

	return &Scheduler{
		topo:   topo,
		reader: reader,
		table:  flowtable.New(),
		rates:  map[int]float64{},
		cfg:    cfg,
		sink:   sk,
		log:    evlog,
		met:    met,
		zapLog: zapLog,
	}
}

// Run drives the event loop to completion and returns why it stopped.
func (s *Scheduler) Run() (StopReason, error) {
	waterfillOpts := waterfill.DefaultOptions()
	waterfillOpts.Verbose = s.cfg.Verbose

	for iteration := 0; ; iteration++ {
		if iteration >= s.cfg.maxIterations() {
			s.zapLog.Warn("scheduler: hit iteration safety bound",
				zap.Int("max_iterations", s.cfg.maxIterations()),
				zap.Int("active_flows", s.table.Len()),
				zap.Ints("unflushed_fids", s.table.Fids()),
			)

			return StopSafetyBound, nil
		}

		next := s.reader.Current()
		naturalTTL, haveNatural := s.table.NextNaturalCompletion(s.rates)

		if next == nil && !haveNatural {
			return StopExhausted, nil
		}

		chosenIsTrace := next != nil
		chosenTime := s.t + naturalTTL
		if chosenIsTrace {
			chosenTime = next.Time
			if haveNatural && s.t+naturalTTL < next.Time {
				chosenIsTrace = false
				chosenTime = s.t + naturalTTL
			}
		}

		duration := chosenTime - s.t
		if err := s.table.Drain(duration, s.rates, s.zapLog); err != nil {
			return StopExhausted, fmt.Errorf("scheduler: drain at t=%g: %w", chosenTime, err)
		}
		s.t = chosenTime

		if chosenIsTrace {
			if err := s.applyTraceEvent(next); err != nil {
				return StopExhausted, err
			}
		} else {
			if err := s.sweepAndAllocate(waterfillOpts); err != nil {
				return StopExhausted, err
			}
		}

		s.met.EventsProcessedTotal.Inc()

		if chosenTime >= s.cfg.MaxSimTime {
			return StopMaxSimTime, nil
		}
		if s.reader.Current() == nil && s.table.Len() == 0 {
			return StopExhausted, nil
		}
	}
}

// applyTraceEvent installs or terminates a flow per ev, then either
// triggers an immediate sweep or defers it when another coincident trace
// event is pending, per the deferral rule in spec §4.5.
func (s *Scheduler) applyTraceEvent(ev *trace.Event) error {
	if ev.IsArrival() {
		s.table.Add(&flowtable.Flow{
			Fid:            ev.Fid,
			Path:           ev.Path,
			OriginalBytes:  ev.NumBytes,
			RemainingBytes: ev.NumBytes,
			Weight:         s.cfg.weightFor(ev.NumBytes),
			StartTime:      s.t,
		})
	} else if f, ok := s.table.Get(ev.Fid); ok {
		f.RemainingBytes = 0
	}

	peek := s.reader.Lookahead()
	if err := s.reader.Advance(); err != nil {
		return fmt.Errorf("scheduler: advance trace: %w", err)
	}

	if peek == nil || peek.Time > ev.Time {
		waterfillOpts := waterfill.DefaultOptions()
		waterfillOpts.Verbose = s.cfg.Verbose

		return s.sweepAndAllocate(waterfillOpts)
	}

	return nil
}

// sweepAndAllocate removes naturally completed flows, emits their
// completion records and protocol lines, then re-invokes the allocator
// over whatever remains (spec §4.5 step 3).
func (s *Scheduler) sweepAndAllocate(opts waterfill.Options) error {
	done := s.table.Completed()
	for _, fid := range done {
		f, _ := s.table.Get(fid)
		if err := s.sink.Write(completionRecord(f, s.t)); err != nil {
			return fmt.Errorf("scheduler: write completion record for fid %d: %w", fid, err)
		}
		s.table.Remove(fid)
		s.met.FlowsCompletedTotal.Inc()
	}

	if err := s.log.Done(done); err != nil {
		return fmt.Errorf("scheduler: emit DONE: %w", err)
	}
	for _, fid := range done {
		if err := s.log.Terminated(fid, s.t); err != nil {
			return fmt.Errorf("scheduler: emit terminal RATE_CHANGE for fid %d: %w", fid, err)
		}
	}

	s.rates = map[int]float64{}

	if s.table.Len() > 0 {
		flowToPath := make(map[int][]topology.Link, s.table.Len())
		flowToWeight := make(map[int]int, s.table.Len())
		for _, fid := range s.table.Fids() {
			f, _ := s.table.Get(fid)
			flowToPath[fid] = f.Path
			flowToWeight[fid] = f.Weight
		}

		rates, err := waterfill.Allocate(flowToPath, flowToWeight, s.topo, opts, s.zapLog)
		if err != nil {
			return fmt.Errorf("scheduler: allocate: %w", err)
		}
		s.rates = rates
		s.met.AllocatorInvocationsTotal.Inc()

		for _, fid := range s.table.Fids() {
			f, _ := s.table.Get(fid)
			rate, ok := s.rates[fid]
			if !ok || rate <= 0 {
				continue
			}
			dur := f.RemainingBytes * 8 / (rate * 1e9)
			s.zapLog.Debug("scheduler: flow would finish in dur",
				zap.Int("fid", fid), zap.Float64("dur", dur))
		}

		if err := s.log.RateChange(s.t, s.rates); err != nil {
			return fmt.Errorf("scheduler: emit RATE_CHANGE: %w", err)
		}
	}

	s.met.ActiveFlows.Set(float64(s.table.Len()))

	return nil
}

func completionRecord(f *flowtable.Flow, endTime float64) sink.Record {
	return sink.Record{
		Fid:           f.Fid,
		EndTime:       endTime,
		StartTime:     f.StartTime,
		OriginalBytes: f.OriginalBytes,
		Src:           f.Path[0].U,
		Dst:           f.Path[len(f.Path)-1].V,
	}
}
