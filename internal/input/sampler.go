package input

import (
	"time"

	"github.com/dshills/inputtrack/internal/input/mouse"
)

// SampleInterval is the minimum time between pointer samples.
const SampleInterval = 100 * time.Millisecond

// sampler re-arms itself on every frame and copies the current pointer
// fields into the last-sampled fields at most once per SampleInterval.
type sampler struct {
	sched   Scheduler
	clock   Clock
	pointer *mouse.State
	metrics *Metrics

	// last is the time of the latest effectful tick.
	last time.Time

	frame   FrameID
	gen     uint64
	running bool
}

func newSampler(sched Scheduler, clock Clock, pointer *mouse.State, metrics *Metrics) *sampler {
	return &sampler{
		sched:   sched,
		clock:   clock,
		pointer: pointer,
		metrics: metrics,
		last:    clock.Now(),
	}
}

// start begins re-arming. Calling start on a running sampler is a no-op.
func (s *sampler) start() {
	if s.running {
		return
	}
	s.running = true
	s.gen++
	s.arm(s.gen)
}

// stop cancels the pending frame. Callbacks belonging to a stopped run
// neither sample nor re-arm, even if the scheduler already dequeued them.
func (s *sampler) stop() {
	if !s.running {
		return
	}
	s.running = false
	s.sched.CancelFrame(s.frame)
}

func (s *sampler) arm(gen uint64) {
	s.frame = s.sched.RequestFrame(func() { s.tick(gen) })
}

func (s *sampler) tick(gen uint64) {
	if !s.running || gen != s.gen {
		return
	}
	s.metrics.RecordFrame()

	now := s.clock.Now()
	if now.Sub(s.last) >= SampleInterval {
		s.last = now
		s.pointer.Sample()
		s.metrics.RecordSample()
	}

	s.arm(gen)
}
