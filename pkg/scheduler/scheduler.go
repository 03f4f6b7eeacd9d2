package scheduler

import (
	"sync"
	"sync/atomic"

	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/cursor"
	"github.com/mint-lang/mint/pkg/gc"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// Quantum is the fixed instruction budget a process runs before
// yielding the step lock back to the scheduler (on the order of tens
// of thousands of instructions).
const Quantum = 1 << 15

// Scheduler owns the ready and sleeping process queues, the shared AST
// registry, garbage collector, and root package, and serializes mutator
// execution through a single step lock.
type Scheduler struct {
	stepMutex sync.Mutex
	singleThread bool

	mu sync.Mutex
	ready []*Process
	sleeping []*Process
	order []*Process // creation order, for reverse-order cleanup on exit

	Registry *symbol.ASTRegistry
	GC *gc.GC
	Root *value.Package

	exitCode int32
	exiting int32
}

// New creates a scheduler in single-thread mode (the step mutex is held
// continuously across a process's quantum) and registers it with g as
// a RootSource.
func New(reg *symbol.ASTRegistry, g *gc.GC, root *value.Package) *Scheduler {
	s := &Scheduler{Registry: reg, GC: g, Root: root, singleThread: true}
	g.Register(s)
	return s
}

// SetSingleThread toggles between the continuously-held-mutex mode and
// a lock/unlock/yield-to-OS pattern for multi-thread mode. Go's runtime
// already preempts goroutines, so multi-thread mode here is simply
// "release the mutex between quanta" rather than a literal OS yield
// syscall.
func (s *Scheduler) SetSingleThread(on bool) { s.singleThread = on }

// Roots implements gc.RootSource: every Reference reachable from any
// process's cursor, ready or sleeping.
func (s *Scheduler) Roots() []*value.Reference {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*value.Reference
	for _, p := range s.ready {
		out = append(out, p.Cursor.Roots()...)
	}
	for _, p := range s.sleeping {
		out = append(out, p.Cursor.Roots()...)
	}
	return out
}

// PushWaitingProcess adds p to the ready queue.
func (s *Scheduler) PushWaitingProcess(p *Process) {
	p.Cursor.Host = s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = append(s.ready, p)
	s.order = append(s.order, p)
	rt.Log.Debug("process queued", "process", p.ID)
}

// Exit requests orderly shutdown: Run finishes the quantum in progress,
// then cleans up every process in reverse-creation order before
// returning code.
func (s *Scheduler) Exit(code int) {
	atomic.StoreInt32(&s.exitCode, int32(code))
	atomic.StoreInt32(&s.exiting, 1)
}

func (s *Scheduler) dequeue() *Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ready) == 0 {
		return nil
	}
	p := s.ready[0]
	s.ready = s.ready[1:]
	return p
}

func (s *Scheduler) requeue(p *Process) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = append(s.ready, p)
}

func (s *Scheduler) sleep(p *Process) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeping = append(s.sleeping, p)
}

// wake moves a sleeping process back onto the ready queue, used once a
// suspended generator has been resumed and has more to give.
func (s *Scheduler) wake(p *Process) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.sleeping {
		if q == p {
			s.sleeping = append(s.sleeping[:i], s.sleeping[i+1:]...)
			break
		}
	}
	s.ready = append(s.ready, p)
}

func (s *Scheduler) finish(p *Process) {
	rt.Log.Debug("process finished", "process", p.ID, "exit_code", p.Cursor.ExitCode())
	if p.Cursor.ExitCode() != 0 {
		s.Exit(p.Cursor.ExitCode())
	}
}

func (s *Scheduler) handleError(p *Process, err error) {
	rt.Log.Debug("process error", "process", p.ID, "error", err)
	if p.OnError != nil {
		p.OnError(err)
		return
	}
	if _, ok := err.(*cursor.MintException); ok {
		s.Exit(1)
		return
	}
	s.Exit(1)
}

// Run round-robins every ready process, applying Quantum-sized slices
// of execution under the step lock, until the ready queue drains or
// Exit is called. It returns the process exit code.
func (s *Scheduler) Run() int {
	for atomic.LoadInt32(&s.exiting) == 0 {
		p := s.dequeue()
		if p == nil {
			break
		}

		s.stepMutex.Lock()
		more, err := p.Cursor.Run(Quantum)
		if !s.singleThread {
			s.stepMutex.Unlock()
		}

		switch {
		case err != nil:
			if s.singleThread {
				s.stepMutex.Unlock()
			}
			s.handleError(p, err)
		case p.Cursor.Suspended():
			if s.singleThread {
				s.stepMutex.Unlock()
			}
			s.sleep(p)
		case more:
			if s.singleThread {
				s.stepMutex.Unlock()
			}
			s.requeue(p)
		default:
			if s.singleThread {
				s.stepMutex.Unlock()
			}
			s.finish(p)
		}

		if s.GC.ShouldCollect() {
			s.collect()
		}
	}
	s.drain()
	return int(atomic.LoadInt32(&s.exitCode))
}

// collect stops every mutator by holding the step lock for the
// duration of one GC cycle, matching the requirement that
// Collect only ever run with every cursor parked.
func (s *Scheduler) collect() {
	s.stepMutex.Lock()
	defer s.stepMutex.Unlock()
	s.GC.Collect()
}

// drain runs cleanup for every remaining process in reverse-creation
// order once shutdown has been requested (Cancellation).
func (s *Scheduler) drain() {
	s.mu.Lock()
	remaining := append([]*Process(nil), s.order...)
	s.ready = nil
	s.sleeping = nil
	s.mu.Unlock()

	for i := len(remaining) - 1; i >= 0; i-- {
		p := remaining[i]
		if p.OnError != nil && !p.Cursor.Exited() {
			p.OnError(nil)
		}
	}
}
