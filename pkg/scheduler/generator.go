package scheduler

import "github.com/mint-lang/mint/pkg/cursor"

// CreateGenerator turns a cursor already suspended mid-yield into an
// independently scheduled process, so the generator body can resume in
// its own frame without re-entering whatever created it (
// create_generator). Used directly for a whole script driven as a
// top-level generator, and via Spawn for a single frame
// detachGenerator pulls off a call's cursor.
func (s *Scheduler) CreateGenerator(c *cursor.Cursor) *Process {
	c.Host = s
	p := NewProcess(c)
	s.sleep(p)
	return p
}

// PumpGenerator resumes a sleeping generator process long enough to
// produce its next buffered item (or run to completion), then parks it
// again if it suspended a second time. It runs synchronously under the
// step lock like any other quantum — this core has no async iterator
// protocol, so a consumer wanting the next value from an interruptible
// generator calls this and then reads off the iterator's buffer. A
// process that used its whole quantum without suspending again is woken
// onto the ready queue so the ordinary round-robin loop keeps advancing
// it in the background instead of requiring another explicit pump.
func (s *Scheduler) PumpGenerator(p *Process) error {
	s.stepMutex.Lock()
	defer s.stepMutex.Unlock()
	return s.pumpLocked(p)
}

// pumpLocked is PumpGenerator for a caller that already holds the step
// lock: a cursor pulling its next item from inside its own quantum.
func (s *Scheduler) pumpLocked(p *Process) error {
	p.Cursor.ResumeGenerator()

	more, err := p.Cursor.Run(Quantum)
	if err != nil {
		return err
	}

	switch {
	case !more && !p.Cursor.Suspended():
		s.mu.Lock()
		for i, q := range s.sleeping {
			if q == p {
				s.sleeping = append(s.sleeping[:i], s.sleeping[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	case !p.Cursor.Suspended():
		s.wake(p)
	}
	return nil
}

// Spawn implements cursor.GeneratorHost: it registers c, a cursor
// detachGenerator forked off to run a single suspended call's generator
// frame, as a sleeping process, and hands back a handle whose Pump
// advances it under the scheduler's step lock.
func (s *Scheduler) Spawn(c *cursor.Cursor) cursor.GeneratorProcess {
	return generatorHandle{s: s, p: s.CreateGenerator(c)}
}

type generatorHandle struct {
	s *Scheduler
	p *Process
}

func (h generatorHandle) Pump() error { return h.s.pumpLocked(h.p) }
