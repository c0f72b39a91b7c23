package myschedule

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MarcGrol/flashcart/lib/mycontext"
	"github.com/MarcGrol/flashcart/lib/mylog"
)

// Task runs first after InitialDelay and then every Interval
type Task struct {
	Name         string
	InitialDelay time.Duration
	Interval     time.Duration
	Run          func(c context.Context)
}

type Scheduler struct {
	clock  clockwork.Clock
	logger mylog.Logger
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func New(clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		clock:  clock,
		logger: mylog.New("scheduler"),
		cancel: func() {},
	}
}

// Start runs each task on its own goroutine until the context is cancelled or Stop is called.
// Runs of a single task never overlap.
func (s *Scheduler) Start(c context.Context, tasks ...Task) {
	c, cancel := context.WithCancel(c)
	s.cancel = cancel

	for _, task := range tasks {
		s.wg.Add(1)
		go func(task Task) {
			defer s.wg.Done()
			s.loop(c, task)
		}(task)
	}
}

func (s *Scheduler) loop(c context.Context, task Task) {
	s.logger.Log(c, task.Name, mylog.SeverityInfo, "Task %s starts in %v and repeats every %v", task.Name, task.InitialDelay, task.Interval)

	timer := s.clock.NewTimer(task.InitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-c.Done():
			s.logger.Log(c, task.Name, mylog.SeverityInfo, "Task %s stopped", task.Name)
			return
		case <-timer.Chan():
			task.Run(mycontext.ContextForTask(c, task.Name))
			timer.Reset(task.Interval)
		}
	}
}

// Stop cancels all tasks and waits for a running tick to complete
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
