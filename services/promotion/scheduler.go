package promotion

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/myrandom"
	"github.com/MarcGrol/flashcart/lib/myschedule"
)

type Config struct {
	LightningInterval time.Duration
	LightningMaxDelay time.Duration
	SuggestedInterval time.Duration
	SuggestedMaxDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		LightningInterval: 30 * time.Second,
		LightningMaxDelay: 10 * time.Second,
		SuggestedInterval: 60 * time.Second,
		SuggestedMaxDelay: 20 * time.Second,
	}
}

// Scheduler runs the lightning and suggested sales on their own timers
type Scheduler struct {
	service    *Service
	scheduler  *myschedule.Scheduler
	randomizer myrandom.Randomizer
	config     Config
	logger     mylog.Logger
}

func NewScheduler(service *Service, clock clockwork.Clock, randomizer myrandom.Randomizer, config Config) *Scheduler {
	return &Scheduler{
		service:    service,
		scheduler:  myschedule.New(clock),
		randomizer: randomizer,
		config:     config,
		logger:     mylog.New("promotion"),
	}
}

func (s *Scheduler) Start(c context.Context) {
	s.scheduler.Start(c,
		myschedule.Task{
			Name:         "lightning",
			InitialDelay: s.randomDelay(s.config.LightningMaxDelay),
			Interval:     s.config.LightningInterval,
			Run:          s.run("lightning", s.service.LightningTick),
		},
		myschedule.Task{
			Name:         "suggested",
			InitialDelay: s.randomDelay(s.config.SuggestedMaxDelay),
			Interval:     s.config.SuggestedInterval,
			Run:          s.run("suggested", s.service.SuggestedTick),
		},
	)
}

// Stop waits for a running tick to complete
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// randomDelay is uniform in [0,max)
func (s *Scheduler) randomDelay(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(s.randomizer.Int63n(int64(max)))
}

func (s *Scheduler) run(name string, tick func(c context.Context) error) func(c context.Context) {
	return func(c context.Context) {
		err := tick(c)
		if err != nil {
			s.logger.Log(c, name, mylog.SeverityError, "Error running %s sale: %s", name, err)
		}
	}
}
