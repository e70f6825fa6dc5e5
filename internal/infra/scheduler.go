package infra

import (
	"log"

	"github.com/robfig/cron/v3"

	"stocksim/internal/service"
)

// Scheduler drives the simulated oracle's price random walk on a cron
// schedule. It is demo scaffolding: the HTTP oracle mode runs without it.
type Scheduler struct {
	cron   *cron.Cron
	oracle *service.SimulatedOracle
	spec   string
}

// NewScheduler creates a new scheduler
func NewScheduler(oracle *service.SimulatedOracle, spec string) *Scheduler {
	if spec == "" {
		spec = "@every 1m"
	}
	return &Scheduler{
		cron:   cron.New(),
		oracle: oracle,
		spec:   spec,
	}
}

// Start registers the drift job and starts the cron loop
func (s *Scheduler) Start() error {
	log.Printf("Starting price drift scheduler [spec: %s]", s.spec)

	if _, err := s.cron.AddFunc(s.spec, s.oracle.Drift); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron loop, waiting for a running tick to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[OK] Price drift scheduler stopped")
}
