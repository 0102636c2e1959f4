package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker long running background worker
type Worker interface {
	Run(ctx context.Context) error
}

// Job one tick of work, errors are logged by the caller
type Job func(ctx context.Context) error

// Policy poll periods, Steady replaces Initial after the first successful tick
type Policy struct {
	Initial time.Duration
	Steady  time.Duration
}

// Fixed policy with a single period
func Fixed(period time.Duration) Policy {
	return Policy{Initial: period, Steady: period}
}

// Scheduler run a job on a schedule, a tick still in flight makes the next one skip
type Scheduler struct {
	name   string
	job    Job
	loc    *time.Location
	first  cron.Schedule
	steady time.Duration
	now    bool
	wg     sync.WaitGroup

	mu      sync.Mutex
	cron    *cron.Cron
	runner  cron.Job
	entry   cron.EntryID
	period  time.Duration
	widened bool
}

// NewScheduler periodic scheduler, the first tick fires on start
func NewScheduler(name string, policy Policy, job Job) *Scheduler {
	first := cron.Every(policy.Initial)

	s := &Scheduler{
		name:   name,
		job:    job,
		loc:    time.UTC,
		first:  first,
		now:    true,
		period: first.Delay,
	}

	if steady := cron.Every(policy.Steady); policy.Steady > 0 && steady.Delay != first.Delay {
		s.steady = steady.Delay
	}

	return s
}

// NewCron scheduler on a cron spec like "@hourly" or "0 * * * *"
func NewCron(name, spec string, loc *time.Location, job Job) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		name:  name,
		job:   job,
		loc:   loc,
		first: schedule,
	}, nil
}

// Period current period, zero for cron schedules
func (s *Scheduler) Period() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.period
}

// Start schedule the job, ticks run with ctx
func (s *Scheduler) Start(ctx context.Context) {
	log := logger.FromContext(ctx).WithField("worker", s.name)

	s.mu.Lock()
	s.cron = cron.New(cron.WithLocation(s.loc), cron.WithLogger(cron.PrintfLogger(log)))
	s.runner = cron.NewChain(cron.SkipIfStillRunning(cron.PrintfLogger(log))).Then(cron.FuncJob(func() {
		s.tick(ctx)
	}))
	s.entry = s.cron.Schedule(s.first, s.runner)
	s.mu.Unlock()

	s.cron.Start()

	if s.now {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runner.Run()
		}()
	}
}

// Stop stop scheduling and wait for the running tick
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}

	s.wg.Wait()
}

// Run start, block until ctx is done, then stop
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start(ctx)
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	log := logger.FromContext(ctx).WithField("worker", s.name)

	if err := s.job(ctx); err != nil {
		log.WithError(err).Errorln("tick")
		return
	}

	s.widen()
}

// widen switch to the steady schedule once
func (s *Scheduler) widen() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.widened || s.steady == 0 {
		return
	}

	s.widened = true
	s.period = s.steady

	if s.cron != nil {
		s.cron.Remove(s.entry)
		s.entry = s.cron.Schedule(cron.Every(s.steady), s.runner)
	}
}
