package background

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"staffhub/internal/caching"
	"staffhub/internal/services"
)

// JobScheduler runs periodic maintenance work. Currently that is the
// headcount refresh, which keeps the cached employee total warm for
// pagination metadata and dashboards.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	employeeSvc services.EmployeeService
	cacheSvc    caching.CacheService
	interval    time.Duration
}

func NewJobScheduler(employeeSvc services.EmployeeService, cacheSvc caching.CacheService, interval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &JobScheduler{
		scheduler:   scheduler,
		employeeSvc: employeeSvc,
		cacheSvc:    cacheSvc,
		interval:    interval,
	}, nil
}

func (js *JobScheduler) Start() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.refreshHeadcount),
		gocron.WithName("employee-headcount-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.scheduler.Start()
	log.Printf("Job scheduler started, headcount refresh every %s", js.interval)
	return nil
}

func (js *JobScheduler) Stop() error {
	return js.scheduler.Shutdown()
}

// refreshHeadcount recomputes the employee total and stores it in the
// cache. Failures are logged and retried on the next tick.
func (js *JobScheduler) refreshHeadcount() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := js.employeeSvc.Count(ctx)
	if err != nil {
		log.Printf("Headcount refresh failed: %v", err)
		return
	}

	// TTL of two intervals so the value survives one missed refresh
	if err := js.cacheSvc.SetHeadcount(ctx, count, 2*js.interval); err != nil {
		log.Printf("Failed to cache headcount: %v", err)
	}
}
