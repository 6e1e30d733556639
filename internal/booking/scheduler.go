package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	completeJobName = "complete-past-bookings"
	cancelJobName   = "cancel-unpaid-past-bookings"
)

// ScheduleHousekeeping registers the housekeeping sweeps on sched. Runs of the
// same job never overlap.
func (s *Service) ScheduleHousekeeping(sched gocron.Scheduler, interval time.Duration) error {
	jobs := []struct {
		name string
		run  func(context.Context) (int, error)
	}{
		{name: completeJobName, run: s.CompletePastBookings},
		{name: cancelJobName, run: s.CancelUnpaidPastBookings},
	}

	for _, job := range jobs {
		_, err := sched.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(s.runJob, job.name, job.run, interval),
			gocron.WithName(job.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}

	return nil
}

func (s *Service) runJob(name string, run func(context.Context) (int, error), timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := run(ctx)
	if err != nil {
		s.logger.Error("housekeeping job failed", "job", name, "moved", n, "error", err)
		return
	}

	if n > 0 {
		s.logger.Info("housekeeping job finished", "job", name, "moved", n)
	}
}
