package application

import (
	"context"
	"log"
	"time"

	fuellog "fuelwatch-cloud/internal/fuellog/domain"
)

// Scheduler fires the daily rollover report at a configured local time.
// The report window is the previous local day [00:00, 24:00).
type Scheduler struct {
	service *ReportService
	dailyAt string
	loc     *time.Location
	logger  *log.Logger
}

// NewScheduler constructs a Scheduler.
func NewScheduler(service *ReportService, dailyAt string, loc *time.Location, logger *log.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		service: service,
		dailyAt: dailyAt,
		loc:     loc,
		logger:  logger,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	if s == nil || s.service == nil {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			local := now.In(s.loc)
			if !s.shouldRun(local) {
				continue
			}
			s.runOnce(ctx, local)
		}
	}
}

func (s *Scheduler) shouldRun(now time.Time) bool {
	hour, minute, err := parseDailyAt(s.dailyAt)
	if err != nil {
		return false
	}
	return now.Hour() == hour && now.Minute() == minute
}

func (s *Scheduler) runOnce(ctx context.Context, now time.Time) {
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayStart := dayEnd.AddDate(0, 0, -1)
	window, err := fuellog.NewWindow(dayStart, dayEnd)
	if err != nil {
		return
	}
	if _, err := s.service.RunPeriodicReport(ctx, window); err != nil && s.logger != nil {
		s.logger.Printf("periodic report error: window=%s err=%v", window.TimeKey(), err)
	}
}

func parseDailyAt(value string) (int, int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
