package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	refreshJobName = "timeslots-refresh"
	purgeJobName   = "timeslots-purge-expired"

	purgeInterval = time.Hour
	jobTimeout    = 10 * time.Minute
)

// Scheduler фоновые задачи: ежедневный сдвиг горизонта слотов и удаление прошедших слотов
type Scheduler struct {
	sched      gocron.Scheduler
	maintainer TimeslotMaintainer
	logger     Logger
}

// NewScheduler создает планировщик и регистрирует задачи.
// refreshCron задается в зоне loc без поля секунд.
func NewScheduler(maintainer TimeslotMaintainer, refreshCron string, loc *time.Location, logger Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("jobs: create scheduler: %w", err)
	}

	s := &Scheduler{sched: sched, maintainer: maintainer, logger: logger}

	_, err = sched.NewJob(
		gocron.CronJob(refreshCron, false),
		gocron.NewTask(s.Refresh),
		gocron.WithName(refreshJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("jobs: register %s (%q): %w", refreshJobName, refreshCron, err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(purgeInterval),
		gocron.NewTask(s.PurgeExpired),
		gocron.WithName(purgeJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("jobs: register %s: %w", purgeJobName, err)
	}

	return s, nil
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler: starting %d jobs", len(s.sched.Jobs()))
	s.sched.Start()
}

// Shutdown останавливает планировщик и дожидается выполняющихся задач
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

// Refresh сдвигает горизонт слотов всех активных прачечных
func (s *Scheduler) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := s.maintainer.RefreshAll(ctx)
	if err != nil {
		s.logger.Error("Scheduler: %s failed: %v", refreshJobName, err)
		return
	}
	if len(result.Failed) > 0 {
		s.logger.Warn("Scheduler: %s failed for shops %v", refreshJobName, result.Failed)
	}
	s.logger.Info("Scheduler: %s done, shops=%d, generated=%d", refreshJobName, result.Shops, result.Generated)
}

// PurgeExpired удаляет завершившиеся слоты без бронирований
func (s *Scheduler) PurgeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	deleted, err := s.maintainer.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("Scheduler: %s failed: %v", purgeJobName, err)
		return
	}
	s.logger.Info("Scheduler: %s done, deleted=%d", purgeJobName, deleted)
}
