package timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	shopRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/shop"
)

// RegenerateResult итог пересоздания слотов прачечной
type RegenerateResult struct {
	Purged     int64 // удалено слотов без бронирований
	Generated  int64 // вставлено новых слотов
	Reconciled int64 // слотов с бронированиями, чьи квоты пересчитаны
}

// RefreshResult итог обновления горизонта по всем прачечным
type RefreshResult struct {
	Shops     int
	Generated int64
	Failed    []int64 // ID прачечных, для которых генерация не удалась
}

// Service сервис генерации и обслуживания слотов (Timeslot Generator)
type Service struct {
	shopRepo     ShopRepository
	timeslotRepo TimeslotRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	horizonDays  int
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	shopRepo ShopRepository,
	timeslotRepo TimeslotRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	horizonDays int,
	location *time.Location,
	logger Logger,
) *Service {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	if location == nil {
		location = time.UTC
	}

	return &Service{
		shopRepo:     shopRepo,
		timeslotRepo: timeslotRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		horizonDays:  horizonDays,
		location:     location,
		logger:       logger,
	}
}

// Location возвращает локацию, в которой считаются календарные дни
func (s *Service) Location() *time.Location {
	return s.location
}

// Windows возвращает окна прачечной на горизонт, начиная с сегодняшнего дня.
// Уже начавшиеся окна сегодняшнего дня не возвращаются.
func (s *Service) Windows(shop *domain.Shop) ([]domain.TimeWindow, error) {
	now := s.timeProvider.Now()

	windows, err := GenerateWindows(shop, now, s.horizonDays, s.location)
	if err != nil {
		return nil, err
	}

	upcoming := windows[:0]
	for _, w := range windows {
		if w.Start.After(now) {
			upcoming = append(upcoming, w)
		}
	}

	return upcoming, nil
}

// Generate создает недостающие слоты прачечной на горизонт.
// Существующие слоты и их квоты не меняются.
func (s *Service) Generate(ctx context.Context, shop *domain.Shop) (int64, error) {
	windows, err := s.Windows(shop)
	if err != nil {
		s.logger.Error("Generate: failed to build windows for shop id=%d: %v", shop.ID, err)
		return 0, fmt.Errorf("%w: Generate - build windows: %v", ErrInternal, err)
	}

	inserted, err := s.timeslotRepo.BulkInsert(ctx, shop.ID, windows, shop.MaxUserLimitPerTimeslot)
	if err != nil {
		s.logger.Error("Generate: failed to insert timeslots for shop id=%d: %v", shop.ID, err)
		return 0, fmt.Errorf("%w: Generate - insert timeslots: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.RecordTimeslotsGenerated(int(inserted))
	}

	s.logger.Info("Generate: shop id=%d, windows=%d, inserted=%d", shop.ID, len(windows), inserted)
	return inserted, nil
}

// Regenerate пересоздает слоты прачечной после смены расписания.
// Порядок: удаление слотов без бронирований, генерация (если прачечная активна),
// пересчет квот слотов с бронированиями под новую сетку.
// Все шаги выполняются в одной транзакции; вызывающий код должен держать блокировку строки прачечной.
func (s *Service) Regenerate(ctx context.Context, shop *domain.Shop) (*RegenerateResult, error) {
	result := &RegenerateResult{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Удаляем слоты без бронирований
		purged, err := s.timeslotRepo.DeleteUnbookedByShop(txCtx, shop.ID)
		if err != nil {
			s.logger.Error("Regenerate: failed to purge timeslots for shop id=%d: %v", shop.ID, err)
			return fmt.Errorf("%w: Regenerate - purge: %v", ErrInternal, err)
		}
		result.Purged = purged

		// 2. Генерируем новую сетку, только если прачечная активна
		gridStarts := []time.Time{}
		if shop.Active {
			windows, err := s.Windows(shop)
			if err != nil {
				return fmt.Errorf("%w: Regenerate - build windows: %v", ErrInternal, err)
			}

			generated, err := s.timeslotRepo.BulkInsert(txCtx, shop.ID, windows, shop.MaxUserLimitPerTimeslot)
			if err != nil {
				s.logger.Error("Regenerate: failed to insert timeslots for shop id=%d: %v", shop.ID, err)
				return fmt.Errorf("%w: Regenerate - insert: %v", ErrInternal, err)
			}
			result.Generated = generated
			gridStarts = GridStarts(windows)
		}

		// 3. Слоты с бронированиями остаются; квоты приводим к новой конфигурации
		reconciled, err := s.timeslotRepo.ReconcileBooked(txCtx, shop.ID, gridStarts,
			shop.TimeslotDurationMinutes, shop.MaxUserLimitPerTimeslot)
		if err != nil {
			s.logger.Error("Regenerate: failed to reconcile booked timeslots for shop id=%d: %v", shop.ID, err)
			return fmt.Errorf("%w: Regenerate - reconcile: %v", ErrInternal, err)
		}
		result.Reconciled = reconciled

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTimeslotsGenerated(int(result.Generated))
	}

	s.logger.Info("Regenerate: shop id=%d, active=%t, purged=%d, generated=%d, reconciled=%d",
		shop.ID, shop.Active, result.Purged, result.Generated, result.Reconciled)
	return result, nil
}

// RefreshAll сдвигает горизонт слотов для всех активных прачечных.
// Каждая прачечная обрабатывается в своей транзакции под разделяемой блокировкой,
// ошибка одной прачечной не останавливает остальные.
func (s *Service) RefreshAll(ctx context.Context) (*RefreshResult, error) {
	shops, err := s.shopRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("RefreshAll: failed to list active shops: %v", err)
		return nil, fmt.Errorf("%w: RefreshAll - list shops: %v", ErrInternal, err)
	}

	result := &RefreshResult{Failed: []int64{}}
	for _, listed := range shops {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var inserted int64
		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			// Перечитываем прачечную под блокировкой: конфигурация могла измениться
			shop, err := s.shopRepo.GetForShare(txCtx, listed.ID)
			if err != nil {
				return err
			}
			if !shop.Active {
				return nil
			}

			inserted, err = s.Generate(txCtx, shop)
			return err
		})

		if err != nil && !errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Error("RefreshAll: shop id=%d failed: %v", listed.ID, err)
			result.Failed = append(result.Failed, listed.ID)
			continue
		}

		result.Shops++
		result.Generated += inserted
	}

	s.logger.Info("RefreshAll: shops=%d, generated=%d, failed=%d", result.Shops, result.Generated, len(result.Failed))
	return result, nil
}

// PurgeExpired удаляет завершившиеся слоты без бронирований
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	deleted, err := s.timeslotRepo.DeleteExpiredUnbooked(ctx, now)
	if err != nil {
		s.logger.Error("PurgeExpired: failed to delete expired timeslots: %v", err)
		return 0, fmt.Errorf("%w: PurgeExpired - delete: %v", ErrInternal, err)
	}

	s.logger.Info("PurgeExpired: deleted %d expired timeslots", deleted)
	return deleted, nil
}
