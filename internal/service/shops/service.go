package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	shopRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/shop"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
)

// Service координирует жизненный цикл прачечной и ее слотов
type Service struct {
	shopRepo     ShopRepository
	timeslotRepo TimeslotRepository
	bookingRepo  BookingRepository
	generator    TimeslotGenerator
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса прачечных
func NewService(
	shopRepo ShopRepository,
	timeslotRepo TimeslotRepository,
	bookingRepo BookingRepository,
	generator TimeslotGenerator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		shopRepo:     shopRepo,
		timeslotRepo: timeslotRepo,
		bookingRepo:  bookingRepo,
		generator:    generator,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает прачечную и, если она активна, сразу генерирует слоты на горизонт.
// Прачечная и слоты сохраняются в одной транзакции.
func (s *Service) Create(ctx context.Context, req *models.CreateShopRequest) (*models.ShopResponse, error) {
	s.logger.Info("Create: creating shop %q by user=%d", req.Name, req.UserID)

	// 1. Валидация входных данных
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	shop, err := req.ToDomainShop()
	if err != nil {
		s.logger.Warn("Create: invalid time format: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleConfiguration, err)
	}

	if err := shop.Validate(); err != nil {
		s.logger.Warn("Create: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleConfiguration, err)
	}

	// 2. Создаем прачечную и слоты
	var created *domain.Shop
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = s.shopRepo.Create(txCtx, shop)
		if err != nil {
			s.logger.Error("Create: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		if !created.Active {
			return nil
		}

		if _, err := s.generator.Generate(txCtx, created); err != nil {
			return fmt.Errorf("%w: Create - generate timeslots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created shop id=%d", created.ID)
	return models.FromDomainShop(created), nil
}

// GetByID получает прачечную по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ShopResponse, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("GetByID: shop id=%d not found", id)
			return nil, ErrShopNotFound
		}
		s.logger.Error("GetByID: repository error for shop id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainShop(shop), nil
}

// Update обновляет прачечную. Доступно только владельцу.
// Строка прачечной блокируется (FOR UPDATE), поэтому параллельные изменения одной прачечной
// выполняются строго по очереди. Если изменилось расписание, слоты пересоздаются
// в той же транзакции: при ошибке прачечная и ее слоты остаются прежними.
func (s *Service) Update(ctx context.Context, shopID int64, req *models.UpdateShopRequest) (*models.ShopResponse, error) {
	s.logger.Info("Update: updating shop id=%d by user=%d", shopID, req.UserID)

	var updated *domain.Shop
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем прачечную и проверяем владельца
		current, err := s.lockOwned(txCtx, "Update", shopID, req.UserID)
		if err != nil {
			return err
		}

		// 2. Применяем изменения и валидируем
		updated, err = req.ApplyTo(current)
		if err != nil {
			s.logger.Warn("Update: invalid time format for shop id=%d: %v", shopID, err)
			return fmt.Errorf("%w: %v", ErrInvalidScheduleConfiguration, err)
		}
		if err := updated.Validate(); err != nil {
			s.logger.Warn("Update: invalid schedule for shop id=%d: %v", shopID, err)
			return fmt.Errorf("%w: %v", ErrInvalidScheduleConfiguration, err)
		}

		// 3. Сохраняем
		if err := s.shopRepo.Update(txCtx, updated); err != nil {
			if errors.Is(err, shopRepo.ErrShopNotFound) {
				return ErrShopNotFound
			}
			s.logger.Error("Update: repository error for shop id=%d: %v", shopID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		// 4. Пересоздаем слоты, только если изменилось расписание
		if !current.ScheduleChanged(updated) {
			return nil
		}

		s.logger.Info("Update: schedule of shop id=%d changed, regenerating timeslots", shopID)
		if _, err := s.generator.Regenerate(txCtx, updated); err != nil {
			return fmt.Errorf("%w: Update - regenerate timeslots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated shop id=%d", shopID)
	return models.FromDomainShop(updated), nil
}

// Delete удаляет прачечную вместе со слотами. Доступно только владельцу.
// Прачечную с бронированиями удалить нельзя: сначала ее нужно деактивировать.
func (s *Service) Delete(ctx context.Context, shopID, userID int64) error {
	s.logger.Info("Delete: deleting shop id=%d by user=%d", shopID, userID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.lockOwned(txCtx, "Delete", shopID, userID); err != nil {
			return err
		}

		hasBookings, err := s.bookingRepo.ExistsForShop(txCtx, shopID)
		if err != nil {
			s.logger.Error("Delete: failed to check bookings of shop id=%d: %v", shopID, err)
			return fmt.Errorf("%w: Delete - check bookings: %v", ErrInternal, err)
		}
		if hasBookings {
			s.logger.Warn("Delete: shop id=%d has bookings", shopID)
			return ErrShopHasBookings
		}

		purged, err := s.timeslotRepo.DeleteUnbookedByShop(txCtx, shopID)
		if err != nil {
			s.logger.Error("Delete: failed to purge timeslots of shop id=%d: %v", shopID, err)
			return fmt.Errorf("%w: Delete - purge timeslots: %v", ErrInternal, err)
		}

		if err := s.shopRepo.Delete(txCtx, shopID); err != nil {
			if errors.Is(err, shopRepo.ErrShopNotFound) {
				return ErrShopNotFound
			}
			s.logger.Error("Delete: repository error for shop id=%d: %v", shopID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: purged %d timeslots of shop id=%d", purged, shopID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted shop id=%d", shopID)
	return nil
}

// RegenerateTimeslots повторно пересоздает слоты прачечной по текущей конфигурации.
// Используется владельцем, если предыдущая попытка завершилась ошибкой.
func (s *Service) RegenerateTimeslots(ctx context.Context, shopID, userID int64) (*models.RegenerateResponse, error) {
	s.logger.Info("RegenerateTimeslots: shop id=%d by user=%d", shopID, userID)

	var result *models.RegenerateResponse
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		shop, err := s.lockOwned(txCtx, "RegenerateTimeslots", shopID, userID)
		if err != nil {
			return err
		}

		regenerated, err := s.generator.Regenerate(txCtx, shop)
		if err != nil {
			return fmt.Errorf("%w: RegenerateTimeslots - regenerate: %v", ErrInternal, err)
		}

		result = &models.RegenerateResponse{
			ShopID:     shopID,
			Purged:     regenerated.Purged,
			Generated:  regenerated.Generated,
			Reconciled: regenerated.Reconciled,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// lockOwned блокирует строку прачечной и проверяет, что пользователь ее владелец
func (s *Service) lockOwned(ctx context.Context, op string, shopID, userID int64) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetForUpdate(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			s.logger.Warn("%s: shop id=%d not found", op, shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("%s: failed to lock shop id=%d: %v", op, shopID, err)
		return nil, fmt.Errorf("%w: %s - lock shop: %v", ErrInternal, op, err)
	}

	if !shop.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%d is not the owner of shop id=%d", op, userID, shopID)
		return nil, ErrAccessDenied
	}

	return shop, nil
}
