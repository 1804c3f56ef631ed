package models

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// Request модели

// CreateShopRequest запрос на создание прачечной
type CreateShopRequest struct {
	UserID                  int64   `json:"-"`
	Name                    string  `json:"name"`
	OpeningTime             *string `json:"opening_time,omitempty"` // "HH:MM", по умолчанию 10:00
	ClosingTime             *string `json:"closing_time,omitempty"` // "HH:MM", по умолчанию 19:00
	WashDurationMinutes     int     `json:"wash_duration_minutes"`
	TimeslotDurationMinutes int     `json:"time_slot_duration_minutes"`
	MaxUserLimitPerTimeslot int     `json:"max_user_limit_per_time_slot"`
	Active                  *bool   `json:"active,omitempty"` // по умолчанию true
}

// UpdateShopRequest запрос на частичное обновление прачечной
type UpdateShopRequest struct {
	UserID                  int64   `json:"-"`
	Name                    *string `json:"name,omitempty"`
	OpeningTime             *string `json:"opening_time,omitempty"`
	ClosingTime             *string `json:"closing_time,omitempty"`
	WashDurationMinutes     *int    `json:"wash_duration_minutes,omitempty"`
	TimeslotDurationMinutes *int    `json:"time_slot_duration_minutes,omitempty"`
	MaxUserLimitPerTimeslot *int    `json:"max_user_limit_per_time_slot,omitempty"`
	Active                  *bool   `json:"active,omitempty"`
}

// ToDomainShop создает доменную прачечную с дефолтами для незаданных полей
func (r *CreateShopRequest) ToDomainShop() (*domain.Shop, error) {
	opening, err := parseTime(r.OpeningTime, domain.DefaultOpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := parseTime(r.ClosingTime, domain.DefaultClosingTime)
	if err != nil {
		return nil, err
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &domain.Shop{
		UserID:                  r.UserID,
		Name:                    r.Name,
		OpeningTime:             opening,
		ClosingTime:             closing,
		WashDurationMinutes:     r.WashDurationMinutes,
		TimeslotDurationMinutes: r.TimeslotDurationMinutes,
		MaxUserLimitPerTimeslot: r.MaxUserLimitPerTimeslot,
		Active:                  active,
	}, nil
}

// ApplyTo применяет заданные поля к копии прачечной
func (r *UpdateShopRequest) ApplyTo(shop *domain.Shop) (*domain.Shop, error) {
	updated := *shop

	if r.Name != nil {
		updated.Name = *r.Name
	}
	if r.OpeningTime != nil {
		t, err := types.NewTimeStringFromString(*r.OpeningTime)
		if err != nil {
			return nil, err
		}
		updated.OpeningTime = t
	}
	if r.ClosingTime != nil {
		t, err := types.NewTimeStringFromString(*r.ClosingTime)
		if err != nil {
			return nil, err
		}
		updated.ClosingTime = t
	}
	if r.WashDurationMinutes != nil {
		updated.WashDurationMinutes = *r.WashDurationMinutes
	}
	if r.TimeslotDurationMinutes != nil {
		updated.TimeslotDurationMinutes = *r.TimeslotDurationMinutes
	}
	if r.MaxUserLimitPerTimeslot != nil {
		updated.MaxUserLimitPerTimeslot = *r.MaxUserLimitPerTimeslot
	}
	if r.Active != nil {
		updated.Active = *r.Active
	}

	return &updated, nil
}

func parseTime(value *string, def string) (types.TimeString, error) {
	if value == nil {
		return types.TimeString(def), nil
	}
	return types.NewTimeStringFromString(*value)
}

// Response модели

// ShopResponse ответ с данными прачечной
type ShopResponse struct {
	ID                      int64     `json:"id"`
	UserID                  int64     `json:"user_id"`
	Name                    string    `json:"name"`
	OpeningTime             string    `json:"opening_time"`
	ClosingTime             string    `json:"closing_time"`
	WashDurationMinutes     int       `json:"wash_duration_minutes"`
	TimeslotDurationMinutes int       `json:"time_slot_duration_minutes"`
	MaxUserLimitPerTimeslot int       `json:"max_user_limit_per_time_slot"`
	Active                  bool      `json:"active"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// RegenerateResponse итог пересоздания слотов
type RegenerateResponse struct {
	ShopID     int64 `json:"shop_id"`
	Purged     int64 `json:"purged"`
	Generated  int64 `json:"generated"`
	Reconciled int64 `json:"reconciled"`
}

// FromDomainShop конвертирует доменную модель в ответ
func FromDomainShop(shop *domain.Shop) *ShopResponse {
	return &ShopResponse{
		ID:                      shop.ID,
		UserID:                  shop.UserID,
		Name:                    shop.Name,
		OpeningTime:             shop.OpeningTime.String(),
		ClosingTime:             shop.ClosingTime.String(),
		WashDurationMinutes:     shop.WashDurationMinutes,
		TimeslotDurationMinutes: shop.TimeslotDurationMinutes,
		MaxUserLimitPerTimeslot: shop.MaxUserLimitPerTimeslot,
		Active:                  shop.Active,
		CreatedAt:               shop.CreatedAt,
		UpdatedAt:               shop.UpdatedAt,
	}
}
