package models

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// TimeslotResponse слот с текущими квотами
type TimeslotResponse struct {
	ID                     int64     `json:"id"`
	ShopID                 int64     `json:"shop_id"`
	StartDatetime          time.Time `json:"start_datetime"`
	EndDatetime            time.Time `json:"end_datetime"`
	PickupAvailableQuota   int       `json:"pickup_available_quota"`
	DeliveryAvailableQuota int       `json:"delivery_available_quota"`
}

// TimeslotDayResponse слоты одного календарного дня
type TimeslotDayResponse struct {
	Date      string             `json:"date"`
	Timeslots []TimeslotResponse `json:"timeslots"`
}

// RefreshResponse итог обновления горизонта слотов
type RefreshResponse struct {
	Shops     int     `json:"shops"`
	Generated int64   `json:"generated"`
	Failed    []int64 `json:"failed_shop_ids"`
}

// FromDomainTimeslot конвертирует domain модель в DTO
func FromDomainTimeslot(t *domain.Timeslot) TimeslotResponse {
	return TimeslotResponse{
		ID:                     t.ID,
		ShopID:                 t.ShopID,
		StartDatetime:          t.StartDatetime,
		EndDatetime:            t.EndDatetime,
		PickupAvailableQuota:   t.PickupAvailableQuota,
		DeliveryAvailableQuota: t.DeliveryAvailableQuota,
	}
}

// FromDomainDays конвертирует сгруппированные по дням слоты в DTO
func FromDomainDays(days []domain.TimeslotsByDate) []TimeslotDayResponse {
	resp := make([]TimeslotDayResponse, 0, len(days))
	for _, day := range days {
		slots := make([]TimeslotResponse, 0, len(day.Timeslots))
		for _, slot := range day.Timeslots {
			slots = append(slots, FromDomainTimeslot(slot))
		}
		resp = append(resp, TimeslotDayResponse{Date: day.Date, Timeslots: slots})
	}
	return resp
}
