package get_pickup_timeslots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/timeslots/models"
	getPickupTimeslots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_pickup_timeslots"
)

// PickupTimeslotsResponse HTTP response model
type PickupTimeslotsResponse struct {
	Timeslots []models.TimeslotDayResponse `json:"timeslots"`
}

// ToUseCaseRequest разбирает query параметры shop_id, is_available, start_date, end_date.
// Даты интерпретируются в зоне loc.
func ToUseCaseRequest(query url.Values, loc *time.Location) (*getPickupTimeslots.Request, string, error) {
	req := &getPickupTimeslots.Request{}

	if value := query.Get("shop_id"); value != "" {
		shopID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, "shop_id", err
		}
		req.ShopID = &shopID
	}

	if value := query.Get("is_available"); value != "" {
		isAvailable, err := strconv.ParseBool(value)
		if err != nil {
			return nil, "is_available", err
		}
		req.IsAvailable = isAvailable
	}

	for _, param := range []struct {
		name   string
		target **time.Time
	}{
		{"start_date", &req.StartDate},
		{"end_date", &req.EndDate},
	} {
		value := query.Get(param.name)
		if value == "" {
			continue
		}
		date, err := time.ParseInLocation(domain.DateFormat, value, loc)
		if err != nil {
			return nil, param.name, err
		}
		*param.target = &date
	}

	return req, "", nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPickupTimeslots.Response) *PickupTimeslotsResponse {
	return &PickupTimeslotsResponse{Timeslots: models.FromDomainDays(resp.Days)}
}
