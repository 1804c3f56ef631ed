package get_pickup_timeslots

import (
	"fmt"
	"time"
)

// maxRangeDays ограничивает длину запрашиваемого периода
const maxRangeDays = 60

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID != nil && *req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.StartDate != nil && req.EndDate != nil {
		if req.EndDate.Before(*req.StartDate) {
			return fmt.Errorf("%w: end date is before start date", ErrInvalidDateRange)
		}
		if req.EndDate.Sub(*req.StartDate) > maxRangeDays*24*time.Hour {
			return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidDateRange, maxRangeDays)
		}
	}

	return nil
}

// periodBounds возвращает границы [from, before) по датам запроса.
// Начало никогда не раньше now: прошедшие слоты не показываются.
func periodBounds(req *Request, now time.Time, horizonDays int, loc *time.Location) (time.Time, time.Time) {
	from := now
	if req.StartDate != nil {
		start := startOfDay(*req.StartDate, loc)
		if start.After(from) {
			from = start
		}
	}

	before := startOfDay(now, loc).AddDate(0, 0, horizonDays)
	if req.EndDate != nil {
		before = startOfDay(*req.EndDate, loc).AddDate(0, 0, 1)
	}

	return from, before
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
