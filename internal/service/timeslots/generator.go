package timeslots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// GenerateWindows строит окна слотов прачечной на horizonDays календарных дней начиная с startDate.
// Дни считаются в локации loc. Внутри дня окна идут от opening_time с шагом time_slot_duration,
// последнее неполное окно (конец позже closing_time) отбрасывается.
// Результат детерминирован и упорядочен по началу окна.
// Конфигурация прачечной считается уже провалидированной.
func GenerateWindows(shop *domain.Shop, startDate time.Time, horizonDays int, loc *time.Location) ([]domain.TimeWindow, error) {
	if loc == nil {
		loc = time.UTC
	}
	if horizonDays <= 0 || shop.TimeslotDurationMinutes <= 0 {
		return []domain.TimeWindow{}, nil
	}

	// Шаг 1: Строим сетку начала слотов внутри одного дня
	starts := dailyGrid(shop)

	// Шаг 2: Переносим сетку на каждый день горизонта
	y, m, d := startDate.In(loc).Date()
	firstDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	slotDuration := shop.TimeslotDuration()

	windows := make([]domain.TimeWindow, 0, len(starts)*horizonDays)
	for i := 0; i < horizonDays; i++ {
		day := firstDay.AddDate(0, 0, i)
		for _, start := range starts {
			startAt, err := start.OnDate(day)
			if err != nil {
				return nil, fmt.Errorf("generate windows for shop id=%d: %w", shop.ID, err)
			}
			windows = append(windows, domain.TimeWindow{
				Start: startAt,
				End:   startAt.Add(slotDuration),
			})
		}
	}

	return windows, nil
}

// GridStarts возвращает начала окон, для сверки существующих слотов с новой сеткой
func GridStarts(windows []domain.TimeWindow) []time.Time {
	starts := make([]time.Time, 0, len(windows))
	for _, w := range windows {
		starts = append(starts, w.Start)
	}
	return starts
}

func dailyGrid(shop *domain.Shop) []types.TimeString {
	grid := make([]types.TimeString, 0)
	current := shop.OpeningTime

	for current.IsBefore(shop.ClosingTime) {
		// Слот не должен выходить за время закрытия
		slotEnd, err := current.AddMinutes(shop.TimeslotDurationMinutes)
		if err != nil {
			// Переход через полночь, значит окно не помещается в день
			break
		}
		if slotEnd.IsAfter(shop.ClosingTime) {
			break
		}

		grid = append(grid, current)
		current = slotEnd
	}

	return grid
}
