package availability

import (
	"time"

	"github.com/coloradodev/cronos-booking/internal/domain"
)

// candidateSlots генерирует слоты-кандидаты внутри окна открытия.
// Слоты идут подряд от открытия с шагом в длительность услуги;
// последний слот обязан закончиться не позже закрытия. Прошедшие
// слоты не отфильтровываются: движок перечисляет весь рабочий день
func candidateSlots(window domain.DayWindow, durationMinutes int) []domain.TimeSlot {
	if durationMinutes <= 0 {
		return nil
	}

	step := time.Duration(durationMinutes) * time.Minute
	slots := make([]domain.TimeSlot, 0)

	for start := window.Open; !start.Add(step).After(window.Close); start = start.Add(step) {
		slots = append(slots, domain.TimeSlot{
			StartTime: start,
			EndTime:   start.Add(step),
		})
	}

	return slots
}
