package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
)

// Deadlines - директивные сроки; Deadlines[j-1] относится к работе j.
// Срок привязан к номеру работы, а не к её позиции в порядке: при
// перестановке работ каждая сохраняет свой срок.
type Deadlines []int

func ValidateDeadlines(d Deadlines, jobs int) error {
	if len(d) != jobs {
		return fmt.Errorf("deadlines length must be %d (got %d)", jobs, len(d))
	}
	return nil
}

// GenerateDeadlines выбирает сроки из окна [span/5, 2*span/5), где span -
// длина расписания для неоптимизированного порядка (см. ScheduleSpan).
func GenerateDeadlines(jobs, span int, rng *rand.Rand) (Deadlines, error) {
	if rng == nil {
		return nil, errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	if jobs <= 0 {
		return nil, fmt.Errorf("jobs must be > 0 (got %d)", jobs)
	}
	if span <= 0 {
		return nil, fmt.Errorf("span must be > 0 (got %d)", span)
	}
	window := max(span/5, 1)
	d := make(Deadlines, jobs)
	for i := range d {
		d[i] = rng.Intn(window) + window
	}
	return d, nil
}
