package flowshop

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow сигнализирует о переполнении int при моделировании расписания.
var ErrOverflow = errors.New("integer overflow in schedule simulation")

// Score - скалярные значения целевых функций для одного порядка работ.
type Score struct {
	Makespan       int
	TotalTardiness int
}

// Schedule - полное расписание для порядка Order.
// Матрицы Start и End имеют размер Machines × Jobs и индексируются
// позицией работы в Order, а не её номером.
type Schedule struct {
	Score
	Order []int
	Start [][]int
	End   [][]int
	// Lateness[p] = C - d для работы на позиции p, Tardiness[p] = max(0, Lateness[p]).
	Lateness  []int
	Tardiness []int
}

// Completion возвращает времена окончания на последнем станке.
func (s Schedule) Completion() []int {
	if len(s.End) == 0 {
		return nil
	}
	return s.End[len(s.End)-1]
}

// Evaluator моделирует прохождение работ через станки.
// Хранит буферы между вызовами, поэтому не безопасен для конкурентного
// использования: каждому поиску нужен свой Evaluator.
type Evaluator struct {
	inst      *Instance
	deadlines Deadlines
	cost      []int
	seen      []bool
}

func NewEvaluator(inst *Instance, deadlines Deadlines) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateDeadlines(deadlines, inst.Jobs); err != nil {
		return nil, err
	}
	return &Evaluator{
		inst:      inst,
		deadlines: deadlines,
		cost:      make([]int, inst.Jobs),
		seen:      make([]bool, inst.Jobs+1),
	}, nil
}

func (e *Evaluator) Instance() *Instance { return e.inst }

func (e *Evaluator) Deadlines() Deadlines { return e.deadlines }

func (e *Evaluator) checkOrder(order []int) error {
	if e == nil || e.inst == nil {
		return errors.New("nil evaluator")
	}
	n := e.inst.Jobs
	if len(order) != n {
		return fmt.Errorf("permutation length must be %d (got %d)", n, len(order))
	}
	for i := range e.seen {
		e.seen[i] = false
	}
	for i, v := range order {
		if v < 1 || v > n {
			return fmt.Errorf("perm[%d]=%d out of range [1,%d]", i, v, n)
		}
		if e.seen[v] {
			return fmt.Errorf("duplicate job id %d in permutation", v)
		}
		e.seen[v] = true
	}
	return nil
}

// Score считает только makespan и суммарное запаздывание, без выделения памяти.
// Используется во внутреннем цикле поиска.
func (e *Evaluator) Score(order []int) (Score, error) {
	if err := e.checkOrder(order); err != nil {
		return Score{}, err
	}
	if err := e.simulate(order, nil, nil); err != nil {
		return Score{}, err
	}
	return e.score(order, nil, nil)
}

// Evaluate строит полное расписание.
func (e *Evaluator) Evaluate(order []int) (Schedule, error) {
	if err := e.checkOrder(order); err != nil {
		return Schedule{}, err
	}
	n, m := e.inst.Jobs, e.inst.Machines
	s := Schedule{
		Order:     append([]int(nil), order...),
		Start:     newMatrix(m, n),
		End:       newMatrix(m, n),
		Lateness:  make([]int, n),
		Tardiness: make([]int, n),
	}
	if err := e.simulate(order, s.Start, s.End); err != nil {
		return Schedule{}, err
	}
	score, err := e.score(order, s.Lateness, s.Tardiness)
	if err != nil {
		return Schedule{}, err
	}
	s.Score = score
	return s, nil
}

// simulate: станки по порядку, на каждом станке работы в порядке order.
// Начало работы = max(её окончание на предыдущем станке, окончание
// предыдущей работы на этом станке).
func (e *Evaluator) simulate(order []int, start, end [][]int) error {
	cost := e.cost
	for j := range cost {
		cost[j] = 0
	}
	for i := 0; i < e.inst.Machines; i++ {
		for j, job := range order {
			begin := cost[j]
			if j > 0 && cost[j-1] > begin {
				begin = cost[j-1]
			}
			d := e.inst.Time(job, i)
			if begin > math.MaxInt-d {
				return fmt.Errorf("job %d on machine %d: %w", job, i+1, ErrOverflow)
			}
			cost[j] = begin + d
			if start != nil {
				start[i][j] = begin
				end[i][j] = cost[j]
			}
		}
	}
	return nil
}

func (e *Evaluator) score(order []int, lateness, tardiness []int) (Score, error) {
	total := 0
	for j, job := range order {
		l := e.cost[j] - e.deadlines[job-1]
		t := max(l, 0)
		if total > math.MaxInt-t {
			return Score{}, fmt.Errorf("total tardiness: %w", ErrOverflow)
		}
		total += t
		if lateness != nil {
			lateness[j] = l
			tardiness[j] = t
		}
	}
	return Score{Makespan: e.cost[len(e.cost)-1], TotalTardiness: total}, nil
}

// Evaluate - разовая оценка порядка order без переиспользования буферов.
func Evaluate(inst *Instance, order []int, deadlines Deadlines) (Schedule, error) {
	e, err := NewEvaluator(inst, deadlines)
	if err != nil {
		return Schedule{}, err
	}
	return e.Evaluate(order)
}

// ScheduleSpan считает только makespan; сроки не нужны.
// Используется для определения окна директивных сроков.
func ScheduleSpan(inst *Instance, order []int) (int, error) {
	if err := inst.Validate(); err != nil {
		return 0, err
	}
	if err := ValidatePermutation(order, inst.Jobs); err != nil {
		return 0, err
	}

	machineCompletion := make([]int, inst.Machines)
	for _, job := range order {
		for m := 0; m < inst.Machines; m++ {
			ready := machineCompletion[m]
			if m > 0 && machineCompletion[m-1] > ready {
				ready = machineCompletion[m-1]
			}
			d := inst.Time(job, m)
			if ready > math.MaxInt-d {
				return 0, fmt.Errorf("job %d on machine %d: %w", job, m+1, ErrOverflow)
			}
			machineCompletion[m] = ready + d
		}
	}
	return machineCompletion[inst.Machines-1], nil
}

func newMatrix(rows, cols int) [][]int {
	buf := make([]int, rows*cols)
	out := make([][]int, rows)
	for i := range out {
		out[i] = buf[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out
}
