package sa

import "fmt"

// Fault описывает арифметическую ошибку, прервавшую поиск.
// Результат при этом остаётся пригодным: в нём лучший найденный порядок.
type Fault struct {
	Step       int
	TotalSteps int
	Err        error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("search aborted at step %d/%d: %v", f.Step, f.TotalSteps, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

type Result struct {
	Order       []int
	Cost        int
	InitialCost int
	// Evaluations - число вызовов целевой функции, включая начальный.
	Evaluations int
	Steps       int
	Rounds      int
	// Fault != nil, если поиск остановлен досрочно.
	Fault *Fault
}

// Completed сообщает, что поиск прошёл все шаги.
func (r Result) Completed() bool { return r.Fault == nil }
