package sa

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"annealShop/internal/cooling"
	"annealShop/internal/flowshop"
	"go.uber.org/zap"
)

// ErrNonFiniteTemperature - стратегия охлаждения вернула NaN.
var ErrNonFiniteTemperature = errors.New("non-finite temperature")

// Scorer - целевая функция; *flowshop.Evaluator реализует этот интерфейс.
// В тестах подменяется заглушкой.
type Scorer interface {
	Score(order []int) (flowshop.Score, error)
}

// Objective выбирает из оценки расписания скаляр, который минимизируется.
type Objective struct {
	Name string
	Cost func(flowshop.Score) int
}

var (
	Makespan = Objective{
		Name: "cmax",
		Cost: func(s flowshop.Score) int { return s.Makespan },
	}
	TotalTardiness = Objective{
		Name: "tsum",
		Cost: func(s flowshop.Score) int { return s.TotalTardiness },
	}
)

// ParseObjective принимает "cmax" или "tsum".
func ParseObjective(name string) (Objective, error) {
	switch name {
	case Makespan.Name:
		return Makespan, nil
	case TotalTardiness.Name:
		return TotalTardiness, nil
	default:
		return Objective{}, fmt.Errorf("неизвестная целевая функция %q (cmax | tsum)", name)
	}
}

// Solver - имитация отжига с окрестностью обмена двух позиций.
// Один Solver (и его генератор) используется одним поиском за раз.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
	Log *zap.Logger
}

// New возвращает новый SA-солвер с валидацией конфигурации.
// logger == nil отключает журналирование.
func New(cfg Config, rng *rand.Rand, logger *zap.Logger) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{Cfg: cfg, Rng: rng, Log: logger}, nil
}

// OptimizeMakespan ищет порядок с минимальным Cmax.
func (s *Solver) OptimizeMakespan(ctx context.Context, inst *flowshop.Instance, deadlines flowshop.Deadlines, initial []int) (Result, error) {
	return s.optimize(ctx, inst, deadlines, initial, Makespan)
}

// OptimizeTotalTardiness ищет порядок с минимальным суммарным запаздыванием.
func (s *Solver) OptimizeTotalTardiness(ctx context.Context, inst *flowshop.Instance, deadlines flowshop.Deadlines, initial []int) (Result, error) {
	return s.optimize(ctx, inst, deadlines, initial, TotalTardiness)
}

func (s *Solver) optimize(ctx context.Context, inst *flowshop.Instance, deadlines flowshop.Deadlines, initial []int, obj Objective) (Result, error) {
	eval, err := flowshop.NewEvaluator(inst, deadlines)
	if err != nil {
		return Result{}, err
	}
	if err := flowshop.ValidatePermutation(initial, inst.Jobs); err != nil {
		return Result{}, fmt.Errorf("initial order: %w", err)
	}
	return s.Search(ctx, eval, obj, initial)
}

// Search - общий цикл отжига для любой целевой функции.
//
// На каждом раунде из базового решения строится NeighborsPerIteration соседей.
// Лучший сосед раунда (с учётом принятых ухудшений) становится новой базой,
// глобально лучшее решение только улучшается.
//
// Ошибка возвращается только для некорректных входных данных или отмены ctx.
// Арифметический сбой (переполнение, деление на ноль в немонотонной стратегии)
// останавливает поиск и фиксируется в Result.Fault.
func (s *Solver) Search(ctx context.Context, scorer Scorer, obj Objective, initial []int) (Result, error) {
	if err := s.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	if s.Rng == nil {
		return Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if scorer == nil || obj.Cost == nil {
		return Result{}, errors.New("scorer and objective cost must be set")
	}
	if len(initial) == 0 {
		return Result{}, errors.New("initial order is empty")
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("objective", obj.Name), zap.Stringer("cooling", s.Cfg.Cooling))

	n := len(initial)
	total := s.Cfg.TotalSteps()
	t0 := s.Cfg.InitialTemp

	best := make([]int, n)
	copy(best, initial)

	res := Result{Order: best}

	score, err := scorer.Score(best)
	res.Evaluations = 1
	if err != nil {
		if isArithmetic(err) {
			return s.abort(log, res, 0, total, err), nil
		}
		return Result{}, err
	}
	fBest := obj.Cost(score)
	res.Cost, res.InitialCost = fBest, fBest

	// Буферы переиспользуются: во внутреннем цикле нет выделений памяти.
	base := make([]int, n)
	copy(base, best)
	fBase := fBest
	bestNeighbor := make([]int, n)
	neighbor := make([]int, n)

	t := 0
	for i := 0; i < s.Cfg.Iterations; i++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res.Steps, res.Rounds = t, i
			return res, err
		}

		copy(bestNeighbor, base)
		fBestNeighbor := fBase

		for j := 0; j < s.Cfg.NeighborsPerIteration; j++ {
			t++
			copy(neighbor, base)
			// Позиции выбираются независимо, a == b допустимо.
			a := s.Rng.Intn(n)
			b := s.Rng.Intn(n)
			neighbor[a], neighbor[b] = neighbor[b], neighbor[a]

			sc, err := scorer.Score(neighbor)
			res.Evaluations++
			if err != nil {
				if isArithmetic(err) {
					res.Rounds = i
					keepBetter(&res, bestNeighbor, fBestNeighbor)
					return s.abort(log, res, t, total, err), nil
				}
				return Result{}, err
			}
			fNeighbor := obj.Cost(sc)

			if fNeighbor < fBestNeighbor {
				fBestNeighbor = fNeighbor
				copy(bestNeighbor, neighbor)
				continue
			}

			// Критерий Метрополиса для неулучшающего соседа
			temp, err := cooling.Temperature(s.Cfg.Cooling, fBestNeighbor, fNeighbor, t0, Alpha, t)
			if err == nil && math.IsNaN(temp) {
				err = ErrNonFiniteTemperature
			}
			if err != nil {
				res.Rounds = i
				keepBetter(&res, bestNeighbor, fBestNeighbor)
				return s.abort(log, res, t, total, err), nil
			}
			prob := cooling.AcceptanceProbability(fBestNeighbor, fNeighbor, temp)
			if float64(s.Rng.Intn(99)) < prob*100 {
				fBestNeighbor = fNeighbor
				copy(bestNeighbor, neighbor)
			}
		}

		copy(base, bestNeighbor)
		fBase = fBestNeighbor
		if fBase < res.Cost {
			res.Cost = fBase
			copy(best, base)
		}

		if ce := log.Check(zap.DebugLevel, "round finished"); ce != nil {
			ce.Write(
				zap.Int("round", i+1),
				zap.Int("step", t),
				zap.Int("base_cost", fBase),
				zap.Int("best_cost", res.Cost),
			)
		}
	}

	res.Steps, res.Rounds = t, s.Cfg.Iterations
	return res, nil
}

func (s *Solver) abort(log *zap.Logger, res Result, step, total int, err error) Result {
	res.Steps = step
	res.Fault = &Fault{Step: step, TotalSteps: total, Err: err}
	log.Warn("search aborted",
		zap.Int("step", step),
		zap.Int("total_steps", total),
		zap.Int("best_cost", res.Cost),
		zap.Error(err),
	)
	return res
}

// keepBetter переносит лучшего соседа незавершённого раунда в результат,
// если он строго лучше.
func keepBetter(res *Result, order []int, cost int) {
	if cost < res.Cost {
		res.Cost = cost
		copy(res.Order, order)
	}
}

func isArithmetic(err error) bool {
	return errors.Is(err, flowshop.ErrOverflow) ||
		errors.Is(err, cooling.ErrZeroCost) ||
		errors.Is(err, ErrNonFiniteTemperature)
}
