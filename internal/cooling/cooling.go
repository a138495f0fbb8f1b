// Package cooling содержит стратегии охлаждения для имитации отжига
// и правило вероятности принятия ухудшающего решения.
//
// Все стратегии зависят от начальной температуры t0, коэффициента alpha
// (по соглашению из интервала (0.8, 0.9), здесь не проверяется) и номера
// шага step. На шаге 0 каждая стратегия возвращает t0.
package cooling

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownStrategy = errors.New("unknown cooling strategy")
	// ErrZeroCost - немонотонная стратегия делит на текущую стоимость.
	ErrZeroCost = errors.New("non-monotonic cooling: current cost is zero")
)

// Strategy - идентификатор стратегии охлаждения (1..5).
type Strategy int

const (
	LinearMultiplicative Strategy = iota + 1
	QuadraticMultiplicative
	ExponentialMultiplicative
	LogarithmicMultiplicative
	NonMonotonic
)

var names = map[Strategy]string{
	LinearMultiplicative:      "Linear Multiplicative Type 1",
	QuadraticMultiplicative:   "Linear Multiplicative Type 2",
	ExponentialMultiplicative: "Exponential Multiplicative",
	LogarithmicMultiplicative: "Logarithmical Multiplicative",
	NonMonotonic:              "Non-monotonic",
}

var aliases = map[string]Strategy{
	"linear":        LinearMultiplicative,
	"quadratic":     QuadraticMultiplicative,
	"exponential":   ExponentialMultiplicative,
	"logarithmic":   LogarithmicMultiplicative,
	"nonmonotonic":  NonMonotonic,
	"non-monotonic": NonMonotonic,
}

// All возвращает стратегии в порядке идентификаторов.
func All() []Strategy {
	return []Strategy{
		LinearMultiplicative,
		QuadraticMultiplicative,
		ExponentialMultiplicative,
		LogarithmicMultiplicative,
		NonMonotonic,
	}
}

func (s Strategy) Validate() error {
	if _, ok := names[s]; !ok {
		return fmt.Errorf("%w: %d (valid ids are 1..5)", ErrUnknownStrategy, int(s))
	}
	return nil
}

// String возвращает название стратегии для отчётов.
func (s Strategy) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return "Strategy(" + strconv.Itoa(int(s)) + ")"
}

// Parse принимает номер ("1".."5") или короткое имя ("linear", "exponential", ...).
func Parse(v string) (Strategy, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if s, ok := aliases[v]; ok {
		return s, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, v)
	}
	s := Strategy(id)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// UnmarshalText позволяет задавать стратегию в YAML и флагах.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Strategy) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(strconv.Itoa(int(s))), nil
}

// Linear: t0 / (1 + alpha*step).
func Linear(t0, alpha float64, step int) float64 {
	return t0 / (1 + alpha*float64(step))
}

// Quadratic: t0 / (1 + alpha*step^2).
func Quadratic(t0, alpha float64, step int) float64 {
	k := float64(step)
	return t0 / (1 + alpha*k*k)
}

// Exponential: t0 * alpha^step.
func Exponential(t0, alpha float64, step int) float64 {
	return t0 * math.Pow(alpha, float64(step))
}

// Logarithmic: t0 / (1 + alpha*ln(1) + step). Слагаемое с логарифмом равно
// нулю, поэтому результат совпадает с t0 / (1 + step); формула сохранена как есть.
func Logarithmic(t0, alpha float64, step int) float64 {
	return t0 / (1 + alpha*math.Log(1) + float64(step))
}

// NonMonotonicTemp масштабирует линейную температуру множителем
// 1 + (current - best) / current.
func NonMonotonicTemp(bestCost, currentCost int, t0, alpha float64, step int) (float64, error) {
	if currentCost == 0 {
		return 0, ErrZeroCost
	}
	swing := float64(currentCost-bestCost) / float64(currentCost)
	return (1 + swing) * Linear(t0, alpha, step), nil
}

// Temperature выбирает стратегию по идентификатору.
func Temperature(s Strategy, bestCost, currentCost int, t0, alpha float64, step int) (float64, error) {
	switch s {
	case LinearMultiplicative:
		return Linear(t0, alpha, step), nil
	case QuadraticMultiplicative:
		return Quadratic(t0, alpha, step), nil
	case ExponentialMultiplicative:
		return Exponential(t0, alpha, step), nil
	case LogarithmicMultiplicative:
		return Logarithmic(t0, alpha, step), nil
	case NonMonotonic:
		return NonMonotonicTemp(bestCost, currentCost, t0, alpha, step)
	default:
		return 0, s.Validate()
	}
}

// AcceptanceProbability считает exp(-(best-candidate)/temp).
// Вызывается для неулучшающего соседа (candidate >= best), поэтому значение
// не меньше 1 и сравнивается с порогом rand*100 как есть. При temp == 0
// действует арифметика IEEE: для худшего соседа +Inf, для равного NaN
// (такой сосед не принимается).
func AcceptanceProbability(bestCost, candidateCost int, temp float64) float64 {
	expon := (float64(bestCost) - float64(candidateCost)) / temp
	return math.Exp(-expon)
}
