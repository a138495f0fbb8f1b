package cooling_test

import (
	"math"
	"testing"

	"annealShop/internal/cooling"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTemperatureValues(t *testing.T) {
	chk := require.New(t)

	temp, err := cooling.Temperature(cooling.LinearMultiplicative, 0, 1, 100, 0.8, 5)
	chk.NoError(err)
	chk.InDelta(20.0, temp, 1e-9)

	temp, err = cooling.Temperature(cooling.QuadraticMultiplicative, 0, 1, 100, 0.8, 5)
	chk.NoError(err)
	chk.InDelta(100.0/21.0, temp, 1e-9)

	temp, err = cooling.Temperature(cooling.ExponentialMultiplicative, 0, 1, 100, 0.9, 2)
	chk.NoError(err)
	chk.InDelta(81.0, temp, 1e-9)

	temp, err = cooling.Temperature(cooling.LogarithmicMultiplicative, 0, 1, 100, 0.8, 4)
	chk.NoError(err)
	chk.InDelta(20.0, temp, 1e-9)

	// 1 + (12-8)/12 = 4/3; линейная часть 20.
	temp, err = cooling.Temperature(cooling.NonMonotonic, 8, 12, 100, 0.8, 5)
	chk.NoError(err)
	chk.InDelta(80.0/3.0, temp, 1e-9)
}

func TestTemperatureAtStepZero(t *testing.T) {
	for _, s := range cooling.All() {
		temp, err := cooling.Temperature(s, 7, 7, 100, 0.9, 0)
		require.NoError(t, err, s.String())
		require.InDelta(t, 100.0, temp, 1e-12, s.String())
	}
}

func TestLogarithmicIgnoresAlpha(t *testing.T) {
	for step := 0; step < 50; step++ {
		require.Equal(t, cooling.Logarithmic(250, 0.8, step), cooling.Logarithmic(250, 0.85, step))
		require.InDelta(t, 250/float64(1+step), cooling.Logarithmic(250, 0.8, step), 1e-9)
	}
}

func TestMonotonicStrategiesDecrease(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := cooling.Strategy(rapid.IntRange(1, 4).Draw(t, "strategy"))
		t0 := rapid.Float64Range(1, 10000).Draw(t, "t0")
		alpha := rapid.Float64Range(0.8, 0.9).Draw(t, "alpha")
		step := rapid.IntRange(0, 500).Draw(t, "step")

		a, err := cooling.Temperature(s, 0, 1, t0, alpha, step)
		require.NoError(t, err)
		b, err := cooling.Temperature(s, 0, 1, t0, alpha, step+1)
		require.NoError(t, err)
		require.Less(t, b, a)
	})
}

func TestNonMonotonicBoundedByLinear(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		best := rapid.IntRange(0, 1000).Draw(t, "best")
		current := rapid.IntRange(max(best, 1), 2000).Draw(t, "current")
		step := rapid.IntRange(0, 500).Draw(t, "step")

		lin := cooling.Linear(100, 0.8, step)
		temp, err := cooling.Temperature(cooling.NonMonotonic, best, current, 100, 0.8, step)
		require.NoError(t, err)
		require.GreaterOrEqual(t, temp, lin-1e-9)
		require.LessOrEqual(t, temp, 2*lin+1e-9)
	})
}

func TestNonMonotonicZeroCost(t *testing.T) {
	_, err := cooling.Temperature(cooling.NonMonotonic, 0, 0, 100, 0.8, 3)
	require.ErrorIs(t, err, cooling.ErrZeroCost)
}

func TestUnknownStrategy(t *testing.T) {
	chk := require.New(t)

	for _, s := range []cooling.Strategy{0, 6, -1} {
		_, err := cooling.Temperature(s, 1, 1, 100, 0.8, 1)
		chk.ErrorIs(err, cooling.ErrUnknownStrategy)
		chk.ErrorIs(s.Validate(), cooling.ErrUnknownStrategy)
	}
	chk.Equal("Strategy(9)", cooling.Strategy(9).String())
}

func TestParse(t *testing.T) {
	chk := require.New(t)

	for i, s := range cooling.All() {
		got, err := cooling.Parse(string(rune('1' + i)))
		chk.NoError(err)
		chk.Equal(s, got)
	}
	got, err := cooling.Parse(" Exponential ")
	chk.NoError(err)
	chk.Equal(cooling.ExponentialMultiplicative, got)

	_, err = cooling.Parse("7")
	chk.ErrorIs(err, cooling.ErrUnknownStrategy)
	_, err = cooling.Parse("fast")
	chk.ErrorIs(err, cooling.ErrUnknownStrategy)

	var s cooling.Strategy
	chk.NoError(s.UnmarshalText([]byte("non-monotonic")))
	chk.Equal(cooling.NonMonotonic, s)
	text, err := s.MarshalText()
	chk.NoError(err)
	chk.Equal("5", string(text))
}

func TestNames(t *testing.T) {
	chk := require.New(t)
	chk.Equal("Linear Multiplicative Type 1", cooling.LinearMultiplicative.String())
	chk.Equal("Linear Multiplicative Type 2", cooling.QuadraticMultiplicative.String())
	chk.Equal("Exponential Multiplicative", cooling.ExponentialMultiplicative.String())
	chk.Equal("Logarithmical Multiplicative", cooling.LogarithmicMultiplicative.String())
	chk.Equal("Non-monotonic", cooling.NonMonotonic.String())
}

func TestAcceptanceProbability(t *testing.T) {
	chk := require.New(t)

	chk.Equal(1.0, cooling.AcceptanceProbability(10, 10, 5))
	chk.InDelta(math.Exp(2.0/5.0), cooling.AcceptanceProbability(10, 12, 5), 1e-12)
	chk.InDelta(90.0, cooling.AcceptanceProbability(10, 100, 20), 1e-9)
	chk.InDelta(math.Exp(-2.0/5.0), cooling.AcceptanceProbability(10, 8, 5), 1e-12)

	// Нулевая температура: худший сосед даёт +Inf, равный - NaN.
	chk.True(math.IsInf(cooling.AcceptanceProbability(10, 11, 0), 1))
	chk.True(math.IsNaN(cooling.AcceptanceProbability(10, 10, 0)))

	rapid.Check(t, func(t *rapid.T) {
		best := rapid.IntRange(0, 1000).Draw(t, "best")
		worse := rapid.IntRange(best, best+1000).Draw(t, "worse")
		temp := rapid.Float64Range(1e-3, 1e6).Draw(t, "temp")
		p := cooling.AcceptanceProbability(best, worse, temp)
		require.GreaterOrEqual(t, p, 1.0)
		// неулучшающий сосед всегда проходит порог rand(0..98) < p*100
		require.Less(t, 98.0, p*100)
	})
}
