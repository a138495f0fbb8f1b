package sa

import (
	"fmt"
	"math"

	"annealShop/internal/cooling"
)

// Alpha - коэффициент охлаждения, общий для всех стратегий
// (рекомендуемый диапазон 0.8 - 0.9).
const Alpha = 0.8

type Config struct {
	// Iterations - число внешних раундов; 0 - только оценка начального порядка.
	Iterations int
	// NeighborsPerIteration - число соседей, просматриваемых за раунд.
	NeighborsPerIteration int

	InitialTemp float64
	Cooling     cooling.Strategy
}

func DefaultConfig() Config {
	return Config{
		Iterations:            100,
		NeighborsPerIteration: 100,

		InitialTemp: 100.0,
		Cooling:     cooling.LinearMultiplicative,
	}
}

// TotalSteps - число шагов (оценок соседей) за полный прогон.
func (c Config) TotalSteps() int {
	return c.Iterations * c.NeighborsPerIteration
}

func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf(
			"Iterations должно быть >= 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.NeighborsPerIteration <= 0 {
		return fmt.Errorf(
			"NeighborsPerIteration должно быть > 0 (получено %d)",
			c.NeighborsPerIteration,
		)
	}
	if c.InitialTemp <= 0 || math.IsInf(c.InitialTemp, 0) || math.IsNaN(c.InitialTemp) {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if err := c.Cooling.Validate(); err != nil {
		return err
	}
	return nil
}
