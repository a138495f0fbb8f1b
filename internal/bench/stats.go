package bench

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Stats struct {
	N    int
	Best float64
	Mean float64
	// Std - несмещённое стандартное отклонение (0 при N < 2).
	Std float64
}

func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}
	s.Best = floats.Min(values)
	if s.N < 2 {
		s.Mean = values[0]
		return s
	}
	mean, std := stat.MeanStdDev(values, nil)
	s.Mean = mean
	if !math.IsNaN(std) {
		s.Std = std
	}
	return s
}
