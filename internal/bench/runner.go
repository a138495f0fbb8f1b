package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"annealShop/internal/cooling"
	"annealShop/internal/flowshop"
	"annealShop/internal/sa"
	"go.uber.org/zap"
)

// Variant - целевая функция и стратегия охлаждения.
type Variant struct {
	Objective sa.Objective
	Cooling   cooling.Strategy
}

func (v Variant) Name() string {
	return fmt.Sprintf("%s/%d", v.Objective.Name, int(v.Cooling))
}

type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
}

type Record struct {
	Objective string
	Cooling   string
	Jobs      int
	Machines  int
	Runs      int
	Aborted   int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	InitialMean float64
	CostBest    int
	CostMean    float64
	CostStd     float64
}

type Runner struct {
	Runs     int
	BaseSeed int64
	// Search - шаблон конфигурации; Cooling берётся из Variant.
	Search        sa.Config
	PerRunTimeout time.Duration // 0 = no timeout
	Log           *zap.Logger
}

// problem - экземпляр, начальный порядок и сроки, общие для всех запусков случая.
type problem struct {
	inst      *flowshop.Instance
	initial   []int
	deadlines flowshop.Deadlines
}

func newProblem(c Case) (problem, error) {
	rng := rand.New(rand.NewSource(c.InstanceSeed))
	inst, err := flowshop.RandomInstance(c.Jobs, c.Machines, 1, 8, rng)
	if err != nil {
		return problem{}, err
	}
	initial, err := flowshop.RandomPermutation(c.Jobs, rng)
	if err != nil {
		return problem{}, err
	}
	span, err := flowshop.ScheduleSpan(inst, initial)
	if err != nil {
		return problem{}, err
	}
	deadlines, err := flowshop.GenerateDeadlines(c.Jobs, span, rng)
	if err != nil {
		return problem{}, err
	}
	return problem{inst: inst, initial: initial, deadlines: deadlines}, nil
}

func (r Runner) RunCase(ctx context.Context, c Case, v Variant) (Record, error) {
	pr, err := newProblem(c)
	if err != nil {
		return Record{}, fmt.Errorf("case %dx%d: %w", c.Jobs, c.Machines, err)
	}
	cfg := r.Search
	cfg.Cooling = v.Cooling

	costs := make([]float64, 0, r.Runs)
	initials := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	aborted := 0

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		solver, err := sa.New(cfg, rand.New(rand.NewSource(runSeed)), r.Log)
		if err != nil {
			return Record{}, err
		}
		eval, err := flowshop.NewEvaluator(pr.inst, pr.deadlines)
		if err != nil {
			return Record{}, err
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := solver.Search(runCtx, eval, v.Objective, pr.initial)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: search error: %w", i, err)
		}
		if !res.Completed() {
			aborted++
		}

		costs = append(costs, float64(res.Cost))
		initials = append(initials, float64(res.InitialCost))
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	cStats := CalcStats(costs)
	tStats := CalcStats(timesMs)

	return Record{
		Objective: v.Objective.Name,
		Cooling:   v.Cooling.String(),
		Jobs:      c.Jobs,
		Machines:  c.Machines,
		Runs:      r.Runs,
		Aborted:   aborted,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		InitialMean: CalcStats(initials).Mean,
		CostBest:    int(cStats.Best),
		CostMean:    cStats.Mean,
		CostStd:     cStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"objective", "cooling", "jobs", "machines", "runs", "aborted",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"initial_mean", "cost_best", "cost_mean", "cost_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{r.Objective, r.Cooling}
		for _, v := range []int{r.Jobs, r.Machines, r.Runs, r.Aborted} {
			row = append(row, strconv.Itoa(v))
		}
		for _, v := range []float64{r.TimeBestMs, r.TimeMeanMs, r.TimeStdMs, r.InitialMean} {
			row = append(row, formatFloat(v))
		}
		row = append(row, strconv.Itoa(r.CostBest), formatFloat(r.CostMean), formatFloat(r.CostStd))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
