package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"annealShop/internal/config"
	"annealShop/internal/flowshop"
	"annealShop/internal/report"
	"annealShop/internal/sa"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const separator = "\n>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>\n"

func main() {
	def := config.Default()
	strategy := def.CoolingStrategy

	var (
		cfgPath    = flag.String("config", "", "YAML-файл с параметрами запуска")
		jobs       = flag.Int("jobs", def.Jobs, "количество работ")
		machines   = flag.Int("machines", def.Machines, "количество станков")
		iterations = flag.Int("iterations", def.Iterations, "количество итераций (раундов)")
		neighbors  = flag.Int("neighbors", def.Neighbors, "количество соседей на итерацию")
		t0         = flag.Float64("t0", def.InitialTemperature, "начальная температура")
		seed       = flag.Int64("seed", 0, "сид генератора; 0 - текущее время")
		gantt      = flag.String("gantt", "", "путь к PNG с диаграммами Ганта (суффиксы _cmax, _tsum)")
		logLevel   = flag.String("log", "warn", "уровень журнала: debug | info | warn | error")
	)
	flag.TextVar(&strategy, "cooling", def.CoolingStrategy, "стратегия охлаждения: 1..5 или linear | quadratic | exponential | logarithmic | nonmonotonic")
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка журнала:", err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck

	cfg := def
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт:", err)
			os.Exit(2)
		}
	}
	// Явно заданные флаги имеют приоритет над файлом.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "jobs":
			cfg.Jobs = *jobs
		case "machines":
			cfg.Machines = *machines
		case "iterations":
			cfg.Iterations = *iterations
		case "neighbors":
			cfg.Neighbors = *neighbors
		case "t0":
			cfg.InitialTemperature = *t0
		case "cooling":
			cfg.CoolingStrategy = strategy
		case "seed":
			cfg.Seed = *seed
		case "gantt":
			cfg.GanttPNG = *gantt
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
		os.Exit(2)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := run(context.Background(), os.Stdout, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, cfg config.Config, logger *zap.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	logger.Info("starting",
		zap.Int64("seed", cfg.Seed),
		zap.Int("jobs", cfg.Jobs),
		zap.Int("machines", cfg.Machines),
		zap.Stringer("cooling", cfg.CoolingStrategy),
	)

	inst, err := flowshop.RandomInstance(cfg.Jobs, cfg.Machines, cfg.MinTime, cfg.MaxTime, rng)
	if err != nil {
		return err
	}
	initial, err := flowshop.RandomPermutation(cfg.Jobs, rng)
	if err != nil {
		return err
	}
	span, err := flowshop.ScheduleSpan(inst, initial)
	if err != nil {
		return err
	}
	deadlines, err := flowshop.GenerateDeadlines(cfg.Jobs, span, rng)
	if err != nil {
		return err
	}

	start := time.Now()
	runs := []struct {
		title string
		tag   string
		obj   sa.Objective
	}{
		{"CMAX", "cmax", sa.Makespan},
		{"ΣTi", "tsum", sa.TotalTardiness},
	}
	schedules := make([]flowshop.Schedule, len(runs))
	for i, r := range runs {
		// Каждому поиску - свой генератор, оба стартуют из одного порядка.
		solver, err := sa.New(cfg.Search(), rand.New(rand.NewSource(rng.Int63())), logger)
		if err != nil {
			return err
		}
		eval, err := flowshop.NewEvaluator(inst, deadlines)
		if err != nil {
			return err
		}
		res, err := solver.Search(ctx, eval, r.obj, initial)
		if err != nil {
			return fmt.Errorf("%s: %w", r.tag, err)
		}
		if res.Fault != nil {
			writeFault(out, r.title, res.Fault)
		}
		schedules[i], err = eval.Evaluate(res.Order)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	for i, r := range runs {
		fmt.Fprint(out, separator)
		fmt.Fprintf(out, "%s FLOW-SHOP GANTT CHART:\n\n", r.title)
		if err := report.Gantt(out, schedules[i]); err != nil {
			return err
		}
	}
	for i, r := range runs {
		fmt.Fprint(out, separator)
		fmt.Fprintf(out, "%s DEADLINE TABLE:\n", r.title)
		if err := report.DeadlineTable(out, schedules[i], deadlines); err != nil {
			return err
		}
	}
	for i, r := range runs {
		fmt.Fprint(out, separator)
		if err := report.Summary(out, r.title+" data:", initial, schedules[i]); err != nil {
			return err
		}
	}
	fmt.Fprint(out, separator)
	fmt.Fprintf(out, "Cooling strategy: %s\nRuntime: %.3f seconds\n", cfg.CoolingStrategy, elapsed.Seconds())

	if cfg.GanttPNG != "" {
		for i, r := range runs {
			path := suffixed(cfg.GanttPNG, r.tag)
			if err := report.WriteGanttPNG(path, schedules[i], r.title); err != nil {
				return fmt.Errorf("gantt %s: %w", path, err)
			}
			logger.Info("gantt chart saved", zap.String("path", path))
		}
	}
	return nil
}

// writeFault печатает строку о досрочной остановке поиска в отчёт.
func writeFault(w io.Writer, title string, f *sa.Fault) {
	fmt.Fprintf(w, "\n!!! %s: error - exited at: %d/%d (%v) !!!\n", title, f.Step, f.TotalSteps, f.Err)
}

// suffixed: "out/g.png" + "cmax" -> "out/g_cmax.png".
func suffixed(path, tag string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + tag + ext
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
