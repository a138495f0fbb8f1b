package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"annealShop/internal/bench"
	"annealShop/internal/cooling"
	"annealShop/internal/sa"
	"go.uber.org/zap"
)

func main() {
	// CLI флаги для настройки отжига и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		pairs        = flag.String("pairs", "20x5,50x10,100x20", "конфигурации: количество работ Х количество станков (через запятую)")
		objectives   = flag.String("objectives", "cmax,tsum", "целевые функции: cmax, tsum (через запятую)")
		strategies   = flag.String("cooling", "1,2,3,4,5", "стратегии охлаждения: номера 1..5 или имена (через запятую)")
		runs         = flag.Int("runs", 10, "количество запусков каждой комбинации (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		verbose      = flag.Bool("v", false, "журнал предупреждений отжига в stderr")

		// --- Алгоритм имитации отжига ---
		saIter      = flag.Int("sa_iter", 100, "количество итераций (раундов)")
		saNeighbors = flag.Int("sa_neighbors", 100, "количество соседей на итерацию")
		saT0        = flag.Float64("sa_t0", 100.0, "начальная температура")
	)
	flag.Parse()

	ctx := context.Background()

	cases, err := parsePairs(*pairs, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	saCfg := sa.Config{
		Iterations:            *saIter,
		NeighborsPerIteration: *saNeighbors,
		InitialTemp:           *saT0,
		Cooling:               cooling.LinearMultiplicative,
	}
	if err := saCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма имитации отжига:", err)
		os.Exit(2)
	}

	variants, err := parseVariants(*objectives, *strategies)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewProduction(); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка журнала:", err)
			os.Exit(2)
		}
		defer logger.Sync() //nolint:errcheck
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		Search:        saCfg,
		PerRunTimeout: *perRunTO,
		Log:           logger,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, v := range variants {
			fmt.Printf("Запущен отжиг %s (%s); %d работ %d машин (общее кол-во запусков=%d)...\n", v.Objective.Name, v.Cooling, c.Jobs, c.Machines, runner.Runs)

			rec, err := runner.RunCase(ctx, c, v)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Значение целевой функции: начальное=%.2f лучшее=%d среднее=%.2f стандартное отклонение=%.2f прервано=%d | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.InitialMean, rec.CostBest, rec.CostMean, rec.CostStd, rec.Aborted,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parsePairs(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x10", p)
		}
		jobs, err := strconv.Atoi(strings.TrimSpace(jm[0]))
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := strconv.Atoi(strings.TrimSpace(jm[1]))
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и машин должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func parseVariants(objectives, strategies string) ([]bench.Variant, error) {
	var out []bench.Variant
	for _, o := range splitCSV(objectives) {
		obj, err := sa.ParseObjective(o)
		if err != nil {
			return nil, err
		}
		for _, c := range splitCSV(strategies) {
			st, err := cooling.Parse(c)
			if err != nil {
				return nil, err
			}
			out = append(out, bench.Variant{Objective: obj, Cooling: st})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("не выбрано ни одной комбинации целевой функции и стратегии")
	}
	return out, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
