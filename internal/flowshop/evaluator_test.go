package flowshop_test

import (
	"math"
	"testing"

	"annealShop/internal/flowshop"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func sampleInstance(t *testing.T) *flowshop.Instance {
	inst, err := flowshop.FromMatrix([][]int{{3, 2}, {2, 3}, {4, 1}})
	require.NoError(t, err)
	return inst
}

func TestEvaluateSample(t *testing.T) {
	chk := require.New(t)
	inst := sampleInstance(t)

	s, err := flowshop.Evaluate(inst, []int{1, 2, 3}, flowshop.Deadlines{6, 6, 6})
	chk.NoError(err)
	chk.Equal([]int{3, 5, 9}, s.End[0])
	chk.Equal([]int{5, 8, 10}, s.End[1])
	chk.Equal([]int{0, 3, 5}, s.Start[0])
	chk.Equal([]int{3, 5, 9}, s.Start[1])
	chk.Equal(10, s.Makespan)
	chk.Equal([]int{0, 2, 4}, s.Tardiness)
	chk.Equal([]int{-1, 2, 4}, s.Lateness)
	chk.Equal(6, s.TotalTardiness)
	chk.Equal([]int{5, 8, 10}, s.Completion())

	span, err := flowshop.ScheduleSpan(inst, []int{1, 2, 3})
	chk.NoError(err)
	chk.Equal(10, span)
}

func TestEvaluateDeadlinesFollowJobIds(t *testing.T) {
	chk := require.New(t)
	inst := sampleInstance(t)

	// Порядок 3,1,2: окончания на последнем станке 5, 9, 12.
	s, err := flowshop.Evaluate(inst, []int{3, 1, 2}, flowshop.Deadlines{10, 10, 1})
	chk.NoError(err)
	chk.Equal([]int{5, 9, 12}, s.Completion())
	chk.Equal([]int{4, 0, 2}, s.Tardiness)
	chk.Equal(6, s.TotalTardiness)
}

func TestEvaluatorRejectsBadInput(t *testing.T) {
	chk := require.New(t)
	inst := sampleInstance(t)

	_, err := flowshop.NewEvaluator(inst, flowshop.Deadlines{1, 2})
	chk.Error(err)

	e, err := flowshop.NewEvaluator(inst, flowshop.Deadlines{1, 2, 3})
	chk.NoError(err)

	for _, order := range [][]int{{1, 2}, {1, 1, 2}, {0, 1, 2}, {1, 2, 4}} {
		_, err := e.Score(order)
		chk.Error(err, "order %v", order)
		_, err = e.Evaluate(order)
		chk.Error(err, "order %v", order)
	}

	// После ошибки состояние не испорчено.
	s, err := e.Score([]int{1, 2, 3})
	chk.NoError(err)
	chk.Equal(10, s.Makespan)
}

func TestEvaluateOverflow(t *testing.T) {
	chk := require.New(t)
	inst, err := flowshop.NewInstance(2, 1, []int{math.MaxInt - 1, 5})
	chk.NoError(err)

	_, err = flowshop.Evaluate(inst, []int{1, 2}, flowshop.Deadlines{0, 0})
	chk.ErrorIs(err, flowshop.ErrOverflow)

	_, err = flowshop.ScheduleSpan(inst, []int{1, 2})
	chk.ErrorIs(err, flowshop.ErrOverflow)
}

func TestInstanceValidation(t *testing.T) {
	chk := require.New(t)

	_, err := flowshop.NewInstance(0, 2, nil)
	chk.Error(err)
	_, err = flowshop.NewInstance(2, 0, nil)
	chk.Error(err)
	_, err = flowshop.NewInstance(1, 2, []int{1})
	chk.Error(err)
	_, err = flowshop.NewInstance(1, 2, []int{1, 0})
	chk.Error(err)
	_, err = flowshop.FromMatrix([][]int{{1, 2}, {3}})
	chk.Error(err)
	_, err = flowshop.FromMatrix(nil)
	chk.Error(err)
}

type generated struct {
	inst      *flowshop.Instance
	order     []int
	deadlines flowshop.Deadlines
}

func drawProblem(t *rapid.T) generated {
	jobs := rapid.IntRange(1, 9).Draw(t, "jobs")
	machines := rapid.IntRange(1, 6).Draw(t, "machines")
	pt := rapid.SliceOfN(rapid.IntRange(1, 20), jobs*machines, jobs*machines).Draw(t, "procTimes")
	inst, err := flowshop.NewInstance(jobs, machines, pt)
	if err != nil {
		t.Fatalf("instance: %v", err)
	}
	order := rapid.Permutation(flowshop.IdentityPermutation(jobs)).Draw(t, "order")
	d := rapid.SliceOfN(rapid.IntRange(0, 200), jobs, jobs).Draw(t, "deadlines")
	return generated{inst: inst, order: order, deadlines: flowshop.Deadlines(d)}
}

func TestEvaluateProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawProblem(t)
		e, err := flowshop.NewEvaluator(g.inst, g.deadlines)
		require.NoError(t, err)

		s, err := e.Evaluate(g.order)
		require.NoError(t, err)

		// makespan не меньше суммарного времени любой работы
		for job := 1; job <= g.inst.Jobs; job++ {
			require.GreaterOrEqual(t, s.Makespan, g.inst.TotalTime(job))
		}
		// и не меньше загрузки любого станка
		for m := 0; m < g.inst.Machines; m++ {
			load := 0
			for _, job := range g.order {
				load += g.inst.Time(job, m)
			}
			require.GreaterOrEqual(t, s.Makespan, load)
		}

		total := 0
		for p, job := range g.order {
			c := s.Completion()[p]
			d := g.deadlines[job-1]
			if d >= c {
				require.Equal(t, 0, s.Tardiness[p])
			} else {
				require.Equal(t, c-d, s.Tardiness[p])
			}
			total += s.Tardiness[p]
		}
		require.Equal(t, total, s.TotalTardiness)

		// повторный вызов даёт тот же результат
		again, err := e.Evaluate(g.order)
		require.NoError(t, err)
		require.Equal(t, s, again)

		score, err := e.Score(g.order)
		require.NoError(t, err)
		require.Equal(t, s.Score, score)
	})
}

func TestScheduleSpanIgnoresDeadlines(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawProblem(t)
		other := rapid.SliceOfN(rapid.IntRange(-50, 500), g.inst.Jobs, g.inst.Jobs).Draw(t, "other")

		span, err := flowshop.ScheduleSpan(g.inst, g.order)
		require.NoError(t, err)

		for _, d := range []flowshop.Deadlines{g.deadlines, other} {
			s, err := flowshop.Evaluate(g.inst, g.order, d)
			require.NoError(t, err)
			require.Equal(t, span, s.Makespan)
		}
	})
}

func TestScheduleStartsRespectPrecedence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawProblem(t)
		s, err := flowshop.Evaluate(g.inst, g.order, g.deadlines)
		require.NoError(t, err)

		for m := 0; m < g.inst.Machines; m++ {
			for p, job := range g.order {
				require.Equal(t, s.Start[m][p]+g.inst.Time(job, m), s.End[m][p])
				if p > 0 {
					require.GreaterOrEqual(t, s.Start[m][p], s.End[m][p-1])
				}
				if m > 0 {
					require.GreaterOrEqual(t, s.Start[m][p], s.End[m-1][p])
				}
			}
		}
	})
}
