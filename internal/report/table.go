// Package report печатает результаты поиска: таблицу сроков,
// диаграмму Ганта и сводку по двум целевым функциям.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"annealShop/internal/flowshop"
)

// DeadlineTable печатает для каждой работы Ci, di, Li = Ci - di и Ti = max(0, Li).
func DeadlineTable(w io.Writer, s flowshop.Schedule, deadlines flowshop.Deadlines) error {
	if len(deadlines) != len(s.Order) {
		return fmt.Errorf("deadlines length must be %d (got %d)", len(s.Order), len(deadlines))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Ji\tCi\tdi\tLi\tTi\t")

	completion := s.Completion()
	sumL := 0
	for p, job := range s.Order {
		sumL += s.Lateness[p]
		fmt.Fprintf(tw, "J%d\t%d\t%d\t%d\t%d\t\n", job, completion[p], deadlines[job-1], s.Lateness[p], s.Tardiness[p])
	}
	fmt.Fprintf(tw, "SUM\t\t\t%d\t%d\t\n", sumL, s.TotalTardiness)
	return tw.Flush()
}

// Gantt рисует расписание текстом: одна строка на станок, одна клетка на
// единицу времени. Простой отмечается "-", работа - своим номером.
func Gantt(w io.Writer, s flowshop.Schedule) error {
	width := len(strconv.Itoa(len(s.Order)))
	idle := strings.Repeat("-", width)

	var b strings.Builder
	for m := range s.Start {
		b.Reset()
		fmt.Fprintf(&b, "M%-*d ", len(strconv.Itoa(len(s.Start))), m+1)
		clock := 0
		for p, job := range s.Order {
			for ; clock < s.Start[m][p]; clock++ {
				b.WriteString(idle)
				b.WriteByte('|')
			}
			label := fmt.Sprintf("%*d", width, job)
			for ; clock < s.End[m][p]; clock++ {
				b.WriteString(label)
				b.WriteByte('|')
			}
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Summary печатает начальный и найденный порядок и значения обеих целевых функций.
func Summary(w io.Writer, title string, initial []int, s flowshop.Schedule) error {
	_, err := fmt.Fprintf(w, "%s\nInitial order: %s\nBest order: %s\nC-max: %d\nT-sum: %d\n",
		title, joinInts(initial), joinInts(s.Order), s.Makespan, s.TotalTardiness)
	return err
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
