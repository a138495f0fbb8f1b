package report

import (
	"errors"
	"strconv"

	"annealShop/internal/flowshop"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// GanttPlot строит диаграмму Ганта: по строке на станок, станок 1 сверху.
func GanttPlot(s flowshop.Schedule, title string) (*plot.Plot, error) {
	machines := len(s.Start)
	if machines == 0 {
		return nil, errors.New("empty schedule")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time"
	p.X.Min = 0
	p.X.Max = float64(s.Makespan)

	names := make([]string, machines)
	var (
		centers plotter.XYs
		labels  []string
	)
	for m := 0; m < machines; m++ {
		row := float64(machines - 1 - m)
		names[machines-1-m] = "M" + strconv.Itoa(m+1)
		for pos, job := range s.Order {
			x0, x1 := float64(s.Start[m][pos]), float64(s.End[m][pos])
			bar, err := plotter.NewPolygon(plotter.XYs{
				{X: x0, Y: row - 0.35},
				{X: x1, Y: row - 0.35},
				{X: x1, Y: row + 0.35},
				{X: x0, Y: row + 0.35},
			})
			if err != nil {
				return nil, err
			}
			bar.Color = plotutil.Color(job - 1)
			bar.LineStyle.Width = vg.Points(0.5)
			p.Add(bar)

			centers = append(centers, plotter.XY{X: (x0 + x1) / 2, Y: row})
			labels = append(labels, strconv.Itoa(job))
		}
	}
	p.NominalY(names...)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: centers, Labels: labels})
	if err != nil {
		return nil, err
	}
	p.Add(lbl)
	return p, nil
}

// WriteGanttPNG сохраняет диаграмму в файл; формат определяется расширением.
func WriteGanttPNG(path string, s flowshop.Schedule, title string) error {
	p, err := GanttPlot(s, title)
	if err != nil {
		return err
	}
	height := vg.Length(len(s.Start)+1) * 1.5 * vg.Centimeter
	return p.Save(25*vg.Centimeter, height, path)
}
