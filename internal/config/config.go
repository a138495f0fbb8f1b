package config

import (
	"fmt"
	"os"

	"annealShop/internal/cooling"
	"annealShop/internal/sa"
	"gopkg.in/yaml.v3"
)

// Config - параметры одного запуска.
type Config struct {
	Jobs     int `yaml:"jobs"`
	Machines int `yaml:"machines"`

	Iterations         int              `yaml:"iterations"`
	Neighbors          int              `yaml:"neighbors"`
	InitialTemperature float64          `yaml:"initial_temperature"`
	CoolingStrategy    cooling.Strategy `yaml:"cooling_strategy"`

	// Seed = 0 - сид берётся из текущего времени.
	Seed int64 `yaml:"seed"`
	// Диапазон длительностей операций при генерации экземпляра.
	MinTime int `yaml:"min_time"`
	MaxTime int `yaml:"max_time"`

	// GanttPNG - путь для диаграмм Ганта; пусто - не сохранять.
	GanttPNG string `yaml:"gantt_png"`
}

func Default() Config {
	d := sa.DefaultConfig()
	return Config{
		Jobs:               10,
		Machines:           5,
		Iterations:         d.Iterations,
		Neighbors:          d.NeighborsPerIteration,
		InitialTemperature: d.InitialTemp,
		CoolingStrategy:    d.Cooling,
		MinTime:            1,
		MaxTime:            8,
	}
}

// Load читает YAML поверх значений по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be > 0 (got %d)", c.Jobs)
	}
	if c.Machines <= 0 {
		return fmt.Errorf("machines must be > 0 (got %d)", c.Machines)
	}
	if c.MinTime <= 0 || c.MaxTime < c.MinTime {
		return fmt.Errorf("invalid time bounds [%d, %d]", c.MinTime, c.MaxTime)
	}
	return c.Search().Validate()
}

// Search возвращает конфигурацию отжига.
func (c Config) Search() sa.Config {
	return sa.Config{
		Iterations:            c.Iterations,
		NeighborsPerIteration: c.Neighbors,
		InitialTemp:           c.InitialTemperature,
		Cooling:               c.CoolingStrategy,
	}
}
