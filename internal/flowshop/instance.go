package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
)

// Instance - матрица времён обработки: Jobs работ × Machines станков.
// Работы нумеруются с 1, внутри ProcTimes хранятся построчно (по работам).
type Instance struct {
	Jobs     int
	Machines int
	// ProcTimes length must be Jobs*Machines.
	ProcTimes []int
}

func NewInstance(jobs, machines int, procTimes []int) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, ProcTimes: procTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromMatrix строит экземпляр из строк вида rows[job][machine].
func FromMatrix(rows [][]int) (*Instance, error) {
	if len(rows) == 0 {
		return nil, errors.New("job matrix is empty")
	}
	machines := len(rows[0])
	pt := make([]int, 0, len(rows)*machines)
	for j, row := range rows {
		if len(row) != machines {
			return nil, fmt.Errorf("job %d has %d durations (want %d)", j+1, len(row), machines)
		}
		pt = append(pt, row...)
	}
	return NewInstance(len(rows), machines, pt)
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("jobs must be > 0 (got %d)", inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("machines must be > 0 (got %d)", inst.Machines)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf("procTimes length must be jobs*machines=%d (got %d)", inst.Jobs*inst.Machines, len(inst.ProcTimes))
	}
	for i, v := range inst.ProcTimes {
		if v <= 0 {
			return fmt.Errorf("duration of job %d on machine %d must be > 0 (got %d)", i/inst.Machines+1, i%inst.Machines+1, v)
		}
	}
	return nil
}

// Time возвращает длительность работы job (1..Jobs) на станке machine (0..Machines-1).
func (inst *Instance) Time(job, machine int) int {
	return inst.ProcTimes[(job-1)*inst.Machines+machine]
}

// Row возвращает длительности работы job по всем станкам (без копирования).
func (inst *Instance) Row(job int) []int {
	off := (job - 1) * inst.Machines
	return inst.ProcTimes[off : off+inst.Machines]
}

// TotalTime - суммарное время обработки работы на всех станках.
func (inst *Instance) TotalTime(job int) int {
	sum := 0
	for _, v := range inst.Row(job) {
		sum += v
	}
	return sum
}

// RandomInstance генерирует длительности в диапазоне [minTime, maxTime].
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) (*Instance, error) {
	if rng == nil {
		return nil, errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime <= 0 || maxTime < minTime {
		return nil, fmt.Errorf("invalid time bounds [%d, %d]", minTime, maxTime)
	}
	if jobs <= 0 || machines <= 0 {
		return nil, fmt.Errorf("jobs and machines must be > 0 (got %dx%d)", jobs, machines)
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	for i := range pt {
		pt[i] = minTime
		if span > 1 {
			pt[i] += rng.Intn(span)
		}
	}
	return NewInstance(jobs, machines, pt)
}
