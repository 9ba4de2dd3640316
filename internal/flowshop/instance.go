package flowshop

import (
	"fmt"
	"math/rand"
)

// Instance — набор работ; каждая работа проходит все станки в порядке 0..Machines-1.
type Instance struct {
	Jobs     int
	Machines int
	// ProcTimes length must be Jobs*Machines, row-major by job.
	ProcTimes []int
}

func NewInstance(jobs, machines int, procTimes []int) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, ProcTimes: procTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromJobs собирает экземпляр из векторов времён обработки (по одному на работу).
// Индекс работы совпадает с её позицией в jobs.
func FromJobs(machines int, jobs [][]int) (*Instance, error) {
	pt := make([]int, 0, len(jobs)*machines)
	for j, times := range jobs {
		if len(times) != machines {
			return nil, fmt.Errorf("%w: job %d has %d processing times, want %d", ErrInvalidInput, j, len(times), machines)
		}
		pt = append(pt, times...)
	}
	return NewInstance(len(jobs), machines, pt)
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return fmt.Errorf("%w: instance is nil", ErrInvalidInput)
	}
	if inst.Jobs < 0 {
		return fmt.Errorf("%w: jobs must be >= 0 (got %d)", ErrInvalidInput, inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("%w: machines must be > 0 (got %d)", ErrInvalidInput, inst.Machines)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf("%w: procTimes length must be jobs*machines=%d (got %d)", ErrInvalidInput, inst.Jobs*inst.Machines, len(inst.ProcTimes))
	}
	for i, v := range inst.ProcTimes {
		if v < 0 {
			return fmt.Errorf("%w: procTimes[%d] must be >= 0 (got %d)", ErrInvalidInput, i, v)
		}
	}
	return nil
}

func (inst *Instance) Time(job, machine int) int {
	return inst.ProcTimes[job*inst.Machines+machine]
}

// Job возвращает срез времён обработки работы job. Срез разделяет память с экземпляром.
func (inst *Instance) Job(job int) []int {
	return inst.ProcTimes[job*inst.Machines : (job+1)*inst.Machines]
}

// Reversed возвращает экземпляр с обратным порядком станков.
// Перестановка π на исходном экземпляре и обратная ей на развёрнутом дают одинаковый makespan.
func (inst *Instance) Reversed() *Instance {
	pt := make([]int, len(inst.ProcTimes))
	for j := 0; j < inst.Jobs; j++ {
		for m := 0; m < inst.Machines; m++ {
			pt[j*inst.Machines+m] = inst.Time(j, inst.Machines-1-m)
		}
	}
	return &Instance{Jobs: inst.Jobs, Machines: inst.Machines, ProcTimes: pt}
}

func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	for i := range pt {
		pt[i] = minTime
		if span > 1 {
			pt[i] += rng.Intn(span)
		}
	}
	inst, err := NewInstance(jobs, machines, pt)
	if err != nil {
		panic(err)
	}
	return inst
}
