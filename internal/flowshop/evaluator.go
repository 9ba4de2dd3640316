package flowshop

import "fmt"

// Slot — интервал обработки одной работы на одном станке.
type Slot struct {
	Job      int
	Machine  int
	Start    int
	Complete int
}

// Evaluator считает makespan перестановки. Буфер переиспользуется между вызовами,
// поэтому один Evaluator нельзя делить между горутинами.
type Evaluator struct {
	inst              *Instance
	machineCompletion []int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, machineCompletion: make([]int, inst.Machines)}, nil
}

func (e *Evaluator) Makespan(perm []int) (int, error) {
	if err := e.check(perm); err != nil {
		return 0, err
	}

	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
	}

	// machineCompletion[m-1] уже содержит окончание текущей работы на предыдущем станке
	for _, job := range perm {
		e.machineCompletion[0] += e.inst.Time(job, 0)
		for m := 1; m < e.inst.Machines; m++ {
			e.machineCompletion[m] = max(e.machineCompletion[m-1], e.machineCompletion[m]) + e.inst.Time(job, m)
		}
	}
	return e.machineCompletion[e.inst.Machines-1], nil
}

func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// Trace возвращает расписание по позициям перестановки: trace[pos][m].
// Последний элемент последней строки завершается ровно в makespan.
func (e *Evaluator) Trace(perm []int) ([][]Slot, error) {
	if err := e.check(perm); err != nil {
		return nil, err
	}

	machines := e.inst.Machines
	backing := make([]Slot, len(perm)*machines)
	trace := make([][]Slot, len(perm))
	machineFree := make([]int, machines)

	for pos, job := range perm {
		row := backing[pos*machines : (pos+1)*machines]
		ready := 0
		for m := 0; m < machines; m++ {
			start := max(machineFree[m], ready)
			done := start + e.inst.Time(job, m)
			row[m] = Slot{Job: job, Machine: m, Start: start, Complete: done}
			machineFree[m] = done
			ready = done
		}
		trace[pos] = row
	}
	return trace, nil
}

func (e *Evaluator) check(perm []int) error {
	if e == nil || e.inst == nil {
		return fmt.Errorf("nil evaluator")
	}
	return ValidatePermutation(perm, e.inst.Jobs)
}
