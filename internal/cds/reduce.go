package cds

import "cdsFlowShop/internal/flowshop"

// TwoValueJob — работа, сведённая к двум виртуальным станкам.
type TwoValueJob struct {
	Index int
	Times [2]int
}

// Reduce сводит экземпляр к задаче двух станков для разбиения split (0 <= split <= Machines-2):
// первый виртуальный станок — сумма по станкам [0..split],
// второй — сумма по последним split+1 станкам. Окна могут пересекаться.
func Reduce(inst *flowshop.Instance, split int) []TwoValueJob {
	last := inst.Machines - 1
	out := make([]TwoValueJob, inst.Jobs)
	for j := range out {
		head, tail := 0, 0
		for k := 0; k <= split; k++ {
			head += inst.Time(j, k)
			tail += inst.Time(j, last-k)
		}
		out[j] = TwoValueJob{Index: j, Times: [2]int{head, tail}}
	}
	return out
}
