package cds

import "sort"

// Johnson возвращает оптимальный для двух станков порядок работ.
// Группа A (Times[0] <= Times[1]) идёт первой по возрастанию Times[0],
// затем группа B по убыванию Times[1]. Равные ключи сохраняют исходный порядок.
func Johnson(jobs []TwoValueJob) []int {
	var first, second []TwoValueJob
	for _, j := range jobs {
		if j.Times[0] <= j.Times[1] {
			first = append(first, j)
		} else {
			second = append(second, j)
		}
	}
	sort.SliceStable(first, func(a, b int) bool { return first[a].Times[0] < first[b].Times[0] })
	sort.SliceStable(second, func(a, b int) bool { return second[a].Times[1] > second[b].Times[1] })

	seq := make([]int, 0, len(jobs))
	for _, j := range first {
		seq = append(seq, j.Index)
	}
	for _, j := range second {
		seq = append(seq, j.Index)
	}
	return seq
}
