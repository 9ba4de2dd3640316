package opt

import (
	"context"
	"time"

	"cdsFlowShop/internal/flowshop"
)

// Optimizer строит порядок запуска работ для экземпляра flow-shop.
type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

type Result struct {
	Permutation []int
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
