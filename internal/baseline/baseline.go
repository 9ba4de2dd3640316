// Package baseline содержит простые правила упорядочивания для сравнения с CDS.
package baseline

import (
	"context"
	"fmt"
	"time"

	"cdsFlowShop/internal/cds"
	"cdsFlowShop/internal/flowshop"
	"cdsFlowShop/internal/opt"
)

// Identity запускает работы в порядке поступления.
type Identity struct{}

func (Identity) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return opt.Result{}, err
	}
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	perm := flowshop.Identity(inst.Jobs)
	return opt.Result{
		Permutation: perm,
		Makespan:    eval.MustMakespan(perm),
		Evaluations: 1,
		Iterations:  1,
		Duration:    time.Since(start),
	}, nil
}

// FirstLast применяет правило Джонсона только к первому и последнему станку
// (первое разбиение CDS без перебора остальных).
type FirstLast struct{}

func (FirstLast) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return opt.Result{}, err
	}
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	if inst.Machines < 2 {
		return opt.Result{}, fmt.Errorf("%w: johnson requires at least 2 machines (got %d)", flowshop.ErrInvalidInput, inst.Machines)
	}
	perm := cds.Johnson(cds.Reduce(inst, 0))
	return opt.Result{
		Permutation: perm,
		Makespan:    eval.MustMakespan(perm),
		Evaluations: 1,
		Iterations:  1,
		Duration:    time.Since(start),
	}, nil
}
