package cds

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cdsFlowShop/internal/flowshop"
	"cdsFlowShop/internal/opt"
)

// Schedule — кандидат, полученный для одного разбиения.
// Makespan всегда посчитан по исходным m станкам.
type Schedule struct {
	Partition int
	Sequence  []int
	Makespan  int
}

// Solver — эвристика Кэмпбелла–Дудека–Смита.
type Solver struct {
	Cfg Config
	Log *zap.Logger
}

// New возвращает CDS-солвер с валидацией конфигурации. Логгер может быть nil.
func New(cfg Config, logger *zap.Logger) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{Cfg: cfg, Log: logger}, nil
}

// Solve перебирает все m-1 разбиений и возвращает лучший по makespan порядок.
func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	cands, err := s.Candidates(ctx, inst)
	if err != nil {
		return opt.Result{}, err
	}
	best := Best(cands)

	s.log().Debug("cds finished",
		zap.Int("jobs", inst.Jobs),
		zap.Int("machines", inst.Machines),
		zap.Int("partition", best.Partition),
		zap.Int("makespan", best.Makespan),
	)

	return opt.Result{
		Permutation: best.Sequence,
		Makespan:    best.Makespan,
		Evaluations: len(cands),
		Iterations:  len(cands),
		Duration:    time.Since(start),
		Meta: map[string]any{
			"partition":  best.Partition,
			"partitions": len(cands),
			"workers":    s.workers(len(cands)),
		},
	}, nil
}

// Candidates возвращает кандидатов для всех разбиений, упорядоченных по индексу разбиения.
func (s *Solver) Candidates(ctx context.Context, inst *flowshop.Instance) ([]Schedule, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if inst.Machines < 2 {
		return nil, fmt.Errorf("%w: cds requires at least 2 machines (got %d)", flowshop.ErrInvalidInput, inst.Machines)
	}
	if err := s.Cfg.Validate(); err != nil {
		return nil, err
	}

	parts := inst.Machines - 1
	cands := make([]Schedule, parts)

	workers := s.workers(parts)
	if workers == 1 {
		eval, err := flowshop.NewEvaluator(inst)
		if err != nil {
			return nil, err
		}
		for i := 0; i < parts; i++ {
			// Для поддержки отмены через context
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cands[i] = s.candidate(inst, eval, i)
		}
		return cands, nil
	}

	// Каждый воркер пишет только в свои ячейки cands, порядок восстанавливается по индексу
	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		eval, err := flowshop.NewEvaluator(inst)
		if err != nil {
			close(next)
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				cands[i] = s.candidate(inst, eval, i)
			}
		}()
	}

	var ctxErr error
	for i := 0; i < parts; i++ {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		next <- i
	}
	close(next)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	return cands, nil
}

func (s *Solver) candidate(inst *flowshop.Instance, eval *flowshop.Evaluator, split int) Schedule {
	seq := Johnson(Reduce(inst, split))
	ms := eval.MustMakespan(seq)
	s.log().Debug("partition evaluated",
		zap.Int("partition", split),
		zap.Int("makespan", ms),
	)
	return Schedule{Partition: split, Sequence: seq, Makespan: ms}
}

// Best выбирает кандидата с минимальным makespan; при равенстве побеждает первый.
// Пустой список даёт нулевой Schedule.
func Best(cands []Schedule) Schedule {
	var best Schedule
	for i, c := range cands {
		if i == 0 || c.Makespan < best.Makespan {
			best = c
		}
	}
	return best
}

func (s *Solver) workers(parts int) int {
	w := s.Cfg.Workers
	if w < 1 {
		w = 1
	}
	if w > parts {
		w = parts
	}
	return w
}

func (s *Solver) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
