package cds

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"cdsFlowShop/internal/flowshop"
)

func newSolver(t *testing.T, workers int) *Solver {
	t.Helper()
	s, err := New(Config{Workers: workers}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func equalSeq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSolveTwoMachineExample(t *testing.T) {
	inst, _ := flowshop.FromJobs(2, [][]int{{5, 9}, {9, 6}, {9, 6}})

	res, err := newSolver(t, 1).Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !equalSeq(res.Permutation, []int{0, 1, 2}) {
		t.Fatalf("unexpected sequence: %v", res.Permutation)
	}
	if res.Makespan != 29 {
		t.Fatalf("expected makespan 29, got %d", res.Makespan)
	}
}

func TestSolvePicksBestPartition(t *testing.T) {
	inst, _ := flowshop.FromJobs(3, [][]int{{3, 1, 5}, {1, 5, 8}, {7, 7, 7}, {8, 3, 6}})
	s := newSolver(t, 1)

	cands, err := s.Candidates(context.Background(), inst)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if !equalSeq(cands[0].Sequence, []int{1, 0, 2, 3}) || cands[0].Makespan != 32 {
		t.Fatalf("unexpected partition 0 candidate: %+v", cands[0])
	}
	if !equalSeq(cands[1].Sequence, []int{0, 1, 2, 3}) || cands[1].Makespan != 31 {
		t.Fatalf("unexpected partition 1 candidate: %+v", cands[1])
	}

	res, err := s.Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Makespan != 31 || res.Meta["partition"] != 1 {
		t.Fatalf("expected partition 1 with makespan 31, got %d (meta %v)", res.Makespan, res.Meta)
	}
}

func TestSolveTieKeepsFirstPartition(t *testing.T) {
	inst, _ := flowshop.FromJobs(3, [][]int{{3, 4, 6}, {5, 1, 2}, {1, 2, 7}})

	res, err := newSolver(t, 1).Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Makespan != 18 || res.Meta["partition"] != 0 {
		t.Fatalf("expected partition 0 with makespan 18, got %d (meta %v)", res.Makespan, res.Meta)
	}
}

func TestSolveNoJobs(t *testing.T) {
	inst, _ := flowshop.FromJobs(3, nil)

	res, err := newSolver(t, 1).Solve(context.Background(), inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(res.Permutation) != 0 || res.Makespan != 0 {
		t.Fatalf("expected empty schedule, got %v / %d", res.Permutation, res.Makespan)
	}
}

func TestSolveInvalidInput(t *testing.T) {
	single, _ := flowshop.FromJobs(1, [][]int{{4}, {2}})
	cases := []struct {
		name string
		inst *flowshop.Instance
	}{
		{name: "single machine", inst: single},
		{name: "single machine no jobs", inst: &flowshop.Instance{Jobs: 0, Machines: 1, ProcTimes: []int{}}},
		{name: "malformed", inst: &flowshop.Instance{Jobs: 2, Machines: 3, ProcTimes: []int{1, 2, 3, 4}}},
		{name: "negative", inst: &flowshop.Instance{Jobs: 1, Machines: 2, ProcTimes: []int{1, -1}}},
		{name: "nil", inst: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newSolver(t, 1).Solve(context.Background(), tc.inst)
			if !errors.Is(err, flowshop.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSolveTwoMachinesEqualsJohnson(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := newSolver(t, 1)
	for iter := 0; iter < 40; iter++ {
		inst := flowshop.RandomInstance(rng.Intn(15), 2, 0, 50, rng)
		eval, _ := flowshop.NewEvaluator(inst)
		direct := eval.MustMakespan(Johnson(Reduce(inst, 0)))

		res, err := s.Solve(context.Background(), inst)
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if res.Makespan != direct {
			t.Fatalf("cds %d, johnson %d", res.Makespan, direct)
		}
	}
}

func TestSolveIsMinimumOverCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s := newSolver(t, 1)
	for iter := 0; iter < 40; iter++ {
		inst := flowshop.RandomInstance(1+rng.Intn(20), 2+rng.Intn(8), 1, 99, rng)
		eval, _ := flowshop.NewEvaluator(inst)

		cands, err := s.Candidates(context.Background(), inst)
		if err != nil {
			t.Fatalf("Candidates: %v", err)
		}
		if len(cands) != inst.Machines-1 {
			t.Fatalf("expected %d candidates, got %d", inst.Machines-1, len(cands))
		}
		res, _ := s.Solve(context.Background(), inst)
		if err := flowshop.ValidatePermutation(res.Permutation, inst.Jobs); err != nil {
			t.Fatalf("result is not a permutation: %v", err)
		}
		if got := eval.MustMakespan(res.Permutation); got != res.Makespan {
			t.Fatalf("reported makespan %d, re-evaluated %d", res.Makespan, got)
		}
		for _, c := range cands {
			if c.Makespan < res.Makespan {
				t.Fatalf("candidate %d has makespan %d below result %d", c.Partition, c.Makespan, res.Makespan)
			}
		}
		first := -1
		for _, c := range cands {
			if c.Makespan == res.Makespan {
				first = c.Partition
				break
			}
		}
		if res.Meta["partition"] != first {
			t.Fatalf("expected first minimal partition %d, got %v", first, res.Meta["partition"])
		}
	}
}

func TestSolveReversedInstance(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	s := newSolver(t, 1)
	for iter := 0; iter < 30; iter++ {
		inst := flowshop.RandomInstance(1+rng.Intn(12), 2+rng.Intn(5), 1, 50, rng)
		eval, _ := flowshop.NewEvaluator(inst)

		res, err := s.Solve(context.Background(), inst.Reversed())
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if got := eval.MustMakespan(flowshop.Reverse(res.Permutation)); got != res.Makespan {
			t.Fatalf("reversed sequence makespan %d, reversed problem makespan %d", got, res.Makespan)
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	seq := newSolver(t, 1)
	par := newSolver(t, 4)
	for iter := 0; iter < 20; iter++ {
		inst := flowshop.RandomInstance(rng.Intn(30), 2+rng.Intn(10), 1, 20, rng)

		a, err := seq.Solve(context.Background(), inst)
		if err != nil {
			t.Fatalf("sequential: %v", err)
		}
		b, err := par.Solve(context.Background(), inst)
		if err != nil {
			t.Fatalf("parallel: %v", err)
		}
		if a.Makespan != b.Makespan || !equalSeq(a.Permutation, b.Permutation) || a.Meta["partition"] != b.Meta["partition"] {
			t.Fatalf("parallel result differs: %v/%d vs %v/%d", a.Permutation, a.Makespan, b.Permutation, b.Makespan)
		}
	}
}

func TestSolveCancelled(t *testing.T) {
	inst := flowshop.RandomInstance(10, 5, 1, 10, rand.New(rand.NewSource(1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 3} {
		if _, err := newSolver(t, workers).Solve(ctx, inst); !errors.Is(err, context.Canceled) {
			t.Fatalf("workers=%d: expected context.Canceled, got %v", workers, err)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if _, err := New(Config{Workers: -1}, nil); err == nil {
		t.Fatalf("expected error for negative workers")
	}
	s, err := New(DefaultConfig(), nil)
	if err != nil || s.Log == nil {
		t.Fatalf("expected solver with nop logger, got %v / %v", s, err)
	}
}

func TestBest(t *testing.T) {
	if got := Best(nil); got.Sequence != nil || got.Makespan != 0 {
		t.Fatalf("expected zero schedule, got %+v", got)
	}
	got := Best([]Schedule{
		{Partition: 0, Makespan: 10},
		{Partition: 1, Makespan: 7},
		{Partition: 2, Makespan: 7},
	})
	if got.Partition != 1 {
		t.Fatalf("expected partition 1, got %d", got.Partition)
	}
}
