package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cdsFlowShop/internal/flowshop"
	"cdsFlowShop/internal/opt"
)

type Algorithm struct {
	Name      string
	Optimizer opt.Optimizer
}

// Case задаёт размер экземпляров; для запуска i используется сид InstanceSeed+i.
type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
	MinTime      int
	MaxTime      int
}

type Record struct {
	RunID    string
	Algo     string
	Jobs     int
	Machines int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64
}

type Runner struct {
	Runs          int
	PerRunTimeout time.Duration // 0 = no timeout
	RunID         string        // пусто — будет сгенерирован
	Log           *zap.Logger
}

// Instances возвращает экземпляры кейса: одинаковые для всех алгоритмов.
func (c Case) Instances(runs int) []*flowshop.Instance {
	minT, maxT := c.MinTime, c.MaxTime
	if minT == 0 && maxT == 0 {
		minT, maxT = 1, 99
	}
	out := make([]*flowshop.Instance, runs)
	for i := range out {
		rng := rand.New(rand.NewSource(c.InstanceSeed + int64(i)))
		out[i] = flowshop.RandomInstance(c.Jobs, c.Machines, minT, maxT, rng)
	}
	return out
}

func (r *Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run_id", r.RunID), zap.String("algo", algo.Name))

	makespans := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i, inst := range c.Instances(r.Runs) {
		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := algo.Optimizer.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := flowshop.ValidatePermutation(res.Permutation, inst.Jobs); err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		log.Debug("run finished",
			zap.Int("run", i),
			zap.Int("makespan", res.Makespan),
			zap.Duration("duration", dur),
		)

		makespans = append(makespans, res.Makespan)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	msStats := CalcStats(makespans)
	tStats := CalcStats(timesMs)

	log.Info("case finished",
		zap.Int("jobs", c.Jobs),
		zap.Int("machines", c.Machines),
		zap.Int("makespan_best", msStats.Best),
		zap.Float64("makespan_mean", msStats.Mean),
	)

	return Record{
		RunID:    r.RunID,
		Algo:     algo.Name,
		Jobs:     c.Jobs,
		Machines: c.Machines,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"run_id", "algo", "jobs", "machines", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.RunID,
			r.Algo,
			strconv.Itoa(r.Jobs),
			strconv.Itoa(r.Machines),
			strconv.Itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			strconv.Itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
