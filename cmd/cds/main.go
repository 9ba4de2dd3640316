package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"cdsFlowShop/internal/cds"
	"cdsFlowShop/internal/flowshop"
	"cdsFlowShop/internal/logging"
)

func main() {
	var (
		in       = flag.String("in", "", "YAML-файл экземпляра (machines, jobs)")
		random   = flag.String("random", "", "сгенерировать экземпляр вместо чтения файла, пример: 10x4")
		seed     = flag.Int64("seed", 777, "сид генерации для -random")
		save     = flag.String("save", "", "сохранить сгенерированный экземпляр в YAML")
		trace    = flag.Bool("trace", false, "печатать время начала и окончания каждой работы на каждом станке")
		all      = flag.Bool("candidates", false, "печатать кандидатов для всех разбиений")
		workers  = flag.Int("workers", 1, "число горутин для перебора разбиений")
		logLevel = flag.String("log_level", "warn", "уровень логирования: debug, info, warn, error")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка инициализации логгера:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	inst, err := loadInstance(*in, *random, *seed)
	if err != nil {
		logger.Fatal("не удалось получить экземпляр", zap.Error(err))
	}
	if *save != "" {
		b, err := inst.ToFile().Marshal()
		if err == nil {
			err = os.WriteFile(*save, b, 0o644)
		}
		if err != nil {
			logger.Fatal("не удалось сохранить экземпляр", zap.String("path", *save), zap.Error(err))
		}
	}

	solver, err := cds.New(cds.Config{Workers: *workers}, logger.Named("cds"))
	if err != nil {
		logger.Fatal("конфликт в конфигурации CDS", zap.Error(err))
	}

	ctx := context.Background()
	if *all {
		cands, err := solver.Candidates(ctx, inst)
		if err != nil {
			logger.Fatal("ошибка CDS", zap.Error(err))
		}
		for _, c := range cands {
			fmt.Printf("Разбиение %d: %s makespan=%d\n", c.Partition, formatSequence(c.Sequence), c.Makespan)
		}
	}

	res, err := solver.Solve(ctx, inst)
	if err != nil {
		logger.Fatal("ошибка CDS", zap.Error(err))
	}

	fmt.Printf("Порядок: %s (разбиение %v)\n", formatSequence(res.Permutation), res.Meta["partition"])
	if *trace {
		eval, err := flowshop.NewEvaluator(inst)
		if err != nil {
			logger.Fatal("ошибка оценки", zap.Error(err))
		}
		slots, err := eval.Trace(res.Permutation)
		if err != nil {
			logger.Fatal("ошибка оценки", zap.Error(err))
		}
		printTrace(os.Stdout, inst.Machines, slots)
	}
	fmt.Printf("Значение целевой функции: %d\n", res.Makespan)
}

func loadInstance(path, random string, seed int64) (*flowshop.Instance, error) {
	if random != "" {
		jm := strings.Split(random, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("-random %q невалидной схемы, пример: 10x4", random)
		}
		jobs, err := strconv.Atoi(strings.TrimSpace(jm[0]))
		if err != nil {
			return nil, fmt.Errorf("-random %q: %w", random, err)
		}
		machines, err := strconv.Atoi(strings.TrimSpace(jm[1]))
		if err != nil {
			return nil, fmt.Errorf("-random %q: %w", random, err)
		}
		if jobs < 0 || machines <= 0 {
			return nil, fmt.Errorf("-random %q: количество работ должно быть >= 0, машин > 0", random)
		}
		return flowshop.RandomInstance(jobs, machines, 1, 99, rand.New(rand.NewSource(seed))), nil
	}
	if path == "" {
		return nil, fmt.Errorf("нужно указать -in или -random")
	}
	return flowshop.LoadFile(path)
}

// printTrace печатает расписание по станкам: для каждого станка — работы в порядке запуска.
func printTrace(w io.Writer, machines int, slots [][]flowshop.Slot) {
	fmt.Fprintln(w, "Расписание:")
	for m := 0; m < machines; m++ {
		fmt.Fprintf(w, "\tM%d:\n", m)
		for _, row := range slots {
			s := row[m]
			fmt.Fprintf(w, "\t\tJ[%d]: начало=%d окончание=%d\n", s.Job, s.Start, s.Complete)
		}
	}
}

func formatSequence(seq []int) string {
	parts := make([]string, len(seq))
	for i, j := range seq {
		parts[i] = "J" + strconv.Itoa(j)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
