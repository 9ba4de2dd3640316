package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"cdsFlowShop/internal/baseline"
	"cdsFlowShop/internal/bench"
	"cdsFlowShop/internal/cds"
	"cdsFlowShop/internal/logging"
)

func main() {
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		pairs        = flag.String("pairs", "20x5,50x10,100x20", "конфигурации: количество работ Х количество станков (через запятую)")
		algos        = flag.String("algos", "CDS,JOHNSON,IDENTITY", "список алгоритмов: CDS, JOHNSON, IDENTITY (через запятую)")
		runs         = flag.Int("runs", 30, "количество экземпляров на конфигурацию")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи")
		minTime      = flag.Int("min_time", 1, "минимальное время обработки")
		maxTime      = flag.Int("max_time", 99, "максимальное время обработки")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		workers      = flag.Int("cds_workers", 1, "число горутин для перебора разбиений CDS")
		logLevel     = flag.String("log_level", "info", "уровень логирования: debug, info, warn, error")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка инициализации логгера:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx := context.Background()

	if *minTime < 0 || *maxTime < *minTime {
		logger.Fatal("некорректные границы времени обработки", zap.Int("min_time", *minTime), zap.Int("max_time", *maxTime))
	}

	cases, err := parsePairs(*pairs, *instanceSeed)
	if err != nil {
		logger.Fatal("некорректные конфигурации", zap.Error(err))
	}
	for i := range cases {
		cases[i].MinTime = *minTime
		cases[i].MaxTime = *maxTime
	}

	cdsCfg := cds.Config{Workers: *workers}
	solver, err := cds.New(cdsCfg, logger.Named("cds"))
	if err != nil {
		logger.Fatal("конфликт в конфигурации CDS", zap.Error(err))
	}

	available := map[string]bench.Algorithm{
		"CDS":      {Name: "CDS", Optimizer: solver},
		"JOHNSON":  {Name: "JOHNSON", Optimizer: baseline.FirstLast{}},
		"IDENTITY": {Name: "IDENTITY", Optimizer: baseline.Identity{}},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[strings.ToUpper(a)]
		if !ok {
			logger.Fatal("алгоритм не предоставлен в программе",
				zap.String("algo", a),
				zap.Strings("available", keys(available)),
			)
		}
		selected = append(selected, al)
	}

	runner := &bench.Runner{
		Runs:          *runs,
		PerRunTimeout: *perRunTO,
		Log:           logger.Named("bench"),
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; %d работ %d машин (экземпляров=%d)...\n", a.Name, c.Jobs, c.Machines, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				logger.Fatal("ошибка запуска", zap.String("algo", a.Name), zap.Error(err))
			}
			records = append(records, rec)

			fmt.Printf("  Значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.3fms отклонение=%.3fms\n",
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		logger.Fatal("ошибка при записи в CSV", zap.String("path", *out), zap.Error(err))
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parsePairs(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x10", p)
		}
		jobs, err := strconv.Atoi(strings.TrimSpace(jm[0]))
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := strconv.Atoi(strings.TrimSpace(jm[1]))
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs < 0 || machines < 2 {
			return nil, fmt.Errorf("пара %q: количество работ должно быть >= 0, машин >= 2", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
