// Command optabu runs the tabu search engine against an Orienteering
// Problem instance, or in -generate/-exact/-batch modes as described by
// -h.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/opbench/optabu/evaluate"
	"github.com/opbench/optabu/execctx"
	"github.com/opbench/optabu/export"
	"github.com/opbench/optabu/generator"
	"github.com/opbench/optabu/ilp"
	"github.com/opbench/optabu/internal/oplog"
	"github.com/opbench/optabu/op"
	"github.com/opbench/optabu/search"
)

func main() {
	instance := flag.String("instance", "", "path to an instance file (required unless -generate is set)")
	out := flag.String("out", "", "directory to write result CSVs into (required)")
	configName := flag.String("config-name", "default", "label recorded against every ledger row")
	firstImprove := flag.Bool("first-improve", false, "apply the first qualifying move instead of the best one per pass")
	intensify := flag.Bool("intensify", true, "enable intensification on stalled progress")
	diversify := flag.Bool("diversify", true, "enable diversification on stalled progress")
	maxTime := flag.Duration("max-time", 30*time.Second, "wall-clock search budget")
	target := flag.Int("target", int(^uint(0)>>1), "stop early once this score is reached")
	seed := flag.Int64("seed", 0, "deterministic RNG seed (0 uses the engine default)")
	batch := flag.Int("batch", 0, "run N independent engines concurrently over the same instance and keep the best")
	generate := flag.Bool("generate", false, "generate a synthetic instance instead of reading -instance")
	genN := flag.Int("gen-n", 300, "vertex count for -generate")
	genTMax := flag.Float64("gen-t-max", 150, "travel budget for -generate")
	exact := flag.Bool("exact", false, "solve exactly via branch-and-bound instead of tabu search")
	flag.Parse()

	if *out == "" {
		fmt.Fprintln(os.Stderr, "missing -out directory")
		flag.Usage()
		os.Exit(2)
	}
	if *instance == "" && !*generate {
		fmt.Fprintln(os.Stderr, "missing -instance (or pass -generate)")
		flag.Usage()
		os.Exit(2)
	}

	logger := oplog.Console("optabu")

	problem, err := loadOrGenerate(*instance, *generate, *genN, *genTMax, *seed)
	if err != nil {
		log.Fatalf("loading instance: %v", err)
	}
	instanceLabel := *instance
	if *generate {
		instanceLabel = fmt.Sprintf("generated-n%d-tmax%g", *genN, *genTMax)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	if *exact {
		runExact(problem, instanceLabel, *out, *configName, logger)

		return
	}

	cfg := search.DefaultConfig()
	cfg.FirstImprove = *firstImprove
	cfg.EnableIntensification = *intensify
	cfg.EnableDiversification = *diversify
	cfg.MaxTime = *maxTime
	cfg.Target = *target
	cfg.Seed = *seed

	ub := quickUB(problem)

	if *batch > 0 {
		runBatch(problem, cfg, *batch, instanceLabel, *out, *configName, ub, logger)

		return
	}

	ctx := execctx.New(problem, instanceLabel, *configName, logger)
	ts := search.New(problem, ctx, cfg, logger)
	ts.Solve()

	writeResults(ctx, *out, ub)
}

// quickUB opportunistically certifies an upper bound for small instances via
// exact branch-and-bound, so the summary CSV can report a meaningful
// optimality gap. Returns 0 (unknown) when the instance is too large for
// ilp.Solve or the exact search doesn't finish within its own budget.
func quickUB(problem *op.OP) float64 {
	if problem.N > ilp.MaxExactN {
		return 0
	}
	sol, err := ilp.Solve(problem, ilp.DefaultOptions())
	if err != nil || sol == nil {
		return 0
	}

	return float64(evaluate.New(problem).TotalScore(sol))
}

func loadOrGenerate(path string, generate bool, n int, tMax float64, seed int64) (*op.OP, error) {
	if generate {
		rng := rand.New(rand.NewSource(seed))

		return generator.GenerateInstance(generator.Config{N: n, TMax: tMax, MaxXY: 200.1}, rng)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return op.Load(f)
}

// runBatch fans N independent tabu-search engines out over the same
// instance via errgroup, each on its own decorrelated RNG substream, and
// keeps whichever run found the best score.
func runBatch(problem *op.OP, cfg search.Config, n int, instanceLabel, out, configName string, ub float64, logger zerolog.Logger) {
	contexts := make([]*execctx.ExecutionContext, n)
	var g errgroup.Group

	for i := 0; i < n; i++ {
		i := i
		contexts[i] = execctx.New(problem, instanceLabel, fmt.Sprintf("%s-batch%d", configName, i), logger)
		g.Go(func() error {
			ts := search.NewStream(problem, contexts[i], cfg, logger, uint64(i))
			ts.Solve()

			return nil
		})
	}
	_ = g.Wait()

	best := contexts[0]
	for _, ctx := range contexts[1:] {
		if ctx.BestScore > best.BestScore ||
			(ctx.BestScore == best.BestScore && ctx.BestDist < best.BestDist) {
			best = ctx
		}
	}

	writeResults(best, out, ub)
}

// runExact solves problem to certified optimality via branch-and-bound and
// reports it through the usual ledger/summary CSVs. When the search
// exhausts its node/time budget before finishing, the returned solution (if
// any) isn't a certified optimum, so no UB is reported for it.
func runExact(problem *op.OP, instanceLabel, out, configName string, logger zerolog.Logger) {
	sol, err := ilp.Solve(problem, ilp.DefaultOptions())
	if err != nil && sol == nil {
		log.Fatalf("exact solve: %v", err)
	}

	ctx := execctx.New(problem, instanceLabel, configName, logger)
	ctx.AddImprove(sol, 0)

	ub := 0.0
	if err == nil {
		ub = float64(ctx.BestScore)
	}

	writeResults(ctx, out, ub)
}

func writeResults(ctx *execctx.ExecutionContext, out string, ub float64) {
	writeCSV(out+"/improves.csv", func(f *os.File) error { return export.WriteLedgerCSV(f, ctx) })
	writeCSV(out+"/improve_scores.csv", func(f *os.File) error { return export.WriteImproveScoresCSV(f, ctx) })
	writeCSV(out+"/summary.csv", func(f *os.File) error { return export.WriteSummaryCSV(f, ctx, ub) })
}

func writeCSV(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		log.Fatalf("writing %s: %v", path, err)
	}
}
