package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridprobe/faceoff/internal/catalog"
	"github.com/gridprobe/faceoff/internal/config"
	"github.com/gridprobe/faceoff/internal/eval"
	"github.com/gridprobe/faceoff/internal/provider"
	"github.com/gridprobe/faceoff/internal/report"
	"github.com/gridprobe/faceoff/internal/result"
)

var flagCategory string

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a category against both providers",
		RunE:  runEvaluation,
	}
	cmd.Flags().StringVar(&flagCategory, "category", "", "category to run (math, logic, retrieval or all)")
	cmd.MarkFlagRequired("category")
	return cmd
}

func runEvaluation(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Both configs must be complete before any provider call is made.
	if err := cfg.Baseline.Complete(); err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	if err := cfg.Target.Complete(); err != nil {
		return fmt.Errorf("target: %w", err)
	}

	categories, err := selectCategories(flagCategory)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Dir)
	if err != nil {
		return err
	}
	dataContext, err := loadContext(cfg.ContextFiles)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	baseline, err := provider.New(cfg.Baseline, timeout)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	target, err := provider.New(cfg.Target, timeout)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	store, err := result.OpenStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &eval.Runner{
		Baseline: baseline,
		Target:   target,
		Context:  dataContext,
		Observer: func(p eval.Progress) {
			fmt.Printf("  [%d/%d] %s\n", p.Current, p.Total, p.TestID)
		},
	}

	var completed []*result.Run
	for _, category := range categories {
		cases, err := cat.TestsFor(category)
		if err != nil {
			return err
		}
		fmt.Printf("Running %s (%d tests)...\n", category, len(cases))
		run, err := runner.Run(ctx, category, cases)
		if errors.Is(err, eval.ErrRunAborted) {
			fmt.Println("Evaluation cancelled; partial results discarded.")
			return err
		}
		if err != nil {
			return err
		}
		if err := store.Append(run); err != nil {
			return err
		}
		completed = append(completed, run)
		stats, err := result.Aggregate(run.Results)
		if err != nil {
			return err
		}
		fmt.Printf("  baseline %d/%d (%d%%), target %d/%d (%d%%), gap %d\n",
			stats.BaselinePassed, stats.Total, stats.BaselineRate,
			stats.TargetPassed, stats.Total, stats.TargetRate, stats.Gap)
	}

	fmt.Println("\n--- Results ---")
	summary, err := report.Summarize(completed)
	if err != nil {
		return err
	}
	return report.WriteTable(summary, os.Stdout)
}

func selectCategories(arg string) ([]catalog.Category, error) {
	if strings.EqualFold(arg, "all") {
		return catalog.Categories(), nil
	}
	c, err := catalog.ParseCategory(arg)
	if err != nil {
		return nil, err
	}
	return []catalog.Category{c}, nil
}

// loadContext concatenates the configured document files into the DATA
// section shared by every prompt.
func loadContext(paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("reading context file %s: %w", p, err)
		}
		b.Write(data)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}
