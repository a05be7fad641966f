// Package eval drives a category's test cases through the baseline and
// target providers and assembles a completed run. Runs are all-or-nothing:
// a cancelled or aborted execution never yields a partial run.
package eval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gridprobe/faceoff/internal/catalog"
	"github.com/gridprobe/faceoff/internal/judge"
	"github.com/gridprobe/faceoff/internal/provider"
	"github.com/gridprobe/faceoff/internal/result"
)

// ErrRunAborted is returned when cancellation stops a run mid-flight. The
// partial run is discarded, never persisted.
var ErrRunAborted = errors.New("evaluation run aborted")

// ErrEmptyCatalog is returned when a run is requested over zero test cases.
var ErrEmptyCatalog = errors.New("no test cases for category")

// Progress is reported to the observer after each test case completes.
type Progress struct {
	Current int
	Total   int
	TestID  string
}

type Observer func(Progress)

// Runner executes one category against a baseline/target client pair.
type Runner struct {
	Baseline provider.Client
	Target   provider.Client
	Judge    judge.Decider
	// Context is prepended to every question as the DATA section of the
	// prompt. Optional.
	Context  string
	Observer Observer
}

// Run evaluates every case in catalog order. Per case the two provider
// calls are issued concurrently and both must settle before the result is
// formed; a failed side becomes a failing result with a nil answer and the
// run continues. The returned run id is a monotonic UTC timestamp.
func (r *Runner) Run(ctx context.Context, category catalog.Category, cases []catalog.TestCase) (*result.Run, error) {
	if r.Baseline == nil || r.Target == nil {
		return nil, errors.New("both baseline and target clients are required")
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, category)
	}
	decider := r.Judge
	if decider == nil {
		decider = judge.Containment{}
	}

	createdAt := time.Now().UTC()
	run := &result.Run{
		ID:        createdAt.Format("20060102T150405.000"),
		Category:  category,
		CreatedAt: createdAt,
		Results:   make([]result.TestResult, 0, len(cases)),
	}
	run.Baseline.Provider, run.Baseline.Model = r.Baseline.Describe()
	run.Target.Provider, run.Target.Model = r.Target.Describe()

	for i, tc := range cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRunAborted, err)
		}
		prompt := r.buildPrompt(tc)

		var (
			wg                     sync.WaitGroup
			baselineRes, targetRes provider.Response
			baselineErr, targetErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			baselineRes, baselineErr = r.Baseline.Call(ctx, prompt)
		}()
		go func() {
			defer wg.Done()
			targetRes, targetErr = r.Target.Call(ctx, prompt)
		}()
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRunAborted, err)
		}

		tr := result.TestResult{
			TestID:   tc.ID,
			Category: tc.Category,
			Question: tc.Question,
			Expected: tc.Expected,
			Baseline: sideResult(decider, tc.Expected, baselineRes, baselineErr),
			Target:   sideResult(decider, tc.Expected, targetRes, targetErr),
		}
		run.Results = append(run.Results, tr)

		if r.Observer != nil {
			r.Observer(Progress{Current: i + 1, Total: len(cases), TestID: tc.ID})
		}
	}
	return run, nil
}

// sideResult folds one provider call outcome into a result side. Failures
// never become passes and are never replaced with synthesized answers.
func sideResult(decider judge.Decider, expected string, res provider.Response, err error) result.Side {
	if err != nil {
		return result.Side{Answer: nil, Pass: false, Latency: res.Latency}
	}
	answer := res.Answer
	return result.Side{
		Answer:  &answer,
		Pass:    decider.Decide(expected, &answer),
		Latency: res.Latency,
	}
}

func (r *Runner) buildPrompt(tc catalog.TestCase) string {
	var b strings.Builder
	b.WriteString("You are an expert analyst. Answer the following question based on the provided data.\n")
	b.WriteString("Be precise and provide exact numbers when asked for calculations.\n\n")
	if r.Context != "" {
		b.WriteString("DATA:\n")
		b.WriteString(r.Context)
		b.WriteString("\n\n")
	}
	b.WriteString("QUESTION: ")
	b.WriteString(tc.Question)
	b.WriteString("\n\nProvide a concise answer. If it's a calculation, show the result directly.\n")
	return b.String()
}
