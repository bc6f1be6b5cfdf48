// Package health implements the checks behind `vaultdesk doctor`.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dallionking/vaultdesk/internal/config"
)

// Status is the outcome of one check, ordered from best to worst.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	return [...]string{"pass", "warn", "fail"}[s]
}

// Category groups checks in the report.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryMarket  Category = "market"
	CategoryRuntime Category = "runtime"
)

// Categories lists the categories in report order.
var Categories = []Category{CategoryConfig, CategoryMarket, CategoryRuntime}

// CheckResult holds the result of a single check.
type CheckResult struct {
	Name     string
	Category Category
	Status   Status
	Message  string
	Duration time.Duration
}

// Report aggregates the results of one run.
type Report struct {
	Results  []CheckResult
	Passed   int
	Warned   int
	Failed   int
	Total    int
	Duration time.Duration
	Healthy  bool
}

// Worst returns the most severe status in the report.
func (r *Report) Worst() Status {
	switch {
	case r.Failed > 0:
		return StatusFail
	case r.Warned > 0:
		return StatusWarn
	}
	return StatusPass
}

type check struct {
	name     string
	category Category
	fn       func(ctx context.Context) CheckResult
}

// Checker runs the doctor checks against a loaded project. Checks run
// concurrently; the market file is read once per Checker.
type Checker struct {
	checks []check
	paths  *config.Paths
	cfg    *config.Config

	marketsOnce sync.Once
	markets     *config.MarketFile
	marketsErr  error
}

// NewChecker creates a health checker for the loaded config and its paths.
func NewChecker(paths *config.Paths, cfg *config.Config) *Checker {
	c := &Checker{paths: paths, cfg: cfg}
	c.registerChecks()
	return c
}

func (c *Checker) add(name string, category Category, fn func(ctx context.Context) CheckResult) {
	c.checks = append(c.checks, check{name: name, category: category, fn: fn})
}

// RunAll runs every registered check.
func (c *Checker) RunAll(ctx context.Context) *Report {
	return c.run(ctx, func(check) bool { return true })
}

// RunCategory runs the checks of one category. An unknown category yields
// an empty report.
func (c *Checker) RunCategory(ctx context.Context, category string) *Report {
	return c.run(ctx, func(ch check) bool { return string(ch.category) == category })
}

func (c *Checker) run(ctx context.Context, keep func(check) bool) *Report {
	start := time.Now()

	var selected []check
	for _, ch := range c.checks {
		if keep(ch) {
			selected = append(selected, ch)
		}
	}

	results := make([]CheckResult, len(selected))
	var g errgroup.Group
	g.SetLimit(4)
	for i, ch := range selected {
		g.Go(func() error {
			r := CheckResult{Status: StatusFail, Message: "context cancelled"}
			if ctx.Err() == nil {
				t := time.Now()
				r = ch.fn(ctx)
				r.Duration = time.Since(t)
			}
			r.Name, r.Category = ch.name, ch.category
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	r := &Report{Results: results, Total: len(results), Duration: time.Since(start)}
	for _, res := range results {
		switch res.Status {
		case StatusPass:
			r.Passed++
		case StatusWarn:
			r.Warned++
		case StatusFail:
			r.Failed++
		}
	}
	r.Healthy = r.Failed == 0
	return r
}
