// Package batch assesses many borehole files concurrently.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

// Result is the outcome for one file. Err is set when loading or assessing
// failed; the other files are still processed.
type Result struct {
	Path       string
	Record     *borehole.Record
	Assessment *liquefaction.Assessment
	Err        error
	Elapsed    time.Duration
}

// Runner assesses files with a shared pipeline
type Runner struct {
	Pipeline *liquefaction.Pipeline
	Loader   *borehole.Loader
	Jobs     int      // concurrent files, <= 0 means runtime.NumCPU()
	GWL      *float64 // ground water level override for every file
	Log      *zap.Logger
}

// Discover lists the files in dir whose names match pattern, ignoring case,
// in lexical order. Subdirectories are not searched.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.XML"
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, _ := filepath.Match(strings.ToUpper(pattern), strings.ToUpper(e.Name()))
		if ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Run assesses every path. Results keep the order of paths. The returned
// error is only set when ctx is cancelled; files not reached then carry
// context.Canceled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	loader := r.Loader
	if loader == nil {
		loader = &borehole.Loader{Log: log}
	}
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(paths))
	for i, path := range paths {
		results[i] = Result{Path: path, Err: context.Canceled}
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.assess(gctx, loader, path, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) assess(ctx context.Context, loader *borehole.Loader, path string, log *zap.Logger) Result {
	start := time.Now()
	res := Result{Path: path}

	rec, err := loader.Load(ctx, path)
	if err != nil {
		res.Err = err
		log.Warn("load failed", zap.String("path", path), zap.Error(err))
		res.Elapsed = time.Since(start)
		return res
	}
	res.Record = rec

	a, err := r.Pipeline.Assess(rec, r.GWL)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		log.Warn("assessment failed", zap.String("path", path), zap.Error(err))
		res.Elapsed = time.Since(start)
		return res
	}
	res.Assessment = a
	res.Elapsed = time.Since(start)

	log.Info("assessed",
		zap.String("path", path),
		zap.Float64("min_fl", a.Summary.MinFL),
		zap.String("risk", string(a.Summary.Risk)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// Failed returns the results that carry an error
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
