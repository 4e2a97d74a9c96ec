package unzipper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// TaskResult is the outcome of one top-level archive of a batch.
type TaskResult struct {
	Path     string
	Success  bool
	Err      error
	Stats    Stats
	Duration time.Duration
}

type Result struct {
	Total     int
	Completed int
	Failed    int

	// Interrupted is set when the context was cancelled before every
	// archive was processed.
	Interrupted bool

	Tasks []TaskResult
}

// Err combines the errors of all failed archives, or returns nil if there
// were none.
func (r *Result) Err() error {
	var result *multierror.Error

	for _, task := range r.Tasks {
		if task.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", filepath.Base(task.Path), task.Err))
		}
	}

	return result.ErrorOrNil()
}

// Runner extracts every zip file found directly in a source directory, one
// after the other.
type Runner struct {
	Extractor *Extractor
	Metrics   *Metrics

	progress Progress
}

// Progress returns the cell Run publishes its progress to.
func (r *Runner) Progress() *Progress {
	return &r.progress
}

// Run extracts each *.zip file of sourceDir into destDir. A failing archive
// doesn't stop the batch; it's logged, recorded in the result and the
// progress still advances. The context is checked between archives only.
func (r *Runner) Run(ctx context.Context, sourceDir, destDir string) (*Result, error) {
	if sourceDir == "" || destDir == "" {
		return nil, ErrMissingDirectory
	}

	files, err := ListArchives(sourceDir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}

	extractor := r.Extractor
	if extractor == nil {
		extractor = &Extractor{Metrics: r.Metrics}
	}

	result := &Result{
		Total: len(files),
		Tasks: make([]TaskResult, 0, len(files)),
	}

	r.progress.start(len(files))
	r.Metrics.setBatch(0, len(files))

	logrus.WithFields(logrus.Fields{
		"source":      sourceDir,
		"destination": destDir,
		"archives":    len(files),
	}).Infoln("Starting extraction")

	for _, path := range files {
		if ctx.Err() != nil {
			result.Interrupted = true
			return result, fmt.Errorf("batch interrupted: %w", ctx.Err())
		}

		task := r.runTask(ctx, extractor, path, destDir)
		result.Tasks = append(result.Tasks, task)
		if !task.Success {
			result.Failed++
		}

		result.Completed = r.progress.advance()
		r.Metrics.setBatch(result.Completed, result.Total)
	}

	logrus.WithFields(logrus.Fields{
		"completed": result.Completed,
		"failed":    result.Failed,
	}).Infoln("Extraction finished")

	return result, nil
}

func (r *Runner) runTask(ctx context.Context, extractor *Extractor, path, destDir string) TaskResult {
	started := time.Now()

	stats, err := extractor.ExtractWithStats(ctx, path, destDir)
	task := TaskResult{
		Path:     path,
		Success:  err == nil,
		Err:      err,
		Stats:    stats,
		Duration: time.Since(started),
	}

	r.Metrics.observeArchive(task.Success, task.Duration)

	return task
}

// ListArchives returns the paths of the entries of dir whose name ends with
// NestedSuffix, in directory order. Subdirectories are not searched.
func ListArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing source directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), NestedSuffix) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}
