package app

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/comfortmap/internal/adapters/detector"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// WatchJobs runs the named jobs once, then re-runs every job whose input
// sources change until ctx is canceled. report receives the successful
// results of each round; failures are logged and do not stop watching.
// Progress is always reported line by line.
func (a *App) WatchJobs(ctx context.Context, jobNames []string, opts RunOptions, report func([]JobResult)) error {
	if a.watcher == nil {
		return zerr.Wrap(domain.ErrWatchFailed, "no file watcher configured")
	}

	if _, err := detector.ResolveMode(detector.ModeLinear, opts.OutputMode); err != nil {
		return err
	}
	// Rounds share the terminal with watch logs.
	opts.OutputMode = detector.ModeLinear.String()

	set, err := a.loadJobs(jobNames)
	if err != nil {
		return err
	}

	a.runRound(ctx, set, set.jobs, opts, report)

	return a.watcher.Watch(ctx, set.project.Root, func(paths []string) {
		jobs := set.affectedBy(paths)
		if len(jobs) == 0 {
			return
		}

		names := make([]string, len(jobs))
		for i, job := range jobs {
			names[i] = job.Name
		}
		a.logger.Info("inputs changed, re-running " + strings.Join(names, ", "))

		a.runRound(ctx, set, jobs, opts, report)
	})
}

func (a *App) runRound(ctx context.Context, set *jobSet, jobs []*domain.Job, opts RunOptions, report func([]JobResult)) {
	results, err := a.runJobs(ctx, set, jobs, opts)
	if err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
	if report != nil {
		report(results)
	}
}

// affectedBy returns the jobs, in selection order, that read any of the changed paths.
func (s *jobSet) affectedBy(paths []string) []*domain.Job {
	var affected []*domain.Job
	for _, job := range s.jobs {
		sources := s.sources(job)
		for _, p := range paths {
			if within(p, sources) {
				affected = append(affected, job)
				break
			}
		}
	}
	return affected
}

// sources lists the files and folders a job reads: bound sources, or the
// declared path inside the work directory for inputs found in place.
func (s *jobSet) sources(job *domain.Job) []string {
	d := s.descriptors[job.Name]
	values := s.values(job)

	var out []string
	for _, in := range d.Inputs {
		if !in.IsPath() {
			continue
		}
		if src := values[in.Name]; src != "" {
			out = append(out, filepath.Clean(src))
			continue
		}
		out = append(out, filepath.Join(job.WorkDir, in.Path))
	}
	return out
}

func within(path string, sources []string) bool {
	path = filepath.Clean(path)
	for _, src := range sources {
		if path == src || strings.HasPrefix(path, src+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
