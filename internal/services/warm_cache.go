package services

import (
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"sync"
)

// WarmReport summarizes a cache warm-up run.
type WarmReport struct {
	Pairs  int
	Failed int
	Errors []error
}

type warmResult struct {
	origin string
	ok     int
	failed int
	err    error
}

// WarmDistanceCache looks up every technician home to project site pair in
// both directions so later form submissions hit the distance cache.
//
// Batched lookups are used when the provider supports them. Up to five
// origins are processed concurrently. Failures are counted, not fatal.
func WarmDistanceCache(
	ctx context.Context,
	dir ports.Directory,
	provider ports.DistanceProvider,
) WarmReport {
	homes := make([]string, 0)
	for _, t := range dir.Technicians() {
		homes = append(homes, t.HomeAddress)
	}
	sites := make([]string, 0)
	for _, p := range dir.Projects() {
		sites = append(sites, p.Address)
	}

	type job struct {
		origin  string
		targets []string
	}
	jobs := make([]job, 0, len(homes)+len(sites))
	for _, h := range homes {
		jobs = append(jobs, job{origin: h, targets: sites})
	}
	for _, s := range sites {
		jobs = append(jobs, job{origin: s, targets: homes})
	}

	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	sem := make(chan struct{}, 5)
	resultsCh := make(chan warmResult, len(jobs))
	var wg sync.WaitGroup

	for _, j := range jobs {
		if len(j.targets) == 0 {
			continue
		}

		wg.Add(1)
		go func(j job) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if hasMatrix {
				resultsCh <- warmBatch(ctx, mp, j.origin, j.targets)
				return
			}

			r := warmResult{origin: j.origin}
			for _, t := range j.targets {
				if _, err := provider.GetDistance(ctx, j.origin, t); err != nil {
					r.failed++
					if r.err == nil {
						r.err = err
					}
					continue
				}
				r.ok++
			}
			resultsCh <- r
		}(j)
	}

	wg.Wait()
	close(resultsCh)

	var report WarmReport
	for r := range resultsCh {
		report.Pairs += r.ok + r.failed
		report.Failed += r.failed
		if r.err != nil {
			report.Errors = append(report.Errors, r.err)
		}
	}

	return report
}

// warmBatch fetches one origin row. Unroutable destinations count as
// individual failures; any other error fails the whole row.
func warmBatch(ctx context.Context, mp ports.DistanceMatrixProvider, origin string, targets []string) warmResult {
	_, err := mp.GetDistances(ctx, origin, targets)
	if err == nil {
		return warmResult{origin: origin, ok: len(targets)}
	}

	var unroutable *ports.UnroutableError
	if errors.As(err, &unroutable) {
		failed := min(len(unroutable.Destinations), len(targets))
		return warmResult{origin: origin, ok: len(targets) - failed, failed: failed, err: err}
	}
	return warmResult{origin: origin, failed: len(targets), err: err}
}
