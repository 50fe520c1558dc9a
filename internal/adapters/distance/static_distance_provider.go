package distance

import (
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sync"
)

// StaticPair is one fixed origin to destination answer.
type StaticPair struct {
	From, To string
	Meters   int
	Seconds  int
}

// StaticDistanceProvider answers from a fixed table. It backs tests and
// offline runs. Pairs added with Fail return the given error instead.
type StaticDistanceProvider struct {
	mu    sync.Mutex
	m     map[string]ports.DistanceResult
	fails map[string]error
	calls []string
}

func NewStaticDistanceProvider(pairs []StaticPair) *StaticDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &StaticDistanceProvider{m: m, fails: map[string]error{}}
}

// Fail makes every lookup for the pair return err.
func (p *StaticDistanceProvider) Fail(from, to string, err error) {
	if err == nil {
		err = errors.New("static provider failure")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fails[pairKey(from, to)] = err
}

func (p *StaticDistanceProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}

	key := pairKey(origin, destination)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, key)

	if err, ok := p.fails[key]; ok {
		return ports.DistanceResult{}, err
	}
	r, ok := p.m[key]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q: %w", origin, destination, ErrNoRoute)
	}

	return r, nil
}

// Calls returns the looked-up pairs in order, formatted "from|to".
func (p *StaticDistanceProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func pairKey(from, to string) string {
	return from + "|" + to
}
