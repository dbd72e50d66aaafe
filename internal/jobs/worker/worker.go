package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
	"github.com/FrankSLB/eneventextract/internal/types"
	"github.com/FrankSLB/eneventextract/internal/writer"
)

// SessionSource hands each worker its own exclusive database session.
type SessionSource interface {
	Session() *gorm.DB
}

// Pool runs a fixed number of orchestrator workers, each over a disjoint
// slice of the stories. In shared-session mode every worker owns one
// long-lived session for its lifetime; otherwise the gateway opens an
// isolated connection per write call.
type Pool struct {
	log             *logger.Logger
	sessions        SessionSource
	newOrchestrator func(workerID int) *writer.EventWriteOrchestrator
	concurrency     int
	sharedSessions  bool
}

func NewPool(baseLog *logger.Logger, sessions SessionSource, newOrchestrator func(workerID int) *writer.EventWriteOrchestrator, concurrency int, sharedSessions bool) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{
		log:             baseLog.With("component", "WriterPool"),
		sessions:        sessions,
		newOrchestrator: newOrchestrator,
		concurrency:     concurrency,
		sharedSessions:  sharedSessions,
	}
}

// Run partitions stories across the workers and blocks until every worker
// has reached a terminal state. Results are ordered by worker id.
func (p *Pool) Run(ctx context.Context, stories []*types.AnnotatedStory) []writer.WriteResult {
	slices := partition(stories, p.concurrency)
	results := make([]writer.WriteResult, len(slices))
	p.log.Info("Starting writer pool", "concurrency", len(slices), "stories", len(stories), "shared_sessions", p.sharedSessions)

	g, ctx := errgroup.WithContext(ctx)
	for i, slice := range slices {
		workerID := i + 1
		slice := slice
		idx := i
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					p.log.Error("Worker panic",
						"worker_id", workerID,
						"stories", len(slice),
						"panic", r,
					)
					results[idx] = writer.WriteResult{State: writer.StatePersistFailed}
				}
			}()
			var session *gorm.DB
			if p.sharedSessions {
				session = p.sessions.Session()
			}
			orch := p.newOrchestrator(workerID)
			results[idx] = orch.WriteStories(ctx, session, slice)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// partition splits stories into at most n contiguous disjoint slices;
// workers beyond the story count are not spawned.
func partition(stories []*types.AnnotatedStory, n int) [][]*types.AnnotatedStory {
	if len(stories) == 0 {
		return [][]*types.AnnotatedStory{nil}
	}
	if n > len(stories) {
		n = len(stories)
	}
	out := make([][]*types.AnnotatedStory, 0, n)
	chunk := len(stories) / n
	rem := len(stories) % n
	start := 0
	for i := 0; i < n; i++ {
		size := chunk
		if i < rem {
			size++
		}
		out = append(out, stories[start:start+size])
		start += size
	}
	return out
}
