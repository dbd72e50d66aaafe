package writer

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
	"github.com/FrankSLB/eneventextract/internal/types"
)

// IndexMirror pushes a committed story into the search index. A false
// result is a reconciliation item, never a rollback.
type IndexMirror interface {
	Index(ctx context.Context, storyID string) bool
}

type WriteState string

const (
	StateCollecting    WriteState = "COLLECTING"
	StateBatched       WriteState = "BATCHED"
	StatePersisted     WriteState = "PERSISTED"
	StatePersistFailed WriteState = "PERSIST_FAILED"
	StateIndexed       WriteState = "INDEXED"
	StateIndexFailed   WriteState = "INDEX_FAILED"
)

// WriteResult is the terminal outcome for one batch of stories.
type WriteResult struct {
	State            WriteState
	Records          int
	UnindexedStories []string // story ids whose index mirror call failed
}

// EventWriteOrchestrator walks stories → sentences → events, builds one
// record per mention, commits the whole batch in one gateway call and then
// mirrors each story into the search index.
type EventWriteOrchestrator struct {
	log      *logger.Logger
	builder  *RecordBuilder
	gateway  *PersistenceGateway
	mirror   IndexMirror
	reports  *LogActor
	workerID int
}

func NewEventWriteOrchestrator(baseLog *logger.Logger, builder *RecordBuilder, gateway *PersistenceGateway, mirror IndexMirror, reports *LogActor, workerID int) *EventWriteOrchestrator {
	return &EventWriteOrchestrator{
		log:      baseLog.With("component", "EventWriteOrchestrator", "worker_id", workerID),
		builder:  builder,
		gateway:  gateway,
		mirror:   mirror,
		reports:  reports,
		workerID: workerID,
	}
}

// WriteStories processes one batch. Pass a nil session for isolated mode
// or this worker's exclusive session for shared-session mode. A story with
// nil sentences contributes no records but is still mirrored; a commit
// failure suppresses mirroring for every story in the batch.
func (o *EventWriteOrchestrator) WriteStories(ctx context.Context, session *gorm.DB, stories []*types.AnnotatedStory) WriteResult {
	var records []*types.EventRecord
	var contributing []string

	for _, story := range stories {
		if story == nil || story.Sentences == nil {
			continue
		}
		before := len(records)
		for _, sentNo := range story.SentenceNumbers() {
			sent := story.Sentences[sentNo]
			if sent == nil || len(sent.Events) == 0 {
				continue
			}
			for eventNo, ev := range sent.Events {
				if rec := o.builder.Build(ctx, story, sentNo, sent, eventNo, ev); rec != nil {
					records = append(records, rec)
				}
			}
		}
		if len(records) > before {
			contributing = append(contributing, story.StoryID)
		}
	}

	if len(records) > 0 {
		if !o.gateway.WriteBatch(ctx, session, o.workerID, records) {
			o.warn(fmt.Sprintf("batch commit failed, no story indexed; affected stories: %s", strings.Join(contributing, ", ")))
			return WriteResult{State: StatePersistFailed, Records: len(records)}
		}
	}

	// Every story is mirrored exactly once, including ones that
	// contributed no records.
	var unindexed []string
	for _, story := range stories {
		if story == nil || story.StoryID == "" {
			continue
		}
		if !o.mirror.Index(ctx, story.StoryID) {
			unindexed = append(unindexed, story.StoryID)
			o.warn("Something goes wrong in solr write, please check the log. story_id:" + story.StoryID)
		}
	}

	if len(unindexed) > 0 {
		return WriteResult{State: StateIndexFailed, Records: len(records), UnindexedStories: unindexed}
	}
	return WriteResult{State: StateIndexed, Records: len(records)}
}

// warn routes through the shared log actor when this orchestrator is one
// of several workers sharing a log target, and directly otherwise.
func (o *EventWriteOrchestrator) warn(msg string) {
	if o.reports != nil {
		o.reports.Warn(o.workerID, msg)
		return
	}
	o.log.Warn(msg)
}
