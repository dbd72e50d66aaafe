package writer

import (
	"context"
	"testing"

	"github.com/FrankSLB/eneventextract/internal/types"
)

type fakeMirror struct {
	failFor map[string]bool
	calls   []string
}

func (f *fakeMirror) Index(_ context.Context, storyID string) bool {
	f.calls = append(f.calls, storyID)
	return !f.failFor[storyID]
}

func (f *fakeMirror) callCount(storyID string) int {
	n := 0
	for _, id := range f.calls {
		if id == storyID {
			n++
		}
	}
	return n
}

func newTestOrchestrator(t *testing.T, mirror IndexMirror) *EventWriteOrchestrator {
	t.Helper()
	log := newTestLogger(t)
	f := newBuilderFixture(t)
	gateway := newTestGateway(t, openTestDB(t), nil, GatewayConfig{})
	return NewEventWriteOrchestrator(log, f.builder, gateway, mirror, nil, 0)
}

func discardedStory(id string) *types.AnnotatedStory {
	return &types.AnnotatedStory{StoryID: id}
}

func namedStory(id string) *types.AnnotatedStory {
	s := testStory()
	s.StoryID = id
	return s
}

func TestOrchestratorPersistsAndMirrors(t *testing.T) {
	mirror := &fakeMirror{}
	o := newTestOrchestrator(t, mirror)

	stories := []*types.AnnotatedStory{
		namedStory("story-a"),
		discardedStory("story-b"),
	}
	res := o.WriteStories(context.Background(), nil, stories)

	if res.State != StateIndexed {
		t.Fatalf("state: want=%s got=%s", StateIndexed, res.State)
	}
	if res.Records != 1 {
		t.Fatalf("records: want=1 got=%d", res.Records)
	}
	if mirror.callCount("story-a") != 1 || mirror.callCount("story-b") != 1 {
		t.Fatalf("each story mirrored exactly once, calls=%v", mirror.calls)
	}
}

func TestOrchestratorEmptyBatchStillMirrorsEveryStory(t *testing.T) {
	mirror := &fakeMirror{}
	o := newTestOrchestrator(t, mirror)

	stories := []*types.AnnotatedStory{
		discardedStory("story-a"),
		discardedStory("story-b"),
		discardedStory("story-c"),
	}
	res := o.WriteStories(context.Background(), nil, stories)

	if res.State != StateIndexed {
		t.Fatalf("state: want=%s got=%s", StateIndexed, res.State)
	}
	if res.Records != 0 {
		t.Fatalf("records: want=0 got=%d", res.Records)
	}
	if len(mirror.calls) != 3 {
		t.Fatalf("mirror calls: want=3 got=%v", mirror.calls)
	}
}

func TestOrchestratorCommitFailureSuppressesMirroring(t *testing.T) {
	mirror := &fakeMirror{}
	log := newTestLogger(t)
	f := newBuilderFixture(t)
	db := openTestDB(t)
	gateway := newTestGateway(t, db, nil, GatewayConfig{})
	o := NewEventWriteOrchestrator(log, f.builder, gateway, mirror, nil, 0)

	story := namedStory("story-a")
	if res := o.WriteStories(context.Background(), nil, []*types.AnnotatedStory{story}); res.State != StateIndexed {
		t.Fatalf("first write state: want=%s got=%s", StateIndexed, res.State)
	}

	// Same story again collides on the primary key.
	mirror.calls = nil
	res := o.WriteStories(context.Background(), nil, []*types.AnnotatedStory{story, discardedStory("story-b")})
	if res.State != StatePersistFailed {
		t.Fatalf("state: want=%s got=%s", StatePersistFailed, res.State)
	}
	if len(mirror.calls) != 0 {
		t.Fatalf("no story may be mirrored after a failed commit, calls=%v", mirror.calls)
	}
}

func TestOrchestratorMirrorFailureIsReportedNotEscalated(t *testing.T) {
	mirror := &fakeMirror{failFor: map[string]bool{"story-b": true}}
	o := newTestOrchestrator(t, mirror)

	stories := []*types.AnnotatedStory{
		namedStory("story-a"),
		discardedStory("story-b"),
	}
	res := o.WriteStories(context.Background(), nil, stories)

	if res.State != StateIndexFailed {
		t.Fatalf("state: want=%s got=%s", StateIndexFailed, res.State)
	}
	if res.Records != 1 {
		t.Fatalf("records survive a mirror failure, want=1 got=%d", res.Records)
	}
	if len(res.UnindexedStories) != 1 || res.UnindexedStories[0] != "story-b" {
		t.Fatalf("unindexed stories: want=[story-b] got=%v", res.UnindexedStories)
	}
}

func TestOrchestratorSkipsNilStories(t *testing.T) {
	mirror := &fakeMirror{}
	o := newTestOrchestrator(t, mirror)

	res := o.WriteStories(context.Background(), nil, []*types.AnnotatedStory{nil, namedStory("story-a")})
	if res.State != StateIndexed {
		t.Fatalf("state: want=%s got=%s", StateIndexed, res.State)
	}
	if len(mirror.calls) != 1 || mirror.calls[0] != "story-a" {
		t.Fatalf("mirror calls: want=[story-a] got=%v", mirror.calls)
	}
}
