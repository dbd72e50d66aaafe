package repos

import (
	"context"
	"testing"

	"github.com/FrankSLB/eneventextract/internal/repos/testutil"
	"github.com/FrankSLB/eneventextract/internal/types"
)

func TestEventRecordRepoPostgres(t *testing.T) {
	db := testutil.DB(t)
	repo := NewEventRecordRepo(db, testutil.Logger(t))
	ctx := context.Background()
	tx := testutil.Tx(t, db)

	records := []*types.EventRecord{
		storyRecord("pg-story-a", 1, 0),
		storyRecord("pg-story-a", 2, 0),
	}
	if err := repo.CreateBatch(ctx, tx, records); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	got, err := repo.GetByStoryID(ctx, tx, "pg-story-a")
	if err != nil {
		t.Fatalf("GetByStoryID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByStoryID count: want=2 got=%d", len(got))
	}

	n, err := repo.CountByStoryID(ctx, tx, "pg-story-a")
	if err != nil {
		t.Fatalf("CountByStoryID: %v", err)
	}
	if n != 2 {
		t.Fatalf("CountByStoryID: want=2 got=%d", n)
	}
}
