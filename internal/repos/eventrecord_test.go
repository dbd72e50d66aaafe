package repos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
	"github.com/FrankSLB/eneventextract/internal/types"
)

var repoDBSerial int

func newTestRepo(t *testing.T) (EventRecordRepo, *gorm.DB) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(func() {
		log.Sync()
	})

	repoDBSerial++
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", repoDBSerial)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.EventRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewEventRecordRepo(db, log), db
}

func storyRecord(storyID string, sentNo, eventNo int) *types.EventRecord {
	return &types.EventRecord{
		GlobalEventID: types.GlobalEventID(storyID, sentNo, eventNo),
		SQLDate:       time.Date(2021, time.May, 20, 0, 0, 0, 0, time.UTC),
		EventCode:     "190",
		DateAdded:     time.Date(2021, time.August, 15, 0, 0, 0, 0, time.UTC),
		SourceURL:     storyID,
	}
}

func TestEventRecordRepoCreateAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	records := []*types.EventRecord{
		storyRecord("story-a", 1, 0),
		storyRecord("story-a", 1, 1),
		storyRecord("story-b", 1, 0),
	}
	if err := repo.CreateBatch(ctx, nil, records); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	got, err := repo.GetByIDs(ctx, nil, []string{"story-a_1_0", "story-b_1_0", "missing"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByIDs count: want=2 got=%d", len(got))
	}

	byStory, err := repo.GetByStoryID(ctx, nil, "story-a")
	if err != nil {
		t.Fatalf("GetByStoryID: %v", err)
	}
	if len(byStory) != 2 {
		t.Fatalf("GetByStoryID count: want=2 got=%d", len(byStory))
	}
	if byStory[0].GlobalEventID > byStory[1].GlobalEventID {
		t.Fatalf("GetByStoryID order: got=%q then %q", byStory[0].GlobalEventID, byStory[1].GlobalEventID)
	}

	n, err := repo.CountByStoryID(ctx, nil, "story-a")
	if err != nil {
		t.Fatalf("CountByStoryID: %v", err)
	}
	if n != 2 {
		t.Fatalf("CountByStoryID: want=2 got=%d", n)
	}
}

func TestEventRecordRepoEmptyInputs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateBatch(ctx, nil, nil); err != nil {
		t.Fatalf("empty CreateBatch: %v", err)
	}
	if got, err := repo.GetByIDs(ctx, nil, nil); err != nil || len(got) != 0 {
		t.Fatalf("empty GetByIDs: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByStoryID(ctx, nil, ""); err != nil || len(got) != 0 {
		t.Fatalf("empty GetByStoryID: got=%v err=%v", got, err)
	}
	if n, err := repo.CountByStoryID(ctx, nil, ""); err != nil || n != 0 {
		t.Fatalf("empty CountByStoryID: got=%d err=%v", n, err)
	}
}

func TestEventRecordRepoUsesProvidedTransaction(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("begin: %v", tx.Error)
	}
	if err := repo.CreateBatch(ctx, tx, []*types.EventRecord{storyRecord("story-tx", 1, 0)}); err != nil {
		t.Fatalf("CreateBatch in tx: %v", err)
	}
	tx.Rollback()

	n, err := repo.CountByStoryID(ctx, nil, "story-tx")
	if err != nil {
		t.Fatalf("CountByStoryID: %v", err)
	}
	if n != 0 {
		t.Fatalf("rolled-back write visible: count=%d", n)
	}
}
