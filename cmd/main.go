package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FrankSLB/eneventextract/internal/data/db"
	"github.com/FrankSLB/eneventextract/internal/jobs/worker"
	"github.com/FrankSLB/eneventextract/internal/lookup"
	"github.com/FrankSLB/eneventextract/internal/platform/logger"
	"github.com/FrankSLB/eneventextract/internal/platform/solr"
	"github.com/FrankSLB/eneventextract/internal/repos"
	"github.com/FrankSLB/eneventextract/internal/types"
	"github.com/FrankSLB/eneventextract/internal/utils"
	"github.com/FrankSLB/eneventextract/internal/writer"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	lookupDir := utils.GetEnv("LOOKUP_DIR", "data", log)
	concurrency := utils.GetEnvAsInt("WORKER_CONCURRENCY", 4, log)
	commitTimeout := utils.GetEnvAsInt("DB_COMMIT_TIMEOUT_SECONDS", 0, log)
	storiesFile := utils.GetEnv("STORIES_FILE", "", log)
	if len(os.Args) > 1 {
		storiesFile = os.Args[1]
	}
	if storiesFile == "" {
		log.Error("No input: pass an annotated-stories file as argv[1] or STORIES_FILE")
		os.Exit(1)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}

	// Solr
	solrCfg, err := solr.ResolveConfigFromEnv()
	if err != nil {
		log.Error("Solr config invalid", "error", err)
		os.Exit(1)
	}
	geoClient, err := solr.NewGeoClient(log, solrCfg)
	if err != nil {
		log.Error("Could not init geo client", "error", err)
		os.Exit(1)
	}
	indexClient, err := solr.NewIndexClient(log, solrCfg)
	if err != nil {
		log.Error("Could not init index client", "error", err)
		os.Exit(1)
	}

	// Lookup tables: loaded once, shared read-only across workers.
	log.Info("Loading lookup tables...", "dir", lookupDir)
	tables, err := lookup.LoadTables(lookupDir)
	if err != nil {
		log.Error("Could not load actor lookup tables", "error", err)
		os.Exit(1)
	}
	roleTable, err := lookup.LoadRoleCodeTable(filepath.Join(lookupDir, "role_codes.yaml"))
	if err != nil {
		log.Error("Could not load role code table", "error", err)
		os.Exit(1)
	}
	codeTable, err := lookup.LoadCodeTable(filepath.Join(lookupDir, "code_tables.yaml"))
	if err != nil {
		log.Error("Could not load code classification table", "error", err)
		os.Exit(1)
	}

	// Input
	stories, err := loadStories(storiesFile)
	if err != nil {
		log.Error("Could not load annotated stories", "file", storiesFile, "error", err)
		os.Exit(1)
	}
	log.Info("Annotated stories loaded", "file", storiesFile, "stories", len(stories))

	// Pipeline
	reports := writer.NewLogActor(log)

	actors := writer.NewActorResolver(log, tables, geoClient, roleTable)
	builder := writer.NewRecordBuilder(log, writer.EmbeddedAnnotator{}, geoClient, actors, codeTable, time.Now)
	eventRecordRepo := repos.NewEventRecordRepo(postgresService.DB(), log)
	gateway := writer.NewPersistenceGateway(postgresService.DB(), eventRecordRepo, log, reports, writer.GatewayConfig{
		CommitTimeout: time.Duration(commitTimeout) * time.Second,
	})

	sharedSessions := concurrency > 1
	pool := worker.NewPool(log, postgresService, func(workerID int) *writer.EventWriteOrchestrator {
		var workerReports *writer.LogActor
		if sharedSessions {
			workerReports = reports
		}
		return writer.NewEventWriteOrchestrator(log, builder, gateway, indexClient, workerReports, workerID)
	}, concurrency, sharedSessions)

	results := pool.Run(context.Background(), stories)
	reports.Close()

	exitCode := 0
	for i, res := range results {
		log.Info("Worker finished",
			"worker_id", i+1,
			"state", string(res.State),
			"records", res.Records,
			"unindexed_stories", len(res.UnindexedStories),
		)
		if res.State == writer.StatePersistFailed {
			exitCode = 1
		}
	}
	log.Sync()
	os.Exit(exitCode)
}

func loadStories(path string) ([]*types.AnnotatedStory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stories []*types.AnnotatedStory
	if err := json.Unmarshal(raw, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}
