package writer

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
	"github.com/FrankSLB/eneventextract/internal/repos"
	"github.com/FrankSLB/eneventextract/internal/types"
)

type GatewayConfig struct {
	// CommitTimeout bounds one batch write; zero trusts the driver's own
	// defaults. Operator-configured, never hard-coded.
	CommitTimeout time.Duration
}

// PersistenceGateway commits record batches atomically. One code path
// serves both operating modes: pass a nil session and the gateway opens
// and owns its own connection for the call (isolated mode); pass a
// worker-owned session and the gateway uses it and reports the outcome
// through the shared log actor (shared-session mode). Either way the
// result is a boolean; no failure escapes the boundary.
type PersistenceGateway struct {
	db      *gorm.DB
	records repos.EventRecordRepo
	log     *logger.Logger
	reports *LogActor
	cfg     GatewayConfig
}

func NewPersistenceGateway(db *gorm.DB, records repos.EventRecordRepo, baseLog *logger.Logger, reports *LogActor, cfg GatewayConfig) *PersistenceGateway {
	return &PersistenceGateway{
		db:      db,
		records: records,
		log:     baseLog.With("component", "PersistenceGateway"),
		reports: reports,
		cfg:     cfg,
	}
}

func (g *PersistenceGateway) WriteBatch(ctx context.Context, session *gorm.DB, workerID int, records []*types.EventRecord) (ok bool) {
	if len(records) == 0 {
		return true
	}
	batchID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			g.reportFailure(session != nil, workerID, batchID, fmt.Sprintf("panic: %v", r))
			ok = false
		}
	}()

	if g.cfg.CommitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.CommitTimeout)
		defer cancel()
	}

	target := session
	shared := session != nil
	if !shared {
		target = g.db.Session(&gorm.Session{NewDB: true})
	}

	tx := target.WithContext(ctx).Begin()
	if tx.Error != nil {
		g.reportFailure(shared, workerID, batchID, tx.Error.Error())
		return false
	}
	if err := g.records.CreateBatch(ctx, tx, records); err != nil {
		tx.Rollback()
		g.reportFailure(shared, workerID, batchID, err.Error())
		return false
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		g.reportFailure(shared, workerID, batchID, err.Error())
		return false
	}

	if shared {
		g.reports.Info(workerID, "Write to database successfully.")
	} else {
		g.log.Info("batch committed", "batch_id", batchID, "records", len(records))
	}
	return true
}

// reportFailure logs the error with replacement characters for undecodable
// bytes and echoes a lossier ignore-mode variant to the console, matching
// the operator-facing contract for commit failures.
func (g *PersistenceGateway) reportFailure(shared bool, workerID int, batchID, errMsg string) {
	replaced := strings.ToValidUTF8(errMsg, string(utf8.RuneError))
	fmt.Println(dropInvalidUTF8(errMsg))

	if shared {
		g.reports.Warn(workerID, "Write to database failed: "+replaced)
		return
	}
	g.log.Warn("batch commit failed", "batch_id", batchID, "error", replaced)
}

func dropInvalidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		b.WriteRune(r)
		i += size
	}
	return b.String()
}
