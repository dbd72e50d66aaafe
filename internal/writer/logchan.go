package writer

import (
	"sync"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
)

type reportLevel int

const (
	reportInfo reportLevel = iota
	reportWarn
)

type report struct {
	workerID int
	level    reportLevel
	text     string
}

// LogActor serializes worker write reports through a single goroutine so
// concurrent workers can never interleave their lines on the shared log
// target. One message per worker event.
type LogActor struct {
	log *logger.Logger
	ch  chan report
	wg  sync.WaitGroup
}

func NewLogActor(baseLog *logger.Logger) *LogActor {
	a := &LogActor{
		log: baseLog.With("component", "WriteReportLog"),
		ch:  make(chan report, 64),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *LogActor) run() {
	defer a.wg.Done()
	for r := range a.ch {
		switch r.level {
		case reportWarn:
			a.log.Warn(r.text, "worker_id", r.workerID)
		default:
			a.log.Info(r.text, "worker_id", r.workerID)
		}
	}
}

func (a *LogActor) Info(workerID int, text string) {
	if a == nil {
		return
	}
	a.ch <- report{workerID: workerID, level: reportInfo, text: text}
}

func (a *LogActor) Warn(workerID int, text string) {
	if a == nil {
		return
	}
	a.ch <- report{workerID: workerID, level: reportWarn, text: text}
}

// Close drains any queued reports and stops the actor. Callers must not
// report after Close.
func (a *LogActor) Close() {
	if a == nil {
		return
	}
	close(a.ch)
	a.wg.Wait()
}
