package writer

import (
	"sync"
	"testing"
)

func TestLogActorDrainsOnClose(t *testing.T) {
	a := NewLogActor(newTestLogger(t))
	for i := 0; i < 200; i++ {
		a.Info(i%4, "Write to database successfully.")
	}
	a.Close()
}

func TestLogActorConcurrentReporters(t *testing.T) {
	a := NewLogActor(newTestLogger(t))

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if i%2 == 0 {
					a.Info(workerID, "Write to database successfully.")
				} else {
					a.Warn(workerID, "Write to database failed: timeout")
				}
			}
		}(w)
	}
	wg.Wait()
	a.Close()
}

func TestLogActorNilIsSafe(t *testing.T) {
	var a *LogActor
	a.Info(0, "ignored")
	a.Warn(0, "ignored")
	a.Close()
}
