package charts

import (
	"context"
	"sync"
)

// Latest lets only the most recent run per key proceed: starting a run
// cancels the previous in-flight run with the same key.
type Latest struct {
	mu      sync.Mutex
	seq     uint64
	running map[string]latestRun
}

type latestRun struct {
	id     uint64
	cancel context.CancelFunc
}

func NewLatest() *Latest {
	return &Latest{running: make(map[string]latestRun)}
}

// Begin derives a context for a new run of key. The returned func must be
// called when the run ends.
func (l *Latest) Begin(ctx context.Context, key string) (context.Context, func()) {
	runCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if prev, ok := l.running[key]; ok {
		prev.cancel()
	}
	l.seq++
	id := l.seq
	l.running[key] = latestRun{id: id, cancel: cancel}
	l.mu.Unlock()

	return runCtx, func() {
		cancel()
		l.mu.Lock()
		if cur, ok := l.running[key]; ok && cur.id == id {
			delete(l.running, key)
		}
		l.mu.Unlock()
	}
}

// InFlight returns the number of keys with a running run.
func (l *Latest) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.running)
}
