package icons

import (
	"sync"

	"go.uber.org/zap"
)

// progressEvery is how many icons pass between progress log lines.
const progressEvery = 500

// Reporter emits periodic progress during long phases. It is safe for
// concurrent Tick calls from the fetch workers.
type Reporter struct {
	logger  *zap.Logger
	phase   string
	total   int
	enabled bool

	mu   sync.Mutex
	done int
}

// NewReporter creates a reporter for a phase of total items. A disabled
// reporter counts but never logs.
func NewReporter(logger *zap.Logger, phase string, total int, enabled bool) *Reporter {
	return &Reporter{logger: logger, phase: phase, total: total, enabled: enabled}
}

// Tick records one processed item.
func (r *Reporter) Tick() {
	r.mu.Lock()
	r.done++
	done := r.done
	r.mu.Unlock()

	if r.enabled && done%progressEvery == 0 {
		r.logger.Info("progress",
			zap.String("phase", r.phase),
			zap.Int("done", done),
			zap.Int("total", r.total))
	}
}

// Finish logs the phase's completion.
func (r *Reporter) Finish() {
	if !r.enabled {
		return
	}
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	r.logger.Info("phase complete",
		zap.String("phase", r.phase),
		zap.Int("done", done),
		zap.Int("total", r.total))
}
