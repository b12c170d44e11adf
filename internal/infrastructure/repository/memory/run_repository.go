package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-points/internal/domain/playerpoints"
)

// RunRepository keeps only the latest persisted run.
type RunRepository struct {
	mu     sync.RWMutex
	latest *playerpoints.Run
}

func NewRunRepository() *RunRepository {
	return &RunRepository{}
}

func (r *RunRepository) ReplaceRun(_ context.Context, run playerpoints.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}

	r.mu.Lock()
	r.latest = &run
	r.mu.Unlock()
	return nil
}

func (r *RunRepository) Latest() (playerpoints.Run, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.latest == nil {
		return playerpoints.Run{}, false
	}
	return *r.latest, true
}
