package floataudit

import (
	"sync"

	"github.com/agentstation/floataudit/pkg/auxfile"
	"github.com/agentstation/floataudit/pkg/directive"
	"github.com/agentstation/floataudit/pkg/reconcile"
)

// Hook function types for audit events
type (
	// FileVisitedHook is called for every auxiliary file, in traversal order
	FileVisitedHook func(file *auxfile.File, records directive.Records)

	// ConflictHook is called for every caption redefinition with a different number
	ConflictHook func(conflict reconcile.Conflict)
)

// hooks manages event callbacks for an audit
type hooks struct {
	mu         sync.RWMutex
	onFile     []FileVisitedHook
	onConflict []ConflictHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnFileVisited registers a callback for visited files
func (h *hooks) OnFileVisited(fn FileVisitedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFile = append(h.onFile, fn)
}

// OnConflict registers a callback for caption conflicts
func (h *hooks) OnConflict(fn ConflictHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConflict = append(h.onConflict, fn)
}

func (h *hooks) triggerFileVisited(file *auxfile.File, records directive.Records) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onFile {
		fn(file, records)
	}
}

func (h *hooks) triggerConflicts(conflicts []reconcile.Conflict) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range conflicts {
		for _, fn := range h.onConflict {
			fn(c)
		}
	}
}
