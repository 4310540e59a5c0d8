// Package preview serves a built site for local development and rebuilds it
// when the project changes.
package preview

import (
	"sync"
	"time"
)

// BuildStatus tracks the outcome of the most recent build for display by the
// dev server. It is safe for concurrent use.
type BuildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastBuild    time.Time
	hasGoodBuild bool // true if at least one successful build exists
}

// SetError records a failed build.
func (bs *BuildStatus) SetError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	bs.lastBuild = time.Now()
}

// SetSuccess records a successful build.
func (bs *BuildStatus) SetSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.lastBuild = time.Now()
	bs.hasGoodBuild = true
}

// Snapshot returns the last error (nil after success), the time of the last
// build and whether any build has succeeded.
func (bs *BuildStatus) Snapshot() (lastErr error, at time.Time, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.lastBuild, bs.hasGoodBuild
}
