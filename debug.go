package drake

import (
	"fmt"
	"os"
	"time"
)

// FrameStats holds draw metrics for the most recent Render call.
type FrameStats struct {
	Objects      int // objects in the pool, visible or not
	Batches      int // contiguous state groups walked in the main pass
	DrawCalls    int // GPU submissions, shadow composites included
	Vertices     int // vertices submitted this frame
	ShadowGroups int // distinct blur-radius groups this frame

	SortTime   time.Duration // time spent re-sorting the pool, zero when clean
	RenderTime time.Duration // total wall time of the Render call
}

func (s *FrameStats) reset() {
	*s = FrameStats{}
}

// Stats returns the metrics gathered during the last Render call.
func (e *Engine) Stats() FrameStats {
	if !e.ok() {
		return FrameStats{}
	}
	return e.stats
}

// DebugLog prints the last frame's stats to stderr.
func (e *Engine) DebugLog() {
	if !e.ok() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[drake] objects: %d | batches: %d | draw calls: %d | vertices: %d | shadow groups: %d | sort: %s | render: %s\n",
		e.stats.Objects, e.stats.Batches, e.stats.DrawCalls, e.stats.Vertices, e.stats.ShadowGroups,
		e.stats.SortTime, e.stats.RenderTime)
}
