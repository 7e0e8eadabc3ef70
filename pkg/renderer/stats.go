package renderer

import "time"

// FrameStats describes one completed dispatch.
type FrameStats struct {
	Frame         uint32
	Blocks        int
	Samples       int
	DroppedPushes int
	Duration      time.Duration
}

// RenderStats aggregates stats over a progressive run.
type RenderStats struct {
	Frames        int
	Samples       int
	DroppedPushes int
	Duration      time.Duration
}

// Add folds one frame into the aggregate.
func (rs *RenderStats) Add(fs FrameStats) {
	rs.Frames++
	rs.Samples += fs.Samples
	rs.DroppedPushes += fs.DroppedPushes
	rs.Duration += fs.Duration
}
