package ports

import "context"

// Reaper removes expired public files. SweepOnce is driven by an external
// tick (the app's timer or the maintenance endpoint) and is safe to run
// concurrently with itself.
type Reaper interface {
	SweepOnce(ctx context.Context) (int, error)
}
