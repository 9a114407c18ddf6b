package ports

import (
	"context"

	"foundation/internal/types"
)

// TrackerPort delivers analytics events to a tracking backend. Delivery is
// fire-once; implementations do not retry.
type TrackerPort interface {
	Send(ctx context.Context, event types.Event) error
}
