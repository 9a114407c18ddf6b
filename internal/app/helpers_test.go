package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"foundation/internal/adapters"
	"foundation/internal/core"
	"foundation/internal/types"
)

type recordingTracker struct {
	events []types.Event
	err    error
}

func (r *recordingTracker) Send(_ context.Context, event types.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

var errCollectorDown = errors.New("collector down")

func newTestService(t *testing.T, tracker *recordingTracker) Service {
	t.Helper()
	dates, err := core.NewDateParser(core.DefaultAdditionalDigits, time.UTC, adapters.NewDateFallbackAdapter())
	require.NoError(t, err)
	storage := adapters.NewStorageFileAdapter(filepath.Join(t.TempDir(), "storage.yaml"))
	return Service{
		Dates:       dates,
		Users:       adapters.NewUserFileAdapter(),
		Storage:     storage,
		Credentials: adapters.NewTokenCredentialAdapter(storage),
		Tracker:     tracker,
		Clock: func() time.Time {
			return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
		},
	}
}
