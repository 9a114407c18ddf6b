package adapters

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"foundation/internal/types"
)

// EventLogAdapter writes each event as one JSON line instead of sending it.
type EventLogAdapter struct {
	Out io.Writer
}

func NewEventLogAdapter(out io.Writer) EventLogAdapter {
	if out == nil {
		out = os.Stdout
	}
	return EventLogAdapter{Out: out}
}

func (a EventLogAdapter) Send(ctx context.Context, event types.Event) error {
	if err := ctx.Err(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("event log cancelled").
			WithCause(err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode event").
			WithCause(err)
	}
	if _, err := a.Out.Write(append(data, '\n')); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write event").
			WithCause(err)
	}
	log.Debug().
		Str("category", string(event.Category)).
		Str("action", event.Action).
		Msg("event logged")
	return nil
}
