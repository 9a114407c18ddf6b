package app

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"foundation/internal/core"
	"foundation/internal/policies"
	"foundation/internal/types"
)

func (s Service) TrackJobView(ctx context.Context, jobSlug string) (TrackResult, error) {
	if !policies.AllowJobView(jobSlug) {
		return skipped("job view without slug"), nil
	}
	return s.send(ctx, core.JobView(jobSlug))
}

func (s Service) TrackJobClick(ctx context.Context, target types.ClickTarget, jobSlug string) (TrackResult, error) {
	if !policies.AllowJobClick(target, jobSlug) {
		return skipped("job click outside an anchor or without slug"), nil
	}
	return s.send(ctx, core.JobClick(jobSlug))
}

func (s Service) TrackJobSearch(ctx context.Context, filters types.Filters) (TrackResult, error) {
	return s.send(ctx, core.JobSearch(filters))
}

func (s Service) TrackAlert(ctx context.Context, action types.AlertAction, frequency string, filters types.Filters) (TrackResult, error) {
	switch action {
	case types.AlertActionConfirm, types.AlertActionSubscribe, types.AlertActionUnsubscribe, types.AlertActionUpdate:
	default:
		return TrackResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown alert action: %s", action))
	}
	return s.send(ctx, core.AlertEvent(action, frequency, filters))
}

func (s Service) TrackWeeklySubscribe(ctx context.Context) (TrackResult, error) {
	return s.send(ctx, core.WeeklySubscribe())
}

func (s Service) TrackShare(ctx context.Context, channel string) (TrackResult, error) {
	if !policies.AllowShare(channel) {
		return skipped("share without channel"), nil
	}
	return s.send(ctx, core.Share(channel))
}

func (s Service) TrackPageView(ctx context.Context, path string) (TrackResult, error) {
	return s.send(ctx, core.PageView(path))
}

// send fires the event once; failures are reported, never retried.
func (s Service) send(ctx context.Context, event types.Event) (TrackResult, error) {
	assert.NotEmpty(ctx, string(event.Category), "event category must be set")
	if s.Tracker == nil {
		return TrackResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("no tracker configured")
	}
	if err := s.Tracker.Send(ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("category", string(event.Category)).
			Str("action", event.Action).
			Msg("analytics event not delivered")
		if errbuilder.CodeOf(err) == errbuilder.CodeInternal {
			return TrackResult{Event: event}, err
		}
		return TrackResult{Event: event}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("analytics event not delivered").
			WithCause(err)
	}
	return TrackResult{Sent: true, Event: event}, nil
}

func skipped(reason string) TrackResult {
	log.Debug().Str("reason", reason).Msg("analytics event skipped")
	return TrackResult{}
}
