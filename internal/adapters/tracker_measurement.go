package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"foundation/internal/ports"
	"foundation/internal/shared"
	"foundation/internal/types"
)

const (
	// ClientIDKey is the storage item holding the analytics client id.
	ClientIDKey = "_ga_cid"

	DefaultTrackingID      = "UA-8452399-1"
	DefaultCollectEndpoint = "https://www.google-analytics.com/collect"

	defaultTrackerTimeout = 10 * time.Second
)

// MeasurementProtocolAdapter posts one hit per event to a collect endpoint.
type MeasurementProtocolAdapter struct {
	Endpoint   string
	TrackingID string
	Timeout    time.Duration
	Storage    ports.StoragePort
}

func NewMeasurementProtocolAdapter(endpoint string, trackingID string, timeoutSec int, storage ports.StoragePort) MeasurementProtocolAdapter {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultCollectEndpoint
	}
	if strings.TrimSpace(trackingID) == "" {
		trackingID = DefaultTrackingID
	}
	return MeasurementProtocolAdapter{
		Endpoint:   endpoint,
		TrackingID: trackingID,
		Timeout:    normalizeTrackerTimeout(timeoutSec),
		Storage:    storage,
	}
}

func (a MeasurementProtocolAdapter) Send(ctx context.Context, event types.Event) error {
	clientID, err := a.clientID()
	if err != nil {
		return err
	}
	form := hitForm(a.TrackingID, clientID, event)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create collect request").
			WithCause(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("analytics hit failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Debug().
			Str("endpoint", a.Endpoint).
			Str("category", string(event.Category)).
			Str("action", event.Action).
			Msg("analytics hit sent")
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("analytics hit failed").
		WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, a.Endpoint, strings.TrimSpace(string(body))))
}

// clientID returns the stored client id, minting and persisting one on first
// use.
func (a MeasurementProtocolAdapter) clientID() (string, error) {
	if a.Storage == nil {
		return uuid.NewString(), nil
	}
	existing, ok, err := a.Storage.GetItem(ClientIDKey)
	if err != nil {
		return "", err
	}
	if ok && existing != "" {
		return existing, nil
	}
	clientID := uuid.NewString()
	if err := a.Storage.SetItem(ClientIDKey, clientID); err != nil {
		return "", err
	}
	log.Debug().Str("cid", clientID).Msg("analytics client id created")
	return clientID, nil
}

func hitForm(trackingID string, clientID string, event types.Event) url.Values {
	form := url.Values{}
	form.Set("v", "1")
	form.Set("tid", trackingID)
	form.Set("cid", clientID)
	if event.IsPageView() {
		form.Set("t", "pageview")
		if event.Page != "" {
			form.Set("dp", event.Page)
		}
		return form
	}
	form.Set("t", "event")
	form.Set("ec", string(event.Category))
	if event.Action != "" {
		form.Set("ea", event.Action)
	}
	if event.Label != "" {
		form.Set("el", event.Label)
	}
	for _, index := range event.DimensionIndexes() {
		form.Set(fmt.Sprintf("cd%d", index), event.Dimensions[index])
	}
	return form
}

func normalizeTrackerTimeout(value int) time.Duration {
	timeout := time.Duration(value) * time.Second
	if timeout <= 0 {
		return defaultTrackerTimeout
	}
	return timeout
}
