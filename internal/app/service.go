package app

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"foundation/internal/adapters"
	"foundation/internal/core"
	"foundation/internal/ports"
	"foundation/internal/types"
)

type Service struct {
	Dates       core.DateParser
	Users       ports.UserSourcePort
	Storage     ports.StoragePort
	Credentials ports.CredentialPort
	Tracker     ports.TrackerPort
	Clock       func() time.Time
}

type Config struct {
	AdditionalDigits int
	Timezone         string
	StoragePath      string
	Tracker          types.TrackerKind
	TrackingID       string
	CollectEndpoint  string
	HTTPTimeoutSec   int
	EventOut         io.Writer
}

func DefaultConfig() Config {
	return Config{
		AdditionalDigits: core.DefaultAdditionalDigits,
		StoragePath:      DefaultStoragePath(),
		Tracker:          types.TrackerKindLog,
		TrackingID:       adapters.DefaultTrackingID,
		CollectEndpoint:  adapters.DefaultCollectEndpoint,
	}
}

// DefaultStoragePath is the per-user storage file, falling back to the
// working directory when no home directory is known.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "foundation-storage.yaml"
	}
	return filepath.Join(home, ".config", "foundation", "storage.yaml")
}

func NewService(cfg Config) (Service, error) {
	location, err := LoadLocation(cfg.Timezone)
	if err != nil {
		return Service{}, err
	}
	dates, err := core.NewDateParser(cfg.AdditionalDigits, location, adapters.NewDateFallbackAdapter())
	if err != nil {
		return Service{}, err
	}
	storagePath := strings.TrimSpace(cfg.StoragePath)
	if storagePath == "" {
		storagePath = DefaultStoragePath()
	}
	storage := adapters.NewStorageFileAdapter(storagePath)
	tracker, err := newTracker(cfg, storage)
	if err != nil {
		return Service{}, err
	}
	return Service{
		Dates:       dates,
		Users:       adapters.NewUserFileAdapter(),
		Storage:     storage,
		Credentials: adapters.NewTokenCredentialAdapter(storage),
		Tracker:     tracker,
		Clock:       time.Now,
	}, nil
}

// LoadLocation resolves a zone name; empty and "Local" mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown timezone: " + name).
			WithCause(err)
	}
	return location, nil
}

func newTracker(cfg Config, storage ports.StoragePort) (ports.TrackerPort, error) {
	switch cfg.Tracker {
	case "", types.TrackerKindLog:
		return adapters.NewEventLogAdapter(cfg.EventOut), nil
	case types.TrackerKindHTTP:
		return adapters.NewMeasurementProtocolAdapter(cfg.CollectEndpoint, cfg.TrackingID, cfg.HTTPTimeoutSec, storage), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown tracker: " + string(cfg.Tracker))
	}
}
