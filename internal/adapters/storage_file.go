package adapters

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// StorageFileAdapter keeps string items in a YAML mapping on disk. The file
// is created on first write.
type StorageFileAdapter struct {
	Path string
}

func NewStorageFileAdapter(path string) StorageFileAdapter {
	return StorageFileAdapter{Path: path}
}

func (a StorageFileAdapter) GetItem(key string) (string, bool, error) {
	items, err := a.load()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

func (a StorageFileAdapter) SetItem(key string, value string) error {
	items, err := a.load()
	if err != nil {
		return err
	}
	items[key] = value
	return a.save(items)
}

func (a StorageFileAdapter) RemoveItem(key string) error {
	items, err := a.load()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return a.save(items)
}

func (a StorageFileAdapter) Clear() error {
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clear storage file").
			WithCause(err)
	}
	log.Debug().Str("path", a.Path).Msg("storage cleared")
	return nil
}

func (a StorageFileAdapter) load() (map[string]string, error) {
	items := map[string]string{}
	data, err := os.ReadFile(a.Path)
	if errors.Is(err, os.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read storage file").
			WithCause(err)
	}
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse storage yaml").
			WithCause(err)
	}
	if items == nil {
		items = map[string]string{}
	}
	return items, nil
}

func (a StorageFileAdapter) save(items map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create storage directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(items)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode storage yaml").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0600); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write storage file").
			WithCause(err)
	}
	log.Debug().
		Str("path", a.Path).
		Int("items", len(items)).
		Msg("storage written")
	return nil
}
