package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"foundation/internal/types"
)

type UserFileAdapter struct{}

func NewUserFileAdapter() UserFileAdapter {
	return UserFileAdapter{}
}

func (a UserFileAdapter) LoadUser(path string) (types.User, error) {
	format, err := userFileFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("user file not found").
			WithCause(err)
	}
	user := types.User{}
	switch format {
	case types.UserFileFormatYAML:
		err = yaml.Unmarshal(data, &user)
	case types.UserFileFormatTOML:
		err = toml.Unmarshal(data, &user)
	case types.UserFileFormatJSON:
		err = json.Unmarshal(data, &user)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse user %s", format)).
			WithCause(err)
	}
	if user == nil {
		user = types.User{}
	}
	return user, nil
}

func userFileFormat(path string) (types.UserFileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.UserFileFormatYAML, nil
	case ".toml":
		return types.UserFileFormatTOML, nil
	case ".json":
		return types.UserFileFormatJSON, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported user file extension: " + path)
	}
}
