package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"foundation/internal/adapters"
	"foundation/internal/core"
	"foundation/internal/policies"
	"foundation/internal/types"
)

func (s Service) ListRoles() []types.Role {
	return policies.RoleCatalog()
}

// CheckRoles evaluates exactly one of the role, all-roles or any-role
// predicates against the user file.
func (s Service) CheckRoles(ctx context.Context, req AuthCheckRequest) (AuthCheckResult, error) {
	mode, requested, err := checkMode(req)
	if err != nil {
		return AuthCheckResult{}, err
	}
	user, err := s.loadUser(req.UserPath)
	if err != nil {
		return AuthCheckResult{}, err
	}

	result := AuthCheckResult{
		Mode:      mode,
		Requested: requested,
		Held:      core.UserRoles(user),
		Unknown:   policies.UnknownRoles(requested),
	}
	if len(result.Unknown) > 0 {
		log.Warn().
			Strs("roles", result.Unknown).
			Msg("requested roles are not in the role catalog")
	}
	switch mode {
	case AuthCheckModeRole:
		result.Allowed = core.HasRole(user, requested[0])
	case AuthCheckModeAll:
		result.Allowed = core.HasAllRoles(user, requested)
	case AuthCheckModeAny:
		result.Allowed = core.HasAnyRole(user, requested)
	}
	return result, nil
}

func (s Service) UserApp(ctx context.Context, req UserAppRequest) (UserAppResult, error) {
	user, err := s.loadUser(req.UserPath)
	if err != nil {
		return UserAppResult{}, err
	}
	authorizer := core.Authorizer{Credentials: s.Credentials}
	return UserAppResult{
		App:        core.UserApp(user),
		Roles:      core.UserRoles(user),
		AuthLoaded: authorizer.IsAuthLoaded(user),
	}, nil
}

func (s Service) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("token is required")
	}
	return s.Storage.SetItem(adapters.TokenKey, token)
}

func (s Service) ClearToken(ctx context.Context) error {
	return s.Storage.RemoveItem(adapters.TokenKey)
}

func (s Service) TokenStatus(ctx context.Context) TokenStatus {
	authorizer := core.Authorizer{Credentials: s.Credentials}
	return TokenStatus{Present: authorizer.HasToken()}
}

func (s Service) loadUser(path string) (types.User, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("user file path is required")
	}
	return s.Users.LoadUser(path)
}

func checkMode(req AuthCheckRequest) (AuthCheckMode, []string, error) {
	var modes []AuthCheckMode
	if strings.TrimSpace(req.Role) != "" {
		modes = append(modes, AuthCheckModeRole)
	}
	if req.All != nil {
		modes = append(modes, AuthCheckModeAll)
	}
	if req.Any != nil {
		modes = append(modes, AuthCheckModeAny)
	}
	if len(modes) != 1 {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exactly one of role, all or any must be given")
	}
	switch modes[0] {
	case AuthCheckModeRole:
		return AuthCheckModeRole, []string{strings.TrimSpace(req.Role)}, nil
	case AuthCheckModeAll:
		return AuthCheckModeAll, trimRoles(req.All), nil
	default:
		return AuthCheckModeAny, trimRoles(req.Any), nil
	}
}

func trimRoles(values []string) []string {
	roles := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	return roles
}
