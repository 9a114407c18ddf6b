package types

// RolesKey is the user record key holding the role names.
const RolesKey = "roles"

// User is a plain key-value user record. A nil User is an absent user.
type User map[string]any

func (u User) Size() int {
	return len(u)
}

// Roles returns the role names held by the user in their stored order and
// whether the record carries a roles key at all. Non-string entries are
// skipped.
func (u User) Roles() ([]string, bool) {
	raw, ok := u[RolesKey]
	if !ok {
		return nil, false
	}
	switch values := raw.(type) {
	case []string:
		return values, true
	case []any:
		roles := make([]string, 0, len(values))
		for _, value := range values {
			if name, ok := value.(string); ok {
				roles = append(roles, name)
			}
		}
		return roles, true
	case nil:
		return []string{}, true
	default:
		return nil, false
	}
}

type Role struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}
