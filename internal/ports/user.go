package ports

import "foundation/internal/types"

type UserSourcePort interface {
	LoadUser(path string) (types.User, error)
}
