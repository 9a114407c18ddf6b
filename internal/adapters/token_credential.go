package adapters

import (
	"github.com/rs/zerolog/log"

	"foundation/internal/ports"
)

// TokenKey is the storage item holding the session token.
const TokenKey = "_token"

type TokenCredentialAdapter struct {
	Storage ports.StoragePort
}

func NewTokenCredentialAdapter(storage ports.StoragePort) TokenCredentialAdapter {
	return TokenCredentialAdapter{Storage: storage}
}

// HasToken treats unreadable storage as holding no token.
func (a TokenCredentialAdapter) HasToken() bool {
	value, ok, err := a.Storage.GetItem(TokenKey)
	if err != nil {
		log.Debug().Err(err).Msg("token lookup failed")
		return false
	}
	return ok && value != ""
}

func (a TokenCredentialAdapter) SetToken(token string) error {
	return a.Storage.SetItem(TokenKey, token)
}

func (a TokenCredentialAdapter) ClearToken() error {
	return a.Storage.RemoveItem(TokenKey)
}
