package ports

// StoragePort is a persistent client-side key/value store.
type StoragePort interface {
	GetItem(key string) (string, bool, error)
	SetItem(key string, value string) error
	RemoveItem(key string) error
	Clear() error
}

// CredentialPort reports whether an auth token is available to the client.
type CredentialPort interface {
	HasToken() bool
}
