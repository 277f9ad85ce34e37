package storage

import "fmt"

// Config holds storage configuration
type Config struct {
	Type    string // only "local" is supported
	Dir     string // Directory for stored attachments
	BaseURL string // Server base URL for generating download URLs
}

// New builds the storage backend selected by cfg.Type.
func New(cfg Config) (StorageInterface, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg.BaseURL, cfg.Dir)
	default:
		return nil, fmt.Errorf("storage type %q not yet implemented", cfg.Type)
	}
}
