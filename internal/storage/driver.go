package storage

import (
	"fmt"

	"studentfolio/internal/config"
)

// Driver names accepted in config.StorageConfig.Driver.
const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

// New builds the storage backend selected by cfg.Driver.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case DriverLocal:
		return NewLocal(cfg)
	case DriverMinIO:
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
