package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/condorlabs/condor/internal/config"
	"github.com/condorlabs/condor/internal/storage/archive"
)

// loadConfig reads the config file when one is given, otherwise falls back
// to defaults. The result is always validated.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// buildColdStorage constructs the archive backend from config. An empty
// type means report archiving is disabled and nil is returned.
func buildColdStorage(cfg config.ColdStorageConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		path := cfg.Path
		if path == "" {
			path = "archive"
		}
		return archive.NewLocalFS(path)
	}
}
