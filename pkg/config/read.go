package config

import (
	"fmt"
	"time"

	types "github.com/openfaas/faas-provider/types"
)

const (
	// DefaultComposeFile is read when no other file is given
	DefaultComposeFile = "docker-compose.yaml"

	// DefaultPort is the TCP port of the HTTP API
	DefaultPort = 8080
)

// Config holds the settings shared by the CLI and the HTTP API
type Config struct {
	// ComposeFile is the name of the compose file, relative to WorkingDir
	ComposeFile string

	// WorkingDir is the directory holding the compose file
	WorkingDir string

	// Port is the TCP port used by serve
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ReadFromEnv loads the Config from the env variables
func ReadFromEnv(hasEnv types.HasEnv) (*Config, error) {
	serviceTimeout := types.ParseIntOrDurationValue(hasEnv.Getenv("service_timeout"), time.Second*60)

	config := &Config{
		ComposeFile:  types.ParseString(hasEnv.Getenv("compose_file"), DefaultComposeFile),
		WorkingDir:   types.ParseString(hasEnv.Getenv("working_dir"), "."),
		Port:         types.ParseIntValue(hasEnv.Getenv("port"), DefaultPort),
		ReadTimeout:  serviceTimeout,
		WriteTimeout: serviceTimeout,
	}

	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got: %d", config.Port)
	}

	return config, nil
}
