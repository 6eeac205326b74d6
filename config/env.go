package config

import (
	"fmt"
	"os"
	"strconv"
)

// Names of the environment variables the command line tool reads.
const (
	EnvRecordDB    = "CROPPER_RECORD_DB"
	EnvSaveDB      = "CROPPER_SAVE_DB"
	EnvMonitorPort = "CROPPER_MONITOR_PORT"
)

// Env holds the defaults taken from the environment.
type Env struct {
	RecordDB    string
	SaveDB      string
	MonitorPort int
}

// FromEnv reads the defaults from the environment. Unset variables leave
// the zero value.
func FromEnv() (Env, error) {
	env := Env{
		RecordDB: os.Getenv(EnvRecordDB),
		SaveDB:   os.Getenv(EnvSaveDB),
	}

	if port := os.Getenv(EnvMonitorPort); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return Env{}, fmt.Errorf("config: %s: %w", EnvMonitorPort, err)
		}

		env.MonitorPort = n
	}

	return env, nil
}
