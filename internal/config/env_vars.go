package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar   = "PORT"
	appNameVar   = "APP_NAME"
	folderEnvVar = "FOLDER"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetPort returns the listen address of the console server. The console holds a
// single operator session, so it binds to loopback unless PORT names a host.
func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if strings.Contains(port, ":") {
		return port
	}
	return fmt.Sprintf("127.0.0.1:%s", port)
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "IMS Console")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvBool parses envVar with strconv.ParseBool, falling back on absent or unparseable values.
func GetEnvBool(envVar string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvDuration parses envVar with time.ParseDuration, falling back on absent or non-positive values.
func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(envVar))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
