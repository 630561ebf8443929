package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"snip-ocr/src/ocr"
)

const (
	// EnvFileVar points at an alternate .env file when none sits next to
	// the executable.
	EnvFileVar = "SNIP_OCR_ENV"

	DefaultHotkey      = "ctrl+shift+s"
	DefaultLanguage    = "eng"
	DefaultDeadlineSec = 20
)

// LoadOptions carries command-line overrides that win over .env and
// environment values.
type LoadOptions struct {
	BackendOverride string
}

type Config struct {
	Hotkey            string
	Backend           ocr.Backend
	Language          string
	OCRDeadlineSec    int
	EnableFileLogging bool
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions reads configuration from sources in priority order:
// 1) .env in the executable directory, 2) a file named by SNIP_OCR_ENV,
// 3) process environment, 4) defaults. Option overrides win over all.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	deadlineSec := DefaultDeadlineSec
	if v := os.Getenv("OCR_DEADLINE_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			deadlineSec = n
		}
	}

	backend, err := resolveBackend(opts)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		Backend:           backend,
		Language:          getEnvWithDefault("OCR_LANGUAGE", DefaultLanguage),
		OCRDeadlineSec:    deadlineSec,
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
	}
	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvFileVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

func resolveBackend(opts LoadOptions) (ocr.Backend, error) {
	if override := strings.TrimSpace(opts.BackendOverride); override != "" {
		return ocr.ParseBackend(override)
	}
	return ocr.ParseBackend(os.Getenv("OCR_BACKEND"))
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
