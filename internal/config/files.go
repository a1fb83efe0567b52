package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// On-disk companion files of the desktop app.
const (
	TabOrderFile      = "tab_order_config.json"
	RequestConfigFile = "request_config.json"
	VersionFile       = "version.txt"
)

// LoadTabOrder reads the ordered list of tab names. A missing file yields
// the given defaults.
func LoadTabOrder(path string, defaults []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tab order file: %w", err)
	}

	var tabs []string
	if err := json.Unmarshal(data, &tabs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tab order file: %w", err)
	}
	return tabs, nil
}

func SaveTabOrder(path string, tabs []string) error {
	data, err := json.MarshalIndent(tabs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadRequestConfig reads the request-kind -> enabled map. Unknown kinds
// default to enabled.
func LoadRequestConfig(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request config file: %w", err)
	}

	var cfg map[string]bool
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request config file: %w", err)
	}
	return cfg, nil
}

func SaveRequestConfig(path string, cfg map[string]bool) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Version reads the single-line version file, "dev" when absent.
func Version(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "dev"
	}
	return strings.TrimSpace(string(data))
}
