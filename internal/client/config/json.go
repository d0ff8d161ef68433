package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cybervault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value alone.
type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	CallTimeout        *timex.Duration `json:"call_timeout"`
	CachePath          *string         `json:"cache_path"`
}

func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.CallTimeout != nil {
		cfg.CallTimeout = jc.CallTimeout.Duration
	}
	if jc.CachePath != nil {
		cfg.CachePath = *jc.CachePath
	}
	return nil
}
