package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/marketpro/internal/flagx"
	"github.com/dmitrijs2005/marketpro/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the timeout can be written either as a string
// like "10s" or as integer nanoseconds. Empty fields leave the current
// Config values untouched.
type JsonConfig struct {
	StoreBaseURL     string         `json:"store_base_url"`
	UsersPath        string         `json:"users_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	SessionDBPath    string         `json:"session_db_path"`
	SessionSecret    string         `json:"session_secret"`
	OperatorPhone    string         `json:"operator_phone"`
	OperatorPassword string         `json:"operator_password"`
}

// parseJson overlays Config with values loaded from a JSON file whose
// path is given via -c or -config. Without those flags nothing happens.
// Read or unmarshal errors panic; intended usage is defaults ->
// parseJson -> parseFlags, where later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreBaseURL != "" {
		cfg.StoreBaseURL = jc.StoreBaseURL
	}
	if jc.UsersPath != "" {
		cfg.UsersPath = jc.UsersPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.SessionSecret != "" {
		cfg.SessionSecret = jc.SessionSecret
	}
	if jc.OperatorPhone != "" {
		cfg.OperatorPhone = jc.OperatorPhone
	}
	if jc.OperatorPassword != "" {
		cfg.OperatorPassword = jc.OperatorPassword
	}
}
