// Package config holds runtime settings for the admin console and the
// layered loading scheme: defaults, then a JSON file, then flags.
package config

import "time"

// Config holds runtime settings for the console.
//
// Fields:
//   - StoreBaseURL: base URL of the remote document store.
//   - UsersPath: collection path for account documents under the base URL.
//   - RequestTimeout: upper bound for any single store call.
//   - SessionDBPath: file path of the durable session database.
//   - SessionSecret: key used to sign persisted session blobs.
//   - OperatorPhone / OperatorPassword: the single accepted identity.
type Config struct {
	StoreBaseURL     string
	UsersPath        string
	RequestTimeout   time.Duration
	SessionDBPath    string
	SessionSecret    string
	OperatorPhone    string
	OperatorPassword string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreBaseURL = "https://scroller-4d10f-default-rtdb.firebaseio.com"
	c.UsersPath = "MarketingPro/users"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "session.db"
	c.SessionSecret = "marketpro-dev-secret"
	c.OperatorPhone = "7020181674"
	c.OperatorPassword = "123456"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
