// Package config handles configuration for the recovery CLI, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"os"

	"github.com/dmitrijs2005/pwrecover/internal/common"
)

// Config holds runtime settings for a recovery run.
//
// Fields:
//   - ArchiveDir: directory holding the sealed archive files.
//   - ComputerPattern / UserPattern: glob patterns (single '*' wildcard,
//     case-insensitive) matched against the name segments.
//   - ShowAll: emit every matching archive instead of the latest only.
//   - LatestPerUser: when latest-only, pick the latest per distinct user
//     instead of one global latest.
//   - KeyDir: directory of PEM certificates and private keys.
//   - KeystorePath / KeystorePassword: optional Java keystore source of keys.
//     An empty password means "prompt on the terminal".
//   - HistoryPath: sqlite file recording recovery attempts; empty disables it.
type Config struct {
	ArchiveDir       string
	ComputerPattern  string
	UserPattern      string
	ShowAll          bool
	LatestPerUser    bool
	KeyDir           string
	KeystorePath     string
	KeystorePassword string
	HistoryPath      string
}

// LoadDefaults populates c with the documented defaults: current directory,
// local host name, the Administrator account, latest-only selection.
func (c *Config) LoadDefaults() {
	c.ArchiveDir = "."
	if host, err := os.Hostname(); err == nil {
		c.ComputerPattern = host
	} else {
		c.ComputerPattern = "*"
	}
	c.UserPattern = common.DefaultUserPattern
	c.ShowAll = false
	c.LatestPerUser = false
	c.HistoryPath = "pwrecover-history.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
