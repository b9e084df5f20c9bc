package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pwrecover/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Boolean fields
// are pointers so that an absent key does not clobber a default.
type JsonConfig struct {
	ArchiveDir       string `json:"archive_dir"`
	ComputerPattern  string `json:"computer_pattern"`
	UserPattern      string `json:"user_pattern"`
	ShowAll          *bool  `json:"show_all"`
	LatestPerUser    *bool  `json:"latest_per_user"`
	KeyDir           string `json:"key_dir"`
	KeystorePath     string `json:"keystore_path"`
	KeystorePassword string `json:"keystore_password"`
	HistoryPath      string `json:"history_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies set fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
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

	if jc.ArchiveDir != "" {
		cfg.ArchiveDir = jc.ArchiveDir
	}
	if jc.ComputerPattern != "" {
		cfg.ComputerPattern = jc.ComputerPattern
	}
	if jc.UserPattern != "" {
		cfg.UserPattern = jc.UserPattern
	}
	if jc.ShowAll != nil {
		cfg.ShowAll = *jc.ShowAll
	}
	if jc.LatestPerUser != nil {
		cfg.LatestPerUser = *jc.LatestPerUser
	}
	if jc.KeyDir != "" {
		cfg.KeyDir = jc.KeyDir
	}
	if jc.KeystorePath != "" {
		cfg.KeystorePath = jc.KeystorePath
	}
	if jc.KeystorePassword != "" {
		cfg.KeystorePassword = jc.KeystorePassword
	}
	if jc.HistoryPath != "" {
		cfg.HistoryPath = jc.HistoryPath
	}
}
