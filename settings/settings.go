// Package settings loads the optional shell configuration file.
package settings

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings drives the outer shell and the session server.  The
// interpreter core never sees these.
type Settings struct {
	Prompt      string `toml:"prompt"`       // shown before each interactive read
	HistoryFile string `toml:"history_file"` // readline history location
	Listen      string `toml:"listen"`       // address for the HTTP session service
	LogLevel    string `toml:"log_level"`    // debug, info, warn or error
}

// Default returns the values used when no file overrides them.
func Default() Settings {
	history := ".dawbasic_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}
	return Settings{
		HistoryFile: history,
		Listen:      ":8080",
		LogLevel:    "info",
	}
}

// Load reads path on top of the defaults, so a partial file keeps the
// defaults for the keys it leaves out.  An empty path or an absent
// file yields the defaults; a file that exists has to parse.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, err
	}
	return s, nil
}
