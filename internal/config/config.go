// Package config layers kanbd configuration: flag > env > board config
// file > default, via a viper singleton.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces kanbd environment variables (KANBD_PORT, KANBD_DIR, ...).
const EnvPrefix = "KANBD"

// Defaults.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 3333
	DefaultDir  = "todos"
)

// Initialize seeds defaults and env binding. Call once at startup, before
// any accessor.
func Initialize() error {
	viper.SetDefault("host", DefaultHost)
	viper.SetDefault("port", DefaultPort)
	viper.SetDefault("dir", DefaultDir)
	viper.SetDefault("open", true)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return nil
}

// BindFlag routes a cobra flag into the viper hierarchy so explicit flags
// win over env and file values.
func BindFlag(key string, flag *pflag.Flag) error {
	return viper.BindPFlag(key, flag)
}

// LoadBoardConfig layers the optional config.yaml inside the board directory
// into the hierarchy. Its values replace the built-in defaults, so KANBD_*
// variables and explicit flags still win. Missing or unreadable files are
// not an error; the board works with nothing but defaults.
func LoadBoardConfig(dir string) {
	local := LoadLocalConfig(dir)
	if local.Host != "" {
		viper.SetDefault("host", local.Host)
	}
	if local.Port != 0 {
		viper.SetDefault("port", local.Port)
	}
	if local.Open != nil {
		viper.SetDefault("open", *local.Open)
	}
}

// Host returns the bind host for the board server.
func Host() string { return viper.GetString("host") }

// Port returns the bind port for the board server.
func Port() int { return viper.GetInt("port") }

// Dir returns the board root directory containing the status directories.
func Dir() string { return viper.GetString("dir") }

// OpenBrowser reports whether serve should auto-open a browser.
func OpenBrowser() bool { return viper.GetBool("open") }
