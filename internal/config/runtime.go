package config

import "os"

// GetRuntimePath reports the runtime directory before the full AppConfig is
// parsed, so the .env file can be loaded first.
func GetRuntimePath() string {
	if p := os.Getenv("CAMPUSBOT_RUNTIME_PATH"); p != "" {
		return p
	}
	return ".campusbot"
}
