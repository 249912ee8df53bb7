package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/dshills/structlab/internal/config"
)

// EnvPrefix is the prefix shared by all structlab environment variables.
const EnvPrefix = "STRUCTLAB_"

// ApplyEnv overlays STRUCTLAB_ environment variables onto cfg. Unset
// variables leave the current value alone; set-but-empty values count
// as set for strings and are ignored for numbers and booleans.
func ApplyEnv(cfg *config.Config) {
	if v, ok := lookupInt(EnvPrefix + "BUILD_QUEUE_LIMIT"); ok {
		cfg.Dispatcher.BuildQueueLimit = v
	}
	if v, ok := lookupBool(EnvPrefix + "PANIC_RECOVERY"); ok {
		cfg.Dispatcher.PanicRecovery = v
	}
	if v, ok := lookupBool(EnvPrefix + "METRICS"); ok {
		cfg.Dispatcher.Metrics = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookupBool(EnvPrefix + "QUIET"); ok {
		cfg.Log.Quiet = v
	}
	if v, ok := lookupInt(EnvPrefix + "FEED_HISTORY"); ok {
		cfg.Feed.HistoryLimit = v
	}
	if v, ok := lookupBool(EnvPrefix + "LUA_ENABLED"); ok {
		cfg.Lua.Enabled = v
	}
	if v, ok := lookupInt(EnvPrefix + "LUA_TIMEOUT"); ok {
		cfg.Lua.TimeoutSeconds = v
	}
}

// lookupBool reads a boolean environment variable. Accepted true values
// are "true", "yes", "on", and "1"; false values are "false", "no",
// "off", and "0". Anything else reads as unset.
func lookupBool(key string) (bool, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

// lookupInt reads an integer environment variable. Unparseable values
// read as unset.
func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
