// Package confloader loads layered configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Command-line flags (WithFlags)
//  2. Environment variables (REDISLIGHT_SECTION_KEY)
//  3. The YAML configuration file
//  4. Defaults already present in the target struct
//
// The Loader remembers which source set each key (Origin), so callers can
// explain where an effective value came from.
//
// Watcher reports debounced changes to the configuration file through
// fsnotify so callers can apply reloadable settings such as the log level.
package confloader
