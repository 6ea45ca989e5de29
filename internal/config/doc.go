// Package config loads concierge's TOML configuration.
//
// The file lives at ~/.config/concierge/config.toml unless a path is given.
// A missing file is not an error: every key has a default.
//
//	api_base_url             = "http://localhost:8080/api/v1"
//	page_size                = 10
//	token                    = ""
//	token_file               = ""
//	log_file                 = "~/.local/state/concierge/concierge.log"
//	log_level                = "info"   # debug, info, warn, error
//	request_timeout_seconds  = 5
//	overview_refresh_seconds = 30
//
// Paths starting with ~ are expanded against the home directory. The
// CONCIERGE_TOKEN environment variable takes precedence over token.
package config
