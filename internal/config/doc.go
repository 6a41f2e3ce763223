// Package config loads trilex settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults ([Default])
//  2. The TOML config file, $XDG_CONFIG_HOME/trilex/config.toml unless
//     another path is given
//  3. Environment variables such as TRILEX_STORE or OPENAI_API_KEY
//
// A missing config file is not an error. Unknown keys in the file are.
//
// Example config.toml:
//
//	[log]
//	level = "debug"
//
//	[store]
//	backend = "gist"
//	gist_id = "8f2c..."
//
//	[translate]
//	provider = "anthropic"
//	model = "claude-3-5-haiku-latest"
//
//	[editor]
//	max_lines = 4
//	selection_policy = "clear"
package config
