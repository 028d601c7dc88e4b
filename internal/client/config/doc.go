// Package config loads runtime configuration for the taskkeeper CLI.
//
// Sources, in increasing precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the API, e.g. http://127.0.0.1:8080
//	-r int      request timeout (seconds)
//	-d string   path to the local session database
//
// JSON durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "database_path": "taskkeeper.db"
//	}
package config
