// Package config loads runtime configuration for the AuthKeeper CLI.
//
// Sources, in increasing precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   base URL of the auth server
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-db string  local database file
//
// # JSON schema
//
//	{
//	  "server_url": "https://auth.example.com",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "database_path": "authkeeper.db"
//	}
package config
