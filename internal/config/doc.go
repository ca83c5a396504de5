// Package config loads the bot configuration from the process environment.
//
// Configuration is read once at startup into an immutable Config struct that
// is passed into constructors; nothing reads the environment after that.
// A local .env file is honored when present (useful for development), real
// environment variables always win.
package config
