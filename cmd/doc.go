// Package cmd implements the command-line interface for webteam-hubot.
//
// This package provides the following commands:
//   - serve: Start the slash-command webhook server
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
