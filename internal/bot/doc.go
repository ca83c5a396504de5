// Package bot implements the chat-command dispatcher the command handlers
// plug into.
//
// The dispatcher is a registry of pattern responders: a chat message is
// matched against each registered pattern in registration order and the
// first match wins. The webhook side of the same contract lives in the
// server package; both routes end up in the same underlying command
// functions.
//
// Register all responders before serving traffic; dispatching itself is
// read-only and safe for concurrent use.
package bot
