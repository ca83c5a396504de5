package meet

import "strings"

// maxCodeLen is the longest meeting code Meet accepts in a g.co/meet URL.
const maxCodeLen = 59

// HelpText is the static help message for the /meet command.
const HelpText = "Type `/meet` followed by the people you want to meet with, " +
	"e.g. `/meet @alice @bob`. Everyone mentioned gets the same room every time."

// GenerateLink builds a Meet invitation message from a participant list.
// Mentions like "@alice @bob" become the meeting code "alice-bob"; the code
// is capped at 59 characters because Meet rejects longer ones. The original
// participant text is kept at the end of the message so the chat platform
// still notifies the mentioned users.
func GenerateLink(participants string) string {
	code := strings.ReplaceAll(participants, "@", "")
	code = strings.ReplaceAll(code, " ", "-")
	if len(code) > maxCodeLen {
		code = code[:maxCodeLen]
	}
	return "Your Meet is ready: https://g.co/meet/" + code + " " + participants
}
