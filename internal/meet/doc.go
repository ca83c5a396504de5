// Package meet generates ad-hoc Google Meet links for the /meet slash command.
//
// Meet accepts arbitrary meeting codes in the URL path, so no API call is
// needed: the participant list is normalized into a code and appended to the
// https://g.co/meet/ short-link prefix. The same code always yields the same
// room, which lets a recurring group of participants reuse their meeting.
package meet
