// Package twiml renders replies in Twilio's messaging markup.
package twiml

import (
	"bytes"
	"encoding/xml"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>`

// Message wraps a reply body in a <Response><Message> document, escaping the
// body for XML.
func Message(body string) string {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(body))
	return header + "<Response><Message>" + escaped.String() + "</Message></Response>"
}
