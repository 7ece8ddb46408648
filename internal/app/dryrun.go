package app

import (
	"fmt"
	"io"
)

// printDryRun lists the messages a live run would publish, one topic
// per line with the payload indented below it.
func printDryRun(w io.Writer, msgs []Message) {
	fmt.Fprintf(w, "dry run: would publish %d messages\n", len(msgs))
	for _, m := range msgs {
		fmt.Fprintf(w, "%s retain=%t %d bytes\n", m.Topic, m.Retain, len(m.Payload))
		fmt.Fprintf(w, "  %s\n", m.Payload)
	}
}
