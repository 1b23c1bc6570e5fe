package xsdschema

import (
	"bytes"

	"github.com/jacoelho/xsd/pkg/xmlstream"
)

// wellFormedPrefix cuts raw just before the first token the reader rejects and
// closes the elements still open. The closing tags start on a new line, so
// lastLine is the last line of raw kept in prefix. ok is false when nothing
// inside the root element was read.
func wellFormedPrefix(raw []byte) (prefix []byte, lastLine int, ok bool) {
	r, err := xmlstream.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, false
	}

	var open [][]byte
	for {
		cut := r.InputOffset()
		ev, err := r.NextRaw()
		if err != nil {
			if len(open) == 0 || cut < 0 || cut > int64(len(raw)) {
				return nil, 0, false
			}
			return closeOff(raw[:cut], open), bytes.Count(raw[:cut], []byte("\n")) + 1, true
		}
		switch ev.Kind {
		case xmlstream.EventStartElement:
			open = append(open, bytes.Clone(ev.Name.Full))
		case xmlstream.EventEndElement:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
}

func closeOff(head []byte, open [][]byte) []byte {
	out := make([]byte, 0, len(head)+1+len(open)*16)
	out = append(out, head...)
	out = append(out, '\n')
	for i := len(open) - 1; i >= 0; i-- {
		out = append(out, "</"...)
		out = append(out, open[i]...)
		out = append(out, '>')
	}
	return out
}
