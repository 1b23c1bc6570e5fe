package app

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

var ErrDTDProhibited = errors.New("DTD is prohibited in this XML document")

// prohibitDTD scans the prolog of raw up to the root element and rejects any
// DOCTYPE declaration. A prolog that does not parse is rejected as well.
func prohibitDTD(raw []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	// the encoding declaration is the schema engine's concern
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }

	for {
		line, _ := dec.InputPos()
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read prolog: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil
		case xml.Directive:
			if bytes.HasPrefix(bytes.TrimSpace(t), []byte("DOCTYPE")) {
				return fmt.Errorf("%w (line %d)", ErrDTDProhibited, line)
			}
		}
	}
}
