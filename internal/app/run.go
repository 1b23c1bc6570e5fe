package app

import (
	"context"
	"fmt"
	"io"
)

// Locations names the three inputs of one run.
type Locations struct {
	Document      string
	ErrorDocument string
	Schema        string
}

// Run prints the validation report of both documents and then the JSON of
// the primary one, one per line. A conversion failure is returned after the
// two reports were written.
func Run(ctx context.Context, w io.Writer, v *ValidationService, c *ConversionService, loc Locations) error {
	for _, doc := range []string{loc.Document, loc.ErrorDocument} {
		if _, err := fmt.Fprintln(w, v.Validate(ctx, doc, loc.Schema)); err != nil {
			return err
		}
	}

	out, err := c.ToJSON(ctx, loc.Document)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
