// Package xsdschema adapts github.com/jacoelho/xsd to the domain schema ports.
package xsdschema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
	"github.com/rs/zerolog/log"

	"hotels_xml/internal/domain"
)

// ErrNotWellFormed wraps the engine's read failures: broken markup, no root element.
var ErrNotWellFormed = errors.New("document is not well-formed")

type Loader struct {
	docs domain.Fetcher
}

func NewLoader(docs domain.Fetcher) *Loader {
	return &Loader{docs: docs}
}

// Load compiles the schema at location. The schema itself is fetched from
// location verbatim; includes and imports are fetched relative to its directory
// through the same Fetcher.
func (l *Loader) Load(ctx context.Context, location string) (domain.Schema, error) {
	base, name, err := splitLocation(location)
	if err != nil {
		return nil, err
	}
	fsys := &remoteFS{ctx: ctx, docs: l.docs, base: base, root: location, rootName: name}
	compiled, err := xsd.LoadWithOptions(fsys, name, xsd.NewLoadOptions())
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	log.Debug().Str("schema", location).Msg("schema compiled")
	return &Schema{compiled: compiled}, nil
}

// splitLocation separates "https://h/dir/Hotels.xsd?sig=x" into the directory
// URL "https://h/dir/" and the file name "Hotels.xsd". Plain paths work the same way.
func splitLocation(location string) (*url.URL, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", fmt.Errorf("schema location %q: %w", location, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return nil, "", fmt.Errorf("schema location %q has no file name", location)
	}
	dir := *u
	dir.Path = strings.TrimSuffix(path.Dir(u.Path), "/") + "/"
	dir.RawPath = ""
	dir.RawQuery = ""
	dir.Fragment = ""
	return &dir, name, nil
}

type Schema struct {
	compiled *xsd.Schema
}

// Validate runs doc through the compiled schema. Violations go to sink in
// document order. A read failure is returned after the violations found
// before it were passed to sink.
func (s *Schema) Validate(ctx context.Context, doc io.Reader, sink func(domain.Diagnostic)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := io.ReadAll(&ctxReader{ctx: ctx, r: doc})
	if err != nil {
		return err
	}

	err = s.compiled.Validate(bytes.NewReader(raw))
	if err == nil {
		return nil
	}
	list, ok := xsderrors.AsValidations(err)
	if !ok {
		return err
	}
	violations, fatal := splitFatal(list)

	// the engine drops what it collected once the stream breaks
	if fatal != nil && len(violations) == 0 {
		violations = s.violationsBefore(raw)
	}
	for _, v := range violations {
		sink(diagnostic(v))
	}
	if fatal != nil {
		return fmt.Errorf("%w: %s", ErrNotWellFormed, describe(*fatal))
	}
	return nil
}

// violationsBefore re-validates the part of raw that parses, closed off on a
// fresh line, and keeps the violations located before that line.
func (s *Schema) violationsBefore(raw []byte) []xsderrors.Validation {
	prefix, lastLine, ok := wellFormedPrefix(raw)
	if !ok {
		return nil
	}
	list, ok := xsderrors.AsValidations(s.compiled.Validate(bytes.NewReader(prefix)))
	if !ok {
		return nil
	}
	violations, fatal := splitFatal(list)
	if fatal != nil {
		log.Debug().Str("error", describe(*fatal)).Msg("prefix re-validation failed")
		return nil
	}
	kept := violations[:0]
	for _, v := range violations {
		if v.Line > 0 && v.Line <= lastLine {
			kept = append(kept, v)
		}
	}
	return kept
}

func isFatal(v xsderrors.Validation) bool {
	switch xsderrors.ErrorCode(v.Code) {
	case xsderrors.ErrXMLParse, xsderrors.ErrNoRoot, xsderrors.ErrSchemaNotLoaded:
		return true
	}
	return false
}

// splitFatal separates schema violations from the first read failure.
func splitFatal(list []xsderrors.Validation) ([]xsderrors.Validation, *xsderrors.Validation) {
	var (
		violations []xsderrors.Validation
		fatal      *xsderrors.Validation
	)
	for i := range list {
		if !isFatal(list[i]) {
			violations = append(violations, list[i])
		} else if fatal == nil {
			fatal = &list[i]
		}
	}
	return violations, fatal
}

func diagnostic(v xsderrors.Validation) domain.Diagnostic {
	d := domain.Diagnostic{Severity: domain.SeverityError, Message: describe(v)}
	if v.Line > 0 {
		d.Position = &domain.Position{Line: v.Line, Column: v.Column}
	}
	return d
}

// describe renders v without its position, which the diagnostic carries itself.
func describe(v xsderrors.Validation) string {
	v.Line, v.Column = 0, 0
	return v.Error()
}

// ctxReader stops a stream once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
