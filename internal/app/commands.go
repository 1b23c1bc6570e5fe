package app

import (
	"bytes"
	"context"

	"github.com/rs/zerolog/log"

	"hotels_xml/internal/adapters/observability"
	"hotels_xml/internal/domain"
)

type ValidationService struct {
	docs    domain.Fetcher
	schemas domain.SchemaLoader
}

func NewValidationService(docs domain.Fetcher, schemas domain.SchemaLoader) *ValidationService {
	return &ValidationService{docs: docs, schemas: schemas}
}

// Validate checks the document at docLocation against the schema at
// schemaLocation and returns either NoErrorsFound or one line per diagnostic.
// It never fails: a read failure becomes the last diagnostic.
func (s *ValidationService) Validate(ctx context.Context, docLocation, schemaLocation string) string {
	var diags domain.Diagnostics
	sink := func(d domain.Diagnostic) {
		observability.ObserveDiagnostic(string(d.Severity))
		diags.Append(d)
	}

	if err := s.validate(ctx, docLocation, schemaLocation, sink); err != nil {
		log.Warn().Err(err).Str("document", docLocation).Msg("validation aborted")
		sink(domain.Exception(err))
	}

	log.Debug().
		Str("document", docLocation).
		Str("schema", schemaLocation).
		Int("diagnostics", len(diags)).
		Msg("validation done")
	return diags.Report()
}

func (s *ValidationService) validate(ctx context.Context, docLocation, schemaLocation string, sink func(domain.Diagnostic)) error {
	schema, err := s.schemas.Load(ctx, schemaLocation)
	if err != nil {
		return err
	}
	raw, err := s.docs.Fetch(ctx, docLocation)
	if err != nil {
		return err
	}
	if err := prohibitDTD(raw); err != nil {
		return err
	}
	return schema.Validate(ctx, bytes.NewReader(raw), sink)
}
