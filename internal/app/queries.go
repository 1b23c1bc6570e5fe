package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/agentflare-ai/go-xmldom"
	"github.com/rs/zerolog/log"

	"hotels_xml/internal/adapters/observability"
	"hotels_xml/internal/domain"
)

type ConversionService struct {
	docs domain.Fetcher
}

func NewConversionService(docs domain.Fetcher) *ConversionService {
	return &ConversionService{docs: docs}
}

// ToJSON converts the hotels document at location. Any fetch or parse
// failure is returned; there is no partial output.
func (s *ConversionService) ToJSON(ctx context.Context, location string) (string, error) {
	raw, err := s.docs.Fetch(ctx, location)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", location, err)
	}
	doc, err := xmldom.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", location, err)
	}

	hotels := mapHotels(doc)
	observability.ObserveConverted(len(hotels))
	log.Debug().Str("document", location).Int("hotels", len(hotels)).Msg("converted to json")

	return renderHotels(hotels), nil
}
