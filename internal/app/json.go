package app

import (
	"strings"

	"hotels_xml/internal/domain"
)

// renderHotels writes {"Hotels":{"Hotel":[...]}} with a fixed key order per
// hotel: Name, Phone, Address, _Rating. Absent optional keys are left out.
func renderHotels(hotels []domain.HotelRecord) string {
	var b strings.Builder
	b.WriteString(`{"Hotels":{"Hotel":[`)
	for i, h := range hotels {
		if i > 0 {
			b.WriteByte(',')
		}
		writeHotel(&b, h)
	}
	b.WriteString(`]}}`)
	return b.String()
}

func writeHotel(b *strings.Builder, h domain.HotelRecord) {
	b.WriteString(`{"Name":`)
	writeString(b, h.Name)

	if len(h.Phones) > 0 {
		b.WriteString(`,"Phone":[`)
		for i, p := range h.Phones {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, p)
		}
		b.WriteByte(']')
	}

	if h.Address != nil {
		if fields := h.Address.Fields(); len(fields) > 0 {
			b.WriteString(`,"Address":{`)
			for i, f := range fields {
				if i > 0 {
					b.WriteByte(',')
				}
				writeString(b, f.Key)
				b.WriteByte(':')
				writeString(b, f.Value)
			}
			b.WriteByte('}')
		}
	}

	if h.Rating != "" {
		b.WriteString(`,"_Rating":`)
		writeString(b, h.Rating)
	}
	b.WriteByte('}')
}

const hexDigits = "0123456789abcdef"

// writeString quotes s. Only '"', '\\' and bytes below 0x20 are escaped;
// everything else, including non-ASCII, is copied as is.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xf])
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
}
