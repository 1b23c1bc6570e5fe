package app

import (
	"strings"

	"github.com/agentflare-ai/go-xmldom"

	"hotels_xml/internal/domain"
)

/********** tiny helpers **********/

// childElements returns the direct children of parent named name, in document order.
func childElements(parent xmldom.Element, name string) []xmldom.Element {
	kids := parent.Children()
	var out []xmldom.Element
	for i := uint(0); i < kids.Length(); i++ {
		c := kids.Item(i)
		if c != nil && string(c.LocalName()) == name {
			out = append(out, c)
		}
	}
	return out
}

func firstChild(parent xmldom.Element, name string) xmldom.Element {
	kids := parent.Children()
	for i := uint(0); i < kids.Length(); i++ {
		c := kids.Item(i)
		if c != nil && string(c.LocalName()) == name {
			return c
		}
	}
	return nil
}

func trimmedText(e xmldom.Element) string {
	return strings.TrimSpace(string(e.TextContent()))
}

/********** hotel mapper **********/

// mapHotels reads /Hotels/Hotel. A document with another root has no hotels.
func mapHotels(doc xmldom.Document) []domain.HotelRecord {
	root := doc.DocumentElement()
	if root == nil || string(root.LocalName()) != "Hotels" {
		return nil
	}
	hotels := childElements(root, "Hotel")
	out := make([]domain.HotelRecord, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, mapHotel(h))
	}
	return out
}

func mapHotel(h xmldom.Element) domain.HotelRecord {
	rec := domain.HotelRecord{
		Rating: strings.TrimSpace(string(h.GetAttribute("Rating"))),
	}

	if n := firstChild(h, "Name"); n != nil {
		rec.Name = trimmedText(n)
	}

	for _, p := range childElements(h, "Phone") {
		if t := trimmedText(p); t != "" {
			rec.Phones = append(rec.Phones, t)
		}
	}

	if a := firstChild(h, "Address"); a != nil {
		var addr domain.Address
		for _, key := range domain.AddressKeys {
			if part := firstChild(a, key); part != nil {
				addr.Set(key, trimmedText(part))
			}
		}
		if !addr.IsZero() {
			rec.Address = &addr
		}
	}

	return rec
}
