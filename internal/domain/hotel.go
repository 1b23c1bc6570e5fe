package domain

// HotelRecord is one <Hotel> element reduced to the fields the JSON shape carries.
// Empty strings mean "absent"; the renderer decides which keys to omit.
type HotelRecord struct {
	Name    string
	Phones  []string // non-empty, document order
	Address *Address // nil when the hotel has no non-blank address part
	Rating  string   // from the Rating attribute
}

type Address struct {
	Number         string
	Street         string
	City           string
	State          string
	Zip            string
	NearestAirport string
}

// Field is a key/value pair of an address in output order.
type Field struct {
	Key   string
	Value string
}

// AddressKeys lists the address child elements in the order they are emitted.
var AddressKeys = []string{"Number", "Street", "City", "State", "Zip", "NearestAirport"}

// Set assigns the part named key; unknown keys are ignored.
func (a *Address) Set(key, value string) {
	switch key {
	case "Number":
		a.Number = value
	case "Street":
		a.Street = value
	case "City":
		a.City = value
	case "State":
		a.State = value
	case "Zip":
		a.Zip = value
	case "NearestAirport":
		a.NearestAirport = value
	}
}

// Fields returns the non-empty parts in AddressKeys order.
func (a Address) Fields() []Field {
	all := []Field{
		{"Number", a.Number},
		{"Street", a.Street},
		{"City", a.City},
		{"State", a.State},
		{"Zip", a.Zip},
		{"NearestAirport", a.NearestAirport},
	}
	out := all[:0]
	for _, f := range all {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

func (a Address) IsZero() bool { return len(a.Fields()) == 0 }
