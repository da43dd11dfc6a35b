package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Toggleable apartment fields, named after their wire keys.
const (
	FieldOccupied = "Ocupado"
	FieldRented   = "Alugado"
	FieldForSale  = "Venda"
)

// ApartmentNumber is the client-supplied key of an apartment. The service
// sometimes encodes it as a JSON number, so decoding accepts both forms.
type ApartmentNumber string

func (n *ApartmentNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ApartmentNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("apartment number: %w", err)
	}
	*n = ApartmentNumber(num.String())
	return nil
}

func (n ApartmentNumber) String() string {
	return string(n)
}

// ApartmentRefs is a list of apartment numbers held by a resident. It is
// encoded as integers whenever an entry is numeric.
type ApartmentRefs []ApartmentNumber

func (r ApartmentRefs) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(r))
	for _, n := range r {
		if _, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			out = append(out, json.RawMessage(n))
			continue
		}
		raw, err := json.Marshal(string(n))
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// Contains reports whether number is referenced.
func (r ApartmentRefs) Contains(number ApartmentNumber) bool {
	for _, n := range r {
		if n == number {
			return true
		}
	}
	return false
}

// Apartment is a unit of the building, addressed by its number.
type Apartment struct {
	Number      ApartmentNumber `json:"Numero_AP"`
	Occupied    bool            `json:"Ocupado"`
	Rented      bool            `json:"Alugado"`
	ForSale     bool            `json:"Venda"`
	ResidentIDs []int64         `json:"moradores,omitempty"`
}

func (a Apartment) Key() string {
	return string(a.Number)
}

// HasResident reports whether id is listed in ResidentIDs.
func (a Apartment) HasResident(id int64) bool {
	for _, rid := range a.ResidentIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// Toggled returns a copy of a with the named boolean field negated.
func (a Apartment) Toggled(field string) (Apartment, error) {
	switch field {
	case FieldOccupied, "occupied":
		a.Occupied = !a.Occupied
	case FieldRented, "rented":
		a.Rented = !a.Rented
	case FieldForSale, "forSale", "for-sale":
		a.ForSale = !a.ForSale
	default:
		return a, fmt.Errorf("apartment has no boolean field %q", field)
	}
	if a.ResidentIDs != nil {
		a.ResidentIDs = append([]int64(nil), a.ResidentIDs...)
	}
	return a, nil
}
