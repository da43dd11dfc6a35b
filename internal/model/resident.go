package model

import "strconv"

// Resident represents a person living in one or more apartments
type Resident struct {
	ID               int64         `json:"id,omitempty"`
	Name             string        `json:"nome"`
	Age              int           `json:"idade"`
	ApartmentNumbers ApartmentRefs `json:"apartamentos"`
}

func (r Resident) Key() string {
	return strconv.FormatInt(r.ID, 10)
}
