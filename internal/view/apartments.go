// Package view derives read-only joins and filters from mirrored
// collections. Nothing here fetches or mutates.
package view

import (
	"fmt"
	"strings"

	"github.com/beesaferoot/condo-console/internal/model"
)

// Filter selects a subset of apartments. Exactly one filter is active at a
// time, but an apartment may match several.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterOccupied Filter = "occupied"
	FilterRented   Filter = "rented"
	FilterForSale  Filter = "forSale"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterOccupied, FilterRented, FilterForSale}

var filterAliases = map[string]Filter{
	"all":      FilterAll,
	"todos":    FilterAll,
	"occupied": FilterOccupied,
	"ocupado":  FilterOccupied,
	"rented":   FilterRented,
	"alugado":  FilterRented,
	"forsale":  FilterForSale,
	"for-sale": FilterForSale,
	"venda":    FilterForSale,
}

// ParseFilter accepts the filter names and the service's labels.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	if f, ok := filterAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown apartment filter %q (want one of all, occupied, rented, forSale)", s)
}

// Match reports whether apt satisfies f. Unknown filters match everything.
func (f Filter) Match(apt model.Apartment) bool {
	switch f {
	case FilterOccupied:
		return apt.Occupied
	case FilterRented:
		return apt.Rented
	case FilterForSale:
		return apt.ForSale
	default:
		return true
	}
}

// FilterApartments returns the apartments matching f in their original
// order. FilterAll returns the collection unchanged.
func FilterApartments(apartments []model.Apartment, f Filter) []model.Apartment {
	if f == FilterAll {
		return apartments
	}
	out := make([]model.Apartment, 0, len(apartments))
	for _, apt := range apartments {
		if f.Match(apt) {
			out = append(out, apt)
		}
	}
	return out
}

// CountByFilter returns how many apartments each filter selects.
func CountByFilter(apartments []model.Apartment) map[Filter]int {
	counts := make(map[Filter]int, len(Filters))
	for _, f := range Filters {
		counts[f] = 0
	}
	for _, apt := range apartments {
		for _, f := range Filters {
			if f.Match(apt) {
				counts[f]++
			}
		}
	}
	return counts
}

// Card is one apartment together with the residents it lists.
type Card struct {
	Apartment model.Apartment
	Residents []model.Resident
}

// ApartmentBoard builds the apartment management listing: the apartments
// selected by f, each joined with its residents. The resident index is
// built once for the whole pass.
func ApartmentBoard(apartments []model.Apartment, residents []model.Resident, f Filter) []Card {
	idx := IndexResidents(residents)
	selected := FilterApartments(apartments, f)
	cards := make([]Card, 0, len(selected))
	for _, apt := range selected {
		cards = append(cards, Card{Apartment: apt, Residents: idx.Of(apt)})
	}
	return cards
}
