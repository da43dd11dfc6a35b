package view

import (
	"sort"

	"github.com/beesaferoot/condo-console/internal/model"
)

// ResidentsOfApartment returns the residents whose id appears in
// apt.ResidentIDs, in the order of the residents collection.
func ResidentsOfApartment(apt model.Apartment, residents []model.Resident) []model.Resident {
	out := []model.Resident{}
	if len(apt.ResidentIDs) == 0 {
		return out
	}
	for _, r := range residents {
		if apt.HasResident(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// ResidentIndex is a resident lookup by id, built once per listing pass.
type ResidentIndex struct {
	order map[int64]int
	list  []model.Resident
}

func IndexResidents(residents []model.Resident) *ResidentIndex {
	idx := &ResidentIndex{
		order: make(map[int64]int, len(residents)),
		list:  residents,
	}
	for i, r := range residents {
		if _, dup := idx.order[r.ID]; !dup {
			idx.order[r.ID] = i
		}
	}
	return idx
}

func (idx *ResidentIndex) Get(id int64) (model.Resident, bool) {
	i, ok := idx.order[id]
	if !ok {
		return model.Resident{}, false
	}
	return idx.list[i], true
}

// Of answers the same question as ResidentsOfApartment without scanning the
// whole collection.
func (idx *ResidentIndex) Of(apt model.Apartment) []model.Resident {
	positions := make([]int, 0, len(apt.ResidentIDs))
	seen := make(map[int]bool, len(apt.ResidentIDs))
	for _, id := range apt.ResidentIDs {
		if i, ok := idx.order[id]; ok && !seen[i] {
			seen[i] = true
			positions = append(positions, i)
		}
	}
	sort.Ints(positions)
	out := make([]model.Resident, 0, len(positions))
	for _, i := range positions {
		out = append(out, idx.list[i])
	}
	return out
}

// ApartmentsOfResident navigates from a resident to the apartments it
// references, in apartments-collection order.
func ApartmentsOfResident(r model.Resident, apartments []model.Apartment) []model.Apartment {
	out := []model.Apartment{}
	for _, apt := range apartments {
		if r.ApartmentNumbers.Contains(apt.Number) {
			out = append(out, apt)
		}
	}
	return out
}

// Occupancy maps each apartment number to the residents referencing it,
// derived from the residents' side of the relation.
func Occupancy(residents []model.Resident) map[model.ApartmentNumber][]model.Resident {
	occ := make(map[model.ApartmentNumber][]model.Resident)
	for _, r := range residents {
		for _, n := range uniqueRefs(r.ApartmentNumbers) {
			occ[n] = append(occ[n], r)
		}
	}
	return occ
}

// Drift is one disagreement between Apartment.ResidentIDs and
// Resident.ApartmentNumbers.
type Drift struct {
	Apartment  model.ApartmentNumber
	ResidentID int64
	// ListedByApartment is true when only the apartment lists the pair,
	// false when only the resident does.
	ListedByApartment bool
}

// RelationDrift reports every pair present on one side of the
// apartment/resident relation but missing on the other. References to
// unknown apartments or residents are reported too.
func RelationDrift(apartments []model.Apartment, residents []model.Resident) []Drift {
	byID := make(map[int64]model.Resident, len(residents))
	for _, r := range residents {
		byID[r.ID] = r
	}
	byNumber := make(map[model.ApartmentNumber]model.Apartment, len(apartments))
	for _, apt := range apartments {
		byNumber[apt.Number] = apt
	}

	var drift []Drift
	for _, apt := range apartments {
		for _, id := range uniqueIDs(apt.ResidentIDs) {
			r, ok := byID[id]
			if !ok || !r.ApartmentNumbers.Contains(apt.Number) {
				drift = append(drift, Drift{Apartment: apt.Number, ResidentID: id, ListedByApartment: true})
			}
		}
	}
	for _, r := range residents {
		for _, n := range uniqueRefs(r.ApartmentNumbers) {
			apt, ok := byNumber[n]
			if !ok || !apt.HasResident(r.ID) {
				drift = append(drift, Drift{Apartment: n, ResidentID: r.ID})
			}
		}
	}
	return drift
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func uniqueRefs(refs model.ApartmentRefs) []model.ApartmentNumber {
	seen := make(map[model.ApartmentNumber]bool, len(refs))
	out := make([]model.ApartmentNumber, 0, len(refs))
	for _, n := range refs {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
