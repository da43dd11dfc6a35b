package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/condo-console/internal/model"
)

func fixtureApartments() []model.Apartment {
	return []model.Apartment{
		{Number: "101", Occupied: true, ResidentIDs: []int64{1, 2}},
		{Number: "102", Rented: true, Occupied: true, ResidentIDs: []int64{3}},
		{Number: "201", ForSale: true},
		{Number: "202", Rented: true, ForSale: true, ResidentIDs: []int64{99}},
	}
}

func fixtureResidents() []model.Resident {
	return []model.Resident{
		{ID: 2, Name: "Bruno", ApartmentNumbers: model.ApartmentRefs{"101"}},
		{ID: 1, Name: "Ana", ApartmentNumbers: model.ApartmentRefs{"101"}},
		{ID: 3, Name: "Caio", ApartmentNumbers: model.ApartmentRefs{"102", "201"}},
		{ID: 4, Name: "Duda"},
	}
}

func names(rs []model.Resident) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func numbers(apts []model.Apartment) []string {
	out := make([]string, 0, len(apts))
	for _, a := range apts {
		out = append(out, a.Key())
	}
	return out
}

func TestResidentsOfApartment(t *testing.T) {
	residents := fixtureResidents()
	apts := fixtureApartments()

	assert.Equal(t, []string{"Bruno", "Ana"}, names(ResidentsOfApartment(apts[0], residents)))
	assert.Equal(t, []string{"Caio"}, names(ResidentsOfApartment(apts[1], residents)))
	assert.Empty(t, ResidentsOfApartment(apts[2], residents))
	assert.Empty(t, ResidentsOfApartment(apts[3], residents), "unknown ids join to nothing")
}

func TestResidentIndex_MatchesLinearJoin(t *testing.T) {
	residents := fixtureResidents()
	idx := IndexResidents(residents)

	for _, apt := range fixtureApartments() {
		assert.Equal(t, ResidentsOfApartment(apt, residents), idx.Of(apt), apt.Number)
	}

	r, ok := idx.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Caio", r.Name)
	_, ok = idx.Get(42)
	assert.False(t, ok)
}

func TestFilterApartments(t *testing.T) {
	apts := fixtureApartments()

	assert.Equal(t, apts, FilterApartments(apts, FilterAll))
	assert.Equal(t, []string{"101", "102"}, numbers(FilterApartments(apts, FilterOccupied)))
	assert.Equal(t, []string{"102", "202"}, numbers(FilterApartments(apts, FilterRented)))
	assert.Equal(t, []string{"201", "202"}, numbers(FilterApartments(apts, FilterForSale)))

	for _, f := range Filters {
		for _, apt := range FilterApartments(apts, f) {
			assert.Contains(t, apts, apt)
		}
	}
	assert.Empty(t, FilterApartments(nil, FilterOccupied))
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"":         FilterAll,
		"todos":    FilterAll,
		"occupied": FilterOccupied,
		"ocupado":  FilterOccupied,
		"Alugado":  FilterRented,
		"forSale":  FilterForSale,
		"venda":    FilterForSale,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilter("vacant")
	assert.Error(t, err)
}

func TestCountByFilter(t *testing.T) {
	counts := CountByFilter(fixtureApartments())
	assert.Equal(t, map[Filter]int{
		FilterAll:      4,
		FilterOccupied: 2,
		FilterRented:   2,
		FilterForSale:  2,
	}, counts)
}

func TestApartmentBoard(t *testing.T) {
	cards := ApartmentBoard(fixtureApartments(), fixtureResidents(), FilterOccupied)
	require.Len(t, cards, 2)
	assert.Equal(t, model.ApartmentNumber("101"), cards[0].Apartment.Number)
	assert.Equal(t, []string{"Bruno", "Ana"}, names(cards[0].Residents))
	assert.Equal(t, []string{"Caio"}, names(cards[1].Residents))
}

func TestApartmentsOfResidentAndOccupancy(t *testing.T) {
	apts := fixtureApartments()
	residents := fixtureResidents()

	assert.Equal(t, []string{"102", "201"}, numbers(ApartmentsOfResident(residents[2], apts)))
	assert.Empty(t, ApartmentsOfResident(residents[3], apts))

	occ := Occupancy(residents)
	assert.Equal(t, []string{"Bruno", "Ana"}, names(occ["101"]))
	assert.Equal(t, []string{"Caio"}, names(occ["201"]))
	_, ok := occ["202"]
	assert.False(t, ok)
}

func TestRelationDrift(t *testing.T) {
	drift := RelationDrift(fixtureApartments(), fixtureResidents())

	assert.ElementsMatch(t, []Drift{
		{Apartment: "202", ResidentID: 99, ListedByApartment: true},
		{Apartment: "201", ResidentID: 3},
	}, drift)

	consistent := RelationDrift(
		[]model.Apartment{{Number: "101", ResidentIDs: []int64{1}}},
		[]model.Resident{{ID: 1, ApartmentNumbers: model.ApartmentRefs{"101"}}},
	)
	assert.Empty(t, consistent)
}

func TestAccountViews(t *testing.T) {
	accounts := []model.Account{
		{ID: 1, Amount: decimal.RequireFromString("150.00"), Pending: true, ResidentID: 7, ApartmentNumber: "101"},
		{ID: 2, Amount: decimal.RequireFromString("80.50"), Pending: false, ResidentID: 7, ApartmentNumber: "102"},
		{ID: 3, Amount: decimal.RequireFromString("19.99"), Pending: true, ResidentID: 8, ApartmentNumber: "101"},
	}

	assert.Len(t, FilterAccounts(accounts, AccountsAll), 3)
	assert.Len(t, FilterAccounts(accounts, AccountsPending), 2)
	assert.Len(t, FilterAccounts(accounts, AccountsSettled), 1)
	assert.Len(t, AccountsOfResident(accounts, 7), 2)
	assert.Len(t, AccountsOfApartment(accounts, "101"), 2)
	assert.Empty(t, AccountsOfResident(accounts, 1))
	assert.True(t, PendingTotal(accounts).Equal(decimal.RequireFromString("169.99")))

	status, err := ParseAccountStatus("quitada")
	require.NoError(t, err)
	assert.Equal(t, AccountsSettled, status)
	_, err = ParseAccountStatus("overdue")
	assert.Error(t, err)
}
