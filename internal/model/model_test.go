package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApartmentNumber_DecodesNumbersAndStrings(t *testing.T) {
	var r Resident
	err := json.Unmarshal([]byte(`{"id":3,"nome":"Ana","idade":31,"apartamentos":[101,"102B"]}`), &r)
	require.NoError(t, err)

	assert.Equal(t, int64(3), r.ID)
	assert.Equal(t, ApartmentRefs{"101", "102B"}, r.ApartmentNumbers)
	assert.True(t, r.ApartmentNumbers.Contains("101"))
	assert.False(t, r.ApartmentNumbers.Contains("201"))
}

func TestApartmentRefs_EncodeNumericEntriesAsIntegers(t *testing.T) {
	data, err := json.Marshal(Resident{Name: "Ana", Age: 31, ApartmentNumbers: ApartmentRefs{"101", "102B"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nome":"Ana","idade":31,"apartamentos":[101,"102B"]}`, string(data))

	data, err = json.Marshal(Resident{Name: "Bia"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nome":"Bia","idade":0,"apartamentos":[]}`, string(data))
}

func TestApartment_Toggled(t *testing.T) {
	apt := Apartment{Number: "101", ResidentIDs: []int64{1, 2}}

	toggled, err := apt.Toggled(FieldOccupied)
	require.NoError(t, err)
	assert.True(t, toggled.Occupied)
	assert.False(t, toggled.Rented)
	assert.False(t, toggled.ForSale)
	assert.Equal(t, apt.ResidentIDs, toggled.ResidentIDs)
	assert.False(t, apt.Occupied, "original must not change")

	toggled, err = toggled.Toggled("forSale")
	require.NoError(t, err)
	assert.True(t, toggled.ForSale)

	_, err = apt.Toggled("Numero_AP")
	assert.Error(t, err)
}

func TestApartment_WireFormat(t *testing.T) {
	var apt Apartment
	err := json.Unmarshal([]byte(`{"Numero_AP":"101","Ocupado":true,"Alugado":false,"Venda":true,"moradores":[7,9]}`), &apt)
	require.NoError(t, err)

	assert.Equal(t, "101", apt.Key())
	assert.True(t, apt.HasResident(9))
	assert.False(t, apt.HasResident(8))
}

func TestAccount_DecodeAndToggle(t *testing.T) {
	var acc Account
	err := json.Unmarshal([]byte(`{"id":1,"valor":150.00,"pendente":true,"morador_id":7,"numero_AP":"101"}`), &acc)
	require.NoError(t, err)

	assert.Equal(t, "1", acc.Key())
	assert.True(t, acc.Amount.Equal(decimal.RequireFromString("150")))
	assert.Equal(t, ApartmentNumber("101"), acc.ApartmentNumber)
	assert.Equal(t, "pending", acc.Status())

	settled, err := acc.Toggled(FieldPending)
	require.NoError(t, err)
	assert.False(t, settled.Pending)
	assert.Equal(t, "settled", settled.Status())

	_, err = acc.Toggled("valor")
	assert.Error(t, err)
}
