package form

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/condo-console/internal/model"
	"github.com/beesaferoot/condo-console/internal/store"
)

type recordingTarget[T any] struct {
	created []T
	updated map[string]T
	err     error
}

func (r *recordingTarget[T]) Create(_ context.Context, item T) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, item)
	return nil
}

func (r *recordingTarget[T]) Update(_ context.Context, key string, item T) error {
	if r.err != nil {
		return r.err
	}
	if r.updated == nil {
		r.updated = map[string]T{}
	}
	r.updated[key] = item
	return nil
}

func TestDraft_DefaultsAndReset(t *testing.T) {
	d := NewDraft(AccountSchema)
	assert.True(t, d.Bool(AccountPending), "accounts start pending")

	require.NoError(t, d.SetBool(AccountPending, false))
	require.NoError(t, d.Set(AccountAmount, "10"))
	d.Reset()

	assert.True(t, d.Bool(AccountPending))
	assert.Empty(t, d.Value(AccountAmount))
}

func TestDraft_SetRejectsUnknownFields(t *testing.T) {
	d := NewDraft(ApartmentSchema)

	assert.ErrorIs(t, d.Set("andar", "3"), ErrUnknownField)
	assert.ErrorIs(t, d.SetBool("andar", true), ErrUnknownField)
	assert.Error(t, d.SetBool(ApartmentNumber, true))

	require.NoError(t, d.Set(ApartmentRented, "true"))
	assert.True(t, d.Bool(ApartmentRented))
	assert.Error(t, d.Set(ApartmentRented, "sim"))
}

func TestDraft_Coercion(t *testing.T) {
	d := NewDraft(ResidentSchema)
	require.NoError(t, d.Set(ResidentAge, " 42 "))
	require.NoError(t, d.Set(ResidentApartments, "101, 102,, 201 "))

	age, err := d.Int(ResidentAge)
	require.NoError(t, err)
	assert.Equal(t, int64(42), age)

	apts, err := d.IntList(ResidentApartments)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102, 201}, apts)

	require.NoError(t, d.Set(ResidentApartments, ""))
	apts, err = d.IntList(ResidentApartments)
	require.NoError(t, err)
	assert.Empty(t, apts)

	money := NewDraft(EmployeeSchema)
	require.NoError(t, money.Set(EmployeeSalary, "2500,75"))
	salary, err := money.Decimal(EmployeeSalary)
	require.NoError(t, err)
	assert.True(t, salary.Equal(decimal.RequireFromString("2500.75")))
}

func TestDraft_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
		check func(d *Draft) error
	}{
		{"non numeric age", ResidentAge, "abc", func(d *Draft) error { _, err := d.Int(ResidentAge); return err }},
		{"negative age", ResidentAge, "-1", func(d *Draft) error { _, err := d.Int(ResidentAge); return err }},
		{"missing age", ResidentAge, "", func(d *Draft) error { _, err := d.Int(ResidentAge); return err }},
		{"bad list entry", ResidentApartments, "101, abc", func(d *Draft) error { _, err := d.IntList(ResidentApartments); return err }},
		{"missing name", ResidentName, "  ", func(d *Draft) error { _, err := d.Text(ResidentName); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDraft(ResidentSchema)
			require.NoError(t, d.Set(tc.field, tc.value))

			err := tc.check(d)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	d := NewDraft(AccountSchema)
	require.NoError(t, d.Set(AccountAmount, "-5"))
	_, err := d.Decimal(AccountAmount)
	assert.ErrorContains(t, err, "must not be negative")
	require.NoError(t, d.Set(AccountAmount, "NaN"))
	_, err = d.Decimal(AccountAmount)
	assert.ErrorContains(t, err, "not a decimal number")
}

func TestBuildResident(t *testing.T) {
	d := NewDraft(ResidentSchema)
	require.NoError(t, d.Set(ResidentName, "Ana"))
	require.NoError(t, d.Set(ResidentAge, "31"))
	require.NoError(t, d.Set(ResidentApartments, "101,102"))

	r, err := BuildResident(d)
	require.NoError(t, err)
	assert.Equal(t, model.Resident{Name: "Ana", Age: 31, ApartmentNumbers: model.ApartmentRefs{"101", "102"}}, r)
}

func TestBuildAccount_ReportsEveryInvalidField(t *testing.T) {
	d := NewDraft(AccountSchema)
	require.NoError(t, d.Set(AccountAmount, "abc"))
	require.NoError(t, d.Set(AccountResident, "x"))

	_, err := BuildAccount(d)
	require.Error(t, err)
	assert.ErrorContains(t, err, AccountAmount)
	assert.ErrorContains(t, err, AccountResident)
	assert.ErrorContains(t, err, AccountApartment)
}

func TestBuildAccount(t *testing.T) {
	d := NewDraft(AccountSchema)
	require.NoError(t, d.Set(AccountAmount, "150.00"))
	require.NoError(t, d.Set(AccountResident, "7"))
	require.NoError(t, d.Set(AccountApartment, "101"))

	acc, err := BuildAccount(d)
	require.NoError(t, err)
	assert.True(t, acc.Amount.Equal(decimal.RequireFromString("150")))
	assert.True(t, acc.Pending)
	assert.Equal(t, int64(7), acc.ResidentID)
	assert.Equal(t, model.ApartmentNumber("101"), acc.ApartmentNumber)
}

func TestForm_CreateClearsDraftOnSuccess(t *testing.T) {
	target := &recordingTarget[model.Apartment]{}
	f := NewApartmentForm(target)
	require.NoError(t, f.Draft().Set(ApartmentNumber, "101"))
	require.NoError(t, f.Draft().SetBool(ApartmentOccupied, true))

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, []model.Apartment{{Number: "101", Occupied: true}}, target.created)
	assert.Empty(t, f.Draft().Value(ApartmentNumber))
	assert.False(t, f.Draft().Bool(ApartmentOccupied))
}

func TestForm_FailureKeepsDraft(t *testing.T) {
	target := &recordingTarget[model.Apartment]{err: errors.New("boom")}
	f := NewApartmentForm(target)
	require.NoError(t, f.Draft().Set(ApartmentNumber, "101"))

	assert.Error(t, f.Submit(context.Background()))
	assert.Equal(t, "101", f.Draft().Value(ApartmentNumber))
}

func TestForm_ValidationStopsBeforeTarget(t *testing.T) {
	target := &recordingTarget[model.Resident]{}
	f := NewResidentForm(target)
	require.NoError(t, f.Draft().Set(ResidentName, "Ana"))
	require.NoError(t, f.Draft().Set(ResidentAge, "trinta"))

	err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, store.KindValidation, store.KindOf(err))
	assert.Empty(t, target.created)
}

func TestForm_EmployeeEditMode(t *testing.T) {
	target := &recordingTarget[model.Employee]{}
	f := NewEmployeeForm(target)
	require.True(t, f.Editable())

	emp := model.Employee{ID: 9, Name: "Carlos", Age: 50, Role: "PORTEIRO", Salary: decimal.RequireFromString("2100.50"), Schedule: "07:00-19:00"}
	require.NoError(t, f.Edit(emp))

	key, editing := f.Editing()
	assert.True(t, editing)
	assert.Equal(t, "9", key)
	assert.Equal(t, "Carlos", f.Draft().Value(EmployeeName))
	assert.Equal(t, "2100.5", f.Draft().Value(EmployeeSalary))

	require.NoError(t, f.Draft().Set(EmployeeRole, "ZELADOR"))
	require.NoError(t, f.Submit(context.Background()))

	assert.Empty(t, target.created)
	require.Contains(t, target.updated, "9")
	assert.Equal(t, "ZELADOR", target.updated["9"].Role)
	_, editing = f.Editing()
	assert.False(t, editing)
}

func TestForm_CancelAndForget(t *testing.T) {
	target := &recordingTarget[model.Employee]{}
	f := NewEmployeeForm(target)

	require.NoError(t, f.Edit(model.Employee{ID: 3, Name: "Rita"}))
	f.Forget("4")
	_, editing := f.Editing()
	assert.True(t, editing)

	f.Forget("3")
	_, editing = f.Editing()
	assert.False(t, editing)
	assert.Empty(t, f.Draft().Value(EmployeeName))

	require.NoError(t, f.Edit(model.Employee{ID: 5, Name: "Lia"}))
	f.Cancel()
	_, editing = f.Editing()
	assert.False(t, editing)
	assert.Empty(t, f.Draft().Value(EmployeeName))
	assert.Empty(t, target.created)
	assert.Empty(t, target.updated)
}

func TestForm_EditUnsupported(t *testing.T) {
	assert.ErrorIs(t, NewAccountForm(&recordingTarget[model.Account]{}).Edit(model.Account{ID: 1}), ErrEditUnsupported)
	assert.False(t, NewResidentForm(&recordingTarget[model.Resident]{}).Editable())
}
