package form

import (
	"errors"
	"strconv"

	"github.com/beesaferoot/condo-console/internal/model"
)

// Field names follow the service's wire keys.
const (
	ApartmentNumber   = "Numero_AP"
	ApartmentOccupied = model.FieldOccupied
	ApartmentRented   = model.FieldRented
	ApartmentForSale  = model.FieldForSale

	ResidentName       = "nome"
	ResidentAge        = "idade"
	ResidentApartments = "apartamentos"

	AccountAmount    = "valor"
	AccountPending   = model.FieldPending
	AccountResident  = "morador_id"
	AccountApartment = "numero_AP"

	EmployeeName     = "nome"
	EmployeeAge      = "idade"
	EmployeeRole     = "cargo"
	EmployeeSalary   = "salario"
	EmployeeSchedule = "horario"
)

var (
	ApartmentSchema = Schema{
		{Name: ApartmentNumber, Kind: Text, Required: true},
		{Name: ApartmentOccupied, Kind: Checkbox},
		{Name: ApartmentRented, Kind: Checkbox},
		{Name: ApartmentForSale, Kind: Checkbox},
	}
	ResidentSchema = Schema{
		{Name: ResidentName, Kind: Text, Required: true},
		{Name: ResidentAge, Kind: Integer, Required: true},
		{Name: ResidentApartments, Kind: IntegerList},
	}
	AccountSchema = Schema{
		{Name: AccountAmount, Kind: Decimal, Required: true},
		{Name: AccountPending, Kind: Checkbox, Checked: true},
		{Name: AccountResident, Kind: Integer, Required: true},
		{Name: AccountApartment, Kind: Text, Required: true},
	}
	EmployeeSchema = Schema{
		{Name: EmployeeName, Kind: Text, Required: true},
		{Name: EmployeeAge, Kind: Integer, Required: true},
		{Name: EmployeeRole, Kind: Text, Required: true},
		{Name: EmployeeSalary, Kind: Decimal, Required: true},
		{Name: EmployeeSchedule, Kind: Text, Required: true},
	}
)

func BuildApartment(d *Draft) (model.Apartment, error) {
	number, err := d.Text(ApartmentNumber)
	if err != nil {
		return model.Apartment{}, err
	}
	return model.Apartment{
		Number:   model.ApartmentNumber(number),
		Occupied: d.Bool(ApartmentOccupied),
		Rented:   d.Bool(ApartmentRented),
		ForSale:  d.Bool(ApartmentForSale),
	}, nil
}

func BuildResident(d *Draft) (model.Resident, error) {
	name, nameErr := d.Text(ResidentName)
	age, ageErr := d.Int(ResidentAge)
	apts, aptsErr := d.IntList(ResidentApartments)
	if err := errors.Join(nameErr, ageErr, aptsErr); err != nil {
		return model.Resident{}, err
	}
	refs := make(model.ApartmentRefs, 0, len(apts))
	for _, n := range apts {
		refs = append(refs, model.ApartmentNumber(strconv.FormatInt(n, 10)))
	}
	return model.Resident{Name: name, Age: int(age), ApartmentNumbers: refs}, nil
}

func BuildAccount(d *Draft) (model.Account, error) {
	amount, amountErr := d.Decimal(AccountAmount)
	resident, residentErr := d.Int(AccountResident)
	apt, aptErr := d.Text(AccountApartment)
	if err := errors.Join(amountErr, residentErr, aptErr); err != nil {
		return model.Account{}, err
	}
	return model.Account{
		Amount:          amount,
		Pending:         d.Bool(AccountPending),
		ResidentID:      resident,
		ApartmentNumber: model.ApartmentNumber(apt),
	}, nil
}

func BuildEmployee(d *Draft) (model.Employee, error) {
	name, nameErr := d.Text(EmployeeName)
	age, ageErr := d.Int(EmployeeAge)
	role, roleErr := d.Text(EmployeeRole)
	salary, salaryErr := d.Decimal(EmployeeSalary)
	schedule, scheduleErr := d.Text(EmployeeSchedule)
	if err := errors.Join(nameErr, ageErr, roleErr, salaryErr, scheduleErr); err != nil {
		return model.Employee{}, err
	}
	return model.Employee{
		Name:     name,
		Age:      int(age),
		Role:     role,
		Salary:   salary,
		Schedule: schedule,
	}, nil
}

// FillEmployee pre-populates d from an existing employee.
func FillEmployee(d *Draft, e model.Employee) {
	d.Reset()
	d.text[EmployeeName] = e.Name
	d.text[EmployeeAge] = strconv.Itoa(e.Age)
	d.text[EmployeeRole] = e.Role
	d.text[EmployeeSalary] = e.Salary.String()
	d.text[EmployeeSchedule] = e.Schedule
}
