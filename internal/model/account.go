package model

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

const FieldPending = "pendente"

// Account is a recurring bill charged to a resident for an apartment
type Account struct {
	ID              int64           `json:"id,omitempty"`
	Amount          decimal.Decimal `json:"valor"`
	Pending         bool            `json:"pendente"`
	ResidentID      int64           `json:"morador_id"`
	ApartmentNumber ApartmentNumber `json:"numero_AP"`
}

func (a Account) Key() string {
	return strconv.FormatInt(a.ID, 10)
}

// Toggled returns a copy of a with the named boolean field negated.
func (a Account) Toggled(field string) (Account, error) {
	switch field {
	case FieldPending, "pending":
		a.Pending = !a.Pending
	default:
		return a, fmt.Errorf("account has no boolean field %q", field)
	}
	return a, nil
}

// Status is the display label of the account's payment state.
func (a Account) Status() string {
	if a.Pending {
		return "pending"
	}
	return "settled"
}
