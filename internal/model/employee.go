package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Employee represents a member of the building staff
type Employee struct {
	ID       int64           `json:"id,omitempty"`
	Name     string          `json:"nome"`
	Age      int             `json:"idade"`
	Role     string          `json:"cargo"`
	Salary   decimal.Decimal `json:"salario"`
	Schedule string          `json:"horario"` // e.g. 07:00-19:00
}

func (e Employee) Key() string {
	return strconv.FormatInt(e.ID, 10)
}
