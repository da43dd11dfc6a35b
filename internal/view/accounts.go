package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/beesaferoot/condo-console/internal/model"
)

type AccountStatus string

const (
	AccountsAll     AccountStatus = "all"
	AccountsPending AccountStatus = "pending"
	AccountsSettled AccountStatus = "settled"
)

func ParseAccountStatus(s string) (AccountStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "todas":
		return AccountsAll, nil
	case "pending", "pendente":
		return AccountsPending, nil
	case "settled", "paid", "quitada":
		return AccountsSettled, nil
	}
	return "", fmt.Errorf("unknown account status %q (want one of all, pending, settled)", s)
}

func FilterAccounts(accounts []model.Account, status AccountStatus) []model.Account {
	if status == AccountsAll {
		return accounts
	}
	out := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Pending == (status == AccountsPending) {
			out = append(out, a)
		}
	}
	return out
}

func AccountsOfResident(accounts []model.Account, residentID int64) []model.Account {
	out := []model.Account{}
	for _, a := range accounts {
		if a.ResidentID == residentID {
			out = append(out, a)
		}
	}
	return out
}

func AccountsOfApartment(accounts []model.Account, number model.ApartmentNumber) []model.Account {
	out := []model.Account{}
	for _, a := range accounts {
		if a.ApartmentNumber == number {
			out = append(out, a)
		}
	}
	return out
}

// PendingTotal sums the amounts still owed.
func PendingTotal(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.Pending {
			total = total.Add(a.Amount)
		}
	}
	return total
}
