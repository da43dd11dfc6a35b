package form

import (
	"context"
	"errors"

	"github.com/beesaferoot/condo-console/internal/model"
	"github.com/beesaferoot/condo-console/internal/store"
)

var ErrEditUnsupported = errors.New("form does not support editing")

// Target receives submitted entities; *store.Store satisfies it.
type Target[T any] interface {
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, key string, item T) error
}

// Form couples a draft with the store it submits to. A form with a fill
// function supports edit mode: Submit then updates the edited item instead
// of creating a new one.
type Form[T store.Keyed] struct {
	noun    string
	draft   *Draft
	build   func(*Draft) (T, error)
	fill    func(*Draft, T)
	target  Target[T]
	editing string
}

func NewApartmentForm(target Target[model.Apartment]) *Form[model.Apartment] {
	return &Form[model.Apartment]{noun: "apartment", draft: NewDraft(ApartmentSchema), build: BuildApartment, target: target}
}

func NewResidentForm(target Target[model.Resident]) *Form[model.Resident] {
	return &Form[model.Resident]{noun: "resident", draft: NewDraft(ResidentSchema), build: BuildResident, target: target}
}

func NewAccountForm(target Target[model.Account]) *Form[model.Account] {
	return &Form[model.Account]{noun: "account", draft: NewDraft(AccountSchema), build: BuildAccount, target: target}
}

func NewEmployeeForm(target Target[model.Employee]) *Form[model.Employee] {
	return &Form[model.Employee]{
		noun:   "employee",
		draft:  NewDraft(EmployeeSchema),
		build:  BuildEmployee,
		fill:   FillEmployee,
		target: target,
	}
}

func (f *Form[T]) Draft() *Draft {
	return f.draft
}

func (f *Form[T]) Editable() bool {
	return f.fill != nil
}

// Edit enters edit mode for item, replacing the draft with its values.
func (f *Form[T]) Edit(item T) error {
	if f.fill == nil {
		return ErrEditUnsupported
	}
	f.fill(f.draft, item)
	f.editing = item.Key()
	return nil
}

// Editing returns the key of the item being edited.
func (f *Form[T]) Editing() (string, bool) {
	return f.editing, f.editing != ""
}

// Cancel leaves edit mode and clears the draft. No request is made.
func (f *Form[T]) Cancel() {
	f.editing = ""
	f.draft.Reset()
}

// Forget cancels edit mode if key is the item being edited, e.g. after it
// was removed.
func (f *Form[T]) Forget(key string) {
	if f.editing != "" && f.editing == key {
		f.Cancel()
	}
}

// Submit validates the draft and sends it: an update in edit mode, a create
// otherwise. The draft is cleared only when the store accepted it.
func (f *Form[T]) Submit(ctx context.Context) error {
	op := store.OpCreate
	if f.editing != "" {
		op = store.OpUpdate
	}
	item, err := f.build(f.draft)
	if err != nil {
		return &store.Error{Kind: store.KindValidation, Op: op, Entity: f.noun, Err: err}
	}

	if f.editing != "" {
		err = f.target.Update(ctx, f.editing, item)
	} else {
		err = f.target.Create(ctx, item)
	}
	if err != nil {
		return err
	}
	f.Cancel()
	return nil
}
