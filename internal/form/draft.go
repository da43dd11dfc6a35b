package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind describes how a field's raw input is coerced on submission.
type Kind int

const (
	Text Kind = iota
	Checkbox
	Integer
	Decimal
	IntegerList
)

type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Checked is the initial state of a checkbox.
	Checked bool
}

type Schema []Field

func (s Schema) lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ValidationError reports input that cannot be coerced to its field's type.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

var ErrUnknownField = errors.New("unknown field")

// Draft holds unvalidated user input keyed by field name. Checkboxes hold
// booleans, every other field holds raw text until it is coerced.
type Draft struct {
	schema  Schema
	text    map[string]string
	checked map[string]bool
}

func NewDraft(schema Schema) *Draft {
	d := &Draft{schema: schema}
	d.Reset()
	return d
}

func (d *Draft) Schema() Schema {
	return d.schema
}

// Reset restores every field to its initial value.
func (d *Draft) Reset() {
	d.text = make(map[string]string, len(d.schema))
	d.checked = make(map[string]bool)
	for _, f := range d.schema {
		if f.Kind == Checkbox {
			d.checked[f.Name] = f.Checked
		}
	}
}

// Set stores raw input. For a checkbox the value is parsed as a boolean.
func (d *Draft) Set(name, value string) error {
	f, ok := d.schema.lookup(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if f.Kind == Checkbox {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return &ValidationError{Field: name, Value: value, Reason: "not a boolean"}
		}
		d.checked[name] = b
		return nil
	}
	d.text[name] = value
	return nil
}

func (d *Draft) SetBool(name string, checked bool) error {
	f, ok := d.schema.lookup(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if f.Kind != Checkbox {
		return fmt.Errorf("field %q is not a checkbox", name)
	}
	d.checked[name] = checked
	return nil
}

func (d *Draft) Value(name string) string {
	return d.text[name]
}

func (d *Draft) Bool(name string) bool {
	return d.checked[name]
}

// Text returns the trimmed value of a text field.
func (d *Draft) Text(name string) (string, error) {
	v := strings.TrimSpace(d.text[name])
	if v == "" && d.required(name) {
		return "", &ValidationError{Field: name, Reason: "is required"}
	}
	return v, nil
}

// Int coerces a non-negative integer field.
func (d *Draft) Int(name string) (int64, error) {
	raw := strings.TrimSpace(d.text[name])
	if raw == "" {
		if d.required(name) {
			return 0, &ValidationError{Field: name, Reason: "is required"}
		}
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: name, Value: raw, Reason: "not an integer"}
	}
	if n < 0 {
		return 0, &ValidationError{Field: name, Value: raw, Reason: "must not be negative"}
	}
	return n, nil
}

// Decimal coerces a non-negative money field. A comma decimal separator is
// accepted.
func (d *Draft) Decimal(name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(d.text[name])
	if raw == "" {
		if d.required(name) {
			return decimal.Zero, &ValidationError{Field: name, Reason: "is required"}
		}
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: name, Value: raw, Reason: "not a decimal number"}
	}
	if v.IsNegative() {
		return decimal.Zero, &ValidationError{Field: name, Value: raw, Reason: "must not be negative"}
	}
	return v, nil
}

// IntList coerces a comma-separated list of integers. Blank entries are
// skipped.
func (d *Draft) IntList(name string) ([]int64, error) {
	raw := d.text[name]
	out := []int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, &ValidationError{Field: name, Value: part, Reason: "not an integer"}
		}
		out = append(out, n)
	}
	if len(out) == 0 && d.required(name) {
		return nil, &ValidationError{Field: name, Reason: "is required"}
	}
	return out, nil
}

func (d *Draft) required(name string) bool {
	f, ok := d.schema.lookup(name)
	return ok && f.Required
}
