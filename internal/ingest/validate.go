// Package ingest loads and validates invoice and billing-entry records before
// they reach storage or the matching engine.
package ingest

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicematch/internal/models"
)

// ErrInvalidRecord is wrapped by every *ValidationError.
var ErrInvalidRecord = errors.New("invalid record")

// ValidationError describes the failed fields of one record.
type ValidationError struct {
	// Kind is "invoice" or "entry".
	Kind string
	// Index is the record's position in the submitted batch.
	Index int
	// Fields maps the JSON field name to the failed validation tag.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%s)", name, e.Fields[name])
	}
	return fmt.Sprintf("%s %d: invalid fields: %s", e.Kind, e.Index, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// Validator checks records against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator that understands decimal amounts and calendar dates.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// A zero amount or a zero date fails "required".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.String()
		}
		return nil
	}, models.Date{})

	return &Validator{validate: v}
}

// Invoices validates every invoice and returns the first failure.
func (v *Validator) Invoices(invoices []models.ContractorInvoice) error {
	for i := range invoices {
		if err := v.check("invoice", i, &invoices[i]); err != nil {
			return err
		}
	}
	return nil
}

// Entries validates every billing entry and returns the first failure.
func (v *Validator) Entries(entries []models.BillingEntry) error {
	for i := range entries {
		if err := v.check("entry", i, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) check(kind string, index int, record interface{}) error {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %s %d: %w", kind, index, err)
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fieldPath(fe)] = fe.Tag()
	}
	return &ValidationError{Kind: kind, Index: index, Fields: fields}
}

// fieldPath strips the struct name from the namespace ("ContractorInvoice.lineItems[0].total").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
