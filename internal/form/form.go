// Package form holds the editable review form for extracted identity fields.
package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
)

// Field names, matching the JSON names of models.ExtractedData
const (
	FieldFullName  = "fullName"
	FieldIDNumber  = "idNumber"
	FieldIssueDate = "issueDate"
	FieldAddress   = "address"
)

// Fields lists every form field in display order
var Fields = []string{FieldFullName, FieldIDNumber, FieldIssueDate, FieldAddress}

var (
	// ErrInvalid is returned by Submit when any field fails validation
	ErrInvalid = errors.New("form is invalid")
	// ErrUnknownField is returned by SetField for names outside Fields
	ErrUnknownField = errors.New("unknown form field")
)

// ResultForm presents one ExtractedData as editable fields and emits a
// validated copy on submit. Submission is all-or-nothing.
type ResultForm struct {
	mu      sync.Mutex
	values  map[string]string
	touched map[string]bool
	onSave  func(models.ExtractedData)
}

// New creates an empty form. onSave receives one call per valid Submit and
// may be nil.
func New(onSave func(models.ExtractedData)) *ResultForm {
	f := &ResultForm{
		values:  make(map[string]string, len(Fields)),
		touched: make(map[string]bool, len(Fields)),
		onSave:  onSave,
	}
	for _, name := range Fields {
		f.values[name] = ""
	}
	return f
}

// SetInitial resynchronises every field to data and hides validation
// feedback. The owner calls it each time the source value changes.
func (f *ResultForm) SetInitial(data models.ExtractedData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[FieldFullName] = data.FullName
	f.values[FieldIDNumber] = data.IDNumber
	f.values[FieldIssueDate] = data.IssueDate
	f.values[FieldAddress] = data.Address
	clear(f.touched)
}

// Reset empties the form
func (f *ResultForm) Reset() {
	f.SetInitial(models.ExtractedData{})
}

// SetField edits a single field
func (f *ResultForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.values[name] = value
	return nil
}

// Submit emits the current values when all fields are valid. Otherwise it
// marks every field touched and returns ErrInvalid.
func (f *ResultForm) Submit() (models.ExtractedData, error) {
	f.mu.Lock()
	if errs := f.validate(); len(errs) > 0 {
		for _, name := range Fields {
			f.touched[name] = true
		}
		f.mu.Unlock()
		return models.ExtractedData{}, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(invalidFields(errs), ", "))
	}
	data := f.current()
	onSave := f.onSave
	f.mu.Unlock()

	if onSave != nil {
		onSave(data)
	}
	return data, nil
}

// Values returns the current field values
func (f *ResultForm) Values() models.ExtractedData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current()
}

// Touched reports whether validation feedback is visible for a field
func (f *ResultForm) Touched(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[name]
}

// Errors returns the validation message per invalid field
func (f *ResultForm) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate()
}

// Snapshot returns values, touched flags and visible errors together
func (f *ResultForm) Snapshot() models.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	touched := make(map[string]bool, len(Fields))
	visible := map[string]string{}
	errs := f.validate()
	for _, name := range Fields {
		touched[name] = f.touched[name]
		if msg, bad := errs[name]; bad && f.touched[name] {
			visible[name] = msg
		}
	}
	return models.FormState{Values: f.current(), Touched: touched, Errors: visible}
}

func (f *ResultForm) current() models.ExtractedData {
	return models.ExtractedData{
		FullName:  f.values[FieldFullName],
		IDNumber:  f.values[FieldIDNumber],
		IssueDate: f.values[FieldIssueDate],
		Address:   f.values[FieldAddress],
	}
}

// validate must be called with mu held
func (f *ResultForm) validate() map[string]string {
	errs := map[string]string{}
	for _, name := range Fields {
		if strings.TrimSpace(f.values[name]) == "" {
			errs[name] = "required"
		}
	}
	return errs
}

func invalidFields(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for _, name := range Fields {
		if _, ok := m[name]; ok {
			keys = append(keys, name)
		}
	}
	return keys
}
