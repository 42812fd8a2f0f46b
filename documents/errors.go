package documents

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// FieldError reports a missing mandatory payload field. The prepare-data
// transform fails fast with it before any rendering starts; it is distinct
// from the calculation errors raised by the calc package.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("documents: missing mandatory field %q", e.Field)
}

// decode unmarshals a raw payload, rejecting empty input outright.
func decode(raw []byte, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("documents: empty payload")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("documents: decoding payload: %w", err)
	}
	return nil
}

// requireText fails when a mandatory text field is blank.
func requireText(v, field string) error {
	if strings.TrimSpace(v) == "" {
		return &FieldError{Field: field}
	}
	return nil
}

// requireParty checks the identity fields every document prints for a
// party: name, address and city.
func requireParty(p Party, prefix string) error {
	if err := requireText(p.Name, prefix+".name"); err != nil {
		return err
	}
	if err := requireText(p.Address, prefix+".address"); err != nil {
		return err
	}
	return requireText(p.City, prefix+".city")
}

// requireProperty checks the premises designation.
func requireProperty(p PropertyDesignation, prefix string) error {
	if err := requireText(p.Address, prefix+".address"); err != nil {
		return err
	}
	return requireText(p.City, prefix+".city")
}

// requirePositive fails when a mandatory amount is absent or non-positive.
func requirePositive(m Money, field string) error {
	if m <= 0 {
		return &FieldError{Field: field}
	}
	return nil
}

// requireDate fails when a mandatory date is absent.
func requireDate(d Date, field string) error {
	if d.IsZero() {
		return &FieldError{Field: field}
	}
	return nil
}
