package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

var hostnamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]+$`)

// ValidationError names the offending field and why it was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Validator checks a raw publish body. It never performs I/O.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate decodes body and checks taxon_id, taxon_plural and hostname in
// that order, stopping at the first failure.
func (v *Validator) Validate(body []byte) (Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Request{}, invalid(fieldBody, "request body must be a JSON object")
	}

	taxonID, err := v.ValidateTaxonID(fields[fieldTaxonID])
	if err != nil {
		return Request{}, err
	}
	taxonPlural, err := v.ValidateTaxonPlural(fields[fieldTaxonPlural])
	if err != nil {
		return Request{}, err
	}
	hostname, err := v.ValidateHostname(fields[fieldHostname])
	if err != nil {
		return Request{}, err
	}

	return Request{TaxonID: taxonID, TaxonPlural: taxonPlural, Hostname: hostname}, nil
}

// ValidateTaxonID accepts a non-negative JSON integer. Floats, exponents,
// strings and booleans are rejected.
func (v *Validator) ValidateTaxonID(raw json.RawMessage) (int64, error) {
	reject := invalid(fieldTaxonID, fmt.Sprintf("%s is required and must be an integer", fieldTaxonID))

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if len(raw) == 0 || dec.Decode(&value) != nil {
		return 0, reject
	}
	n, ok := value.(json.Number)
	if !ok {
		return 0, reject
	}
	id, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || id < 0 {
		return 0, reject
	}
	return id, nil
}

// ValidateTaxonPlural accepts any non-empty JSON string.
func (v *Validator) ValidateTaxonPlural(raw json.RawMessage) (string, error) {
	s, ok := decodeString(raw)
	if !ok || s == "" {
		return "", invalid(fieldTaxonPlural, fmt.Sprintf("%s is required and must be a string", fieldTaxonPlural))
	}
	return s, nil
}

// ValidateHostname accepts a JSON string matching ^[a-z][a-z0-9-]+$.
func (v *Validator) ValidateHostname(raw json.RawMessage) (string, error) {
	s, ok := decodeString(raw)
	if !ok || !ValidHostname(s) {
		return "", invalid(fieldHostname, fmt.Sprintf("%s is required and must be a valid string", fieldHostname))
	}
	return s, nil
}

// ValidHostname reports whether s can be used as a deployment name.
func ValidHostname(s string) bool {
	return hostnamePattern.MatchString(s)
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}
