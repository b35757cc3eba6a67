package omdb

import (
	"encoding/json"
	"strings"
)

// NotAvailable is the literal sentinel OMDb uses for missing field data.
const NotAvailable = "N/A"

// Rating is one entry of the Ratings field.
type Rating struct {
	Source string `json:"Source" yaml:"source"`
	Value  string `json:"Value" yaml:"value"`
}

// Value is a single field of a Record: either a plain string or, for the
// Ratings field, a list of source/value pairs.
type Value struct {
	Str     string
	Ratings []Rating
}

// IsRatings reports whether the value is a ratings list.
func (v Value) IsRatings() bool {
	return v.Ratings != nil
}

// Raw returns the value in its note-facing shape (string or []Rating).
func (v Value) Raw() any {
	if v.IsRatings() {
		return v.Ratings
	}
	return v.Str
}

// Record is the OMDb response for one identifier. Beyond the Response flag
// and error message, the field set is open-ended: lookups go through Field
// so that "absent" stays distinct from "present but N/A".
type Record struct {
	Response string
	Error    string

	fields map[string]Value
}

// UnmarshalJSON decodes the fixed Response/Error members and captures every
// other field as a tagged Value. Fields with unrecognised shapes are dropped.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.fields = make(map[string]Value, len(raw))
	for name, msg := range raw {
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			switch name {
			case "Response":
				r.Response = s
			case "Error":
				r.Error = s
			default:
				r.fields[name] = Value{Str: s}
			}
			continue
		}
		var ratings []Rating
		if err := json.Unmarshal(msg, &ratings); err == nil {
			r.fields[name] = Value{Ratings: ratings}
		}
	}
	return nil
}

// Failed reports whether OMDb signalled failure for this lookup. When it
// returns true, Error carries the provider's message and no field data
// should be trusted.
func (r *Record) Failed() bool {
	return !strings.EqualFold(r.Response, "True")
}

// Field returns the named field. ok is false when the field is absent from
// the response; a present field may still hold the N/A sentinel.
func (r *Record) Field(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// FieldString returns the named field as a string, treating absent,
// non-string, and N/A values all as missing.
func (r *Record) FieldString(name string) (string, bool) {
	v, ok := r.fields[name]
	if !ok || v.IsRatings() || v.Str == NotAvailable {
		return "", false
	}
	return v.Str, true
}

// Fields returns every field in its note-facing shape, keyed by OMDb name.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.fields))
	for name, v := range r.fields {
		out[name] = v.Raw()
	}
	return out
}

// Title returns the Title field, or empty string.
func (r *Record) Title() string {
	s, _ := r.FieldString("Title")
	return s
}

// Year returns the Year field, or empty string.
func (r *Record) Year() string {
	s, _ := r.FieldString("Year")
	return s
}

// IsMovie reports whether the Type field marks a feature film. Series,
// episodes, and unknown types all return false.
func (r *Record) IsMovie() bool {
	s, _ := r.FieldString("Type")
	return strings.EqualFold(s, "movie")
}
