// Package intent interprets completion output as a structured car query.
package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Status describes how completion output was interpreted.
type Status int

const (
	// StatusInvalid means the content is not a JSON object.
	StatusInvalid Status = iota
	// StatusEmpty means the content is a JSON object without usable fields.
	StatusEmpty
	// StatusExtracted means at least one of brand, model or year is present.
	StatusExtracted
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusExtracted:
		return "extracted"
	default:
		return "invalid"
	}
}

// ErrNotObject is wrapped by Result.Err when the content is valid JSON but
// not an object.
var ErrNotObject = errors.New("completion output is not a JSON object")

// ErrSchema is wrapped by Result.Err when a known field has the wrong type.
var ErrSchema = errors.New("completion output does not match the intent schema")

// intentSchema types the three known fields; other keys are ignored.
const intentSchema = `{
  "type": "object",
  "properties": {
    "brand": {"type": ["string", "null"]},
    "model": {"type": ["string", "null"]},
    "year":  {"type": ["number", "string", "null"]}
  }
}`

var compiledSchema = mustCompile(intentSchema)

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("intent schema: %v", err))
	}
	return s
}

// Intent is the structured query. Zero values mean "absent".
type Intent struct {
	Brand string
	Model string
	Year  int
}

// IsEmpty reports whether no field is present.
func (i Intent) IsEmpty() bool {
	return i.Brand == "" && i.Model == "" && i.Year == 0
}

// Result is the outcome of Parse. Err is set only for StatusInvalid.
type Result struct {
	Status Status
	Intent Intent
	Err    error
}

// HasCriteria reports whether the result should drive an inventory lookup.
func (r Result) HasCriteria() bool {
	return r.Status == StatusExtracted
}

// Parse interprets content as {"brand":..,"model":..,"year":..}. It never
// fails: unparseable content yields StatusInvalid with the cause in Err.
func Parse(content string) Result {
	body := stripCodeFence(strings.TrimSpace(content))
	if !strings.HasPrefix(body, "{") {
		if json.Valid([]byte(body)) {
			return Result{Status: StatusInvalid, Err: ErrNotObject}
		}
		return Result{Status: StatusInvalid, Err: fmt.Errorf("decode completion output: %w", errNotJSON)}
	}

	// Keys are matched exactly; Unmarshal rejects anything after the object.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return Result{Status: StatusInvalid, Err: fmt.Errorf("decode completion output: %w", err)}
	}
	if err := validate(body); err != nil {
		return Result{Status: StatusInvalid, Err: err}
	}

	in := Intent{
		Brand: stringField(raw["brand"]),
		Model: stringField(raw["model"]),
		Year:  yearField(raw["year"]),
	}
	if in.IsEmpty() {
		return Result{Status: StatusEmpty}
	}
	return Result{Status: StatusExtracted, Intent: in}
}

var errNotJSON = errors.New("not JSON")

func validate(body string) error {
	res, err := compiledSchema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return fmt.Errorf("validate completion output: %w", err)
	}
	if res.Valid() {
		return nil
	}
	errs := make([]string, len(res.Errors()))
	for i, desc := range res.Errors() {
		errs[i] = desc.String()
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(errs, "; "))
}

// stringField accepts a JSON string; null is absent.
func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// yearField accepts a JSON number or a numeric string. Non-integral,
// non-positive and malformed values are absent.
func yearField(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	f, err := n.Float64()
	if err != nil || f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// stripCodeFence removes a markdown fence wrapping the whole content.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		// drop the info string, e.g. "json"
		if !strings.ContainsAny(inner[:nl], "{[\"") {
			inner = inner[nl+1:]
		}
	}
	return strings.TrimSpace(inner)
}
