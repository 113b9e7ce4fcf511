package preference

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Answers holds the raw questionnaire selections for one request.
type Answers struct {
	Diet     []string `json:"diet,omitempty"`
	Calories string   `json:"calories,omitempty"`
	Time     string   `json:"time,omitempty"`
	Cuisine  []string `json:"cuisine,omitempty"`
	Skill    string   `json:"skill,omitempty"`
	Meals    []string `json:"meals,omitempty"`
	Dishes   []string `json:"dishes,omitempty"`

	// invalid collects values dropped while decoding; Normalize reports them.
	invalid []Warning
}

// UnmarshalJSON accepts every answer as a string or a number, and list
// answers also as an array of either. Values of any other shape are dropped
// with a warning, leaving the field at its default.
func (a *Answers) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d := answerDecoder{raw: raw}
	*a = Answers{
		Diet:     d.list("diet"),
		Calories: d.scalar("calories"),
		Time:     d.scalar("time"),
		Cuisine:  d.list("cuisine"),
		Skill:    d.scalar("skill"),
		Meals:    d.list("meals"),
		Dishes:   d.list("dishes"),
	}
	a.invalid = d.warnings
	return nil
}

type answerDecoder struct {
	raw      map[string]json.RawMessage
	warnings []Warning
}

func (d *answerDecoder) reject(field string, v json.RawMessage) {
	d.warnings = append(d.warnings, Warning{
		Field:  field,
		Value:  string(v),
		Reason: "expected a code or name, ignoring",
	})
}

func (d *answerDecoder) scalar(field string) string {
	v, ok := d.raw[field]
	if !ok {
		return ""
	}
	s, ok := answerText(v)
	if !ok {
		d.reject(field, v)
	}
	return s
}

func (d *answerDecoder) list(field string) []string {
	v, ok := d.raw[field]
	if !ok {
		return nil
	}
	v = bytes.TrimSpace(v)
	if len(v) == 0 || v[0] != '[' {
		s, ok := answerText(v)
		if !ok {
			d.reject(field, v)
		}
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(v, &elems); err != nil {
		d.reject(field, v)
		return nil
	}
	var out []string
	for _, e := range elems {
		s, ok := answerText(e)
		if !ok {
			d.reject(field, e)
			continue
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// answerText renders a JSON string or number as answer text. Whole numbers
// lose any fractional zeros so 3 and 3.0 both read as code "3".
func answerText(v json.RawMessage) (string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return "", true
	}
	switch {
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false
		}
		return s, true
	case v[0] == '-' || (v[0] >= '0' && v[0] <= '9'):
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return "", false
		}
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10), true
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}
