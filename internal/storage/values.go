package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Values is a name to number map whose JSON form keeps NaN and ±Inf as the
// strings "NaN", "+Inf" and "-Inf".
type Values map[string]float64

func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	m := make(map[string]any, len(v))
	for k, x := range v {
		m[k] = jsonNumber(x)
	}
	return json.Marshal(m)
}

func (v *Values) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}
	out := make(Values, len(raw))
	for k, r := range raw {
		x, err := parseNumber(r)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		out[k] = x
	}
	*v = out
	return nil
}

// Record is one table row with the same encoding as Values.
type Record []float64

func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	vals := make([]any, len(r))
	for i, x := range r {
		vals[i] = jsonNumber(x)
	}
	return json.Marshal(vals)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*r = nil
		return nil
	}
	out := make(Record, len(raw))
	for i, item := range raw {
		x, err := parseNumber(item)
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		out[i] = x
	}
	*r = out
	return nil
}

func jsonNumber(x float64) any {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return x
}

func parseNumber(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseFloat(s, 64)
	}
	var x float64
	err := json.Unmarshal(raw, &x)
	return x, err
}
