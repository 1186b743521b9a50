package dovado

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
)

const (
	statusOK    = "OK"
	statusError = "ERROR"
)

// counterPrefixes mark keys whose values are plain integer counters.
var counterPrefixes = []string{"traffic modem", "sms "}

// Response is an ordered key/value view of a router answer.
//
// Keys keep the position of their first occurrence; a repeated key overwrites
// the earlier value.
type Response struct {
	keys   []string
	values map[string]string
}

// NewResponse returns an empty Response.
func NewResponse() *Response {
	return &Response{values: make(map[string]string)}
}

// ParseResponse converts router output into a Response.
//
// Every non-empty line must be "key=value" or, failing that, "key:value". Keys are
// lower-cased and underscores become spaces. A bare "OK" line is a status marker and
// is skipped. An "ERROR" status line ("ERROR" alone or with "ERROR" as its first word
// or key) and a line without any separator are protocol errors.
func ParseResponse(text string) (*Response, error) {
	r := NewResponse()

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == statusOK:
			continue
		case isErrorStatus(line):
			return nil, apperrors.NewProtocolError(fmt.Sprintf("router reported %q", line), nil)
		}

		key, value, ok := splitPair(line)
		if !ok {
			return nil, apperrors.NewProtocolError(fmt.Sprintf("line %d is not a key/value pair: %q", i+1, line), nil)
		}
		r.Set(NormalizeKey(key), value)
	}

	return r, nil
}

// isErrorStatus matches "ERROR", "ERROR: ..." and "ERROR ..." but not keys such as
// "ERRORS_TOTAL" that merely start with the word.
func isErrorStatus(line string) bool {
	rest, ok := strings.CutPrefix(line, statusError)
	if !ok {
		return false
	}
	return rest == "" || strings.ContainsAny(rest[:1], " \t:=")
}

func splitPair(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		key, value, ok = strings.Cut(line, ":")
	}
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// NormalizeKey lower-cases a router key and replaces underscores with spaces,
// e.g. "SIGNAL_STRENGTH" becomes "signal strength".
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", " ")
}

// Set stores value under key, keeping the key's original position if it already exists.
func (r *Response) Set(key, value string) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it was present.
func (r *Response) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key or an empty string.
func (r *Response) Value(key string) string {
	return r.values[key]
}

// Int returns the value for key parsed as an integer.
func (r *Response) Int(key string) (int, error) {
	v, ok := r.values[key]
	if !ok {
		return 0, fmt.Errorf("key %q not found", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("key %q: %w", key, err)
	}
	return n, nil
}

// Keys returns the keys in response order.
func (r *Response) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of keys.
func (r *Response) Len() int {
	return len(r.keys)
}

// Map returns a copy of the pairs as a plain map.
func (r *Response) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Merge copies every pair of other into r, in other's order.
func (r *Response) Merge(other *Response) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		r.Set(k, other.values[k])
	}
}

// TypedMap returns the pairs with counter values converted to int.
func (r *Response) TypedMap() map[string]interface{} {
	m := make(map[string]interface{}, len(r.values))
	for _, k := range r.keys {
		m[k] = r.typedValue(k)
	}
	return m
}

func (r *Response) typedValue(key string) interface{} {
	v := r.values[key]
	if !isCounterKey(key) {
		return v
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}

func isCounterKey(key string) bool {
	for _, prefix := range counterPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the response as a JSON object in response order.
func (r *Response) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.typedValue(k))
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the response as a YAML mapping in response order.
func (r *Response) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		var key, value yaml.Node
		if err := key.Encode(k); err != nil {
			return nil, err
		}
		if err := value.Encode(r.typedValue(k)); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}
