package introspection

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoSchema is returned when a payload holds no __schema object.
var ErrNoSchema = errors.New("no introspection schema in payload")

// ResponseError is a GraphQL error reported next to (or instead of) data.
type ResponseError struct {
	Messages []string
}

func (e *ResponseError) Error() string {
	return "graphql errors: " + strings.Join(e.Messages, "; ")
}

// Decode extracts the schema from an introspection payload. It accepts a full
// response ({"data": {"__schema": ...}}), the data object ({"__schema": ...})
// or a bare schema object.
func Decode(payload []byte) (*Schema, error) {
	return decode(payload, func(root gjson.Result) gjson.Result {
		raw := root.Get("data.__schema")
		if !raw.Exists() {
			raw = root.Get("__schema")
		}
		if !raw.Exists() && root.Get("types").IsArray() {
			raw = root
		}
		return raw
	})
}

// DecodeResponse extracts the schema from a GraphQL response body. Only
// data.__schema is accepted.
func DecodeResponse(payload []byte) (*Schema, error) {
	return decode(payload, func(root gjson.Result) gjson.Result {
		return root.Get("data.__schema")
	})
}

func decode(payload []byte, locate func(gjson.Result) gjson.Result) (*Schema, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	root := gjson.ParseBytes(payload)

	raw := locate(root)
	if !raw.Exists() || !raw.IsObject() {
		if errs := root.Get("errors.#.message"); errs.Exists() && len(errs.Array()) > 0 {
			var messages []string
			for _, m := range errs.Array() {
				messages = append(messages, m.String())
			}
			return nil, fmt.Errorf("%w: %w", ErrNoSchema, &ResponseError{Messages: messages})
		}
		return nil, ErrNoSchema
	}

	var schema Schema
	if err := json.Unmarshal([]byte(raw.Raw), &schema); err != nil {
		return nil, fmt.Errorf("decoding __schema: %w", err)
	}
	return &schema, nil
}

// LoadFile reads a saved introspection payload from disk.
func LoadFile(path string) (*Schema, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schema, err := Decode(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}
