package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PayloadVersion is the schema version written into every serialized payload.
const PayloadVersion = 1

// ErrMalformedPayload is returned when a stored payload cannot be decoded.
var ErrMalformedPayload = errors.New("malformed stored payload")

// payloadEnvelope is the on-disk form of serialized columns:
// {"v":1,"data":<json>}. Rows written before versioning hold bare JSON.
type payloadEnvelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

func encodePayload(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	out, err := json.Marshal(payloadEnvelope{Version: PayloadVersion, Data: data})
	if err != nil {
		return "", fmt.Errorf("failed to encode payload envelope: %w", err)
	}
	return string(out), nil
}

// unwrapPayload returns the JSON body of a stored payload. Versioned
// envelopes are unwrapped; any other valid JSON is treated as unversioned.
func unwrapPayload(raw string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if !json.Valid(trimmed) {
		return nil, ErrMalformedPayload
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err == nil && len(fields) == 2 {
			_, hasV := fields["v"]
			_, hasData := fields["data"]
			if hasV && hasData {
				var env payloadEnvelope
				if err := json.Unmarshal(trimmed, &env); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
				}
				if env.Version < 1 || env.Version > PayloadVersion {
					return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedPayload, env.Version)
				}
				return env.Data, nil
			}
		}
	}

	return trimmed, nil
}

// SearchCriteria is the structured filter snapshot held by a saved search.
// Keys are free-form; numbers keep their exact textual representation.
type SearchCriteria map[string]interface{}

// UnmarshalJSON accepts a JSON object or a string holding a serialized object.
func (c *SearchCriteria) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		trimmed = bytes.TrimSpace([]byte(s))
	}

	m, err := decodeObject(trimmed)
	if err != nil {
		return fmt.Errorf("search_criteria must be a JSON object: %w", err)
	}
	*c = m
	return nil
}

// Encode serializes the criteria for storage.
func (c SearchCriteria) Encode() (string, error) {
	if c == nil {
		c = SearchCriteria{}
	}
	return encodePayload(map[string]interface{}(c))
}

// DecodeSearchCriteria parses a stored criteria column.
func DecodeSearchCriteria(raw string) (SearchCriteria, error) {
	body, err := unwrapPayload(raw)
	if err != nil {
		return nil, err
	}

	m, err := decodeObject(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return m, nil
}

func decodeObject(b []byte) (SearchCriteria, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after object")
	}
	if m == nil {
		return nil, errors.New("expected object, got null")
	}
	return SearchCriteria(m), nil
}

// StringList is a serialized list of strings (watchlist tags, preferred
// neighborhoods). Clients may send a JSON array or a single string; a string
// holding a JSON array is parsed, anything else is split on commas.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*l = parseListText(s)
		return nil
	}

	var items []string
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return fmt.Errorf("expected a list of strings or a string: %w", err)
	}
	*l = StringList(items)
	return nil
}

// Encode serializes the list for storage. A nil list is stored as NULL.
func (l StringList) Encode() (*string, error) {
	if l == nil {
		return nil, nil
	}
	s, err := encodePayload([]string(l))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeStringList parses a stored list column. NULL yields a nil list.
// Unversioned rows may hold a JSON array or plain comma-separated text.
func DecodeStringList(raw *string) (StringList, error) {
	if raw == nil {
		return nil, nil
	}

	text := strings.TrimSpace(*raw)
	if text == "" {
		return StringList{}, nil
	}

	body, err := unwrapPayload(text)
	if errors.Is(err, ErrMalformedPayload) && !json.Valid([]byte(text)) {
		return parseListText(text), nil
	}
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal(body, &items); err == nil {
		return StringList(items), nil
	}

	var single string
	if err := json.Unmarshal(body, &single); err == nil {
		return parseListText(single), nil
	}

	if string(body) == text {
		// Unversioned scalar such as a bare number
		return parseListText(text), nil
	}
	return nil, fmt.Errorf("%w: expected list of strings", ErrMalformedPayload)
}

func parseListText(s string) StringList {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return StringList(items)
		}
	}

	parts := strings.Split(s, ",")
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
