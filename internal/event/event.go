// Package event holds the decoded form of one buzz message and the
// decoder that produces it from a raw Kafka payload.
package event

import (
	"encoding/json"
	"fmt"
)

// Field names as they appear in the raw JSON payload and in the
// messages table.
const (
	FieldMessage          = "message"
	FieldAuthor           = "author"
	FieldTimestamp        = "timestamp"
	FieldCategory         = "category"
	FieldSentiment        = "sentiment"
	FieldKeywordMentioned = "keyword_mentioned"
	FieldMessageLength    = "message_length"
)

// Fields lists every payload field in table-column order.
var Fields = []string{
	FieldMessage,
	FieldAuthor,
	FieldTimestamp,
	FieldCategory,
	FieldSentiment,
	FieldKeywordMentioned,
	FieldMessageLength,
}

// Event is one decoded message. Constructed once by Decode, immutable
// afterwards. Missing fields carry the zero-ish defaults below; the
// durable sink applies its own "unknown" policy via Column.
type Event struct {
	Message          string
	Author           string
	Timestamp        string
	Category         string
	Sentiment        float64
	KeywordMentioned string
	MessageLength    int

	// raw payload values for the fields that were actually present,
	// kept so sinks can persist them verbatim
	present map[string]any
}

// Has reports whether the field appeared in the raw payload.
func (e *Event) Has(field string) bool {
	_, ok := e.present[field]
	return ok
}

// Column returns the value to persist for field: the raw payload value
// verbatim when present, fallback otherwise.
func (e *Event) Column(field string, fallback any) any {
	if v, ok := e.present[field]; ok {
		return v
	}
	return fallback
}

// DecodeErrorKind distinguishes the two decode failure conditions,
// which are logged differently.
type DecodeErrorKind int

const (
	// Malformed means the payload is not syntactically valid JSON.
	Malformed DecodeErrorKind = iota
	// NotAnObject means the payload parsed but the top-level value is
	// not a key-value mapping.
	NotAnObject
)

func (k DecodeErrorKind) String() string {
	if k == NotAnObject {
		return "not_an_object"
	}
	return "malformed"
}

// DecodeError is returned by Decode when a payload cannot produce an
// Event. A missing field is never a decode error.
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses one raw payload into an Event.
//
// Absent fields get per-field defaults: "" for message, timestamp,
// category and keyword_mentioned, "unknown" for author, 0.0 for
// sentiment, 0 for message_length. Present fields are preserved
// verbatim in the Column view; the typed accessors fall back to the
// default when a present value has the wrong JSON type.
func Decode(payload []byte) (*Event, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, &DecodeError{Kind: Malformed, Err: err}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{Kind: NotAnObject, Err: fmt.Errorf("top-level value is %T", v)}
	}

	present := make(map[string]any, len(Fields))
	for _, f := range Fields {
		if raw, ok := obj[f]; ok {
			present[f] = raw
		}
	}

	return &Event{
		Message:          stringField(obj, FieldMessage, ""),
		Author:           stringField(obj, FieldAuthor, "unknown"),
		Timestamp:        stringField(obj, FieldTimestamp, ""),
		Category:         stringField(obj, FieldCategory, ""),
		Sentiment:        floatField(obj, FieldSentiment),
		KeywordMentioned: stringField(obj, FieldKeywordMentioned, ""),
		MessageLength:    intField(obj, FieldMessageLength),
		present:          present,
	}, nil
}

func stringField(obj map[string]any, field, def string) string {
	if s, ok := obj[field].(string); ok {
		return s
	}
	return def
}

func floatField(obj map[string]any, field string) float64 {
	if f, ok := obj[field].(float64); ok {
		return f
	}
	return 0
}

func intField(obj map[string]any, field string) int {
	// encoding/json decodes every number as float64
	if f, ok := obj[field].(float64); ok {
		return int(f)
	}
	return 0
}
