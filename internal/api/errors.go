package api

import (
	"encoding/json"
	"strings"
)

const (
	unknownErrorMessage = "An unknown error occurred."
	networkErrorMessage = "Network error or unexpected issue"
	noTokenMessage      = "Authentication token not found."
)

// normalizeError extracts a user-facing message from an error response body.
// A structured validation list under "detail" wins (its msg fields joined with
// "; "), then a plain "detail", then "message", then "error".
func normalizeError(raw []byte) string {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return unknownErrorMessage
	}

	if detail, ok := env["detail"]; ok {
		if msgs, ok := validationMessages(detail); ok {
			return strings.Join(msgs, "; ")
		}
		if s := stringOrRaw(detail); s != "" {
			return s
		}
	}
	for _, key := range []string{"message", "error"} {
		if v, ok := env[key]; ok {
			if s := stringOrRaw(v); s != "" {
				return s
			}
		}
	}
	return unknownErrorMessage
}

// validationMessages reports the msg fields of a validation error list. It
// only matches a non-empty array whose first element is an object with "msg".
func validationMessages(detail json.RawMessage) ([]string, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(detail, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	var first map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &first); err != nil {
		return nil, false
	}
	if _, ok := first["msg"]; !ok {
		return nil, false
	}

	msgs := make([]string, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			msgs = append(msgs, "")
			continue
		}
		msgs = append(msgs, stringOrRaw(obj["msg"]))
	}
	return msgs, true
}

// stringOrRaw returns a JSON string's value, "" for null/false/empty values,
// and the compact JSON text for anything else.
func stringOrRaw(v json.RawMessage) string {
	trimmed := strings.TrimSpace(string(v))
	switch trimmed {
	case "", "null", "false", `""`, "0", "[]", "{}":
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return trimmed
}
