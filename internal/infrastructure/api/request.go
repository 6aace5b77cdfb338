package api

import (
	"encoding/json"
	"strings"
)

// StringList decodes a JSON array of strings, a single string (optionally
// comma-separated), or an array of numbers. The admin UI and older clients
// disagree on how they send id lists.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = splitIDs(s)
		return nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		*l = ids
		return nil
	}

	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	converted := make([]string, 0, len(raw))
	for _, n := range raw {
		converted = append(converted, n.String())
	}
	*l = converted
	return nil
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
