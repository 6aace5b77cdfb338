package domain

import "encoding/json"

// GraphQLResult is the decoded body of a Shopify GraphQL call. Errors holds
// GraphQL-level failures; they accompany any partial Data and are never
// promoted to Go errors by the gateway. Callers decide whether a userErrors
// array inside Data fails their operation.
type GraphQLResult struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is one entry of the top-level errors array.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// DecodeInto unmarshals Data into the operation's typed payload. A decode
// failure is reported as a SchemaMismatchError rather than silently
// producing zero-valued fields.
func (r *GraphQLResult) DecodeInto(operation string, v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return &SchemaMismatchError{Operation: operation, Err: err}
	}
	return nil
}
