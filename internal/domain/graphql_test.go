package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeInto(t *testing.T) {
	result := &GraphQLResult{Data: json.RawMessage(`{"productsCount":{"count":7}}`)}

	var payload struct {
		ProductsCount struct {
			Count int `json:"count"`
		} `json:"productsCount"`
	}
	if err := result.DecodeInto("getActiveProductsCount", &payload); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	if payload.ProductsCount.Count != 7 {
		t.Errorf("count = %d, want 7", payload.ProductsCount.Count)
	}
}

func TestDecodeIntoShapeMismatch(t *testing.T) {
	result := &GraphQLResult{Data: json.RawMessage(`{"productsCount":"not an object"}`)}

	var payload struct {
		ProductsCount struct {
			Count int `json:"count"`
		} `json:"productsCount"`
	}
	err := result.DecodeInto("getActiveProductsCount", &payload)

	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *SchemaMismatchError", err)
	}
	if mismatch.Operation != "getActiveProductsCount" {
		t.Errorf("operation = %q", mismatch.Operation)
	}
}
