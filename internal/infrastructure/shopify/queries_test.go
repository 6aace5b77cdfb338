package shopify

import (
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func TestRegistryDocumentsParse(t *testing.T) {
	operations := []string{
		OpActiveProductsCount,
		OpProducts,
		OpProductDetails,
		OpProductsByIDs,
		OpUpdateProductAndPrices,
		OpUpdateProduct,
		OpDeleteProductMedia,
		OpCreateProductMedia,
		OpUpdateProductVariants,
	}

	if len(operations) != len(documents) {
		t.Fatalf("registry has %d documents, expected %d", len(documents), len(operations))
	}

	for _, op := range operations {
		t.Run(op, func(t *testing.T) {
			doc := Document(op)
			parsed, err := parser.ParseQuery(&ast.Source{Name: op, Input: doc})
			if err != nil {
				t.Fatalf("document does not parse: %v", err)
			}
			if len(parsed.Operations) != 1 {
				t.Fatalf("document defines %d operations, want 1", len(parsed.Operations))
			}
			if parsed.Operations[0].Name != op {
				t.Errorf("operation name = %q, want registry key %q", parsed.Operations[0].Name, op)
			}
		})
	}
}

func TestDocumentPanicsOnUnknownOperation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unknown operation")
		}
	}()
	Document("doesNotExist")
}
