package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/link2arslan/google-feed/internal/domain"

	"github.com/rs/zerolog"
)

type fakeShopRepo struct {
	shop *domain.Shop
}

func (f *fakeShopRepo) GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	if f.shop == nil {
		return nil, domain.ErrShopNotFound
	}
	return f.shop, nil
}

func (f *fakeShopRepo) SaveShop(ctx context.Context, shop *domain.Shop) error { return nil }

func (f *fakeShopRepo) UpdateShop(ctx context.Context, shopDomain string, update *domain.ShopUpdate) error {
	return nil
}

func newTestClient(srv *httptest.Server, shop *domain.Shop) *client {
	return &client{
		shops:      &fakeShopRepo{shop: shop},
		apiVersion: APIVersion,
		httpClient: srv.Client(),
		logger:     zerolog.Nop(),
	}
}

func TestExecuteSendsAuthenticatedRequest(t *testing.T) {
	var gotPath, gotToken string
	var gotBody graphQLRequest

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"productsCount":{"count":3}}}`))
	}))
	defer srv.Close()

	shopDomain := strings.TrimPrefix(srv.URL, "https://")
	c := newTestClient(srv, &domain.Shop{Domain: shopDomain, ShopifyToken: "shpat_test"})

	result, err := c.Execute(context.Background(), shopDomain, Document(OpActiveProductsCount), nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if gotPath != "/admin/api/"+APIVersion+"/graphql.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotToken != "shpat_test" {
		t.Errorf("token header = %q", gotToken)
	}
	if !strings.Contains(gotBody.Query, "productsCount") {
		t.Errorf("query body = %q", gotBody.Query)
	}

	var data ProductsCountData
	if err := result.DecodeInto(OpActiveProductsCount, &data); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	if data.ProductsCount.Count != 3 {
		t.Errorf("count = %d, want 3", data.ProductsCount.Count)
	}
}

func TestExecuteNon200IsGatewayError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	shopDomain := strings.TrimPrefix(srv.URL, "https://")
	c := newTestClient(srv, &domain.Shop{Domain: shopDomain, ShopifyToken: "t"})

	_, err := c.Execute(context.Background(), shopDomain, Document(OpProducts), nil)

	var gatewayErr *domain.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("err = %v, want *domain.GatewayError", err)
	}
	if gatewayErr.Upstream != "shopify" || gatewayErr.StatusCode != http.StatusBadGateway {
		t.Errorf("gateway error = %+v", gatewayErr)
	}
	if gatewayErr.Body != "upstream exploded" {
		t.Errorf("body = %q", gatewayErr.Body)
	}
}

func TestExecuteGraphQLErrorsStayInResult(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"Field 'nope' doesn't exist"}]}`))
	}))
	defer srv.Close()

	shopDomain := strings.TrimPrefix(srv.URL, "https://")
	c := newTestClient(srv, &domain.Shop{Domain: shopDomain, ShopifyToken: "t"})

	result, err := c.Execute(context.Background(), shopDomain, Document(OpProducts), nil)
	if err != nil {
		t.Fatalf("GraphQL-level errors must not become Go errors, got %v", err)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Message, "nope") {
		t.Errorf("errors = %+v", result.Errors)
	}
}

func TestExecuteUnknownShop(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := newTestClient(srv, nil)

	_, err := c.Execute(context.Background(), "gone.myshopify.com", Document(OpProducts), nil)
	if !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("err = %v, want ErrShopNotFound", err)
	}
}
