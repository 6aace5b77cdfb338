package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/link2arslan/google-feed/internal/domain"

	"github.com/rs/zerolog"
)

func TestListAccounts(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"accounts":[
			{"name":"accounts/111","accountName":"First"},
			{"name":"accounts/222","accountName":"Second"}
		]}`))
	}))
	defer srv.Close()

	c := NewMerchantClient(zerolog.Nop())
	c.baseURL = srv.URL

	accounts, err := c.ListAccounts(context.Background(), "bearer-token")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}

	if gotPath != "/accounts/v1beta/accounts" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer bearer-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if len(accounts) != 2 || accounts[0].Name != "accounts/111" || accounts[0].AccountName != "First" {
		t.Errorf("accounts = %+v", accounts)
	}
}

func TestInsertProductInput(t *testing.T) {
	var gotPath, gotDataSource string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDataSource = r.URL.Query().Get("dataSource")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewMerchantClient(zerolog.Nop())
	c.baseURL = srv.URL

	err := c.InsertProductInput(context.Background(), "token", "555", &domain.MerchantProductInput{
		OfferID:         "77",
		ContentLanguage: "en",
		FeedLabel:       "US",
		Title:           "Linen Shirt",
		Link:            "https://foo.myshopify.com/products/linen-shirt",
		Brand:           "Acme",
		Condition:       "new",
		Availability:    "in stock",
		PriceMicros:     19990000,
		Currency:        "USD",
	})
	if err != nil {
		t.Fatalf("InsertProductInput: %v", err)
	}

	if gotPath != "/products/v1beta/accounts/555/productInputs:insert" {
		t.Errorf("path = %q", gotPath)
	}
	if gotDataSource != "accounts/555/dataSources/default" {
		t.Errorf("dataSource = %q", gotDataSource)
	}
	if gotBody["offerId"] != "77" || gotBody["contentLanguage"] != "en" || gotBody["feedLabel"] != "US" {
		t.Errorf("body = %v", gotBody)
	}

	attrs, _ := gotBody["productAttributes"].(map[string]any)
	if attrs == nil {
		t.Fatal("productAttributes missing")
	}
	price, _ := attrs["price"].(map[string]any)
	if price == nil || price["amountMicros"] != "19990000" || price["currencyCode"] != "USD" {
		t.Errorf("price = %v, want micros as a string", price)
	}
}

func TestInsertProductInputFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"offer rejected"}}`))
	}))
	defer srv.Close()

	c := NewMerchantClient(zerolog.Nop())
	c.baseURL = srv.URL

	err := c.InsertProductInput(context.Background(), "token", "555", &domain.MerchantProductInput{OfferID: "1"})

	var gatewayErr *domain.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("err = %v, want *domain.GatewayError", err)
	}
	if gatewayErr.Upstream != "google" || gatewayErr.StatusCode != http.StatusBadRequest {
		t.Errorf("gateway error = %+v", gatewayErr)
	}
}
