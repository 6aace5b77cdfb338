package application

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/link2arslan/google-feed/internal/domain"
)

type fakeShopRepository struct {
	shop      *domain.Shop
	getErr    error
	updateErr error

	updatedDomain string
	updated       *domain.ShopUpdate
	updateCalls   int
}

func (f *fakeShopRepository) GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.shop == nil {
		return nil, domain.ErrShopNotFound
	}
	return f.shop, nil
}

func (f *fakeShopRepository) SaveShop(ctx context.Context, shop *domain.Shop) error {
	return nil
}

func (f *fakeShopRepository) UpdateShop(ctx context.Context, shopDomain string, update *domain.ShopUpdate) error {
	f.updateCalls++
	f.updatedDomain = shopDomain
	f.updated = update
	return f.updateErr
}

type executedCall struct {
	shop      string
	document  string
	variables map[string]any
}

type fakeGateway struct {
	results []*domain.GraphQLResult
	err     error

	calls []executedCall
}

func (f *fakeGateway) Execute(ctx context.Context, shopDomain, document string, variables map[string]any) (*domain.GraphQLResult, error) {
	f.calls = append(f.calls, executedCall{shop: shopDomain, document: document, variables: variables})
	if f.err != nil {
		return nil, f.err
	}
	result := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return result, nil
}

func graphqlData(t interface{ Fatalf(string, ...any) }, v any) *domain.GraphQLResult {
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fake payload: %v", err)
	}
	return &domain.GraphQLResult{Data: raw}
}

type fakeOAuthClient struct {
	token       *domain.GoogleToken
	exchangeErr error
	refreshErr  error

	refreshedWith string
}

func (f *fakeOAuthClient) ConsentURL(state string) string {
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
}

func (f *fakeOAuthClient) Exchange(ctx context.Context, code string) (*domain.GoogleToken, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeOAuthClient) Refresh(ctx context.Context, refreshToken string) (*domain.GoogleToken, error) {
	f.refreshedWith = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.token, nil
}

type fakeMerchantClient struct {
	accounts []domain.MerchantAccount
	listErr  error

	insertErrFor map[string]error

	mu       sync.Mutex
	inserted []*domain.MerchantProductInput
}

func (f *fakeMerchantClient) ListAccounts(ctx context.Context, accessToken string) ([]domain.MerchantAccount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts, nil
}

func (f *fakeMerchantClient) InsertProductInput(ctx context.Context, accessToken, merchantID string, input *domain.MerchantProductInput) error {
	if err, ok := f.insertErrFor[input.OfferID]; ok {
		return err
	}
	f.mu.Lock()
	f.inserted = append(f.inserted, input)
	f.mu.Unlock()
	return nil
}
