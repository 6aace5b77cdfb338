package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/link2arslan/google-feed/internal/domain"
	"github.com/link2arslan/google-feed/internal/infrastructure/metrics"
	"github.com/link2arslan/google-feed/internal/ports"

	"github.com/rs/zerolog"
)

const defaultMerchantBaseURL = "https://merchantapi.googleapis.com"

// Pinned Merchant API versions.
const (
	accountsAPIVersion = "accounts/v1beta"
	productsAPIVersion = "products/v1beta"
)

// MerchantClient implements ports.MerchantClient over the Merchant API REST
// surface.
type MerchantClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewMerchantClient creates a Merchant API client.
func NewMerchantClient(logger zerolog.Logger) *MerchantClient {
	return &MerchantClient{
		baseURL: defaultMerchantBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

var _ ports.MerchantClient = (*MerchantClient)(nil)

type accountsListResponse struct {
	Accounts []struct {
		Name        string `json:"name"`
		AccountName string `json:"accountName"`
	} `json:"accounts"`
}

// ListAccounts returns the Merchant Center accounts visible to the token, in
// the order the API reports them.
func (c *MerchantClient) ListAccounts(ctx context.Context, accessToken string) ([]domain.MerchantAccount, error) {
	endpoint := fmt.Sprintf("%s/%s/accounts", c.baseURL, accountsAPIVersion)

	body, err := c.do(ctx, "accounts_list", http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var decoded accountsListResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &domain.GatewayError{Upstream: "google", Err: fmt.Errorf("failed to decode accounts listing: %w", err)}
	}

	accounts := make([]domain.MerchantAccount, 0, len(decoded.Accounts))
	for _, a := range decoded.Accounts {
		accounts = append(accounts, domain.MerchantAccount{
			Name:        a.Name,
			AccountName: a.AccountName,
		})
	}
	return accounts, nil
}

// Wire shape of a product input insert. amountMicros is an int64 carried as
// a JSON string, per the API's proto3 mapping.
type productInputBody struct {
	OfferID           string            `json:"offerId"`
	ContentLanguage   string            `json:"contentLanguage"`
	FeedLabel         string            `json:"feedLabel"`
	ProductAttributes productAttributes `json:"productAttributes"`
}

type productAttributes struct {
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Link         string        `json:"link"`
	ImageLink    string        `json:"imageLink,omitempty"`
	Brand        string        `json:"brand"`
	Condition    string        `json:"condition"`
	Availability string        `json:"availability"`
	Price        merchantPrice `json:"price"`
}

type merchantPrice struct {
	AmountMicros string `json:"amountMicros"`
	CurrencyCode string `json:"currencyCode"`
}

// InsertProductInput submits one offer under the merchant's default data
// source.
func (c *MerchantClient) InsertProductInput(ctx context.Context, accessToken, merchantID string, input *domain.MerchantProductInput) error {
	parent := "accounts/" + merchantID
	dataSource := parent + "/dataSources/default"
	endpoint := fmt.Sprintf("%s/%s/%s/productInputs:insert?dataSource=%s",
		c.baseURL, productsAPIVersion, parent, url.QueryEscape(dataSource))

	payload := productInputBody{
		OfferID:         input.OfferID,
		ContentLanguage: input.ContentLanguage,
		FeedLabel:       input.FeedLabel,
		ProductAttributes: productAttributes{
			Title:        input.Title,
			Description:  input.Description,
			Link:         input.Link,
			ImageLink:    input.ImageLink,
			Brand:        input.Brand,
			Condition:    input.Condition,
			Availability: input.Availability,
			Price: merchantPrice{
				AmountMicros: strconv.FormatInt(input.PriceMicros, 10),
				CurrencyCode: input.Currency,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal product input: %w", err)
	}

	_, err = c.do(ctx, "product_input_insert", http.MethodPost, endpoint, accessToken, body)
	return err
}

func (c *MerchantClient) do(ctx context.Context, operation, method, endpoint, accessToken string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveUpstream(metrics.UpstreamGoogle, operation, start, err)
	if err != nil {
		return nil, &domain.GatewayError{Upstream: "google", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GatewayError{Upstream: "google", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("Merchant API call failed")
		return nil, &domain.GatewayError{
			Upstream:   "google",
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}
