package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/linemk/tuuze-market/internal/domain/models"
)

// Client — HTTP-клиент витрины к публичным эндпоинтам каталога и кошельков.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type productListResponse struct {
	Message []*models.Product `json:"message"`
}

type walletResponse struct {
	WalletAddress string `json:"wallet_address"`
}

// GetProducts запрашивает полный каталог через GET /getProducts.
func (c *Client) GetProducts(ctx context.Context) ([]*models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/getProducts", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from /getProducts", resp.StatusCode)
	}

	var body productListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return body.Message, nil
}

// GetWalletAddress запрашивает адрес кошелька продавца через GET /getWallet/{id}.
func (c *Client) GetWalletAddress(ctx context.Context, merchantID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/getWallet/"+merchantID, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch wallet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNoWallet
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from /getWallet", resp.StatusCode)
	}

	var body walletResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode wallet: %w", err)
	}
	return body.WalletAddress, nil
}
