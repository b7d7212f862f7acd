// Package console реализует клиент консоли продавца: аутентификацию,
// управление каталогом и регистрацию кошелька.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/linemk/tuuze-market/internal/domain/models"
)

var (
	ErrUnauthorized = errors.New("invalid credentials")
	ErrConflict     = errors.New("already registered")
	ErrNotFound     = errors.New("not found")
)

// Client — HTTP-клиент консоли. Токен передаётся параметром в каждый вызов,
// а не мутацией общих заголовков клиента: один Client безопасно обслуживает
// несколько сессий
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

type messageResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.httpClient.Do(req)
}

// remoteError достаёт сообщение из JSON-тела ошибки, каким бы полем оно ни пришло.
func remoteError(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return resp.Status
}

// Signup регистрирует аккаунт продавца через POST /signup.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	payload := map[string]string{
		"merchantUserName": username,
		"merchantEmail":    email,
		"password":         password,
	}
	resp, err := c.doJSON(ctx, http.MethodPost, "/signup", "", payload)
	if err != nil {
		return fmt.Errorf("signup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signup rejected: %s", remoteError(resp))
	}
	return nil
}

// Login аутентифицирует продавца и возвращает токен.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{
		"merchantEmail": email,
		"password":      password,
	}
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", payload)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login rejected: %s", remoteError(resp))
	}

	var body messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	return body.Token, nil
}

// AddProduct отправляет новую позицию каталога через POST /AddProduct.
func (c *Client) AddProduct(ctx context.Context, token string, product *models.Product) error {
	payload := map[string]interface{}{
		"merchant_id": product.MerchantID,
		"name":        product.Name,
		"description": product.Description,
		"imageUrl":    product.ImageURL,
		"category":    product.Category,
		"quantity":    product.Quantity,
		"price":       product.Price,
	}
	resp, err := c.doJSON(ctx, http.MethodPost, "/AddProduct", token, payload)
	if err != nil {
		return fmt.Errorf("add product request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("add product rejected: %s", remoteError(resp))
	}
	return nil
}

// MyProducts возвращает каталог аутентифицированного продавца
// через GET /merchant/products.
func (c *Client) MyProducts(ctx context.Context, token string) ([]*models.Product, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/merchant/products", token, nil)
	if err != nil {
		return nil, fmt.Errorf("products request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("products request rejected: %s", remoteError(resp))
	}

	var body struct {
		Message []*models.Product `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return body.Message, nil
}

// UpdateProduct обновляет позицию через PUT /updateProduct/{id}.
func (c *Client) UpdateProduct(ctx context.Context, token string, product *models.Product) error {
	payload := map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"imageUrl":    product.ImageURL,
		"price":       product.Price,
		"category":    product.Category,
		"quantity":    product.Quantity,
	}
	resp, err := c.doJSON(ctx, http.MethodPut, "/updateProduct/"+product.ID, token, payload)
	if err != nil {
		return fmt.Errorf("update product request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update product rejected: %s", remoteError(resp))
	}
	return nil
}

// DeleteProduct удаляет позицию через DELETE /deleteProduct/{id}.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/deleteProduct/"+productID, token, nil)
	if err != nil {
		return fmt.Errorf("delete product request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete product rejected: %s", remoteError(resp))
	}
	return nil
}

// SaveWallet регистрирует платёжный адрес продавца через POST /saveWallet.
func (c *Client) SaveWallet(ctx context.Context, token, merchantID, address string) error {
	payload := map[string]string{
		"merchant_id":    merchantID,
		"wallet_address": address,
	}
	resp, err := c.doJSON(ctx, http.MethodPost, "/saveWallet", token, payload)
	if err != nil {
		return fmt.Errorf("save wallet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return ErrConflict
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("save wallet rejected: %s", remoteError(resp))
	}
	return nil
}
