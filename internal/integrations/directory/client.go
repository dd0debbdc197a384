package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент DirectoryService — коллаборатора, владеющего справочными
// данными об услугах и сотрудниках. Движок читает их как есть и ничего
// в них не мутирует
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента DirectoryService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу тенанта по ID
func (c *Client) GetService(ctx context.Context, tenantID, serviceID uuid.UUID) (*Service, error) {
	url := fmt.Sprintf("%s/internal/tenants/%s/services/%s", c.baseURL, tenantID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}
	return &service, nil
}

// GetStaff получает сотрудника тенанта по ID
func (c *Client) GetStaff(ctx context.Context, tenantID, staffID uuid.UUID) (*Staff, error) {
	url := fmt.Sprintf("%s/internal/tenants/%s/staff/%s", c.baseURL, tenantID, staffID)

	var staff Staff
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}
	return &staff, nil
}

// ListStaffForService получает сотрудников тенанта, оказывающих услугу.
// DirectoryService возвращает их в стабильном порядке (по ID)
func (c *Client) ListStaffForService(ctx context.Context, tenantID, serviceID uuid.UUID) ([]*Staff, error) {
	url := fmt.Sprintf("%s/internal/tenants/%s/services/%s/staff", c.baseURL, tenantID, serviceID)

	var staff []*Staff
	if err := c.getJSON(ctx, url, &staff, ErrServiceNotFound); err != nil {
		return nil, err
	}
	return staff, nil
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
