package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// Client exposes operations to query the food catalog service.
type Client interface {
	Food(ctx context.Context, id int64) (*model.Food, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors JSON payload from the catalog service.
type response struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Active   bool    `json:"active"`
	Variants []struct {
		Name  string  `json:"name"`
		Size  string  `json:"size"`
		Price float64 `json:"price"`
	} `json:"variants,omitempty"`
}

// NewHTTPClient creates HTTP catalog client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Food queries the catalog service for item metadata.
func (c *HTTPClient) Food(ctx context.Context, id int64) (*model.Food, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/foods/", strconv.FormatInt(id, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		food := &model.Food{ID: data.ID, Name: data.Name, Price: data.Price, Active: data.Active}
		for _, v := range data.Variants {
			food.Variants = append(food.Variants, model.FoodVariant{Name: v.Name, Size: v.Size, Price: v.Price})
		}
		return food, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, domainErrors.ErrFoodNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog error: %s", resp.Status)
	}
}
