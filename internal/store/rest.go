package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/PratikDhanave/car-inventory-bot/internal/models"
)

var selectColumns = strings.Join([]string{ColBrand, ColModel, ColYear, ColPrice}, ",")

// RESTStore queries the inventory table through a Supabase (PostgREST)
// endpoint authenticated with a service key.
type RESTStore struct {
	client  *resty.Client
	path    string
	maxRows int
}

// NewRESTStore builds a store for baseURL, e.g. https://xyz.supabase.co.
func NewRESTStore(baseURL, apiKey string, opts Options) *RESTStore {
	opts = opts.withDefaults()
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json")

	return &RESTStore{
		client:  client,
		path:    "/rest/v1/" + url.PathEscape(opts.Table),
		maxRows: opts.MaxRows,
	}
}

// FindCars issues one GET with ilike/gte filters.
func (s *RESTStore) FindCars(ctx context.Context, f Filter) ([]models.Car, error) {
	brand, model := f.Patterns()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": selectColumns,
			ColBrand: "ilike." + brand,
			ColModel: "ilike." + model,
			ColYear:  "gte." + strconv.Itoa(f.MinYear),
			"limit":  strconv.Itoa(s.maxRows),
		}).
		Get(s.path)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("query inventory: status %d: %s", resp.StatusCode(), resp.String())
	}

	var cars []models.Car
	if err := json.Unmarshal(resp.Body(), &cars); err != nil {
		return nil, fmt.Errorf("decode inventory rows: %w", err)
	}
	return cars, nil
}

// Ping performs a zero-row read to confirm the endpoint and key work.
func (s *RESTStore) Ping(ctx context.Context) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"select": ColBrand, "limit": "0"}).
		Get(s.path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("inventory endpoint returned status %d", resp.StatusCode())
	}
	return nil
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (s *RESTStore) Close() error {
	return nil
}
