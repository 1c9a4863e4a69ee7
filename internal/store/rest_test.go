package store

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/car-inventory-bot/internal/models"
)

func TestRESTStore_FindCars(t *testing.T) {
	var query url.Values
	var path, apiKey, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		apiKey = r.Header.Get("apikey")
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"廠牌":"Toyota","車型":"Camry","年份":2020,"車輛售價":65}]`))
	}))
	defer server.Close()

	st := NewRESTStore(server.URL+"/", "service-key", Options{})
	cars, err := st.FindCars(t.Context(), Filter{Brand: "Toyota", Model: "Camry", MinYear: 2020})
	require.NoError(t, err)

	assert.Equal(t, []models.Car{{Brand: "Toyota", Model: "Camry", Year: 2020, Price: 65}}, cars)
	assert.Equal(t, "/rest/v1/cars", path)
	assert.Equal(t, "service-key", apiKey)
	assert.Equal(t, "Bearer service-key", auth)
	assert.Equal(t, "廠牌,車型,年份,車輛售價", query.Get("select"))
	assert.Equal(t, "ilike.%Toyota%", query.Get(ColBrand))
	assert.Equal(t, "ilike.%Camry%", query.Get(ColModel))
	assert.Equal(t, "gte.2020", query.Get(ColYear))
	assert.Equal(t, "50", query.Get("limit"))
}

func TestRESTStore_FindCars_YearOnly(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	st := NewRESTStore(server.URL, "k", Options{MaxRows: 10})
	cars, err := st.FindCars(t.Context(), Filter{MinYear: 2019})
	require.NoError(t, err)
	assert.Empty(t, cars)
	assert.Equal(t, "ilike.%", query.Get(ColBrand))
	assert.Equal(t, "ilike.%", query.Get(ColModel))
	assert.Equal(t, "gte.2019", query.Get(ColYear))
	assert.Equal(t, "10", query.Get("limit"))
}

func TestRESTStore_FindCars_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer server.Close()

	st := NewRESTStore(server.URL, "bad", Options{})
	_, err := st.FindCars(t.Context(), Filter{Brand: "Toyota"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestRESTStore_Ping(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("limit"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	st := NewRESTStore(server.URL, "k", Options{})
	assert.NoError(t, st.Ping(t.Context()))

	status = http.StatusServiceUnavailable
	assert.Error(t, st.Ping(t.Context()))
	assert.NoError(t, st.Close())
}
