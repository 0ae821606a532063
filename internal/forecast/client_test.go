package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
            "actual_data":[{"year":"2023","value":10},{"year":"2024","value":20}],
            "forecast_data":[{"year":"2025","value":25}]
        }`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	series, err := c.Lookup(context.Background(), "receive-rejects", map[string]string{"industry_code": "7"})
	require.NoError(t, err)

	assert.Equal(t, "receive-rejects", gotBody["endpoint"])
	assert.Equal(t, "7", gotBody["industry_code"])
	require.Len(t, series.ActualData, 2)
	assert.Equal(t, 20.0, series.ActualData[1].Value)
	require.Len(t, series.ForecastData, 1)
}

func TestLookupNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Lookup(context.Background(), "x", nil)
	require.Error(t, err)
}

func TestLookupUnreachableService(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.Lookup(context.Background(), "x", nil)
	require.Error(t, err)
}
