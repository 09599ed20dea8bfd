package stickyio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Post(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/order_view", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "portal", user)
		assert.Equal(t, "secret", pass)

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":"100","order_id":101,"order_total":"19.99"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/v1/", "portal", "secret", time.Second)
	doc, err := client.Post(context.Background(), PathOrderView, NewOrderViewRequest(101))
	require.NoError(t, err)

	assert.Equal(t, "100", doc.ResponseCode())
	assert.Equal(t, json.Number("101"), doc["order_id"])
	assert.Equal(t, []any{float64(101)}, gotBody["order_id"])
	assert.Equal(t, float64(1), gotBody["return_variants"])
}

func TestClient_Post_Errors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, "u", "p", time.Second)
			doc, err := client.Post(context.Background(), PathCustomerFind, nil)

			assert.Nil(t, doc)
			var transportErr *TransportError
			require.True(t, errors.As(err, &transportErr))
			assert.Equal(t, PathCustomerFind, transportErr.Path)
			assert.Equal(t, tt.wantStatus, transportErr.StatusCode)
		})
	}
}

func TestClient_Post_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, "u", "p", time.Second)
	_, err := client.Post(context.Background(), PathOrderView, NewOrderViewRequest(1))

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
}

func TestNewCustomerFindRequest(t *testing.T) {
	req := NewCustomerFindRequest("a@b.com", "12345", "01/01/2020", "12/31/2025")

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"campaign_id": "all",
		"start_date": "01/01/2020",
		"end_date": "12/31/2025",
		"criteria": {"zip": "12345", "email": "a@b.com"},
		"search_type": "all",
		"return_type": "customer_view"
	}`, string(raw))
}
