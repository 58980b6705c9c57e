package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseURL(t *testing.T) {
	assert.Equal(t, localBaseURL, ResolveBaseURL("localhost"))
	assert.Equal(t, localBaseURL, ResolveBaseURL("127.0.0.1"))
	assert.Equal(t, defaultBaseURL, ResolveBaseURL("void-shop.example.com"))
	assert.Equal(t, defaultBaseURL, ResolveBaseURL(""))
}

func newTestClient(srv *httptest.Server) *Client {
	return New(srv.URL+"/api", srv.Client(), zerolog.Nop())
}

func TestClient_GetInventory(t *testing.T) {
	t.Run("Decodes snapshot", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/inventory", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"sweater":{"quantity":1,"name":"SWEATER","price":65}}`))
		}))
		defer srv.Close()

		inventory, err := newTestClient(srv).GetInventory(context.Background())
		require.NoError(t, err)
		require.Contains(t, inventory, "sweater")
		assert.Equal(t, 1, inventory["sweater"].Quantity)
		assert.Equal(t, 65.0, inventory["sweater"].Price)
	})

	t.Run("Server error is returned", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newTestClient(srv).GetInventory(context.Background())
		assert.Error(t, err)
	})

	t.Run("Dead server is returned", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := newTestClient(srv).GetInventory(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_GetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/inventory/sweater", r.URL.Path)
		w.Write([]byte(`{"productId":"sweater","name":"SWEATER","quantity":0,"price":65,"soldOut":true}`))
	}))
	defer srv.Close()

	product, err := newTestClient(srv).GetProduct(context.Background(), "sweater")
	require.NoError(t, err)
	assert.Equal(t, "SWEATER", product.Name)
	assert.True(t, product.SoldOut)
}

func TestClient_CheckAvailability(t *testing.T) {
	t.Run("Decodes availability", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/inventory/sweater/available", r.URL.Path)
			w.Write([]byte(`{"available":true,"soldOut":false,"quantity":1}`))
		}))
		defer srv.Close()

		availability := newTestClient(srv).CheckAvailability(context.Background(), "sweater")
		assert.True(t, availability.Available)
		assert.Equal(t, 1, availability.Quantity)
	})

	t.Run("Dead server degrades to sold out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		availability := newTestClient(srv).CheckAvailability(context.Background(), "sweater")
		assert.False(t, availability.Available)
		assert.True(t, availability.SoldOut)
	})

	t.Run("Server error degrades to sold out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		availability := newTestClient(srv).CheckAvailability(context.Background(), "sweater")
		assert.False(t, availability.Available)
		assert.True(t, availability.SoldOut)
	})
}

func TestClient_Purchase(t *testing.T) {
	t.Run("Successful purchase", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/inventory/sweater/purchase", r.URL.Path)
			w.Write([]byte(`{"success":true,"newQuantity":0,"soldOut":true,"message":"SWEATER purchased successfully"}`))
		}))
		defer srv.Close()

		outcome := newTestClient(srv).Purchase(context.Background(), "sweater")
		assert.True(t, outcome.Success)
		assert.Equal(t, 0, outcome.NewQuantity)
		assert.True(t, outcome.SoldOut)
	})

	t.Run("Sold out body is decoded from a 400", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":"Product sold out"}`))
		}))
		defer srv.Close()

		outcome := newTestClient(srv).Purchase(context.Background(), "sweater")
		assert.False(t, outcome.Success)
		assert.Equal(t, "Product sold out", outcome.Error)
	})

	t.Run("Dead server is an unsuccessful outcome", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		outcome := newTestClient(srv).Purchase(context.Background(), "sweater")
		assert.False(t, outcome.Success)
		assert.NotEmpty(t, outcome.Error)
	})
}

func TestClient_Reset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/inventory/reset", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Inventory reset to 1 unit each"}`))
	}))
	defer srv.Close()

	outcome := newTestClient(srv).Reset(context.Background())
	assert.True(t, outcome.Success)
	assert.Equal(t, "Inventory reset to 1 unit each", outcome.Message)
}

func TestClient_UpdateQuantity(t *testing.T) {
	t.Run("Sends a PUT with the quantity", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/inventory/sweater", r.URL.Path)
			w.Write([]byte(`{"success":true,"product":{"productId":"sweater","quantity":5,"soldOut":false}}`))
		}))
		defer srv.Close()

		outcome := newTestClient(srv).UpdateQuantity(context.Background(), "sweater", 5)
		assert.True(t, outcome.Success)
		assert.Equal(t, 5, outcome.Product.Quantity)
	})

	t.Run("Dead server is an unsuccessful outcome", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		outcome := newTestClient(srv).UpdateQuantity(context.Background(), "sweater", 5)
		assert.False(t, outcome.Success)
		assert.NotEmpty(t, outcome.Error)
	})
}
