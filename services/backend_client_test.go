package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

func TestFetchOrdersNormalizesLegacyStatuses(t *testing.T) {
	// backend antigo mistura rotulos legados no mesmo payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "empresa-1", r.URL.Query().Get("companyId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "status": "pendente"},
			{"id": 2, "status": "preparando"},
			{"id": 3, "status": "prontos_entrega"},
			{"id": 4, "status": "analise"},
			{"id": 5, "status": "em_fatura"}
		]`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second)
	orders, err := client.FetchOrders(context.Background(), "empresa-1")
	require.NoError(t, err)
	require.Len(t, orders, 5)

	assert.Equal(t, models.StatusReceived, orders[0].Status)
	assert.Equal(t, models.StatusInProduction, orders[1].Status)
	assert.Equal(t, models.StatusReady, orders[2].Status)
	assert.Equal(t, models.StatusReceived, orders[3].Status)
	// rotulo desconhecido passa intacto, sem descarte
	assert.Equal(t, models.Status("em_fatura"), orders[4].Status)
}

func TestFetchOrdersAcceptsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true, "message": "ok", "data": [{"id": 9, "status": "pronto"}]}`))
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second)
	orders, err := client.FetchOrders(context.Background(), "empresa-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, uint(9), orders[0].ID)
	assert.Equal(t, models.StatusReady, orders[0].Status)
}

func TestFetchOrdersErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second)
	_, err := client.FetchOrders(context.Background(), "empresa-1")
	assert.Error(t, err)
}

func TestUpdateOrderStatusPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second)
	err := client.UpdateOrderStatus(context.Background(), 42, models.StatusReady)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/orders/42/status", gotPath)
	assert.Equal(t, "ready", gotBody["status"])
}

func TestUpdateOrderStatusRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second)
	err := client.UpdateOrderStatus(context.Background(), 42, models.StatusReady)
	assert.Error(t, err)
}
