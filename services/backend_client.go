package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

// OrdersAPI contrato com o backend de pedidos (colaborador externo).
type OrdersAPI interface {
	FetchOrders(ctx context.Context, companyID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status models.Status) error
}

// BackendClient cliente REST do backend de pedidos.
type BackendClient struct {
	baseURL string
	http    *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BackendClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchOrders busca o snapshot completo de pedidos da empresa.
// Aceita tanto lista crua quanto o envelope {status,message,data}.
func (bc *BackendClient) FetchOrders(ctx context.Context, companyID string) ([]models.Order, error) {
	endpoint := fmt.Sprintf("%s/orders?companyId=%s", bc.baseURL, url.QueryEscape(companyID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := bc.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend devolveu status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	payloads, err := decodeOrderList(body)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(payloads))
	for _, p := range payloads {
		orders = append(orders, p.ToOrder())
	}
	return orders, nil
}

// UpdateOrderStatus persiste a troca de status de um pedido.
func (bc *BackendClient) UpdateOrderStatus(ctx context.Context, orderID uint, status models.Status) error {
	endpoint := fmt.Sprintf("%s/orders/%d/status", bc.baseURL, orderID)

	payload, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := bc.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend rejeitou transicao: status %d", resp.StatusCode)
	}
	return nil
}

func decodeOrderList(body []byte) ([]models.OrderPayload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []models.OrderPayload
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var envelope struct {
		Data []models.OrderPayload `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
