package services

import (
	"context"
	"sync"
	"time"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

// fakeAPI backend de pedidos controlavel pelos testes.
type fakeAPI struct {
	mu sync.Mutex

	orders   []models.Order
	fetchErr error

	patchErr error
	patches  []patchCall

	// quando definido, FetchOrders bloqueia ate o canal liberar
	fetchBlock chan struct{}

	fetchCount int
}

type patchCall struct {
	OrderID uint
	Status  models.Status
}

func (f *fakeAPI) FetchOrders(ctx context.Context, companyID string) ([]models.Order, error) {
	f.mu.Lock()
	f.fetchCount++
	block := f.fetchBlock
	err := f.fetchErr
	orders := make([]models.Order, len(f.orders))
	copy(orders, f.orders)
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, orderID uint, status models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patchCall{OrderID: orderID, Status: status})
	return f.patchErr
}

func (f *fakeAPI) setOrders(orders []models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = orders
}

func (f *fakeAPI) patchCalls() []patchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]patchCall, len(f.patches))
	copy(out, f.patches)
	return out
}

func (f *fakeAPI) fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCount
}

func testOrder(id uint, status models.Status) models.Order {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return models.Order{
		ID:            id,
		DisplayNumber: int(1000 + id),
		CustomerName:  "Cliente Teste",
		CustomerPhone: "+5511999990000",
		Status:        status,
		Channel:       models.ChannelDelivery,
		TotalAmount:   59.9,
		PaymentMethod: "pix",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// fakes dos sinks da campainha

type fakeAudio struct {
	mu    sync.Mutex
	err   error
	plays int
}

func (f *fakeAudio) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return f.err
}

func (f *fakeAudio) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	notes []models.Notification
}

func (f *fakeNotifier) Notify(n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notes = append(f.notes, n)
	return nil
}

func (f *fakeNotifier) all() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.notes))
	copy(out, f.notes)
	return out
}

type fakeSpeaker struct {
	mu    sync.Mutex
	err   error
	texts []string
}

func (f *fakeSpeaker) Speak(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeSpeaker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

type fakeGate struct {
	mu       sync.Mutex
	unlocked bool
}

func (f *fakeGate) Unlocked() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unlocked
}

func (f *fakeGate) Unlock() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlocked = true
}
