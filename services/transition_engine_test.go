package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

func seededStore(t *testing.T, fake *fakeAPI, orders ...models.Order) *OrderStore {
	t.Helper()
	fake.setOrders(orders)
	s := NewOrderStore(fake, time.Hour)
	s.epoch = 1
	s.fetchOnce(1, "empresa-1")
	require.Len(t, s.Snapshot(), len(orders))
	return s
}

func TestTransitionOptimisticThenPersist(t *testing.T) {
	fake := &fakeAPI{}
	store := seededStore(t, fake, testOrder(1, models.StatusReceived))

	engine := NewTransitionEngine(store, fake, time.Second)
	stamp := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	engine.now = func() time.Time { return stamp }

	err := engine.Transition(context.Background(), 1, models.StatusInProduction)
	require.NoError(t, err)

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.StatusInProduction, got.Status)
	assert.Equal(t, stamp, got.UpdatedAt)

	calls := fake.patchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, uint(1), calls[0].OrderID)
	assert.Equal(t, models.StatusInProduction, calls[0].Status)
}

func TestTransitionRollbackOnBackendFailure(t *testing.T) {
	fake := &fakeAPI{patchErr: assert.AnError}
	original := testOrder(1, models.StatusReceived)
	store := seededStore(t, fake, original)

	engine := NewTransitionEngine(store, fake, time.Second)

	err := engine.Transition(context.Background(), 1, models.StatusInProduction)
	require.Error(t, err)

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.StatusReceived, got.Status)
	assert.Equal(t, original.UpdatedAt, got.UpdatedAt, "rollback restaura o updated_at anterior")
}

func TestTransitionNoOps(t *testing.T) {
	cases := []struct {
		name string
		from models.Status
		to   models.Status
	}{
		{"status igual", models.StatusReceived, models.StatusReceived},
		{"retrocesso", models.StatusReady, models.StatusInProduction},
		{"a partir de entregue", models.StatusDelivered, models.StatusReady},
		{"a partir de cancelado", models.StatusCancelled, models.StatusReceived},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAPI{}
			store := seededStore(t, fake, testOrder(1, tc.from))
			engine := NewTransitionEngine(store, fake, time.Second)

			err := engine.Transition(context.Background(), 1, tc.to)
			assert.NoError(t, err)
			assert.Empty(t, fake.patchCalls(), "no-op nunca chega na rede")

			got, _ := store.Get(1)
			assert.Equal(t, tc.from, got.Status)
		})
	}
}

func TestTransitionUnknownOrderIsSilent(t *testing.T) {
	fake := &fakeAPI{}
	store := seededStore(t, fake, testOrder(1, models.StatusReceived))
	engine := NewTransitionEngine(store, fake, time.Second)

	err := engine.Transition(context.Background(), 99, models.StatusReady)
	assert.NoError(t, err)
	assert.Empty(t, fake.patchCalls())
}

func TestTransitionForwardJumpAllowed(t *testing.T) {
	fake := &fakeAPI{}
	store := seededStore(t, fake, testOrder(1, models.StatusReceived))
	engine := NewTransitionEngine(store, fake, time.Second)

	// recebido -> pronto pula producao; avanco continua valido
	err := engine.Transition(context.Background(), 1, models.StatusReady)
	require.NoError(t, err)

	got, _ := store.Get(1)
	assert.Equal(t, models.StatusReady, got.Status)
	require.Len(t, fake.patchCalls(), 1)
}

func TestTransitionCancelFromActive(t *testing.T) {
	fake := &fakeAPI{}
	store := seededStore(t, fake, testOrder(1, models.StatusInProduction))
	engine := NewTransitionEngine(store, fake, time.Second)

	err := engine.Transition(context.Background(), 1, models.StatusCancelled)
	require.NoError(t, err)

	got, _ := store.Get(1)
	assert.Equal(t, models.StatusCancelled, got.Status)
}

func TestTransitionFiresStatusChangeAfterPersist(t *testing.T) {
	fake := &fakeAPI{}
	store := seededStore(t, fake, testOrder(1, models.StatusReceived))
	engine := NewTransitionEngine(store, fake, time.Second)

	var gotOrder models.Order
	var gotPrev models.Status
	fired := 0
	engine.OnStatusChange = func(order models.Order, previous models.Status) {
		fired++
		gotOrder = order
		gotPrev = previous
	}

	require.NoError(t, engine.Transition(context.Background(), 1, models.StatusInProduction))
	assert.Equal(t, 1, fired)
	assert.Equal(t, models.StatusInProduction, gotOrder.Status)
	assert.Equal(t, models.StatusReceived, gotPrev)
}

func TestTransitionNoStatusChangeOnFailure(t *testing.T) {
	fake := &fakeAPI{patchErr: assert.AnError}
	store := seededStore(t, fake, testOrder(1, models.StatusReceived))
	engine := NewTransitionEngine(store, fake, time.Second)

	fired := 0
	engine.OnStatusChange = func(models.Order, models.Status) { fired++ }

	require.Error(t, engine.Transition(context.Background(), 1, models.StatusInProduction))
	assert.Zero(t, fired)
}
