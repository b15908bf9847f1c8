package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

func dragFixture(t *testing.T, status models.Status) (*fakeAPI, *DragReconciler, *OrderStore) {
	t.Helper()
	fake := &fakeAPI{}
	store := seededStore(t, fake, testOrder(1, status))
	engine := NewTransitionEngine(store, fake, time.Second)
	return fake, NewDragReconciler(store, engine), store
}

func TestDragAppliesTransition(t *testing.T) {
	fake, rec, store := dragFixture(t, models.StatusReceived)

	err := rec.Reconcile(context.Background(), models.DragEvent{
		OrderID:      1,
		FromStatus:   models.StatusReceived,
		ToStatus:     models.StatusInProduction,
		PointerDelta: 42,
	})
	require.NoError(t, err)

	got, _ := store.Get(1)
	assert.Equal(t, models.StatusInProduction, got.Status)
	assert.Len(t, fake.patchCalls(), 1)
}

func TestDragCancelledGestureIsNoOp(t *testing.T) {
	fake, rec, store := dragFixture(t, models.StatusReceived)

	// solto fora de qualquer coluna: sem alvo, sem efeito
	err := rec.Reconcile(context.Background(), models.DragEvent{
		OrderID:      1,
		FromStatus:   models.StatusReceived,
		PointerDelta: 120,
	})
	require.NoError(t, err)

	got, _ := store.Get(1)
	assert.Equal(t, models.StatusReceived, got.Status)
	assert.Empty(t, fake.patchCalls())
}

func TestDragBelowThresholdIgnored(t *testing.T) {
	fake, rec, _ := dragFixture(t, models.StatusReceived)

	err := rec.Reconcile(context.Background(), models.DragEvent{
		OrderID:      1,
		ToStatus:     models.StatusInProduction,
		PointerDelta: 7.9,
	})
	require.NoError(t, err)
	assert.Empty(t, fake.patchCalls(), "clique simples nao vira drag")
}

func TestDragKeyboardBypassesThreshold(t *testing.T) {
	fake, rec, store := dragFixture(t, models.StatusReceived)

	err := rec.Reconcile(context.Background(), models.DragEvent{
		OrderID:  1,
		ToStatus: models.StatusInProduction,
		Keyboard: true,
	})
	require.NoError(t, err)

	got, _ := store.Get(1)
	assert.Equal(t, models.StatusInProduction, got.Status)
	assert.Len(t, fake.patchCalls(), 1)
}

func TestDragSameColumnIsNoOp(t *testing.T) {
	fake, rec, _ := dragFixture(t, models.StatusInProduction)

	err := rec.Reconcile(context.Background(), models.DragEvent{
		OrderID:      1,
		FromStatus:   models.StatusInProduction,
		ToStatus:     models.StatusInProduction,
		PointerDelta: 200,
	})
	require.NoError(t, err)
	assert.Empty(t, fake.patchCalls())
}

func TestDragUnknownOrderIgnored(t *testing.T) {
	fake, rec, _ := dragFixture(t, models.StatusReceived)

	err := rec.Reconcile(context.Background(), models.DragEvent{
		OrderID:      55,
		ToStatus:     models.StatusReady,
		PointerDelta: 50,
	})
	require.NoError(t, err)
	assert.Empty(t, fake.patchCalls())
}
