package services

import (
	"context"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

// Movimento minimo de ponteiro (px) para o gesto contar como drag;
// evita arrastes acidentais a partir de um clique simples.
const DragActivationThreshold = 8.0

// DragReconciler traduz gestos de drag-and-drop em chamadas de
// transicao, filtrando no-ops antes de chegar no engine.
type DragReconciler struct {
	store  *OrderStore
	engine *TransitionEngine
}

func NewDragReconciler(store *OrderStore, engine *TransitionEngine) *DragReconciler {
	return &DragReconciler{store: store, engine: engine}
}

// Reconcile consome um DragEvent. Gesto cancelado (sem alvo), movimento
// abaixo do limiar (exceto teclado) e drop na propria coluna sao
// descartados aqui mesmo, sem chamada upstream.
func (r *DragReconciler) Reconcile(ctx context.Context, ev models.DragEvent) error {
	if ev.ToStatus == "" {
		return nil
	}
	if !ev.Keyboard && ev.PointerDelta < DragActivationThreshold {
		return nil
	}

	order, ok := r.store.Get(ev.OrderID)
	if !ok {
		utils.InfoLogger.Printf("drag ignorado: pedido %d desconhecido", ev.OrderID)
		return nil
	}

	// guarda explicita de mesma coluna, independente do no-op do engine
	if order.Status == ev.ToStatus {
		return nil
	}

	return r.engine.Transition(ctx, ev.OrderID, ev.ToStatus)
}
