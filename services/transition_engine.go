package services

import (
	"context"
	"time"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

// TransitionEngine aplica a troca de status de um pedido com disciplina
// otimista: muda local primeiro, persiste no backend, reverte se falhar.
type TransitionEngine struct {
	store   *OrderStore
	client  OrdersAPI
	timeout time.Duration

	// now injetavel para os testes controlarem updated_at
	now func() time.Time

	// OnStatusChange publicado apos persistencia confirmada; consumido
	// pelos subsistemas colaboradores (impressao, cashback, WhatsApp).
	OnStatusChange func(order models.Order, previous models.Status)
}

func NewTransitionEngine(store *OrderStore, client OrdersAPI, timeout time.Duration) *TransitionEngine {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TransitionEngine{
		store:   store,
		client:  client,
		timeout: timeout,
		now:     time.Now,
	}
}

// Transition aplica orderID -> next. Pedido desconhecido, status igual,
// estado terminal ou retrocesso sao no-ops silenciosos: logados para
// diagnostico, nunca chegam na rede e nunca viram panico.
//
// Sem fila por pedido: uma segunda transicao antes da primeira resolver
// simplesmente sobrescreve o alvo de rollback (last-writer-wins no
// snapshot local, comportamento aceito).
func (e *TransitionEngine) Transition(ctx context.Context, orderID uint, next models.Status) error {
	order, ok := e.store.Get(orderID)
	if !ok {
		utils.InfoLogger.Printf("transicao ignorada: pedido %d desconhecido", orderID)
		return nil
	}
	if order.Status == next {
		return nil
	}
	if order.Status.Terminal() || !order.Status.CanTransition(next) {
		utils.InfoLogger.Printf("transicao ignorada: %s nao permite %s -> %s",
			order.Label(), order.Status, next)
		return nil
	}

	prevStatus := order.Status
	prevUpdated := order.UpdatedAt

	persistCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	err := RunOptimistic(
		func() {
			now := e.now()
			e.store.ApplyLocal(orderID, func(o *models.Order) {
				o.Status = next
				o.UpdatedAt = now
			})
		},
		func() error {
			return e.client.UpdateOrderStatus(persistCtx, orderID, next)
		},
		func() {
			e.store.ApplyLocal(orderID, func(o *models.Order) {
				o.Status = prevStatus
				o.UpdatedAt = prevUpdated
			})
		},
	)
	if err != nil {
		utils.ErrorLogger.Printf("persistencia da transicao %d -> %s falhou, revertendo: %v",
			orderID, next, err)
		return err
	}

	if e.OnStatusChange != nil {
		if updated, ok := e.store.Get(orderID); ok {
			e.OnStatusChange(updated, prevStatus)
		}
	}
	return nil
}
