package services

import (
	"context"
	"sync"
	"time"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

const DefaultPollInterval = 30 * time.Second

// OrderStore dono do snapshot canonico de pedidos e do ciclo de polling.
// Escritas passam todas por um unico caminho serializado (mutex); leitores
// recebem copias, nunca a fatia interna.
type OrderStore struct {
	client   OrdersAPI
	Interval time.Duration

	mu        sync.Mutex
	companyID string
	orders    []models.Order
	running   bool
	stopChan  chan struct{}
	refresh   chan struct{}

	// epoch invalida respostas em voo depois de Stop/troca de empresa
	epoch uint64

	// carimbo monotonico por escrita otimista; na reconciliacao a
	// escrita local mais nova vence o resultado de um fetch antigo
	versionCounter uint64
	localVersions  map[uint]uint64

	fetching    bool
	fetchedOnce bool
	lastErr     error

	subscribers []func([]models.Order)
}

func NewOrderStore(client OrdersAPI, interval time.Duration) *OrderStore {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &OrderStore{
		client:        client,
		Interval:      interval,
		localVersions: make(map[uint]uint64),
	}
}

// Start inicia fetch imediato + repeticao em intervalo fixo.
// Chamar com outra empresa derruba a sessao anterior primeiro.
func (s *OrderStore) Start(companyID string) {
	s.mu.Lock()
	if s.running {
		s.stopLocked()
	}
	s.companyID = companyID
	s.orders = nil
	s.localVersions = make(map[uint]uint64)
	s.fetching = false
	s.fetchedOnce = false
	s.lastErr = nil
	s.epoch++
	s.running = true
	s.stopChan = make(chan struct{})
	s.refresh = make(chan struct{}, 1)

	epoch := s.epoch
	stop := s.stopChan
	refresh := s.refresh
	s.mu.Unlock()

	go s.pollLoop(epoch, companyID, stop, refresh)
}

// Stop cancela o ticker e invalida qualquer resposta em voo.
func (s *OrderStore) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *OrderStore) stopLocked() {
	if !s.running {
		return
	}
	close(s.stopChan)
	s.running = false
	s.fetching = false
	s.epoch++
}

// RefreshNow dispara um fetch fora do intervalo sem criar segundo ticker.
func (s *OrderStore) RefreshNow() {
	s.mu.Lock()
	refresh := s.refresh
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}
	select {
	case refresh <- struct{}{}:
	default:
	}
}

func (s *OrderStore) pollLoop(epoch uint64, companyID string, stop chan struct{}, refresh chan struct{}) {
	s.fetchOnce(epoch, companyID)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.fetchOnce(epoch, companyID)
		case <-refresh:
			s.fetchOnce(epoch, companyID)
		case <-stop:
			return
		}
	}
}

func (s *OrderStore) fetchOnce(epoch uint64, companyID string) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.fetching = true
	issueVersion := s.versionCounter
	s.mu.Unlock()

	orders, err := s.client.FetchOrders(context.Background(), companyID)

	s.mu.Lock()
	if epoch != s.epoch {
		// sessao derrubada enquanto o fetch estava em voo; o flag de
		// fetch em andamento ja foi zerado na troca de sessao
		s.mu.Unlock()
		return
	}
	s.fetching = false

	if err != nil {
		// disponibilidade acima de frescor: mantem o snapshot anterior
		s.lastErr = err
		s.mu.Unlock()
		utils.ErrorLogger.Printf("polling de pedidos falhou (empresa %s): %v", companyID, err)
		return
	}

	s.lastErr = nil
	s.fetchedOnce = true
	s.reconcileLocked(orders, issueVersion)
	snapshot := s.snapshotLocked()
	subs := append([]func([]models.Order){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// reconcileLocked aplica o snapshot completo do backend. Pedido ausente
// do payload some de todos os buckets. Pedido com escrita otimista mais
// nova que o fetch em voo mantem o valor local (last-mutation-wins por id).
func (s *OrderStore) reconcileLocked(fetched []models.Order, issueVersion uint64) {
	local := make(map[uint]models.Order, len(s.orders))
	for _, o := range s.orders {
		local[o.ID] = o
	}

	merged := make([]models.Order, 0, len(fetched))
	seen := make(map[uint]struct{}, len(fetched))
	for _, o := range fetched {
		seen[o.ID] = struct{}{}
		if lv, ok := s.localVersions[o.ID]; ok {
			if lv > issueVersion {
				if kept, exists := local[o.ID]; exists {
					merged = append(merged, kept)
					continue
				}
			} else {
				delete(s.localVersions, o.ID)
			}
		}
		merged = append(merged, o)
	}

	for id := range s.localVersions {
		if _, ok := seen[id]; !ok {
			delete(s.localVersions, id)
		}
	}

	s.orders = merged
}

// ApplyLocal muta um pedido no snapshot (escrita otimista ou rollback)
// e carimba a versao local. Devolve a copia anterior para rollback.
func (s *OrderStore) ApplyLocal(orderID uint, mutate func(*models.Order)) (models.Order, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return models.Order{}, false
	}

	prev := s.orders[idx]

	// copy-on-write: callback reentrante nunca ve fatia sendo iterada
	next := make([]models.Order, len(s.orders))
	copy(next, s.orders)
	mutate(&next[idx])
	s.orders = next

	s.versionCounter++
	s.localVersions[orderID] = s.versionCounter

	snapshot := s.snapshotLocked()
	subs := append([]func([]models.Order){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return prev, true
}

// Get devolve copia de um pedido por id.
func (s *OrderStore) Get(orderID uint) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// Snapshot devolve copia da lista canonica.
func (s *OrderStore) Snapshot() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *OrderStore) snapshotLocked() []models.Order {
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Loading verdadeiro apenas no primeiro carregamento (lista vazia com
// fetch em voo); polls de fundo nao causam flicker.
func (s *OrderStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetching && len(s.orders) == 0 && !s.fetchedOnce
}

// LastError flag suave do ultimo fetch; limpa no proximo sucesso.
func (s *OrderStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *OrderStore) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *OrderStore) CompanyID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.companyID
}

// Subscribe registra observador chamado com copia do snapshot apos
// cada atualizacao aplicada (poll, escrita otimista, rollback).
func (s *OrderStore) Subscribe(fn func([]models.Order)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
