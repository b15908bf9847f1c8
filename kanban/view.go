package kanban

import (
	"sort"
	"time"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

// Janela fixa da coluna de cancelados, contada sobre updated_at
// (hora do cancelamento), nao created_at.
const CancelledWindow = 24 * time.Hour

// Janelas aceitas no filtro de recencia da coluna de entregues.
var DeliveredWindows = map[string]time.Duration{
	"1h":  time.Hour,
	"6h":  6 * time.Hour,
	"24h": 24 * time.Hour,
}

// ParseDeliveredWindow resolve o parametro do filtro; default 24h.
func ParseDeliveredWindow(raw string) time.Duration {
	if d, ok := DeliveredWindows[raw]; ok {
		return d
	}
	return 24 * time.Hour
}

// ViewConfig parametros de renderizacao de uma empresa: colunas
// habilitadas (lidas reativamente do settings store) e janela de
// exibicao dos entregues. Filtros sao so de exibicao; o snapshot
// canonico nunca e tocado.
type ViewConfig struct {
	Enabled         map[models.Status]bool
	DeliveredWindow time.Duration
	Now             time.Time
}

// Bucket coluna derivada do kanban, nunca persistida.
type Bucket struct {
	Status models.Status  `json:"status"`
	Orders []models.Order `json:"orders"`
	Count  int            `json:"count"`
}

// BuildBuckets deriva as colunas a partir de um snapshot. Ordenacao
// interna por created_at; reordenar dentro da coluna no cliente e
// visual e nao persiste.
func BuildBuckets(orders []models.Order, cfg ViewConfig) []Bucket {
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	window := cfg.DeliveredWindow
	if window <= 0 {
		window = 24 * time.Hour
	}

	grouped := make(map[models.Status][]models.Order)
	for _, o := range orders {
		grouped[o.Status] = append(grouped[o.Status], o)
	}

	buckets := make([]Bucket, 0, len(models.KanbanOrder))
	for _, st := range models.KanbanOrder {
		if cfg.Enabled != nil && !cfg.Enabled[st] {
			continue
		}

		list := grouped[st]
		switch st {
		case models.StatusDelivered:
			list = filterRecency(list, now, window)
		case models.StatusCancelled:
			list = filterRecency(list, now, CancelledWindow)
		}

		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})

		buckets = append(buckets, Bucket{
			Status: st,
			Orders: list,
			Count:  len(list),
		})
	}
	return buckets
}

func filterRecency(orders []models.Order, now time.Time, window time.Duration) []models.Order {
	cutoff := now.Add(-window)
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.UpdatedAt.After(cutoff) {
			out = append(out, o)
		}
	}
	return out
}
