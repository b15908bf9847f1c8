package models

// Status lifecycle pedido
type Status string

const (
	StatusReceived     Status = "received"
	StatusInProduction Status = "in_production"
	StatusReady        Status = "ready"
	StatusDelivered    Status = "delivered"
	StatusCancelled    Status = "cancelled"
)

// statusRank posicao no fluxo received -> in_production -> ready -> delivered.
// Cancelled fica fora do fluxo linear.
var statusRank = map[Status]int{
	StatusReceived:     0,
	StatusInProduction: 1,
	StatusReady:        2,
	StatusDelivered:    3,
}

// statusAliases mapeia rotulos legados que o backend ainda devolve.
// Valores desconhecidos passam sem alteracao.
var statusAliases = map[string]Status{
	"pendente":        StatusReceived,
	"analise":         StatusReceived,
	"pending":         StatusReceived,
	"preparando":      StatusInProduction,
	"producao":        StatusInProduction,
	"em_producao":     StatusInProduction,
	"pronto":          StatusReady,
	"prontos_entrega": StatusReady,
	"entregue":        StatusDelivered,
	"cancelado":       StatusCancelled,
}

// NormalizeStatus converte um status bruto do backend para o enum canonico.
func NormalizeStatus(raw string) Status {
	if s, ok := statusAliases[raw]; ok {
		return s
	}
	return Status(raw)
}

// Terminal informa se o status nao aceita mais transicoes.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition valida o movimento s -> next. Apenas avancos no fluxo
// linear sao aceitos; cancelamento vale a partir de qualquer estado
// nao-terminal. Retrocesso nunca e permitido.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() || s == next {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	if !okFrom || !okTo {
		return false
	}
	return to > from
}

// KanbanOrder ordem fixa das colunas no dashboard.
var KanbanOrder = []Status{
	StatusReceived,
	StatusInProduction,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}
