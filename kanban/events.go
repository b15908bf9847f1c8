package kanban

// Eventos empurrados para os dashboards conectados
const (
	EventOrdersUpdate       = "orders_update"
	EventKanbanUpdate       = "kanban_update"
	EventOrderStatusChanged = "order_status_changed"
	EventCampainhaRing      = "campainha_ring"
	EventCampainhaStop      = "campainha_stop"
	EventNotification       = "notification"
	EventPopup              = "popup"
	EventSpeak              = "speak"
	EventSettingsUpdate     = "settings_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// PopupData widget transitorio na pagina; auto-dismiss ~5s a menos
// que um alerta mais novo o substitua.
type PopupData struct {
	Title         string `json:"title"`
	Body          string `json:"body"`
	Tag           string `json:"tag"`
	ClickURL      string `json:"click_url,omitempty"`
	AutoDismissMS int    `json:"auto_dismiss_ms"`
}

// Mensagens de controle vindas do cliente
type clientMessage struct {
	Type       string `json:"type"`
	Visible    bool   `json:"visible"`
	Permission string `json:"permission"`
}
