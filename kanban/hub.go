package kanban

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

// Hub mantem os dashboards conectados e distribui eventos tipados.
// Tambem rastreia visibilidade por cliente para a entrega de alertas
// escolher entre notificacao de SO e popup na pagina.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool

	// callbacks ligados na montagem (gate de interacao e permissao
	// de notificacao reportada pelo cliente)
	OnInteraction func()
	OnPermission  func(models.NotificationPermission)
}

type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu          sync.Mutex
	closed      bool
	visible     bool
	queuedPopup *Message
}

// closeSend fecha o canal de saida exatamente uma vez, sob c.mu, para
// nenhum envio concorrente cair num canal ja fechado.
func (c *Client) closeSend() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

// Register adiciona a conexao; cada cliente comeca como visivel.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := &Client{
		ID:      uuid.NewString(),
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 64),
		visible: true,
	}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	utils.InfoLogger.Printf("dashboard conectado (%s)", c.ID)
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.closeSend()
	}
	h.mu.Unlock()
	c.conn.Close()
	utils.InfoLogger.Printf("dashboard desconectado (%s)", c.ID)
}

// ClientCount usado pelos sinks para detectar "ninguem ouvindo".
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast envia o evento para todos os clientes. Cliente com fila
// cheia e descartado em vez de travar o resto.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("erro serializando evento %s: %v", msg.Event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			c.closeSend()
		}
	}
}

// BroadcastOrders snapshot canonico para os dashboards.
func (h *Hub) BroadcastOrders(orders []models.Order) {
	h.Broadcast(Message{Event: EventOrdersUpdate, Data: orders})
}

// BroadcastKanban buckets derivados prontos para renderizar.
func (h *Hub) BroadcastKanban(buckets []Bucket) {
	h.Broadcast(Message{Event: EventKanbanUpdate, Data: buckets})
}

// BroadcastStatusChange evento consumido pelos subsistemas
// colaboradores (impressao, cashback, WhatsApp).
func (h *Hub) BroadcastStatusChange(order models.Order, previous models.Status) {
	h.Broadcast(Message{
		Event: EventOrderStatusChanged,
		Data: map[string]interface{}{
			"order":           order,
			"previous_status": previous,
		},
	})
}

func (h *Hub) BroadcastSettings(companyID string, settings []models.ColumnSetting) {
	h.Broadcast(Message{
		Event: EventSettingsUpdate,
		Data: map[string]interface{}{
			"company_id": companyID,
			"columns":    settings,
		},
	})
}

// DeliverAlert entrega consciente de visibilidade: aba oculta recebe
// notificacao de SO (tag deduplica) e guarda o popup para descarregar
// quando o cliente voltar a ficar visivel; aba visivel recebe o popup
// direto. Alerta mais novo substitui popup enfileirado.
func (h *Hub) DeliverAlert(n models.Notification) {
	popup := Message{Event: EventPopup, Data: PopupData{
		Title:         n.Title,
		Body:          n.Body,
		Tag:           n.Tag,
		ClickURL:      n.ClickURL,
		AutoDismissMS: 5000,
	}}
	osNotif := Message{Event: EventNotification, Data: n}

	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		c.mu.Lock()
		if c.visible {
			c.queuedPopup = nil
			c.trySendLocked(popup)
		} else {
			c.trySendLocked(osNotif)
			queued := popup
			c.queuedPopup = &queued
		}
		c.mu.Unlock()
	}
}

func (c *Client) trySendLocked(msg Message) {
	if c.closed {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// ReadPump consome mensagens de controle do cliente (interacao real,
// mudanca de visibilidade, permissao de notificacao).
func (c *Client) ReadPump() {
	defer c.hub.Unregister(c)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "interaction":
			if c.hub.OnInteraction != nil {
				c.hub.OnInteraction()
			}
		case "visibility":
			c.setVisible(msg.Visible)
		case "permission":
			if c.hub.OnPermission != nil {
				c.hub.OnPermission(models.NotificationPermission(msg.Permission))
			}
		}
	}
}

func (c *Client) setVisible(visible bool) {
	c.mu.Lock()
	c.visible = visible
	var flush *Message
	if visible && c.queuedPopup != nil {
		flush = c.queuedPopup
		c.queuedPopup = nil
	}
	if flush != nil {
		c.trySendLocked(*flush)
	}
	c.mu.Unlock()
}

func (c *Client) WritePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
