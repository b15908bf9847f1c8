package models

import (
	"fmt"
	"time"
)

// Canais de venda
const (
	ChannelDelivery = "delivery"
	ChannelCounter  = "counter"
	ChannelPickup   = "pickup"
)

// Order snapshot canonico de um pedido vindo do backend.
// O core nunca cria nem apaga pedidos; so observa via polling.
type Order struct {
	ID              uint        `json:"id"`
	DisplayNumber   int         `json:"display_number"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress *string     `json:"delivery_address,omitempty"`
	Status          Status      `json:"status"`
	Channel         string      `json:"channel"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `json:"items"`
}

// OrderItem item do pedido; add-ons apontam para o item pai.
type OrderItem struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Notes        string  `json:"notes,omitempty"`
	ParentItemID *uint   `json:"parent_item_id,omitempty"`
}

// Label identificador curto para toasts e notificacoes.
func (o *Order) Label() string {
	return fmt.Sprintf("Pedido #%d", o.DisplayNumber)
}

// OrderPayload registro cru devolvido pelo GET /orders do backend.
// Status chega com rotulos legados e e normalizado no fetch.
type OrderPayload struct {
	ID              uint        `json:"id"`
	DisplayNumber   int         `json:"display_number"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress *string     `json:"delivery_address,omitempty"`
	Status          string      `json:"status"`
	Channel         string      `json:"channel"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `json:"items"`
}

// ToOrder normaliza o payload para o modelo canonico.
func (p OrderPayload) ToOrder() Order {
	return Order{
		ID:              p.ID,
		DisplayNumber:   p.DisplayNumber,
		CustomerName:    p.CustomerName,
		CustomerPhone:   p.CustomerPhone,
		DeliveryAddress: p.DeliveryAddress,
		Status:          NormalizeStatus(p.Status),
		Channel:         p.Channel,
		TotalAmount:     p.TotalAmount,
		PaymentMethod:   p.PaymentMethod,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Items:           p.Items,
	}
}
