package models

// DragEvent gesto de arrastar reportado pelo dashboard.
// Efemero: consumido imediatamente pelo reconciler.
// ToStatus vazio significa gesto cancelado (sem alvo de drop).
type DragEvent struct {
	OrderID      uint    `json:"order_id"`
	FromStatus   Status  `json:"from_status"`
	ToStatus     Status  `json:"to_status"`
	PointerDelta float64 `json:"pointer_delta"`
	Keyboard     bool    `json:"keyboard"`
}
