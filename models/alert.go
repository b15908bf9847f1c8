package models

// Estados da campainha
type AlertPhase string

const (
	AlertIdle      AlertPhase = "idle"
	AlertUnlocking AlertPhase = "unlocking"
	AlertArmed     AlertPhase = "armed"
	AlertRinging   AlertPhase = "ringing"
)

// Permissao de notificacao reportada pelo cliente
type NotificationPermission string

const (
	PermissionDefault NotificationPermission = "default"
	PermissionGranted NotificationPermission = "granted"
	PermissionDenied  NotificationPermission = "denied"
)

// AlertState snapshot publico da campainha.
// Invariante: Ringing implica PendingCount > 0.
type AlertState struct {
	Phase                  AlertPhase             `json:"phase"`
	Ringing                bool                   `json:"ringing"`
	PendingCount           int                    `json:"pending_count"`
	AudioUnlocked          bool                   `json:"audio_unlocked"`
	NotificationPermission NotificationPermission `json:"notification_permission"`
}

// Notification alerta entregue ao atendente (nivel SO ou popup).
// Tag deduplica notificacoes do mesmo pedido; ClickURL navega
// para o detalhe do pedido.
type Notification struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Icon     string `json:"icon,omitempty"`
	Tag      string `json:"tag"`
	ClickURL string `json:"click_url,omitempty"`
}
