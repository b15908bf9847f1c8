package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
	"github.com/dominiofast/sistema-restaurante-dominio-sub001/utils"
)

const DefaultRingInterval = 5 * time.Second

// icone exibido nas notificacoes de SO do dashboard
const notificationIcon = "/img/logo-dominio.png"

// AlertScheduler a "campainha": observa o OrderStore e dispara o loop
// de alerta sonoro quando a contagem de pedidos pendentes sobe.
//
// Toque comeca apenas em borda de subida; nao reinicia enquanto a
// contagem flutua com o toque ja ativo. Para sozinho quando a contagem
// volta a zero, ou na hora com o stop manual.
type AlertScheduler struct {
	audio    AudioPlayer
	notifier Notifier
	speaker  Speaker
	gate     InteractionGate
	Interval time.Duration

	mu          sync.Mutex
	started     bool
	ringing     bool
	pending     int
	lastPending int
	ringStop    chan struct{}
	knownOrders map[uint]struct{}
	permission  models.NotificationPermission
}

func NewAlertScheduler(audio AudioPlayer, notifier Notifier, speaker Speaker, gate InteractionGate, interval time.Duration) *AlertScheduler {
	if interval <= 0 {
		interval = DefaultRingInterval
	}
	return &AlertScheduler{
		audio:       audio,
		notifier:    notifier,
		speaker:     speaker,
		gate:        gate,
		Interval:    interval,
		knownOrders: make(map[uint]struct{}),
		permission:  models.PermissionDefault,
	}
}

func (a *AlertScheduler) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.started = true
}

// Stop teardown da sessao: encerra o loop de toque. Nenhum timer
// sobrevive a rota/sessao.
func (a *AlertScheduler) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ringing {
		a.stopRingingLocked()
	}
	a.started = false
	a.lastPending = 0
	a.pending = 0
	a.knownOrders = make(map[uint]struct{})
}

// OnOrders observador registrado no OrderStore; roda a cada snapshot.
func (a *AlertScheduler) OnOrders(orders []models.Order) {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return
	}

	var fresh []models.Order
	seen := make(map[uint]struct{})
	for _, o := range orders {
		if o.Status != models.StatusReceived {
			continue
		}
		seen[o.ID] = struct{}{}
		if _, known := a.knownOrders[o.ID]; !known {
			fresh = append(fresh, o)
		}
	}
	a.knownOrders = seen
	count := len(seen)

	risingEdge := count > a.lastPending
	if risingEdge && !a.ringing {
		a.startRingingLocked()
	}
	if count == 0 && a.ringing {
		a.stopRingingLocked()
	}
	a.pending = count
	a.lastPending = count
	a.mu.Unlock()

	// notificacao por pedido novo; tag por id evita duplicata no SO
	for _, o := range fresh {
		a.notifyNewOrder(o)
	}
}

// StopRinging comando manual "parar campainha". Silencia na hora,
// independente da contagem, que segue rastreada para proximas bordas.
func (a *AlertScheduler) StopRinging() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ringing {
		a.stopRingingLocked()
	}
}

func (a *AlertScheduler) startRingingLocked() {
	a.ringing = true
	a.ringStop = make(chan struct{})
	go a.ringLoop(a.ringStop)
}

func (a *AlertScheduler) stopRingingLocked() {
	close(a.ringStop)
	a.ringing = false
}

func (a *AlertScheduler) ringLoop(stop chan struct{}) {
	a.ringOnce()

	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.ringOnce()
		case <-stop:
			return
		}
	}
}

// ringOnce uma tentativa independente de alerta. Nunca propaga erro
// nem interrompe o loop: audio bloqueado cai para notificacao de SO
// e, por ultimo, sintese de voz.
func (a *AlertScheduler) ringOnce() {
	a.mu.Lock()
	pending := a.pending
	permission := a.permission
	a.mu.Unlock()

	if a.gate.Unlocked() {
		if err := a.audio.Play(); err == nil {
			return
		} else {
			utils.InfoLogger.Printf("playback da campainha falhou, usando fallback: %v", err)
		}
	}

	body := fmt.Sprintf("%d pedido(s) aguardando aceite", pending)
	if permission != models.PermissionDenied {
		n := models.Notification{
			Title:    "Novo pedido!",
			Body:     utils.TruncateBody(body, 100),
			Icon:     notificationIcon,
			Tag:      "campainha",
			ClickURL: "/pedidos",
		}
		if err := a.notifier.Notify(n); err == nil {
			return
		}
	}

	if err := a.speaker.Speak("Atencao: novo pedido aguardando aceite"); err != nil {
		utils.InfoLogger.Printf("fallback de voz falhou: %v", err)
	}
}

func (a *AlertScheduler) notifyNewOrder(o models.Order) {
	body := fmt.Sprintf("%s - %s - %s", o.Label(), o.CustomerName, utils.FormatCurrency(o.TotalAmount))
	n := models.Notification{
		Title:    "Novo pedido recebido",
		Body:     utils.TruncateBody(body, 100),
		Icon:     notificationIcon,
		Tag:      fmt.Sprintf("order-%d", o.ID),
		ClickURL: fmt.Sprintf("/pedidos/%d", o.ID),
	}
	if err := a.notifier.Notify(n); err != nil {
		utils.InfoLogger.Printf("notificacao do %s nao entregue: %v", o.Label(), err)
	}
}

// SetPermission atualiza a permissao de notificacao reportada pelo
// cliente; negada degrada para popups apenas, nunca e fatal.
func (a *AlertScheduler) SetPermission(p models.NotificationPermission) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.permission = p
}

// State snapshot publico da campainha para o dashboard.
func (a *AlertScheduler) State() models.AlertState {
	a.mu.Lock()
	defer a.mu.Unlock()

	phase := models.AlertIdle
	switch {
	case a.ringing:
		phase = models.AlertRinging
	case a.started && a.gate.Unlocked():
		phase = models.AlertArmed
	case a.started:
		phase = models.AlertUnlocking
	}

	return models.AlertState{
		Phase:                  phase,
		Ringing:                a.ringing,
		PendingCount:           a.pending,
		AudioUnlocked:          a.gate.Unlocked(),
		NotificationPermission: a.permission,
	}
}
