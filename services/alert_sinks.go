package services

import (
	"sync/atomic"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

// AudioPlayer toca o som da campainha. A implementacao de producao
// empurra o evento de play para os dashboards conectados; falha de
// autoplay volta como erro e cai no fallback.
type AudioPlayer interface {
	Play() error
}

// Notifier entrega uma notificacao ao atendente (nivel SO quando a aba
// esta oculta, popup quando visivel).
type Notifier interface {
	Notify(n models.Notification) error
}

// Speaker fallback final: fala o alerta via sintese de voz.
type Speaker interface {
	Speak(text string) error
}

// InteractionGate so libera playback de audio depois de pelo menos um
// evento real de input do usuario na sessao. Injetavel para a logica
// da campainha ser testavel sem browser.
type InteractionGate interface {
	Unlocked() bool
	Unlock()
}

// SessionGate gate padrao de uma sessao do dashboard.
type SessionGate struct {
	unlocked atomic.Bool
}

func NewSessionGate() *SessionGate {
	return &SessionGate{}
}

func (g *SessionGate) Unlocked() bool {
	return g.unlocked.Load()
}

func (g *SessionGate) Unlock() {
	g.unlocked.Store(true)
}
