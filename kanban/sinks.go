package kanban

import (
	"errors"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/models"
)

// Implementacoes de producao dos sinks da campainha: todas empurram
// eventos para os dashboards conectados via hub. Sem cliente ouvindo
// a tentativa conta como falha para o scheduler cair no proximo
// degrau do fallback.

var errNoClients = errors.New("nenhum dashboard conectado")

type HubAudioPlayer struct {
	hub *Hub
}

func NewHubAudioPlayer(hub *Hub) *HubAudioPlayer {
	return &HubAudioPlayer{hub: hub}
}

func (p *HubAudioPlayer) Play() error {
	if p.hub.ClientCount() == 0 {
		return errNoClients
	}
	p.hub.Broadcast(Message{Event: EventCampainhaRing, Data: map[string]string{
		"sound": "campainha.mp3",
	}})
	return nil
}

type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Notify(notification models.Notification) error {
	if n.hub.ClientCount() == 0 {
		return errNoClients
	}
	n.hub.DeliverAlert(notification)
	return nil
}

type HubSpeaker struct {
	hub *Hub
}

func NewHubSpeaker(hub *Hub) *HubSpeaker {
	return &HubSpeaker{hub: hub}
}

func (s *HubSpeaker) Speak(text string) error {
	if s.hub.ClientCount() == 0 {
		return errNoClients
	}
	s.hub.Broadcast(Message{Event: EventSpeak, Data: map[string]string{"text": text}})
	return nil
}
