package ws

import (
	"sync"

	"valepedagio/internal/emissao"
)

// Hub distribui as transições de estado das emissões para os painéis
// conectados. Clientes inscritos em um codpac específico só recebem os
// eventos daquele pacote; os demais recebem tudo.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan emissao.StatusEvento
	Mu         *sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan emissao.StatusEvento, 32),
		Mu:         &sync.RWMutex{},
	}
}

func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.Register:
			h.Mu.Lock()
			h.Clients[cl] = true
			h.Mu.Unlock()

		case cl := <-h.Unregister:
			h.Mu.Lock()
			if _, ok := h.Clients[cl]; ok {
				delete(h.Clients, cl)
				close(cl.Eventos)
			}
			h.Mu.Unlock()

		case evento := <-h.Broadcast:
			h.Mu.RLock()
			for cl := range h.Clients {
				if cl.Codpac != 0 && cl.Codpac != evento.Codpac {
					continue
				}
				select {
				case cl.Eventos <- evento:
				default:
					// Cliente lento: descarta em vez de travar o hub.
				}
			}
			h.Mu.RUnlock()
		}
	}
}

// Publicar entrega o evento ao hub sem bloquear o orquestrador.
func (h *Hub) Publicar(evento emissao.StatusEvento) {
	select {
	case h.Broadcast <- evento:
	default:
	}
}
