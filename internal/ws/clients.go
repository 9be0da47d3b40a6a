package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"

	"valepedagio/internal/emissao"
	"valepedagio/internal/get_token"
)

type Client struct {
	Conn    *websocket.Conn
	Eventos chan emissao.StatusEvento
	UserId  int64
	Codpac  int64
	Payload get_token.PayloadUserDTO
}

// Inscricao é a única mensagem aceita do cliente: troca o filtro de
// pacote da conexão. Codpac 0 volta a receber todos os eventos.
type Inscricao struct {
	Codpac int64 `json:"codpac"`
}

func (c *Client) writeEvents() {
	defer func() {
		err := c.Conn.Close()
		if err != nil {
			return
		}
	}()

	for {
		evento, ok := <-c.Eventos
		if !ok {
			return
		}

		err := c.Conn.WriteJSON(evento)
		if err != nil {
			return
		}
	}
}

func (c *Client) readSubscriptions(hub *Hub) {
	defer func() {
		hub.Unregister <- c
		err := c.Conn.Close()
		if err != nil {
			return
		}
	}()

	for {
		_, m, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				log.Println("ws: conexão encerrada de forma inesperada")
			}
			break
		}

		var inscricao Inscricao
		if err = json.Unmarshal(m, &inscricao); err != nil {
			log.Println("ws: mensagem de inscrição inválida")
			continue
		}

		hub.Mu.Lock()
		c.Codpac = inscricao.Codpac
		hub.Mu.Unlock()
	}
}
