package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"valepedagio/internal/emissao"
	"valepedagio/internal/get_token"
	"valepedagio/validation"
)

type Handler struct {
	hub *Hub
}

func NewWsHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
	}
}

var upgrade = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWs godoc
// @Summary      Acompanha emissões em tempo real
// @Description  Abre uma conexão websocket que recebe as transições de estado das emissões. O filtro inicial vem do query param codpac e pode ser trocado enviando {"codpac": N}.
// @Tags         Websocket
// @Param        codpac  query  int  false  "Filtra eventos de um pacote"
// @Router       /ws/emissoes [get]
// @Security     ApiKeyAuth
func (h *Handler) HandleWs(c echo.Context) error {
	payload := get_token.GetUserPayloadToken(c)

	codpac := int64(0)
	if raw := c.QueryParam("codpac"); raw != "" {
		parsed, err := validation.ParseStringToInt64(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "Código do pacote inválido")
		}
		codpac = parsed
	}

	conn, err := upgrade.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Println(err)
		return nil
	}

	cl := &Client{
		Conn:    conn,
		Eventos: make(chan emissao.StatusEvento, 10),
		UserId:  payload.ID,
		Codpac:  codpac,
		Payload: payload,
	}

	h.hub.Register <- cl

	go cl.writeEvents()

	cl.readSubscriptions(h.hub)

	return nil
}
