package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valepedagio/internal/emissao"
)

func TestHubFiltraPorCodpac(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	todos := &Client{Eventos: make(chan emissao.StatusEvento, 4)}
	soPacote := &Client{Eventos: make(chan emissao.StatusEvento, 4), Codpac: 4821}
	outroPacote := &Client{Eventos: make(chan emissao.StatusEvento, 4), Codpac: 9999}

	hub.Register <- todos
	hub.Register <- soPacote
	hub.Register <- outroPacote

	hub.Publicar(emissao.StatusEvento{Uuid: "abc", Codpac: 4821, Status: "completed"})

	select {
	case evento := <-todos.Eventos:
		assert.Equal(t, "completed", evento.Status)
	case <-time.After(time.Second):
		t.Fatal("cliente sem filtro não recebeu o evento")
	}

	select {
	case evento := <-soPacote.Eventos:
		assert.Equal(t, int64(4821), evento.Codpac)
	case <-time.After(time.Second):
		t.Fatal("cliente inscrito no pacote não recebeu o evento")
	}

	select {
	case <-outroPacote.Eventos:
		t.Fatal("cliente de outro pacote não deveria receber o evento")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubUnregisterFechaCanal(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	cl := &Client{Eventos: make(chan emissao.StatusEvento, 1)}
	hub.Register <- cl
	hub.Unregister <- cl

	require.Eventually(t, func() bool {
		select {
		case _, aberto := <-cl.Eventos:
			return !aberto
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
