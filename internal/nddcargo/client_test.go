package nddcargo

import (
	"context"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func codificarUtf16(t *testing.T, conteudo string) []byte {
	t.Helper()
	corpo, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(conteudo))
	require.NoError(t, err)
	return corpo
}

func decodificarUtf16(t *testing.T, corpo []byte) string {
	t.Helper()
	decodificado, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(corpo)
	require.NoError(t, err)
	return string(decodificado)
}

func respostaSoap(sendResult string) string {
	return `<?xml version="1.0" encoding="utf-16"?>` +
		`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<s:Body><SendResponse xmlns="http://tempuri.org/">` +
		`<SendResult>` + sendResult + `</SendResult>` +
		`</SendResponse></s:Body></s:Envelope>`
}

func clientParaTeste(endpoint string) *Client {
	c := NewClient(endpoint, "12345678000190", "TOKEN-HOMOLOG", "", 5*time.Second)
	c.agora = func() time.Time {
		return time.Date(2026, 8, 10, 14, 30, 0, 0, fusoBrasil)
	}
	return c
}

func TestEnviarMontaRequisicaoCrossTalk(t *testing.T) {
	var recebido string
	var cabecalhos http.Header

	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cabecalhos = r.Header.Clone()
		corpo, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		recebido = decodificarUtf16(t, corpo)

		w.Header().Set("Content-Type", "text/xml; charset=utf-16")
		w.Write(codificarUtf16(t, respostaSoap(html.EscapeString(`<retEnvio><status>202</status></retEnvio>`))))
	}))
	defer servidor.Close()

	guid := "a1b2c3d4-0000-0000-0000-000000000001"
	resultado, err := clientParaTeste(servidor.URL).Enviar(context.Background(), ProcessCodeEmissaoVpo, `<operacaoValePedagio_envio>doc</operacaoValePedagio_envio>`, guid)
	require.NoError(t, err)

	assert.Equal(t, "text/xml; charset=utf-16", cabecalhos.Get("Content-Type"))
	assert.Equal(t, "http://tempuri.org/Send", cabecalhos.Get("SOAPAction"))
	assert.Equal(t, "text/xml", cabecalhos.Get("Accept"))

	assert.True(t, strings.HasPrefix(recebido, `<?xml version='1.0' encoding='utf-16'?>`))
	assert.Contains(t, recebido, "<ProcessCode>2019</ProcessCode>")
	assert.Contains(t, recebido, "<MessageType>100</MessageType>")
	assert.Contains(t, recebido, "<ExchangePattern>7</ExchangePattern>")
	assert.Contains(t, recebido, "<GUID>"+guid+"</GUID>")
	assert.Contains(t, recebido, "<DateTime>2026-08-10T14:30:00-03:00</DateTime>")
	assert.Contains(t, recebido, "<EnterpriseId>12345678000190</EnterpriseId>")
	assert.Contains(t, recebido, "<Token>TOKEN-HOMOLOG</Token>")
	assert.Contains(t, recebido, `<CrossTalk_Version_Body versao="4.2.12.0"/>`)
	assert.Contains(t, recebido, "<tem:rawData><![CDATA[<operacaoValePedagio_envio>doc</operacaoValePedagio_envio>]]></tem:rawData>")

	assert.Equal(t, `<retEnvio><status>202</status></retEnvio>`, resultado)
}

func TestConsultarResultadoUsaExchangePatternAssincrono(t *testing.T) {
	var recebido string

	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corpo, _ := io.ReadAll(r.Body)
		recebido = decodificarUtf16(t, corpo)
		w.Write(codificarUtf16(t, respostaSoap(html.EscapeString(respostaConcluida))))
	}))
	defer servidor.Close()

	resultado, err := clientParaTeste(servidor.URL).ConsultarResultado(context.Background(), ProcessCodeConsultaVpo, "guid-consulta")
	require.NoError(t, err)

	assert.Contains(t, recebido, "<ProcessCode>2028</ProcessCode>")
	assert.Contains(t, recebido, "<ExchangePattern>8</ExchangePattern>")
	// Consulta não reenvia o documento: rawData vazio.
	assert.Contains(t, recebido, "<tem:rawData><![CDATA[]]></tem:rawData>")

	assert.Equal(t, respostaConcluida, resultado)
}

func TestEnviarRespostaComCdata(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(codificarUtf16(t, respostaSoap(`<![CDATA[<retEnvio><status>200</status></retEnvio>]]>`)))
	}))
	defer servidor.Close()

	resultado, err := clientParaTeste(servidor.URL).Enviar(context.Background(), ProcessCodeEmissaoVpo, "<doc></doc>", "g")
	require.NoError(t, err)

	assert.Equal(t, `<retEnvio><status>200</status></retEnvio>`, resultado)
}

func TestEnviarErroHttp(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write(codificarUtf16(t, "Bad Gateway"))
	}))
	defer servidor.Close()

	_, err := clientParaTeste(servidor.URL).Enviar(context.Background(), ProcessCodeEmissaoVpo, "<doc></doc>", "g")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestEnviarSemSendResult(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(codificarUtf16(t, `<?xml version="1.0"?><Envelope><Body></Body></Envelope>`))
	}))
	defer servidor.Close()

	_, err := clientParaTeste(servidor.URL).Enviar(context.Background(), ProcessCodeEmissaoVpo, "<doc></doc>", "g")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SendResult não encontrado")
}

func TestEnviarContextoCancelado(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer servidor.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := clientParaTeste(servidor.URL).Enviar(ctx, ProcessCodeEmissaoVpo, "<doc></doc>", "g")

	require.Error(t, err)
}
