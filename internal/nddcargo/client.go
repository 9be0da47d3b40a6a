package nddcargo

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
)

// ProcessCodes do protocolo CrossTalk.
const (
	ProcessCodeEmissaoVpo   = 2019
	ProcessCodeCancelamento = 2020
	ProcessCodeRoteirizador = 2027
	ProcessCodeConsultaVpo  = 2028
)

const (
	messageTypeRequest        = 100
	exchangePatternSync       = 7
	exchangePatternAsyncQuery = 8

	nsSoap    = "http://schemas.xmlsoap.org/soap/envelope/"
	nsTempuri = "http://tempuri.org/"
	nsXsd     = "http://www.w3.org/2001/XMLSchema"
	nsXsi     = "http://www.w3.org/2001/XMLSchema-instance"
)

var fusoBrasil = func() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("-03", -3*60*60)
}()

// Client fala o protocolo proprietário CrossTalk da NDD Cargo sobre SOAP
// 1.1. O corpo vai em UTF-16LE (exigência da API, não UTF-8), com a
// mensagem CrossTalk e o XML de negócio assinado encapsulados em CDATA.
// O cliente não interpreta a resposta de negócio: devolve o SendResult
// bruto para o classificador.
type Client struct {
	EndpointURL  string
	CnpjEmpresa  string
	Token        string
	VersaoLayout string
	HTTPClient   *http.Client

	agora func() time.Time
}

func NewClient(endpointURL, cnpjEmpresa, token, versaoLayout string, timeout time.Duration) *Client {
	if versaoLayout == "" {
		versaoLayout = VersaoLayoutPadrao
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		EndpointURL:  endpointURL,
		CnpjEmpresa:  cnpjEmpresa,
		Token:        token,
		VersaoLayout: versaoLayout,
		HTTPClient:   &http.Client{Timeout: timeout},
		agora:        time.Now,
	}
}

// Enviar submete um XML de negócio assinado (ExchangePattern 7, síncrono)
// e devolve o SendResult bruto. O processCode distingue o fluxo: 2019
// emissão de VPO, 2027 roteirizador, 2020 cancelamento.
func (c *Client) Enviar(ctx context.Context, processCode int, xmlAssinado, guid string) (string, error) {
	message := c.montarCrossTalkMessage(processCode, exchangePatternSync, guid)
	envelope := montarEnvelopeSoap(message, xmlAssinado)
	return c.enviarSoap(ctx, envelope)
}

// ConsultarResultado consulta o andamento de uma operação assíncrona
// (ExchangePattern 8, rawData vazio) pelo GUID original. O processCode é
// sempre explícito: a consulta de VPO (2028) não é inferível do GUID.
func (c *Client) ConsultarResultado(ctx context.Context, processCode int, guid string) (string, error) {
	message := c.montarCrossTalkMessage(processCode, exchangePatternAsyncQuery, guid)
	envelope := montarEnvelopeSoap(message, "")
	return c.enviarSoap(ctx, envelope)
}

func (c *Client) montarCrossTalkMessage(processCode, exchangePattern int, guid string) string {
	dateTime := c.agora().In(fusoBrasil).Format("2006-01-02T15:04:05-07:00")

	var sb strings.Builder
	sb.WriteString(`<CrossTalk_Message xmlns:xsd="` + nsXsd + `" xmlns:xsi="` + nsXsi + `" xmlns="` + NsNddCargo + `">`)
	sb.WriteString("<CrossTalk_Header>")
	sb.WriteString("<ProcessCode>" + strconv.Itoa(processCode) + "</ProcessCode>")
	sb.WriteString("<MessageType>" + strconv.Itoa(messageTypeRequest) + "</MessageType>")
	sb.WriteString("<ExchangePattern>" + strconv.Itoa(exchangePattern) + "</ExchangePattern>")
	sb.WriteString("<GUID>" + guid + "</GUID>")
	sb.WriteString("<DateTime>" + dateTime + "</DateTime>")
	sb.WriteString("<EnterpriseId>" + c.CnpjEmpresa + "</EnterpriseId>")
	sb.WriteString("<Token>" + c.Token + "</Token>")
	sb.WriteString("</CrossTalk_Header>")
	sb.WriteString("<CrossTalk_Body>")
	sb.WriteString(`<CrossTalk_Version_Body versao="` + c.VersaoLayout + `"/>`)
	sb.WriteString("</CrossTalk_Body>")
	sb.WriteString("</CrossTalk_Message>")
	return sb.String()
}

func montarEnvelopeSoap(crossTalkMessage, rawData string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version='1.0' encoding='utf-16'?>`)
	sb.WriteString(`<soapenv:Envelope xmlns:soapenv="` + nsSoap + `" xmlns:tem="` + nsTempuri + `">`)
	sb.WriteString("<soapenv:Header/>")
	sb.WriteString("<soapenv:Body>")
	sb.WriteString("<tem:Send>")
	sb.WriteString("<tem:message><![CDATA[" + escapeCdata(crossTalkMessage) + "]]></tem:message>")
	sb.WriteString("<tem:rawData><![CDATA[" + escapeCdata(rawData) + "]]></tem:rawData>")
	sb.WriteString("</tem:Send>")
	sb.WriteString("</soapenv:Body>")
	sb.WriteString("</soapenv:Envelope>")
	return sb.String()
}

// CDATA aninhado não é permitido em XML.
func escapeCdata(content string) string {
	content = strings.ReplaceAll(content, "<![CDATA[", "")
	return strings.ReplaceAll(content, "]]>", "")
}

func (c *Client) enviarSoap(ctx context.Context, envelope string) (string, error) {
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

	corpo, err := utf16le.NewEncoder().Bytes([]byte(envelope))
	if err != nil {
		return "", fmt.Errorf("erro ao converter envelope para UTF-16: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.EndpointURL, bytes.NewReader(corpo))
	if err != nil {
		return "", fmt.Errorf("erro ao montar requisição SOAP: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-16")
	req.Header.Set("SOAPAction", "http://tempuri.org/Send")
	req.Header.Set("Accept", "text/xml")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na comunicação com NDD Cargo: %w", err)
	}
	defer resp.Body.Close()

	corpoResposta, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta SOAP: %w", err)
	}

	decodificado, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(corpoResposta)
	if err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta UTF-16: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(decodificado)))
	}

	return extrairSendResult(string(decodificado))
}

// extrairSendResult busca o conteúdo de SendResult no envelope de
// resposta. O valor pode vir entity-escaped ou em CDATA; o decoder trata
// os dois casos.
func extrairSendResult(soapResponse string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(soapResponse))
	// O corpo já foi decodificado para UTF-8, mas a declaração ainda diz
	// utf-16; sem CharsetReader o decoder rejeitaria o documento.
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("erro ao interpretar envelope SOAP: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "SendResult" {
			continue
		}

		var conteudo struct {
			Valor string `xml:",chardata"`
		}
		if err := decoder.DecodeElement(&conteudo, &se); err != nil {
			return "", fmt.Errorf("erro ao ler SendResult: %w", err)
		}
		return strings.TrimSpace(escapeCdata(conteudo.Valor)), nil
	}
	return "", fmt.Errorf("SendResult não encontrado na resposta SOAP")
}
