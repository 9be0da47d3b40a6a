package nddcargo

import (
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const respostaConcluida = `<retEnvio versao="4.2.12.0">` +
	`<status>200</status>` +
	`<protocolo>351000012345</protocolo>` +
	`<pracas>` +
	`<praca><codigo>101</codigo><nome>Jacupiranga</nome><rodovia>BR-116</rodovia><km>512.3</km><valor>14.80</valor></praca>` +
	`<praca><codigo>102</codigo><nome>Registro</nome><rodovia>BR-116</rodovia><km>445.1</km><valor>14.80</valor></praca>` +
	`</pracas>` +
	`<distancia>432.5</distancia>` +
	`<tempo>380</tempo>` +
	`<valorTotal>29.60</valorTotal>` +
	`</retEnvio>`

func TestClassificarConcluido(t *testing.T) {
	resposta := Classificar(respostaConcluida)

	assert.Equal(t, Concluido, resposta.Status)
	assert.Equal(t, "351000012345", resposta.Protocolo)
	require.Len(t, resposta.Pracas, 2)
	assert.Equal(t, "101", resposta.Pracas[0].Codigo)
	assert.Equal(t, "Jacupiranga", resposta.Pracas[0].Nome)
	assert.Equal(t, "BR-116", resposta.Pracas[0].Rodovia)
	assert.InDelta(t, 512.3, resposta.Pracas[0].Km, 0.001)
	assert.InDelta(t, 14.80, resposta.Pracas[0].Valor, 0.001)
	assert.InDelta(t, 29.60, resposta.CustoTotal, 0.001)
	assert.InDelta(t, 432.5, resposta.DistanciaKm, 0.001)
	assert.Equal(t, 380, resposta.TempoMinutos)
}

// A NDD devolve o mesmo XML ora puro, ora entity-escaped dentro do campo
// string do SOAP. As duas formas precisam classificar idêntico.
func TestClassificarEntidadesHtmlEquivalente(t *testing.T) {
	pura := Classificar(respostaConcluida)
	escapada := Classificar(html.EscapeString(respostaConcluida))

	assert.Equal(t, pura, escapada)
}

func TestClassificarEmProcessamento(t *testing.T) {
	resposta := Classificar(`<retEnvio><status>202</status></retEnvio>`)

	assert.Equal(t, EmProcessamento, resposta.Status)
	assert.Equal(t, 202, resposta.Codigo)
}

func TestClassificarRespostaVazia(t *testing.T) {
	assert.Equal(t, EmProcessamento, Classificar("").Status)
	assert.Equal(t, EmProcessamento, Classificar("   \n\t").Status)
	assert.Equal(t, EmProcessamento, Classificar(`<retEnvio></retEnvio>`).Status)
}

// Erro 778 embutido na lista de ocorrências vence o contêiner de sucesso.
func TestClassificarErroConhecidoVenceSucesso(t *testing.T) {
	raw := `<retEnvio>` +
		`<status>200</status>` +
		`<protocolo>351000099999</protocolo>` +
		`<ocorrencias>` +
		`<ocorrencia><tipo>Erro</tipo><codigo>778</codigo><descricao>Veículo sem tag habilitada</descricao></ocorrencia>` +
		`</ocorrencias>` +
		`</retEnvio>`

	resposta := Classificar(raw)

	assert.Equal(t, Falha, resposta.Status)
	assert.Equal(t, 778, resposta.Codigo)
	assert.Equal(t, "[Erro] Veículo sem tag habilitada", resposta.Mensagem)
}

func TestClassificarFalhaPorCodigo(t *testing.T) {
	raw := `<retEnvio>` +
		`<status>500</status>` +
		`<mensagem>Não foi possível emitir a Operação de Vale-Pedágio</mensagem>` +
		`</retEnvio>`

	resposta := Classificar(raw)

	assert.Equal(t, Falha, resposta.Status)
	assert.Equal(t, 500, resposta.Codigo)
	assert.Contains(t, resposta.Mensagem, "Não foi possível emitir a Operação de Vale-Pedágio")
}

func TestClassificarFraseDeFalhaSemCodigo(t *testing.T) {
	raw := `<retEnvio>` +
		`<protocolo>351000012345</protocolo>` +
		`<mensagem>Não foi possível emitir a Operação de Vale-Pedágio: saldo insuficiente</mensagem>` +
		`</retEnvio>`

	resposta := Classificar(raw)

	assert.Equal(t, Falha, resposta.Status)
}

// XML quebrado cai na extração por regex.
func TestClassificarXmlMalformado(t *testing.T) {
	raw := `<retEnvio <status>500</status><mensagem>Não foi possível emitir a Operação de Vale-Pedágio</mensagem>`

	resposta := Classificar(raw)

	assert.Equal(t, Falha, resposta.Status)
	assert.Equal(t, 500, resposta.Codigo)
}

func TestClassificarRegexExtraiPracas(t *testing.T) {
	raw := `lixo antes <retEnvio <protocolo>351000054321</protocolo>` +
		`<praca><cnp>12345678000190</cnp><nomePraca>Rondon</nomePraca><valorPraca>8,40</valorPraca></praca>`

	resposta := Classificar(raw)

	assert.Equal(t, Concluido, resposta.Status)
	assert.Equal(t, "351000054321", resposta.Protocolo)
	require.Len(t, resposta.Pracas, 1)
	assert.Equal(t, "12345678000190", resposta.Pracas[0].Codigo)
	assert.Equal(t, "Rondon", resposta.Pracas[0].Nome)
	assert.InDelta(t, 8.40, resposta.Pracas[0].Valor, 0.001)
	assert.InDelta(t, 8.40, resposta.CustoTotal, 0.001)
}

func TestClassificarMensagensDeduplicadas(t *testing.T) {
	raw := `<retEnvio>` +
		`<status>500</status>` +
		`<ocorrencias>` +
		`<ocorrencia><tipo>Erro</tipo><codigo>901</codigo><descricao>Rota inválida</descricao></ocorrencia>` +
		`<ocorrencia><tipo>Erro</tipo><codigo>901</codigo><descricao>Rota inválida</descricao></ocorrencia>` +
		`<ocorrencia><tipo>Informacao</tipo><codigo>10</codigo><descricao>Operação registrada para auditoria</descricao></ocorrencia>` +
		`</ocorrencias>` +
		`</retEnvio>`

	resposta := Classificar(raw)

	assert.Equal(t, Falha, resposta.Status)
	assert.Equal(t, "[Erro] Rota inválida; [Info] Operação registrada para auditoria", resposta.Mensagem)
}

// Sem valorTotal o custo vem da soma das praças.
func TestClassificarCustoSomaPracas(t *testing.T) {
	raw := `<retEnvio>` +
		`<protocolo>351000011111</protocolo>` +
		`<pracas>` +
		`<praca><codigo>1</codigo><nome>A</nome><valor>10.50</valor></praca>` +
		`<praca><codigo>2</codigo><nome>B</nome><valor>4.25</valor></praca>` +
		`</pracas>` +
		`</retEnvio>`

	resposta := Classificar(raw)

	assert.Equal(t, Concluido, resposta.Status)
	assert.InDelta(t, 14.75, resposta.CustoTotal, 0.001)
}

func TestClassificarCodigoZeroExplicito(t *testing.T) {
	resposta := Classificar(`<retEnvio><status>0</status><mensagem>rejeitado</mensagem></retEnvio>`)

	assert.Equal(t, Falha, resposta.Status)
}
