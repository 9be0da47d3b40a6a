package nddcargo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderDeTeste() *Builder {
	return NewBuilder("12345678000190", "TOKEN-HOMOLOG", "", "")
}

func dadosVpoDeTeste() DadosVpo {
	return DadosVpo{
		Numero:                 "48291",
		CpfCnpj:                "529.982.247-25",
		AnttRntrc:              "123456",
		CondutorNome:           "JOSE DA SILVA",
		CondutorNomeMae:        "MARIA DA SILVA",
		CondutorRg:             "123456789",
		CondutorDataNascimento: time.Date(1985, 6, 20, 0, 0, 0, 0, time.UTC),
		EnderecoEstado:         "SP",
		EnderecoCidade:         "REGISTRO",
		EnderecoBairro:         "CENTRO",
		EnderecoRua:            "RUA DAS FLORES",
		EnderecoNumero:         "120",
		ContatoCelular:         "(11) 98765-4321",
		Placa:                  "abc-1234",
		VeiculoTipo:            "Caminhão Truck",
		VeiculoModelo:          "VOLVO FH 540",
		Eixos:                  3,
		RotaNome:               "Registro x Curitiba",
	}
}

func waypointsDeTeste() []Waypoint {
	return []Waypoint{
		{Nome: "Registro", CodigoIbge: "3542602"},
		{Nome: "Curitiba", CodigoIbge: "4106902"},
	}
}

// A assinatura digital exige saída byte a byte determinística.
func TestMontarVpoEnvioDeterministico(t *testing.T) {
	b := builderDeTeste()
	guid := "a1b2c3d4-0000-0000-0000-000000000001"

	primeira := b.MontarVpoEnvio(guid, dadosVpoDeTeste(), waypointsDeTeste(), nil, "")
	segunda := b.MontarVpoEnvio(guid, dadosVpoDeTeste(), waypointsDeTeste(), nil, "")

	assert.Equal(t, primeira, segunda)
	assert.False(t, strings.HasPrefix(primeira, "<?xml"))
}

func TestMontarVpoEnvioEstrutura(t *testing.T) {
	b := builderDeTeste()
	guid := "a1b2c3d4-0000-0000-0000-000000000001"

	xml := b.MontarVpoEnvio(guid, dadosVpoDeTeste(), waypointsDeTeste(), nil, "")

	assert.Contains(t, xml, `<operacaoValePedagio_envio xmlns="http://www.nddigital.com.br/nddcargo" token="TOKEN-HOMOLOG" versao="4.2.12.0">`)
	assert.Contains(t, xml, `<infOperacaoValePedagio Id="`+guid+`" tipoPagamento="1">`)
	assert.Contains(t, xml, "<numero>48291</numero>")
	assert.Contains(t, xml, "<serie>1016</serie>")
	// ptEmissor vazio cai no CNPJ da empresa.
	assert.Contains(t, xml, "<ptEmissor>12345678000190</ptEmissor>")
	assert.Contains(t, xml, "<rntrc>000123456</rntrc>")
	assert.Contains(t, xml, "<cpfTransportador>52998224725</cpfTransportador>")
	assert.NotContains(t, xml, "<cnpjTransportador>")
	assert.Contains(t, xml, "<nomeCompleto>JOSE DA SILVA</nomeCompleto>")
	assert.Contains(t, xml, "<dataNascimento>1985-06-20</dataNascimento>")
	assert.Contains(t, xml, "<UF>SP</UF>")
	assert.Contains(t, xml, "<telefone>11987654321</telefone>")
	// Truck com 3 eixos: os eixos mandam.
	assert.Contains(t, xml, "<categoriaPedagio>6</categoriaPedagio>")
	assert.Contains(t, xml, "<rotaERP>Registro x Curitiba</rotaERP>")
	assert.Contains(t, xml, "<codigoIBGE>3542602</codigoIBGE>")
	assert.Contains(t, xml, "<utilizarRoteirizador>2</utilizarRoteirizador>")
	assert.Contains(t, xml, "<placa>ABC1234</placa>")
	assert.Contains(t, xml, "<tipo>1</tipo>")
	assert.Contains(t, xml, "<RNTRCTransportador>000123456</RNTRCTransportador>")
	assert.NotContains(t, xml, "<pedagios>")
	assert.NotContains(t, xml, "<informacoesTag>")
}

func TestMontarVpoEnvioCnpjTransportador(t *testing.T) {
	dados := dadosVpoDeTeste()
	dados.CpfCnpj = "04.252.011/0001-10"

	xml := builderDeTeste().MontarVpoEnvio("g", dados, waypointsDeTeste(), nil, "")

	assert.Contains(t, xml, "<cnpjTransportador>04252011000110</cnpjTransportador>")
	assert.NotContains(t, xml, "<cpfTransportador>")
}

func TestMontarVpoEnvioDefaultsTac(t *testing.T) {
	dados := dadosVpoDeTeste()
	dados.CondutorNome = ""
	dados.AnttNome = ""
	dados.CondutorNomeMae = ""
	dados.CondutorRg = ""
	dados.CondutorDataNascimento = time.Time{}
	dados.EnderecoEstado = ""
	dados.EnderecoCidade = ""
	dados.EnderecoBairro = ""
	dados.EnderecoRua = ""
	dados.EnderecoNumero = ""
	dados.VeiculoModelo = ""

	xml := builderDeTeste().MontarVpoEnvio("g", dados, waypointsDeTeste(), nil, "")

	assert.Contains(t, xml, "<nomeCompleto>NAO INFORMADO</nomeCompleto>")
	assert.Contains(t, xml, "<nomeMae>NAO INFORMADA</nomeMae>")
	assert.Contains(t, xml, "<dataNascimento>1980-01-01</dataNascimento>")
	assert.Contains(t, xml, "<identidade>000000000</identidade>")
	assert.Contains(t, xml, "<endereco><UF>SP</UF><cidade>NAO INFORMADO</cidade><bairro>CENTRO</bairro><logradouro>NAO INFORMADO</logradouro><numero>0</numero></endereco>")
	assert.Contains(t, xml, "<modelo>CAMINHAO</modelo>")
}

func TestMontarVpoEnvioDescartaWaypointSemIbge(t *testing.T) {
	waypoints := []Waypoint{
		{Nome: "Registro", CodigoIbge: "3542602"},
		{Nome: "Sem cadastro", CodigoIbge: ""},
		{Nome: "Curitiba", CodigoIbge: "4106902"},
	}

	xml := builderDeTeste().MontarVpoEnvio("g", dadosVpoDeTeste(), waypoints, nil, "")

	assert.Equal(t, 2, strings.Count(xml, "<pontoParada>"))
}

func TestMontarVpoEnvioComPracasETag(t *testing.T) {
	pracas := []PracaPedagio{
		{Codigo: "101", Nome: "Jacupiranga", Valor: 14.8},
		{Codigo: "102", Valor: 7.5},
	}

	xml := builderDeTeste().MontarVpoEnvio("g", dadosVpoDeTeste(), waypointsDeTeste(), pracas, "TAG00123")

	assert.Contains(t, xml, "<pedagio><cnp>101</cnp><nomePraca>Jacupiranga</nomePraca><valorPraca>14.80</valorPraca></pedagio>")
	// Praça sem nome ganha um nome derivado do código.
	assert.Contains(t, xml, "<nomePraca>Praca 102</nomePraca>")
	assert.Contains(t, xml, "<valorPraca>7.50</valorPraca>")
	assert.Contains(t, xml, "<informacoesTag><codigoFornecedor>2</codigoFornecedor><codigoTag>TAG00123</codigoTag></informacoesTag>")
}

// Nome de rota acima de 30 caracteres é trocado pelo par IBGE origem/destino.
func TestNomeRotaErpLongo(t *testing.T) {
	dados := dadosVpoDeTeste()
	dados.RotaNome = "Rota muito comprida que estoura o limite do campo rotaERP"

	xml := builderDeTeste().MontarVpoEnvio("g", dados, waypointsDeTeste(), nil, "")

	assert.Contains(t, xml, "<rotaERP>3542602 x 4106902</rotaERP>")
}

func TestMontarRoteirizadorEnvio(t *testing.T) {
	waypoints := []Waypoint{
		{Nome: "Registro", CodigoIbge: "3542602"},
		{Nome: "Só CEP", Cep: "83200-000"},
		{Nome: "Inútil"},
	}

	xml := builderDeTeste().MontarRoteirizadorEnvio("guid-rot", waypoints, 6)

	assert.Contains(t, xml, `<consultarRoteirizador_envio xmlns="http://www.nddigital.com.br/nddcargo" token="TOKEN-HOMOLOG" versao="4.2.12.0">`)
	// O atributo do roteirizador é ID maiúsculo, diferente do Id da emissão.
	assert.Contains(t, xml, `<infConsultarRoteirizador ID="guid-rot">`)
	assert.Contains(t, xml, "<cnpjContratante>12345678000190</cnpjContratante>")
	assert.Contains(t, xml, "<categoriaPedagio>6</categoriaPedagio>")
	assert.Contains(t, xml, "<pontoParada><codigoIBGE>3542602</codigoIBGE></pontoParada>")
	assert.Contains(t, xml, "<pontoParada><cep>83200000</cep></pontoParada>")
	assert.Equal(t, 2, strings.Count(xml, "<pontoParada>"))
	assert.Contains(t, xml, "<configuracaoRoteirizador><evitarPedagios>0</evitarPedagios><priorizarRodovias>1</priorizarRodovias><tipoRota>1</tipoRota><tipoVeiculo>2</tipoVeiculo><retornarTrecho>1</retornarTrecho></configuracaoRoteirizador>")
}

func TestMontarCancelamentoPorNdvp(t *testing.T) {
	ident := IdentificacaoCancelamento{Tipo: "ndvp", Numero: "3510.0001.2345", CodVerificador: "99"}

	xml := builderDeTeste().MontarCancelamentoEnvio("guid-canc", ident, "Emitido em duplicidade")

	assert.Contains(t, xml, `<infCancelarOperacaoValePedagio Id="guid-canc">`)
	assert.Contains(t, xml, "<ndvp><numero>351000012345</numero><ndvpCodVerificador>99</ndvpCodVerificador></ndvp>")
	assert.NotContains(t, xml, "<ide>")
	assert.Contains(t, xml, "<motivoCancelamento>Emitido em duplicidade</motivoCancelamento>")
}

func TestMontarCancelamentoPorIde(t *testing.T) {
	ident := IdentificacaoCancelamento{Tipo: "ide", Numero: "48291"}

	xml := builderDeTeste().MontarCancelamentoEnvio("guid-canc", ident, "")

	assert.Contains(t, xml, "<ide><numero>48291</numero><serie>1016</serie></ide>")
	assert.Contains(t, xml, "<motivoCancelamento>Cancelamento solicitado pelo usuário</motivoCancelamento>")
}

func TestMontarCancelamentoMotivoTruncado(t *testing.T) {
	motivo := strings.Repeat("á", 600)

	xml := builderDeTeste().MontarCancelamentoEnvio("g", IdentificacaoCancelamento{Tipo: "ide", Numero: "1"}, motivo)

	inicio := strings.Index(xml, "<motivoCancelamento>") + len("<motivoCancelamento>")
	fim := strings.Index(xml, "</motivoCancelamento>")
	require.Greater(t, fim, inicio)
	assert.Equal(t, 500, len([]rune(xml[inicio:fim])))
}

func TestCategoriaPedagioPorEixos(t *testing.T) {
	assert.Equal(t, 5, CategoriaPedagioPorEixos(2))
	assert.Equal(t, 6, CategoriaPedagioPorEixos(3))
	assert.Equal(t, 6, CategoriaPedagioPorEixos(5))
	assert.Equal(t, 7, CategoriaPedagioPorEixos(6))
}

func TestCategoriaPedagioPorTipo(t *testing.T) {
	assert.Equal(t, 1, CategoriaPedagioPorTipo("Motocicleta"))
	assert.Equal(t, 2, CategoriaPedagioPorTipo("Automóvel"))
	assert.Equal(t, 3, CategoriaPedagioPorTipo("Caminhão Truck"))
	assert.Equal(t, 3, CategoriaPedagioPorTipo("Caminhão 3/4"))
	assert.Equal(t, 4, CategoriaPedagioPorTipo("Caminhão Toco"))
	assert.Equal(t, 6, CategoriaPedagioPorTipo("Carreta"))
	assert.Equal(t, 5, CategoriaPedagioPorTipo("outro qualquer"))
}

func TestTipoVeiculoNdd(t *testing.T) {
	assert.Equal(t, "2", TipoVeiculoNdd("Semi-reboque"))
	assert.Equal(t, "2", TipoVeiculoNdd("Carreta"))
	assert.Equal(t, "1", TipoVeiculoNdd("Caminhão Truck"))
	assert.Equal(t, "1", TipoVeiculoNdd(""))
}
