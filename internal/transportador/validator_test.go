package transportador

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agora = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func dadosCompletos() DadosVpo {
	return DadosVpo{
		Codtrn:      100,
		Numpla:      "ABC1234",
		Flgautonomo: true,

		CpfCnpj:                "52998224725",
		AnttRntrc:              "123456789",
		AnttNome:               "JOSE DA SILVA",
		AnttValidade:           time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
		AnttStatus:             "Ativo",
		Placa:                  "ABC1234",
		VeiculoTipo:            "Caminhão Truck",
		VeiculoModelo:          "VOLVO FH 540",
		CondutorRg:             "112223334",
		CondutorNome:           "JOSE DA SILVA",
		CondutorSexo:           "M",
		CondutorNomeMae:        "MARIA DA SILVA",
		CondutorDataNascimento: time.Date(1975, 6, 20, 0, 0, 0, 0, time.UTC),
		EnderecoRua:            "RUA DAS FLORES, 100",
		EnderecoBairro:         "CENTRO",
		EnderecoCidade:         "SAO PAULO",
		EnderecoEstado:         "SP",
		ContatoCelular:         "11987654321",
		ContatoEmail:           "jose@exemplo.com.br",
	}
}

func TestValidarCompletudeCompleto(t *testing.T) {
	relatorio := ValidarCompletude(dadosCompletos(), agora, agora)

	assert.True(t, relatorio.Completo)
	assert.Empty(t, relatorio.Faltantes)
	assert.Empty(t, relatorio.Avisos)
	assert.Equal(t, int32(100), CalcularScoreQualidade(dadosCompletos(), agora, agora))
}

func TestValidarCompletudeFaltantes(t *testing.T) {
	dados := dadosCompletos()
	dados.CpfCnpj = ""
	dados.ContatoEmail = ""

	relatorio := ValidarCompletude(dados, agora, agora)

	assert.False(t, relatorio.Completo)
	require.Len(t, relatorio.Faltantes, 2)
	assert.Equal(t, "cpf_cnpj", relatorio.Faltantes[0].Campo)
	assert.Equal(t, CategoriaTransportador, relatorio.Faltantes[0].Categoria)
	assert.Equal(t, "contato_email", relatorio.Faltantes[1].Campo)
	assert.Equal(t, CategoriaContato, relatorio.Faltantes[1].Categoria)

	assert.Equal(t, int32(80), CalcularScoreQualidade(dados, agora, agora))
}

func TestValidarCompletudeVeiculoModeloObrigatorio(t *testing.T) {
	dados := dadosCompletos()
	dados.VeiculoModelo = ""

	relatorio := ValidarCompletude(dados, agora, agora)
	assert.False(t, relatorio.Completo)
	require.Len(t, relatorio.Faltantes, 1)
	assert.Equal(t, "veiculo_modelo", relatorio.Faltantes[0].Campo)
	assert.Equal(t, CategoriaVeiculo, relatorio.Faltantes[0].Categoria)
	assert.Equal(t, int32(95), CalcularScoreQualidade(dados, agora, agora))
}

func TestValidarCompletudeCamposComplementares(t *testing.T) {
	dados := dadosCompletos()
	dados.AnttValidade = time.Time{}
	dados.AnttStatus = ""
	dados.CondutorSexo = ""
	dados.EnderecoBairro = ""

	relatorio := ValidarCompletude(dados, agora, agora)
	assert.False(t, relatorio.Completo)
	require.Len(t, relatorio.Faltantes, 4)
	assert.Equal(t, "antt_validade", relatorio.Faltantes[0].Campo)
	assert.Equal(t, "antt_status", relatorio.Faltantes[1].Campo)
	assert.Equal(t, "condutor_sexo", relatorio.Faltantes[2].Campo)
	assert.Equal(t, "endereco_bairro", relatorio.Faltantes[3].Campo)
	assert.Equal(t, int32(80), CalcularScoreQualidade(dados, agora, agora))
}

func TestValidarCompletudeRntrcVencido(t *testing.T) {
	dados := dadosCompletos()
	dados.AnttValidade = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	relatorio := ValidarCompletude(dados, agora, agora)
	require.Len(t, relatorio.Avisos, 1)
	assert.Equal(t, "RNTRC vencido em 10/01/2026", relatorio.Avisos[0])
	assert.Equal(t, int32(80), CalcularScoreQualidade(dados, agora, agora))
}

func TestValidarCompletudeSituacaoAntt(t *testing.T) {
	dados := dadosCompletos()
	dados.AnttStatus = "Suspenso"

	relatorio := ValidarCompletude(dados, agora, agora)
	require.Len(t, relatorio.Avisos, 1)
	assert.Equal(t, "Situação ANTT: Suspenso", relatorio.Avisos[0])
	assert.Equal(t, int32(70), CalcularScoreQualidade(dados, agora, agora))
}

func TestValidarCompletudeSyncAntiga(t *testing.T) {
	dados := dadosCompletos()
	ultimaSync := agora.Add(-8 * 24 * time.Hour)

	relatorio := ValidarCompletude(dados, ultimaSync, agora)
	require.Len(t, relatorio.Avisos, 1)
	assert.Equal(t, "Dados sem sincronização há mais de 7 dias", relatorio.Avisos[0])
	assert.Equal(t, int32(90), CalcularScoreQualidade(dados, ultimaSync, agora))
}

func TestCalcularScorePisoZero(t *testing.T) {
	assert.Equal(t, int32(0), CalcularScoreQualidade(DadosVpo{}, agora, agora))
}

func TestFormatPlaca(t *testing.T) {
	assert.Equal(t, "ABC1234", FormatPlaca("abc-1234"))
	assert.Equal(t, "ABC1D23", FormatPlaca(" abc1d23 "))
	assert.Equal(t, "", FormatPlaca(""))
}

func TestFormatTelefone(t *testing.T) {
	assert.Equal(t, "11987654321", FormatTelefone("11", "87654321"))
	assert.Equal(t, "11987654321", FormatTelefone("11", "987654321"))
	assert.Equal(t, "", FormatTelefone("", ""))
}

func TestFormatEndereco(t *testing.T) {
	assert.Equal(t, "RUA DAS FLORES, 100", FormatEndereco("RUA DAS FLORES", "100"))
	assert.Equal(t, "RUA DAS FLORES", FormatEndereco("RUA DAS FLORES", "0"))
	assert.Equal(t, "RUA DAS FLORES", FormatEndereco("RUA DAS FLORES", ""))
}
