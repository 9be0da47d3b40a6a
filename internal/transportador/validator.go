package transportador

import (
	"time"
)

// Categorias do layout VPO.
const (
	CategoriaTransportador = "Transportador"
	CategoriaVeiculo       = "Veículo"
	CategoriaCondutor      = "Condutor"
	CategoriaEndereco      = "Endereço"
	CategoriaContato       = "Contato"
)

const diasValidadeSync = 7

type CampoFaltante struct {
	Campo     string `json:"campo"`
	Categoria string `json:"categoria"`
}

type RelatorioCompletude struct {
	Completo  bool            `json:"completo"`
	Faltantes []CampoFaltante `json:"faltantes"`
	Avisos    []string        `json:"avisos"`
}

type campoObrigatorio struct {
	nome      string
	categoria string
	peso      int
	presente  func(d DadosVpo) bool
}

// Os 19 campos obrigatórios do layout, em ordem fixa de categoria. A ordem
// importa: o relatório de pendências é apresentado ao operador nessa sequência.
var camposObrigatorios = []campoObrigatorio{
	{"cpf_cnpj", CategoriaTransportador, 10, func(d DadosVpo) bool { return d.CpfCnpj != "" }},
	{"antt_rntrc", CategoriaTransportador, 10, func(d DadosVpo) bool { return d.AnttRntrc != "" }},
	{"antt_nome", CategoriaTransportador, 10, func(d DadosVpo) bool { return d.AnttNome != "" }},
	{"antt_validade", CategoriaTransportador, 5, func(d DadosVpo) bool { return !d.AnttValidade.IsZero() }},
	{"antt_status", CategoriaTransportador, 5, func(d DadosVpo) bool { return d.AnttStatus != "" }},
	{"placa", CategoriaVeiculo, 10, func(d DadosVpo) bool { return d.Placa != "" }},
	{"veiculo_tipo", CategoriaVeiculo, 10, func(d DadosVpo) bool { return d.VeiculoTipo != "" }},
	{"veiculo_modelo", CategoriaVeiculo, 5, func(d DadosVpo) bool { return d.VeiculoModelo != "" }},
	{"condutor_rg", CategoriaCondutor, 10, func(d DadosVpo) bool { return d.CondutorRg != "" }},
	{"condutor_nome", CategoriaCondutor, 10, func(d DadosVpo) bool { return d.CondutorNome != "" }},
	{"condutor_sexo", CategoriaCondutor, 5, func(d DadosVpo) bool { return d.CondutorSexo != "" }},
	{"condutor_nome_mae", CategoriaCondutor, 10, func(d DadosVpo) bool { return d.CondutorNomeMae != "" }},
	{"condutor_data_nascimento", CategoriaCondutor, 10, func(d DadosVpo) bool { return !d.CondutorDataNascimento.IsZero() }},
	{"endereco_rua", CategoriaEndereco, 10, func(d DadosVpo) bool { return d.EnderecoRua != "" }},
	{"endereco_bairro", CategoriaEndereco, 5, func(d DadosVpo) bool { return d.EnderecoBairro != "" }},
	{"endereco_cidade", CategoriaEndereco, 10, func(d DadosVpo) bool { return d.EnderecoCidade != "" }},
	{"endereco_estado", CategoriaEndereco, 10, func(d DadosVpo) bool { return d.EnderecoEstado != "" }},
	{"contato_celular", CategoriaContato, 10, func(d DadosVpo) bool { return d.ContatoCelular != "" }},
	{"contato_email", CategoriaContato, 10, func(d DadosVpo) bool { return d.ContatoEmail != "" }},
}

// ValidarCompletude verifica o perfil contra o esquema obrigatório e produz
// o relatório categorizado de pendências que o frontend exibe ao operador.
func ValidarCompletude(d DadosVpo, ultimaSync time.Time, agora time.Time) RelatorioCompletude {
	relatorio := RelatorioCompletude{
		Faltantes: []CampoFaltante{},
		Avisos:    []string{},
	}

	for _, campo := range camposObrigatorios {
		if !campo.presente(d) {
			relatorio.Faltantes = append(relatorio.Faltantes, CampoFaltante{
				Campo:     campo.nome,
				Categoria: campo.categoria,
			})
		}
	}

	if !d.AnttValidade.IsZero() && d.AnttValidade.Before(agora) {
		relatorio.Avisos = append(relatorio.Avisos, "RNTRC vencido em "+d.AnttValidade.Format("02/01/2006"))
	}

	if d.AnttStatus != "" && d.AnttStatus != "Ativo" {
		relatorio.Avisos = append(relatorio.Avisos, "Situação ANTT: "+d.AnttStatus)
	}

	if !ultimaSync.IsZero() && agora.Sub(ultimaSync) > diasValidadeSync*24*time.Hour {
		relatorio.Avisos = append(relatorio.Avisos, "Dados sem sincronização há mais de 7 dias")
	}

	relatorio.Completo = len(relatorio.Faltantes) == 0

	return relatorio
}

// CalcularScoreQualidade pontua o perfil de 0 a 100. O cálculo é
// determinístico: mesma entrada, mesmo score.
func CalcularScoreQualidade(d DadosVpo, ultimaSync time.Time, agora time.Time) int32 {
	score := 100

	for _, campo := range camposObrigatorios {
		if !campo.presente(d) {
			score -= campo.peso
		}
	}

	if !d.AnttValidade.IsZero() && d.AnttValidade.Before(agora) {
		score -= 20
	}

	if d.AnttStatus != "" && d.AnttStatus != "Ativo" {
		score -= 30
	}

	if !ultimaSync.IsZero() && agora.Sub(ultimaSync) > diasValidadeSync*24*time.Hour {
		score -= 10
	}

	if score < 0 {
		score = 0
	}

	return int32(score)
}
