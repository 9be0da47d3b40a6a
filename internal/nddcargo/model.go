package nddcargo

import "time"

// Waypoint é um ponto de parada da rota. Pontos sem código IBGE não podem
// ser roteirizados e são descartados pelos builders.
type Waypoint struct {
	Nome       string  `json:"nome"`
	CodigoIbge string  `json:"codigo_ibge"`
	Cep        string  `json:"cep,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Tipo       string  `json:"tipo,omitempty"`
}

type PracaPedagio struct {
	Codigo  string  `json:"codigo"`
	Nome    string  `json:"nome"`
	Rodovia string  `json:"rodovia,omitempty"`
	Km      float64 `json:"km,omitempty"`
	Valor   float64 `json:"valor"`
}

// DadosVpo reúne os campos do perfil consolidado que entram no layout
// operacaoValePedagio_envio 4.2.12.0.
type DadosVpo struct {
	Numero                 string
	CpfCnpj                string
	AnttRntrc              string
	AnttNome               string
	CondutorNome           string
	CondutorNomeMae        string
	CondutorRg             string
	CondutorDataNascimento time.Time
	EnderecoEstado         string
	EnderecoCidade         string
	EnderecoBairro         string
	EnderecoRua            string
	EnderecoNumero         string
	ContatoCelular         string
	Placa                  string
	VeiculoTipo            string
	VeiculoModelo          string
	Eixos                  int
	RotaNome               string
}

// IdentificacaoCancelamento identifica a operação a cancelar: por NDVP
// (número + código verificador) ou pelo par número/série interno.
type IdentificacaoCancelamento struct {
	Tipo           string // "ndvp" ou "ide"
	Numero         string
	CodVerificador string
	Serie          string
}

type StatusResposta int

const (
	EmProcessamento StatusResposta = iota
	Concluido
	Falha
)

func (s StatusResposta) String() string {
	switch s {
	case Concluido:
		return "concluido"
	case Falha:
		return "erro"
	default:
		return "processando"
	}
}

// RespostaNdd é o resultado classificado de uma resposta da NDD Cargo.
// Protocolo/Pracas/CustoTotal só são preenchidos em Concluido; Codigo e
// Mensagem acompanham Falha.
type RespostaNdd struct {
	Status       StatusResposta `json:"status"`
	Protocolo    string         `json:"protocolo,omitempty"`
	Pracas       []PracaPedagio `json:"pracas,omitempty"`
	CustoTotal   float64        `json:"custo_total,omitempty"`
	DistanciaKm  float64        `json:"distancia_km,omitempty"`
	TempoMinutos int            `json:"tempo_minutos,omitempty"`
	Codigo       int            `json:"codigo,omitempty"`
	Mensagem     string         `json:"mensagem,omitempty"`
}
