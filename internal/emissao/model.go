package emissao

import (
	"database/sql"
	"encoding/json"
	"time"

	db "valepedagio/db/sqlc"
	"valepedagio/internal/nddcargo"
	"valepedagio/internal/pracas"
	"valepedagio/internal/transportador"
	"valepedagio/validation"
)

// Estados da emissão. As transições são monotônicas: pending →
// processing → {completed|failed|cancelled}; estados terminais só mudam
// por retry explícito a partir de failed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

const (
	ErroTimeout             = "TIMEOUT"
	ErroLimitePolling       = "POLLING_LIMIT"
	ErroNddCargo            = "NDD_CARGO_ERROR"
	ErroCertificado         = "CERTIFICATE_ERROR"
	ErroComunicacao         = "TRANSPORT_ERROR"
	ErroValidacaoIncompleta = "VALIDACAO_INCOMPLETA"
)

type IniciarEmissaoRequest struct {
	Codpac int64 `json:"codpac" validate:"required"`

	// Opcionais: sem eles a chave do pacote decide.
	Codmot int64  `json:"codmot"`
	Placa  string `json:"placa"`
	RotaID int64  `json:"rota_id"`

	// Caminho comum: o passo interativo anterior já calculou praças e
	// custos, evitando uma ida redundante ao roteirizador.
	Pracas       []nddcargo.PracaPedagio `json:"pracas"`
	CustoTotal   float64                 `json:"custo_total"`
	DistanciaKm  float64                 `json:"distancia_km"`
	TempoMinutos int                     `json:"tempo_minutos"`

	CodigoTag       string `json:"codigo_tag"`
	BypassValidacao bool   `json:"bypass_validacao"`
}

type Auditoria struct {
	UsuarioID int64
	IpAddress string
	UserAgent string
}

type CancelarRequest struct {
	Motivo string `json:"motivo"`
}

type CancelarNddRequest struct {
	Motivo string `json:"motivo"`

	// Identificação por NDVP quando o operador tem número e código
	// verificador; sem eles o cancelamento vai por número/série interno.
	NdvpNumero         string `json:"ndvp_numero"`
	NdvpCodVerificador string `json:"ndvp_cod_verificador"`
}

type ConsultarRoteirizadorRequest struct {
	Codpac           int64               `json:"codpac"`
	RotaID           int64               `json:"rota_id"`
	Waypoints        []nddcargo.Waypoint `json:"waypoints"`
	CategoriaPedagio int                 `json:"categoria_pedagio"`
}

type FiltroEmissoesDto struct {
	Status  string `query:"status"`
	Codpac  int64  `query:"codpac"`
	De      string `query:"de"`
	Ate     string `query:"ate"`
	Page    int32  `query:"page"`
	PerPage int32  `query:"per_page"`
}

type EmissaoResponse struct {
	Uuid              string                  `json:"uuid"`
	Codpac            int64                   `json:"codpac"`
	Codtrn            int64                   `json:"codtrn"`
	Codmot            int64                   `json:"codmot,omitempty"`
	RotaID            int64                   `json:"rota_id,omitempty"`
	RotaNome          string                  `json:"rota_nome,omitempty"`
	Status            string                  `json:"status"`
	ScoreQualidade    int32                   `json:"score_qualidade"`
	Waypoints         []nddcargo.Waypoint     `json:"waypoints,omitempty"`
	TotalWaypoints    int32                   `json:"total_waypoints"`
	Pracas            []nddcargo.PracaPedagio `json:"pracas,omitempty"`
	TotalPracas       int32                   `json:"total_pracas"`
	CustoTotal        float64                 `json:"custo_total,omitempty"`
	DistanciaKm       float64                 `json:"distancia_km,omitempty"`
	TempoMinutos      int32                   `json:"tempo_minutos,omitempty"`
	Protocolo         string                  `json:"protocolo,omitempty"`
	ErrorMessage      string                  `json:"error_message,omitempty"`
	ErrorCode         string                  `json:"error_code,omitempty"`
	TentativasPolling int32                   `json:"tentativas_polling"`
	RequestedAt       *time.Time              `json:"requested_at,omitempty"`
	CompletedAt       *time.Time              `json:"completed_at,omitempty"`
	FailedAt          *time.Time              `json:"failed_at,omitempty"`
	CancelledAt       *time.Time              `json:"cancelled_at,omitempty"`
	CriadoEm          time.Time               `json:"criado_em"`
}

// ResultadoResponse é a resposta da consulta de andamento. RetryAfter
// diz em quantos segundos o frontend deve voltar quando ainda está
// processando.
type ResultadoResponse struct {
	Status     string          `json:"status"`
	RetryAfter int             `json:"retry_after,omitempty"`
	Mensagem   string          `json:"mensagem,omitempty"`
	Emissao    EmissaoResponse `json:"emissao"`
}

type ListaEmissoesResponse struct {
	Emissoes []EmissaoResponse `json:"emissoes"`
	Page     int32             `json:"page"`
	PerPage  int32             `json:"per_page"`
}

type EstatisticasEmissoesResponse struct {
	Total              int64   `json:"total"`
	Pendentes          int64   `json:"pendentes"`
	Processando        int64   `json:"processando"`
	Concluidas         int64   `json:"concluidas"`
	Falhas             int64   `json:"falhas"`
	Canceladas         int64   `json:"canceladas"`
	TaxaSucesso        float64 `json:"taxa_sucesso"`
	TempoMedioSegundos float64 `json:"tempo_medio_segundos"`
	De                 string  `json:"de"`
	Ate                string  `json:"ate"`
}

type ValidacaoPacoteResponse struct {
	Codpac          int64                         `json:"codpac"`
	Pronto          bool                          `json:"pronto"`
	ScoreQualidade  int32                         `json:"score_qualidade"`
	CamposFaltantes []transportador.CampoFaltante `json:"campos_faltantes"`
	Avisos          []string                      `json:"avisos"`
	Transportador   transportador.DadosVpo        `json:"transportador"`
}

type WaypointsPacoteResponse struct {
	Codpac         int64               `json:"codpac"`
	RotaID         int64               `json:"rota_id,omitempty"`
	RotaNome       string              `json:"rota_nome,omitempty"`
	Waypoints      []nddcargo.Waypoint `json:"waypoints"`
	TotalWaypoints int                 `json:"total_waypoints"`
}

type RoteirizadorResponse struct {
	Guid         string                    `json:"guid"`
	Status       string                    `json:"status"`
	Pracas       []pracas.PracaEnriquecida `json:"pracas"`
	TotalPracas  int                       `json:"total_pracas"`
	CustoTotal   float64                   `json:"custo_total"`
	DistanciaKm  float64                   `json:"distancia_km"`
	TempoMinutos int                       `json:"tempo_minutos"`
	Mensagem     string                    `json:"mensagem,omitempty"`
}

// StatusEvento é o payload empurrado pelo hub de websocket a cada
// transição de estado.
type StatusEvento struct {
	Uuid      string    `json:"uuid"`
	Codpac    int64     `json:"codpac"`
	Status    string    `json:"status"`
	Mensagem  string    `json:"mensagem,omitempty"`
	Protocolo string    `json:"protocolo,omitempty"`
	Quando    time.Time `json:"quando"`
}

func (e *EmissaoResponse) ParseFromEmissaoObject(row db.VpoEmissoe) {
	e.Uuid = row.Uuid.String()
	e.Codpac = row.Codpac
	e.Codtrn = row.Codtrn
	if row.Codmot.Valid {
		e.Codmot = row.Codmot.Int64
	}
	if row.RotaID.Valid {
		e.RotaID = row.RotaID.Int64
	}
	e.RotaNome = validation.GetStringFromNull(row.RotaNome)
	e.Status = row.Status
	e.ScoreQualidade = row.ScoreQualidade
	e.TotalWaypoints = row.TotalWaypoints
	e.TotalPracas = row.TotalPracas
	if row.Waypoints.Valid {
		_ = json.Unmarshal(row.Waypoints.RawMessage, &e.Waypoints)
	}
	if row.PracasPedagio.Valid {
		_ = json.Unmarshal(row.PracasPedagio.RawMessage, &e.Pracas)
	}
	if row.CustoTotal.Valid {
		e.CustoTotal = row.CustoTotal.Float64
	}
	if row.DistanciaKm.Valid {
		e.DistanciaKm = row.DistanciaKm.Float64
	}
	if row.TempoMinutos.Valid {
		e.TempoMinutos = row.TempoMinutos.Int32
	}
	if row.NddResponse.Valid {
		var resposta nddcargo.RespostaNdd
		if json.Unmarshal(row.NddResponse.RawMessage, &resposta) == nil {
			e.Protocolo = resposta.Protocolo
		}
	}
	e.ErrorMessage = validation.GetStringFromNull(row.ErrorMessage)
	e.ErrorCode = validation.GetStringFromNull(row.ErrorCode)
	e.TentativasPolling = row.TentativasPolling
	e.RequestedAt = nullTimePtr(row.RequestedAt)
	e.CompletedAt = nullTimePtr(row.CompletedAt)
	e.FailedAt = nullTimePtr(row.FailedAt)
	e.CancelledAt = nullTimePtr(row.CancelledAt)
	e.CriadoEm = row.CreatedAt
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
