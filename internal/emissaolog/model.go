package emissaolog

import (
	"encoding/json"
	"time"

	db "valepedagio/db/sqlc"
	"valepedagio/validation"
)

// Fases do ciclo de vida de uma emissão, na ordem em que acontecem.
const (
	FaseIniciado           = "iniciado"
	FaseDadosSincronizados = "dados_sincronizados"
	FaseXmlGerado          = "xml_gerado"
	FaseAssinado           = "assinado"
	FaseEnviado            = "enviado"
	FaseResposta           = "resposta_recebida"
	FaseSucesso            = "sucesso"
	FaseErro               = "erro"
	FaseCancelado          = "cancelado"
)

const (
	StatusInfo    = "info"
	StatusSucesso = "sucesso"
	StatusErro    = "erro"
)

// RegistroFase é o que o orquestrador entrega ao registrar um passo.
// RequestXml/ResponseXml, quando presentes, são arquivados no S3 e só a
// URL vai para o banco.
type RegistroFase struct {
	Uuid        string
	Codpac      int64
	Fase        string
	Status      string
	Mensagem    string
	RequestXml  []byte
	ResponseXml []byte
	Detalhes    map[string]interface{}
	Duracao     time.Duration
}

type FiltroLogsDto struct {
	Fase    string `query:"fase"`
	Status  string `query:"status"`
	Codpac  int64  `query:"codpac"`
	De      string `query:"de"`
	Ate     string `query:"ate"`
	Page    int32  `query:"page"`
	PerPage int32  `query:"per_page"`
}

type LogResponse struct {
	ID             int64           `json:"id"`
	Uuid           string          `json:"uuid"`
	Codpac         int64           `json:"codpac"`
	Fase           string          `json:"fase"`
	Status         string          `json:"status"`
	Mensagem       string          `json:"mensagem,omitempty"`
	RequestXmlUrl  string          `json:"request_xml_url,omitempty"`
	ResponseXmlUrl string          `json:"response_xml_url,omitempty"`
	Detalhes       json.RawMessage `json:"detalhes,omitempty"`
	DuracaoMs      int64           `json:"duracao_ms,omitempty"`
	CriadoEm       time.Time       `json:"criado_em"`
}

type ListaLogsResponse struct {
	Logs    []LogResponse `json:"logs"`
	Page    int32         `json:"page"`
	PerPage int32         `json:"per_page"`
}

type EstatisticasResponse struct {
	Total          int64   `json:"total"`
	Sucessos       int64   `json:"sucessos"`
	Erros          int64   `json:"erros"`
	TaxaSucesso    float64 `json:"taxa_sucesso"`
	DuracaoMediaMs float64 `json:"duracao_media_ms"`
	De             string  `json:"de"`
	Ate            string  `json:"ate"`
}

func (l *LogResponse) ParseFromLogObject(row db.VpoEmissaoLog) {
	l.ID = row.ID
	l.Uuid = row.EmissaoUuid.String()
	l.Codpac = row.Codpac
	l.Fase = row.Fase
	l.Status = row.Status
	l.Mensagem = validation.GetStringFromNull(row.Mensagem)
	l.RequestXmlUrl = validation.GetStringFromNull(row.RequestXmlUrl)
	l.ResponseXmlUrl = validation.GetStringFromNull(row.ResponseXmlUrl)
	if row.Detalhes.Valid {
		l.Detalhes = json.RawMessage(row.Detalhes.RawMessage)
	}
	if row.DuracaoMs.Valid {
		l.DuracaoMs = row.DuracaoMs.Int64
	}
	l.CriadoEm = row.CriadoEm
}
