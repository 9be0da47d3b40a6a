package emissaolog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	db "valepedagio/db/sqlc"
	bucket "valepedagio/pkg/s3"
	"valepedagio/validation"
)

const (
	perPagePadrao  = 15
	perPageMaximo  = 100
	periodoPadrao  = 30 * 24 * time.Hour
	formatoPeriodo = "2006-01-02"
)

type InterfaceService interface {
	RegistrarFaseService(ctx context.Context, registro RegistroFase)
	ListarLogsService(ctx context.Context, filtro FiltroLogsDto) (ListaLogsResponse, error)
	ListarPorUuidService(ctx context.Context, emissaoUuid string) ([]LogResponse, error)
	EstatisticasService(ctx context.Context, de, ate string) (EstatisticasResponse, error)
}

type Service struct {
	InterfaceService InterfaceRepository
	Bucket           string

	ArquivarXml func(uuid, fase string, xml []byte, bucket string) (string, error)
	agora       func() time.Time
}

func NewEmissaoLogService(NewInterface InterfaceRepository, bucketName string) *Service {
	return &Service{
		InterfaceService: NewInterface,
		Bucket:           bucketName,
		ArquivarXml:      bucket.ArquivarXml,
		agora:            time.Now,
	}
}

// RegistrarFaseService grava um passo da emissão. Auditoria nunca derruba
// o fluxo principal: qualquer falha aqui é apenas logada. Os XMLs vão
// para o S3 e a linha do banco guarda só as URLs.
func (s *Service) RegistrarFaseService(ctx context.Context, registro RegistroFase) {
	emissaoUuid, err := uuid.Parse(registro.Uuid)
	if err != nil {
		log.Printf("emissaolog: uuid inválido %q fase=%s err=%v", registro.Uuid, registro.Fase, err)
		return
	}

	status := registro.Status
	if status == "" {
		status = StatusInfo
	}

	arg := db.CreateVpoEmissaoLogParams{
		EmissaoUuid: emissaoUuid,
		Codpac:      registro.Codpac,
		Fase:        registro.Fase,
		Status:      status,
		Mensagem:    validation.NewNullString(registro.Mensagem),
	}

	if len(registro.RequestXml) > 0 {
		url, err := s.ArquivarXml(registro.Uuid, registro.Fase+"_request", registro.RequestXml, s.Bucket)
		if err != nil {
			log.Printf("emissaolog: falha ao arquivar request xml uuid=%s fase=%s err=%v", registro.Uuid, registro.Fase, err)
		} else {
			arg.RequestXmlUrl = validation.NewNullString(url)
		}
	}
	if len(registro.ResponseXml) > 0 {
		url, err := s.ArquivarXml(registro.Uuid, registro.Fase+"_response", registro.ResponseXml, s.Bucket)
		if err != nil {
			log.Printf("emissaolog: falha ao arquivar response xml uuid=%s fase=%s err=%v", registro.Uuid, registro.Fase, err)
		} else {
			arg.ResponseXmlUrl = validation.NewNullString(url)
		}
	}

	if len(registro.Detalhes) > 0 {
		if detalhes, err := json.Marshal(registro.Detalhes); err == nil {
			arg.Detalhes = pqtype.NullRawMessage{RawMessage: detalhes, Valid: true}
		}
	}
	if registro.Duracao > 0 {
		arg.DuracaoMs.Int64 = registro.Duracao.Milliseconds()
		arg.DuracaoMs.Valid = true
	}

	if _, err := s.InterfaceService.CreateVpoEmissaoLog(ctx, arg); err != nil {
		log.Printf("emissaolog: falha ao gravar log uuid=%s fase=%s err=%v", registro.Uuid, registro.Fase, err)
	}
}

func (s *Service) ListarLogsService(ctx context.Context, filtro FiltroLogsDto) (ListaLogsResponse, error) {
	de, ate, err := s.parsePeriodo(filtro.De, filtro.Ate)
	if err != nil {
		return ListaLogsResponse{}, err
	}

	page := filtro.Page
	if page < 1 {
		page = 1
	}
	perPage := filtro.PerPage
	if perPage < 1 {
		perPage = perPagePadrao
	}
	if perPage > perPageMaximo {
		perPage = perPageMaximo
	}

	rows, err := s.InterfaceService.ListVpoEmissaoLogs(ctx, db.ListVpoEmissaoLogsParams{
		Fase:   filtro.Fase,
		Status: filtro.Status,
		Codpac: filtro.Codpac,
		De:     de,
		Ate:    ate,
		Off:    (page - 1) * perPage,
		Lim:    perPage,
	})
	if err != nil {
		return ListaLogsResponse{}, err
	}

	resposta := ListaLogsResponse{Logs: make([]LogResponse, 0, len(rows)), Page: page, PerPage: perPage}
	for _, row := range rows {
		var item LogResponse
		item.ParseFromLogObject(row)
		resposta.Logs = append(resposta.Logs, item)
	}
	return resposta, nil
}

func (s *Service) ListarPorUuidService(ctx context.Context, emissaoUuid string) ([]LogResponse, error) {
	parsed, err := uuid.Parse(emissaoUuid)
	if err != nil {
		return nil, errors.New("uuid de emissão inválido")
	}

	rows, err := s.InterfaceService.ListVpoEmissaoLogsByUuid(ctx, parsed)
	if err != nil {
		return nil, err
	}

	resposta := make([]LogResponse, 0, len(rows))
	for _, row := range rows {
		var item LogResponse
		item.ParseFromLogObject(row)
		resposta = append(resposta, item)
	}
	return resposta, nil
}

func (s *Service) EstatisticasService(ctx context.Context, de, ate string) (EstatisticasResponse, error) {
	inicio, fim, err := s.parsePeriodo(de, ate)
	if err != nil {
		return EstatisticasResponse{}, err
	}

	stats, err := s.InterfaceService.GetVpoEmissaoLogStats(ctx, db.GetVpoEmissaoLogStatsParams{
		CriadoEm:   inicio,
		CriadoEm_2: fim,
	})
	if err != nil {
		return EstatisticasResponse{}, err
	}

	taxa := 0.0
	if stats.Total > 0 {
		taxa = math.Round(float64(stats.Sucessos)/float64(stats.Total)*1000) / 10
	}

	return EstatisticasResponse{
		Total:          stats.Total,
		Sucessos:       stats.Sucessos,
		Erros:          stats.Erros,
		TaxaSucesso:    taxa,
		DuracaoMediaMs: stats.DuracaoMediaMs,
		De:             inicio.Format(formatoPeriodo),
		Ate:            fim.Format(formatoPeriodo),
	}, nil
}

// parsePeriodo interpreta o intervalo de datas dos filtros. Sem datas o
// período é os últimos 30 dias; "ate" cobre o dia inteiro.
func (s *Service) parsePeriodo(de, ate string) (time.Time, time.Time, error) {
	agora := s.agora()
	inicio := agora.Add(-periodoPadrao)
	fim := agora

	if de != "" {
		parsed, err := time.Parse(formatoPeriodo, de)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("data inicial inválida, use o formato AAAA-MM-DD")
		}
		inicio = parsed
	}
	if ate != "" {
		parsed, err := time.Parse(formatoPeriodo, ate)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("data final inválida, use o formato AAAA-MM-DD")
		}
		fim = parsed.Add(24*time.Hour - time.Second)
	}
	if fim.Before(inicio) {
		return time.Time{}, time.Time{}, errors.New("data final anterior à data inicial")
	}
	return inicio, fim, nil
}
