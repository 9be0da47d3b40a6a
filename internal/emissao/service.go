package emissao

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	db "valepedagio/db/sqlc"
	"valepedagio/internal/emissaolog"
	"valepedagio/internal/nddcargo"
	"valepedagio/internal/pracas"
	"valepedagio/internal/progress"
	"valepedagio/internal/transportador"
	"valepedagio/validation"
)

const (
	// Uma emissão parada em processing além disso é dada como perdida.
	tempoMaximoProcessamento = 10 * time.Minute
	// Intervalo mínimo entre consultas à NDD para a mesma emissão.
	intervaloMinimoPolling = 5 * time.Second

	maxTentativasPollingPadrao = 50

	roteirizadorMaxTentativas = 10
	roteirizadorIntervalo     = 2 * time.Second

	perPagePadrao  = 15
	perPageMaximo  = 100
	periodoPadrao  = 30 * 24 * time.Hour
	formatoPeriodo = "2006-01-02"
)

// ErrValidacaoIncompleta marca a recusa de emissão por perfil incompleto,
// para o handler devolver 422 em vez de 500.
var ErrValidacaoIncompleta = errors.New("dados do transportador incompletos")

// ErroValidacao carrega o relatório de pendências da recusa, no mesmo
// formato da validação prévia de pacote, para o corpo do 422.
type ErroValidacao struct {
	Relatorio ValidacaoPacoteResponse
}

func (e *ErroValidacao) Error() string {
	campos := make([]string, 0, len(e.Relatorio.CamposFaltantes))
	for _, c := range e.Relatorio.CamposFaltantes {
		campos = append(campos, c.Campo)
	}
	return ErrValidacaoIncompleta.Error() + ": " + strings.Join(campos, ", ")
}

func (e *ErroValidacao) Unwrap() error { return ErrValidacaoIncompleta }

type AssinadorXml interface {
	SignXml(xmlContent, referenceID string) (string, error)
}

type ClienteNdd interface {
	Enviar(ctx context.Context, processCode int, xmlAssinado, guid string) (string, error)
	ConsultarResultado(ctx context.Context, processCode int, guid string) (string, error)
}

type InterfaceService interface {
	IniciarEmissaoService(ctx context.Context, req IniciarEmissaoRequest, auditoria Auditoria) (EmissaoResponse, error)
	GetEmissaoService(ctx context.Context, emissaoUuid string) (EmissaoResponse, error)
	ConsultarResultadoService(ctx context.Context, emissaoUuid string, forceRetry bool) (ResultadoResponse, error)
	CancelarService(ctx context.Context, emissaoUuid, motivo string) (EmissaoResponse, error)
	CancelarNddService(ctx context.Context, emissaoUuid string, req CancelarNddRequest) (EmissaoResponse, error)
	ListarPorPacoteService(ctx context.Context, codpac int64) ([]EmissaoResponse, error)
	ListarEmissoesService(ctx context.Context, filtro FiltroEmissoesDto) (ListaEmissoesResponse, error)
	EstatisticasService(ctx context.Context, de, ate string) (EstatisticasEmissoesResponse, error)
	ValidarPacoteService(ctx context.Context, codpac int64) (ValidacaoPacoteResponse, error)
	WaypointsPacoteService(ctx context.Context, codpac, rotaID int64) (WaypointsPacoteResponse, error)
	ConsultarRoteirizadorService(ctx context.Context, req ConsultarRoteirizadorRequest) (RoteirizadorResponse, error)
}

// Service orquestra a emissão de vale-pedágio: sincroniza o perfil,
// valida, monta e assina o XML, envia à NDD e acompanha o resultado.
// Toda mutação de estado da emissão passa por aqui.
type Service struct {
	InterfaceService InterfaceRepository
	Progress         progress.InterfaceRepository
	Transportador    transportador.InterfaceService
	Pracas           pracas.InterfaceService
	Logs             emissaolog.InterfaceService
	Builder          *nddcargo.Builder
	Assinador        AssinadorXml
	Cliente          ClienteNdd

	MaxTentativasPolling int32
	Notificar            func(evento StatusEvento)

	agora  func() time.Time
	dormir func(ctx context.Context, d time.Duration) error

	mu           sync.Mutex
	emissaoLocks map[string]*sync.Mutex
}

func NewEmissaoService(
	NewInterface InterfaceRepository,
	progressRepo progress.InterfaceRepository,
	transportadorService transportador.InterfaceService,
	pracasService pracas.InterfaceService,
	logService emissaolog.InterfaceService,
	builder *nddcargo.Builder,
	assinador AssinadorXml,
	cliente ClienteNdd,
	maxTentativasPolling int32,
) *Service {
	if maxTentativasPolling <= 0 {
		maxTentativasPolling = maxTentativasPollingPadrao
	}
	return &Service{
		InterfaceService:     NewInterface,
		Progress:             progressRepo,
		Transportador:        transportadorService,
		Pracas:               pracasService,
		Logs:                 logService,
		Builder:              builder,
		Assinador:            assinador,
		Cliente:              cliente,
		MaxTentativasPolling: maxTentativasPolling,
		agora:                time.Now,
		dormir:               dormirPadrao,
		emissaoLocks:         map[string]*sync.Mutex{},
	}
}

func (s *Service) IniciarEmissaoService(ctx context.Context, req IniciarEmissaoRequest, auditoria Auditoria) (EmissaoResponse, error) {
	pacote, err := s.Progress.GetPacote(ctx, req.Codpac)
	if errors.Is(err, sql.ErrNoRows) {
		return EmissaoResponse{}, errors.New("pacote não encontrado no Progress")
	}
	if err != nil {
		return EmissaoResponse{}, err
	}

	codmot := req.Codmot
	if codmot == 0 && pacote.Codmot.Valid {
		codmot = pacote.Codmot.Int64
	}
	placa := req.Placa
	if placa == "" {
		placa = pacote.Numpla.String
	}

	guid := uuid.New()
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:   guid.String(),
		Codpac: req.Codpac,
		Fase:   emissaolog.FaseIniciado,
		Detalhes: map[string]interface{}{
			"codtrn": pacote.Codtrn,
			"codmot": codmot,
			"placa":  placa,
		},
	})

	perfil, err := s.Transportador.SincronizarService(ctx, transportador.SincronizarDto{
		Codtrn: pacote.Codtrn,
		Codmot: codmot,
		Placa:  placa,
	})
	if err != nil {
		s.registrarErro(ctx, guid.String(), req.Codpac, "erro ao sincronizar transportador: "+err.Error())
		return EmissaoResponse{}, fmt.Errorf("erro ao sincronizar transportador: %w", err)
	}
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:   guid.String(),
		Codpac: req.Codpac,
		Fase:   emissaolog.FaseDadosSincronizados,
		Detalhes: map[string]interface{}{
			"score_qualidade":  perfil.ScoreQualidade,
			"campos_faltantes": len(perfil.CamposFaltantes),
		},
	})

	if !req.BypassValidacao && len(perfil.CamposFaltantes) > 0 {
		recusa := &ErroValidacao{Relatorio: ValidacaoPacoteResponse{
			Codpac:          req.Codpac,
			Pronto:          false,
			ScoreQualidade:  perfil.ScoreQualidade,
			CamposFaltantes: perfil.CamposFaltantes,
			Avisos:          perfil.Avisos,
			Transportador:   perfil.DadosVpo,
		}}
		s.registrarErro(ctx, guid.String(), req.Codpac, "perfil incompleto: "+recusa.Error())
		return EmissaoResponse{}, recusa
	}

	waypoints, rotaNome, err := s.montarWaypoints(ctx, req.Codpac, req.RotaID)
	if err != nil {
		return EmissaoResponse{}, err
	}

	eixos := int32(0)
	if veiculo, err := s.Progress.GetVeiculo(ctx, pacote.Codtrn, perfil.Placa); err == nil && veiculo.Qtdeixo.Valid {
		eixos = veiculo.Qtdeixo.Int32
	}

	codigoTag := req.CodigoTag
	if codigoTag == "" {
		if tag, err := s.Progress.GetTagSemParar(ctx, perfil.Placa); err == nil {
			codigoTag = tag
		}
	}

	pracasLista := req.Pracas
	custo := req.CustoTotal
	distancia := req.DistanciaKm
	tempo := req.TempoMinutos

	// Sem praças calculadas no passo interativo, tenta o roteirizador da
	// NDD quando há tag e rota. Falha aqui não bloqueia: a emissão segue
	// com a lista vazia (rota sem pedágio).
	if len(pracasLista) == 0 && codigoTag != "" && len(waypoints) > 0 {
		var categoria int
		if eixos > 0 {
			categoria = nddcargo.CategoriaPedagioPorEixos(int(eixos))
		} else {
			categoria = nddcargo.CategoriaPedagioPorTipo(perfil.VeiculoTipo)
		}
		if resposta, err := s.consultarRoteirizadorNdd(ctx, uuid.NewString(), waypoints, categoria); err == nil && resposta.Status == nddcargo.Concluido {
			pracasLista = resposta.Pracas
			custo = resposta.CustoTotal
			distancia = resposta.DistanciaKm
			tempo = resposta.TempoMinutos
		} else if err != nil {
			log.Printf("emissao: consulta de rota falhou uuid=%s err=%v", guid, err)
		}
	}

	dadosNdd := nddcargo.DadosVpo{
		Numero:                 strconv.FormatInt(req.Codpac, 10),
		CpfCnpj:                perfil.CpfCnpj,
		AnttRntrc:              perfil.AnttRntrc,
		AnttNome:               perfil.AnttNome,
		CondutorNome:           perfil.CondutorNome,
		CondutorNomeMae:        perfil.CondutorNomeMae,
		CondutorRg:             perfil.CondutorRg,
		CondutorDataNascimento: perfil.CondutorDataNascimento,
		EnderecoEstado:         perfil.EnderecoEstado,
		EnderecoCidade:         perfil.EnderecoCidade,
		EnderecoBairro:         perfil.EnderecoBairro,
		EnderecoRua:            perfil.EnderecoRua,
		EnderecoNumero:         "",
		ContatoCelular:         perfil.ContatoCelular,
		Placa:                  perfil.Placa,
		VeiculoTipo:            perfil.VeiculoTipo,
		VeiculoModelo:          perfil.VeiculoModelo,
		Eixos:                  int(eixos),
		RotaNome:               rotaNome,
	}

	xmlEnvio := s.Builder.MontarVpoEnvio(guid.String(), dadosNdd, waypoints, pracasLista, codigoTag)
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:       guid.String(),
		Codpac:     req.Codpac,
		Fase:       emissaolog.FaseXmlGerado,
		RequestXml: []byte(xmlEnvio),
	})

	assinado, err := s.Assinador.SignXml(xmlEnvio, guid.String())
	if err != nil {
		s.registrarErro(ctx, guid.String(), req.Codpac, "falha na assinatura digital: "+err.Error())
		return EmissaoResponse{}, fmt.Errorf("falha na assinatura digital: %w", err)
	}
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:   guid.String(),
		Codpac: req.Codpac,
		Fase:   emissaolog.FaseAssinado,
	})

	arg := db.CreateVpoEmissaoParams{
		Uuid:           guid,
		Codpac:         req.Codpac,
		Codtrn:         pacote.Codtrn,
		RotaNome:       validation.NewNullString(rotaNome),
		Waypoints:      marshalRaw(waypoints),
		TotalWaypoints: int32(len(waypoints)),
		VpoData:        marshalRaw(perfil.DadosVpo),
		FontesDados:    marshalRaw(perfil.FontesDados),
		ScoreQualidade: perfil.ScoreQualidade,
		Status:         StatusPending,
		NddRequestXml:  validation.NewNullString(assinado),
		PracasPedagio:  marshalRaw(pracasLista),
		TotalPracas:    int32(len(pracasLista)),
		CustoTotal:     nullFloat64(custo),
		DistanciaKm:    nullFloat64(distancia),
		TempoMinutos:   nullInt32(int32(tempo)),
		IpAddress:      validation.NewNullString(auditoria.IpAddress),
		UserAgent:      validation.NewNullString(auditoria.UserAgent),
	}
	if codmot > 0 {
		arg.Codmot = sql.NullInt64{Int64: codmot, Valid: true}
	}
	if req.RotaID > 0 {
		arg.RotaID = sql.NullInt64{Int64: req.RotaID, Valid: true}
	}
	if auditoria.UsuarioID > 0 {
		arg.UsuarioID = sql.NullInt64{Int64: auditoria.UsuarioID, Valid: true}
	}

	row, err := s.InterfaceService.CreateVpoEmissao(ctx, arg)
	if err != nil {
		return EmissaoResponse{}, err
	}

	inicioEnvio := s.agora()
	raw, err := s.Cliente.Enviar(ctx, nddcargo.ProcessCodeEmissaoVpo, assinado, guid.String())
	if err != nil {
		row = s.falharEmissao(ctx, row, "erro na comunicação com a NDD Cargo: "+err.Error(), ErroComunicacao, nil)
		var resposta EmissaoResponse
		resposta.ParseFromEmissaoObject(row)
		return resposta, nil
	}
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:    guid.String(),
		Codpac:  req.Codpac,
		Fase:    emissaolog.FaseEnviado,
		Duracao: s.agora().Sub(inicioEnvio),
	})

	classificada := nddcargo.Classificar(raw)
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:        guid.String(),
		Codpac:      req.Codpac,
		Fase:        emissaolog.FaseResposta,
		ResponseXml: []byte(raw),
		Detalhes:    map[string]interface{}{"status": classificada.Status.String()},
	})

	switch classificada.Status {
	case nddcargo.Falha:
		row = s.falharEmissao(ctx, row, classificada.Mensagem, ErroNddCargo, &classificada)
	case nddcargo.Concluido:
		row = s.concluirEmissao(ctx, row, classificada)
	default:
		if atualizada, err := s.InterfaceService.MarkVpoEmissaoProcessing(ctx, guid); err == nil {
			row = atualizada
		}
		s.notificar(row, "", "")
	}

	var resposta EmissaoResponse
	resposta.ParseFromEmissaoObject(row)
	return resposta, nil
}

func (s *Service) GetEmissaoService(ctx context.Context, emissaoUuid string) (EmissaoResponse, error) {
	parsed, err := uuid.Parse(emissaoUuid)
	if err != nil {
		return EmissaoResponse{}, errors.New("uuid de emissão inválido")
	}

	row, err := s.InterfaceService.GetVpoEmissaoByUuid(ctx, parsed)
	if errors.Is(err, sql.ErrNoRows) {
		return EmissaoResponse{}, errors.New("emissão não encontrada")
	}
	if err != nil {
		return EmissaoResponse{}, err
	}

	var resposta EmissaoResponse
	resposta.ParseFromEmissaoObject(row)
	return resposta, nil
}

// ConsultarResultadoService consulta o andamento na NDD. Serializada por
// uuid: duas consultas simultâneas à mesma emissão não disparam duas
// requisições nem gravam estado conflitante.
func (s *Service) ConsultarResultadoService(ctx context.Context, emissaoUuid string, forceRetry bool) (ResultadoResponse, error) {
	parsed, err := uuid.Parse(emissaoUuid)
	if err != nil {
		return ResultadoResponse{}, errors.New("uuid de emissão inválido")
	}

	lock := s.lockEmissao(emissaoUuid)
	lock.Lock()
	defer lock.Unlock()

	row, err := s.InterfaceService.GetVpoEmissaoByUuid(ctx, parsed)
	if errors.Is(err, sql.ErrNoRows) {
		return ResultadoResponse{}, errors.New("emissão não encontrada")
	}
	if err != nil {
		return ResultadoResponse{}, err
	}

	if forceRetry && row.Status == StatusFailed && retryPermitido(row.ErrorCode.String) {
		if atualizada, err := s.InterfaceService.ResetVpoEmissaoForRetry(ctx, parsed); err == nil {
			row = atualizada
			s.notificar(row, "nova tentativa solicitada", "")
		}
	}

	switch row.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return montarResultado(row, 0, ""), nil
	case StatusPending:
		return montarResultado(row, 0, "emissão ainda não enviada à NDD Cargo"), nil
	}

	if row.RequestedAt.Valid && s.agora().Sub(row.RequestedAt.Time) > tempoMaximoProcessamento {
		row = s.falharEmissao(ctx, row, "Timeout na NDD Cargo", ErroTimeout, nil)
		return montarResultado(row, 0, ""), nil
	}
	if row.TentativasPolling >= s.MaxTentativasPolling {
		row = s.falharEmissao(ctx, row, "Limite de consultas à NDD Cargo atingido", ErroLimitePolling, nil)
		return montarResultado(row, 0, ""), nil
	}
	if row.PolledAt.Valid && s.agora().Sub(row.PolledAt.Time) < intervaloMinimoPolling {
		return montarResultado(row, int(intervaloMinimoPolling.Seconds()), ""), nil
	}

	if atualizada, err := s.InterfaceService.RegisterVpoEmissaoPolling(ctx, parsed); err == nil {
		row = atualizada
	}

	raw, err := s.Cliente.ConsultarResultado(ctx, nddcargo.ProcessCodeConsultaVpo, emissaoUuid)
	if err != nil {
		log.Printf("emissao: consulta à NDD falhou uuid=%s err=%v", emissaoUuid, err)
		return montarResultado(row, int(intervaloMinimoPolling.Seconds()), "NDD Cargo indisponível, tente novamente"), nil
	}

	classificada := nddcargo.Classificar(raw)
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:        emissaoUuid,
		Codpac:      row.Codpac,
		Fase:        emissaolog.FaseResposta,
		ResponseXml: []byte(raw),
		Detalhes: map[string]interface{}{
			"status":    classificada.Status.String(),
			"tentativa": row.TentativasPolling,
		},
	})

	switch classificada.Status {
	case nddcargo.Concluido:
		row = s.concluirEmissao(ctx, row, classificada)
		return montarResultado(row, 0, ""), nil
	case nddcargo.Falha:
		row = s.falharEmissao(ctx, row, classificada.Mensagem, ErroNddCargo, &classificada)
		return montarResultado(row, 0, ""), nil
	}

	return montarResultado(row, int(intervaloMinimoPolling.Seconds()), classificada.Mensagem), nil
}

func (s *Service) CancelarService(ctx context.Context, emissaoUuid, motivo string) (EmissaoResponse, error) {
	parsed, err := uuid.Parse(emissaoUuid)
	if err != nil {
		return EmissaoResponse{}, errors.New("uuid de emissão inválido")
	}

	row, err := s.InterfaceService.GetVpoEmissaoByUuid(ctx, parsed)
	if errors.Is(err, sql.ErrNoRows) {
		return EmissaoResponse{}, errors.New("emissão não encontrada")
	}
	if err != nil {
		return EmissaoResponse{}, err
	}

	switch row.Status {
	case StatusCancelled:
		var resposta EmissaoResponse
		resposta.ParseFromEmissaoObject(row)
		return resposta, nil
	case StatusCompleted, StatusFailed:
		return EmissaoResponse{}, errors.New("emissão em estado terminal não pode ser cancelada localmente; use o cancelamento na NDD")
	}

	if strings.TrimSpace(motivo) == "" {
		motivo = "Cancelamento solicitado pelo usuário"
	}
	row, err = s.InterfaceService.MarkVpoEmissaoCancelled(ctx, db.MarkVpoEmissaoCancelledParams{
		Uuid:               parsed,
		CancellationReason: validation.NewNullString(motivo),
	})
	if err != nil {
		return EmissaoResponse{}, err
	}

	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:     emissaoUuid,
		Codpac:   row.Codpac,
		Fase:     emissaolog.FaseCancelado,
		Mensagem: motivo,
	})
	s.notificar(row, motivo, "")

	var resposta EmissaoResponse
	resposta.ParseFromEmissaoObject(row)
	return resposta, nil
}

// CancelarNddService cancela na NDD um vale-pedágio já emitido
// (ProcessCode 2020) e registra a resposta na emissão.
func (s *Service) CancelarNddService(ctx context.Context, emissaoUuid string, req CancelarNddRequest) (EmissaoResponse, error) {
	parsed, err := uuid.Parse(emissaoUuid)
	if err != nil {
		return EmissaoResponse{}, errors.New("uuid de emissão inválido")
	}

	row, err := s.InterfaceService.GetVpoEmissaoByUuid(ctx, parsed)
	if errors.Is(err, sql.ErrNoRows) {
		return EmissaoResponse{}, errors.New("emissão não encontrada")
	}
	if err != nil {
		return EmissaoResponse{}, err
	}
	if row.Status != StatusCompleted {
		return EmissaoResponse{}, errors.New("somente emissões concluídas podem ser canceladas na NDD Cargo")
	}

	identificacao := nddcargo.IdentificacaoCancelamento{Tipo: "ide", Numero: strconv.FormatInt(row.Codpac, 10)}
	if req.NdvpNumero != "" {
		identificacao = nddcargo.IdentificacaoCancelamento{
			Tipo:           "ndvp",
			Numero:         req.NdvpNumero,
			CodVerificador: req.NdvpCodVerificador,
		}
	}

	guid := uuid.NewString()
	xmlCancelamento := s.Builder.MontarCancelamentoEnvio(guid, identificacao, req.Motivo)
	assinado, err := s.Assinador.SignXml(xmlCancelamento, guid)
	if err != nil {
		return EmissaoResponse{}, fmt.Errorf("falha na assinatura digital: %w", err)
	}

	raw, err := s.Cliente.Enviar(ctx, nddcargo.ProcessCodeCancelamento, assinado, guid)
	if err != nil {
		return EmissaoResponse{}, fmt.Errorf("erro na comunicação com a NDD Cargo: %w", err)
	}

	classificada := nddcargo.Classificar(raw)
	if classificada.Status == nddcargo.Falha {
		return EmissaoResponse{}, fmt.Errorf("NDD Cargo recusou o cancelamento: %s", classificada.Mensagem)
	}

	motivo := strings.TrimSpace(req.Motivo)
	if motivo == "" {
		motivo = "Cancelamento solicitado pelo usuário"
	}
	row, err = s.InterfaceService.SetVpoEmissaoCancellationNdd(ctx, db.SetVpoEmissaoCancellationNddParams{
		Uuid:                    parsed,
		CancellationReason:      validation.NewNullString(motivo),
		NddCancellationRequest:  validation.NewNullString(assinado),
		NddCancellationResponse: marshalRaw(classificada),
	})
	if err != nil {
		return EmissaoResponse{}, err
	}

	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:        emissaoUuid,
		Codpac:      row.Codpac,
		Fase:        emissaolog.FaseCancelado,
		Mensagem:    motivo,
		ResponseXml: []byte(raw),
	})
	s.notificar(row, motivo, "")

	var resposta EmissaoResponse
	resposta.ParseFromEmissaoObject(row)
	return resposta, nil
}

func (s *Service) ListarPorPacoteService(ctx context.Context, codpac int64) ([]EmissaoResponse, error) {
	rows, err := s.InterfaceService.ListVpoEmissoesByCodpac(ctx, codpac)
	if err != nil {
		return nil, err
	}

	emissoes := make([]EmissaoResponse, 0, len(rows))
	for _, row := range rows {
		var item EmissaoResponse
		item.ParseFromEmissaoObject(row)
		emissoes = append(emissoes, item)
	}
	return emissoes, nil
}

func (s *Service) ListarEmissoesService(ctx context.Context, filtro FiltroEmissoesDto) (ListaEmissoesResponse, error) {
	de, ate, err := s.parsePeriodo(filtro.De, filtro.Ate)
	if err != nil {
		return ListaEmissoesResponse{}, err
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

	rows, err := s.InterfaceService.ListVpoEmissoes(ctx, db.ListVpoEmissoesParams{
		Status: filtro.Status,
		Codpac: filtro.Codpac,
		De:     de,
		Ate:    ate,
		Off:    (page - 1) * perPage,
		Lim:    perPage,
	})
	if err != nil {
		return ListaEmissoesResponse{}, err
	}

	resposta := ListaEmissoesResponse{Emissoes: make([]EmissaoResponse, 0, len(rows)), Page: page, PerPage: perPage}
	for _, row := range rows {
		var item EmissaoResponse
		item.ParseFromEmissaoObject(row)
		resposta.Emissoes = append(resposta.Emissoes, item)
	}
	return resposta, nil
}

func (s *Service) EstatisticasService(ctx context.Context, de, ate string) (EstatisticasEmissoesResponse, error) {
	inicio, fim, err := s.parsePeriodo(de, ate)
	if err != nil {
		return EstatisticasEmissoesResponse{}, err
	}

	stats, err := s.InterfaceService.GetVpoEmissaoStats(ctx, db.GetVpoEmissaoStatsParams{
		CreatedAt:   inicio,
		CreatedAt_2: fim,
	})
	if err != nil {
		return EstatisticasEmissoesResponse{}, err
	}

	taxa := 0.0
	if stats.Total > 0 {
		taxa = math.Round(float64(stats.Concluidas)/float64(stats.Total)*1000) / 10
	}

	return EstatisticasEmissoesResponse{
		Total:              stats.Total,
		Pendentes:          stats.Pendentes,
		Processando:        stats.Processando,
		Concluidas:         stats.Concluidas,
		Falhas:             stats.Falhas,
		Canceladas:         stats.Canceladas,
		TaxaSucesso:        taxa,
		TempoMedioSegundos: stats.TempoMedioSegundos,
		De:                 inicio.Format(formatoPeriodo),
		Ate:                fim.Format(formatoPeriodo),
	}, nil
}

// ValidarPacoteService roda a mesma sincronização da emissão sem emitir,
// para o frontend mostrar pendências antes do operador confirmar.
func (s *Service) ValidarPacoteService(ctx context.Context, codpac int64) (ValidacaoPacoteResponse, error) {
	pacote, err := s.Progress.GetPacote(ctx, codpac)
	if errors.Is(err, sql.ErrNoRows) {
		return ValidacaoPacoteResponse{}, errors.New("pacote não encontrado no Progress")
	}
	if err != nil {
		return ValidacaoPacoteResponse{}, err
	}

	codmot := int64(0)
	if pacote.Codmot.Valid {
		codmot = pacote.Codmot.Int64
	}
	perfil, err := s.Transportador.SincronizarService(ctx, transportador.SincronizarDto{
		Codtrn: pacote.Codtrn,
		Codmot: codmot,
		Placa:  pacote.Numpla.String,
	})
	if err != nil {
		return ValidacaoPacoteResponse{}, err
	}

	return ValidacaoPacoteResponse{
		Codpac:          codpac,
		Pronto:          len(perfil.CamposFaltantes) == 0,
		ScoreQualidade:  perfil.ScoreQualidade,
		CamposFaltantes: perfil.CamposFaltantes,
		Avisos:          perfil.Avisos,
		Transportador:   perfil.DadosVpo,
	}, nil
}

func (s *Service) WaypointsPacoteService(ctx context.Context, codpac, rotaID int64) (WaypointsPacoteResponse, error) {
	if _, err := s.Progress.GetPacote(ctx, codpac); errors.Is(err, sql.ErrNoRows) {
		return WaypointsPacoteResponse{}, errors.New("pacote não encontrado no Progress")
	} else if err != nil {
		return WaypointsPacoteResponse{}, err
	}

	waypoints, rotaNome, err := s.montarWaypoints(ctx, codpac, rotaID)
	if err != nil {
		return WaypointsPacoteResponse{}, err
	}

	return WaypointsPacoteResponse{
		Codpac:         codpac,
		RotaID:         rotaID,
		RotaNome:       rotaNome,
		Waypoints:      waypoints,
		TotalWaypoints: len(waypoints),
	}, nil
}

// ConsultarRoteirizadorService consulta as praças de uma rota na NDD
// (ProcessCode 2027) e devolve a lista enriquecida com coordenadas.
func (s *Service) ConsultarRoteirizadorService(ctx context.Context, req ConsultarRoteirizadorRequest) (RoteirizadorResponse, error) {
	waypoints := req.Waypoints
	if len(waypoints) == 0 && req.Codpac > 0 {
		montados, _, err := s.montarWaypoints(ctx, req.Codpac, req.RotaID)
		if err != nil {
			return RoteirizadorResponse{}, err
		}
		waypoints = montados
	}
	if len(waypoints) == 0 {
		return RoteirizadorResponse{}, errors.New("informe os pontos de parada ou um pacote com rota")
	}

	categoria := req.CategoriaPedagio
	if categoria == 0 {
		categoria = nddcargo.CategoriaPedagioPorEixos(0)
	}

	guid := uuid.NewString()
	resposta, err := s.consultarRoteirizadorNdd(ctx, guid, waypoints, categoria)
	if err != nil {
		return RoteirizadorResponse{}, err
	}

	resultado := RoteirizadorResponse{
		Guid:         guid,
		Status:       resposta.Status.String(),
		CustoTotal:   resposta.CustoTotal,
		DistanciaKm:  resposta.DistanciaKm,
		TempoMinutos: resposta.TempoMinutos,
		Mensagem:     resposta.Mensagem,
	}
	if resposta.Status == nddcargo.Concluido {
		resultado.Pracas = s.Pracas.EnriquecerPracasService(ctx, resposta.Pracas)
		resultado.TotalPracas = len(resultado.Pracas)
	}
	return resultado, nil
}

// consultarRoteirizadorNdd envia a consulta e insiste enquanto a NDD
// responde "em processamento", até o limite de tentativas.
func (s *Service) consultarRoteirizadorNdd(ctx context.Context, guid string, waypoints []nddcargo.Waypoint, categoria int) (nddcargo.RespostaNdd, error) {
	xmlConsulta := s.Builder.MontarRoteirizadorEnvio(guid, waypoints, categoria)
	assinado, err := s.Assinador.SignXml(xmlConsulta, guid)
	if err != nil {
		return nddcargo.RespostaNdd{}, fmt.Errorf("falha na assinatura digital: %w", err)
	}

	raw, err := s.Cliente.Enviar(ctx, nddcargo.ProcessCodeRoteirizador, assinado, guid)
	if err != nil {
		return nddcargo.RespostaNdd{}, fmt.Errorf("erro na comunicação com a NDD Cargo: %w", err)
	}
	resposta := nddcargo.Classificar(raw)

	for tentativa := 0; resposta.Status == nddcargo.EmProcessamento && tentativa < roteirizadorMaxTentativas; tentativa++ {
		if err := s.dormir(ctx, roteirizadorIntervalo); err != nil {
			return resposta, err
		}
		raw, err = s.Cliente.ConsultarResultado(ctx, nddcargo.ProcessCodeRoteirizador, guid)
		if err != nil {
			log.Printf("emissao: consulta do roteirizador falhou guid=%s err=%v", guid, err)
			continue
		}
		resposta = nddcargo.Classificar(raw)
	}

	return resposta, nil
}

// montarWaypoints monta a sequência de pontos da rota: municípios da
// rota SemParar e, quando as entregas do pacote têm GPS, as coordenadas
// da primeira e da última entrega.
func (s *Service) montarWaypoints(ctx context.Context, codpac, rotaID int64) ([]nddcargo.Waypoint, string, error) {
	var waypoints []nddcargo.Waypoint
	rotaNome := ""

	if rotaID > 0 {
		if rota, err := s.Progress.GetRotaSemParar(ctx, rotaID); err == nil {
			rotaNome = rota.Nome
		}
		municipios, err := s.Progress.ListMunicipiosRota(ctx, rotaID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, "", err
		}
		for _, m := range municipios {
			waypoints = append(waypoints, nddcargo.Waypoint{
				Nome:       m.Nome,
				CodigoIbge: m.CodigoIbge.String,
				Tipo:       "municipio",
			})
		}
	}

	if len(waypoints) > 0 {
		entregas, err := s.Progress.ListEntregas(ctx, codpac)
		if err == nil && len(entregas) > 0 {
			if lat, ok := progress.DecodeGpsCoordinate(entregas[0].GpsLat.String); ok {
				if lon, ok := progress.DecodeGpsCoordinate(entregas[0].GpsLon.String); ok {
					waypoints[0].Latitude = lat
					waypoints[0].Longitude = lon
				}
			}
			ultima := entregas[len(entregas)-1]
			if lat, ok := progress.DecodeGpsCoordinate(ultima.GpsLat.String); ok {
				if lon, ok := progress.DecodeGpsCoordinate(ultima.GpsLon.String); ok {
					waypoints[len(waypoints)-1].Latitude = lat
					waypoints[len(waypoints)-1].Longitude = lon
				}
			}
		}
	}

	return waypoints, rotaNome, nil
}

// concluirEmissao fecha a emissão com sucesso. O que veio do passo
// interativo (praças, custo, distância) prevalece sobre o extraído da
// resposta: é o que o operador viu e aprovou.
func (s *Service) concluirEmissao(ctx context.Context, row db.VpoEmissoe, resposta nddcargo.RespostaNdd) db.VpoEmissoe {
	pracasFinais := resposta.Pracas
	custo := resposta.CustoTotal
	distancia := resposta.DistanciaKm
	tempo := resposta.TempoMinutos

	if row.TotalPracas > 0 && row.PracasPedagio.Valid {
		var armazenadas []nddcargo.PracaPedagio
		if json.Unmarshal(row.PracasPedagio.RawMessage, &armazenadas) == nil && len(armazenadas) > 0 {
			pracasFinais = armazenadas
		}
		if row.CustoTotal.Valid && row.CustoTotal.Float64 > 0 {
			custo = row.CustoTotal.Float64
		}
		if row.DistanciaKm.Valid && row.DistanciaKm.Float64 > 0 {
			distancia = row.DistanciaKm.Float64
		}
		if row.TempoMinutos.Valid && row.TempoMinutos.Int32 > 0 {
			tempo = int(row.TempoMinutos.Int32)
		}
	}

	atualizada, err := s.InterfaceService.MarkVpoEmissaoCompleted(ctx, db.MarkVpoEmissaoCompletedParams{
		Uuid:          row.Uuid,
		NddResponse:   marshalRaw(resposta),
		PracasPedagio: marshalRaw(pracasFinais),
		TotalPracas:   int32(len(pracasFinais)),
		CustoTotal:    nullFloat64(custo),
		DistanciaKm:   nullFloat64(distancia),
		TempoMinutos:  nullInt32(int32(tempo)),
	})
	if err != nil {
		log.Printf("emissao: falha ao concluir uuid=%s err=%v", row.Uuid, err)
		return row
	}

	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:     row.Uuid.String(),
		Codpac:   row.Codpac,
		Fase:     emissaolog.FaseSucesso,
		Status:   emissaolog.StatusSucesso,
		Mensagem: "protocolo " + resposta.Protocolo,
		Detalhes: map[string]interface{}{
			"protocolo":    resposta.Protocolo,
			"total_pracas": len(pracasFinais),
			"custo_total":  custo,
		},
	})
	s.notificar(atualizada, "", resposta.Protocolo)
	return atualizada
}

func (s *Service) falharEmissao(ctx context.Context, row db.VpoEmissoe, mensagem, codigo string, resposta *nddcargo.RespostaNdd) db.VpoEmissoe {
	arg := db.MarkVpoEmissaoFailedParams{
		Uuid:         row.Uuid,
		ErrorMessage: validation.NewNullString(mensagem),
		ErrorCode:    validation.NewNullString(codigo),
	}
	if resposta != nil {
		arg.NddResponse = marshalRaw(*resposta)
	}

	atualizada, err := s.InterfaceService.MarkVpoEmissaoFailed(ctx, arg)
	if err != nil {
		log.Printf("emissao: falha ao marcar erro uuid=%s err=%v", row.Uuid, err)
		return row
	}

	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:     row.Uuid.String(),
		Codpac:   row.Codpac,
		Fase:     emissaolog.FaseErro,
		Status:   emissaolog.StatusErro,
		Mensagem: mensagem,
		Detalhes: map[string]interface{}{"codigo": codigo},
	})
	s.notificar(atualizada, mensagem, "")
	return atualizada
}

func (s *Service) registrarFase(ctx context.Context, registro emissaolog.RegistroFase) {
	if s.Logs == nil {
		return
	}
	s.Logs.RegistrarFaseService(ctx, registro)
}

func (s *Service) registrarErro(ctx context.Context, emissaoUuid string, codpac int64, mensagem string) {
	s.registrarFase(ctx, emissaolog.RegistroFase{
		Uuid:     emissaoUuid,
		Codpac:   codpac,
		Fase:     emissaolog.FaseErro,
		Status:   emissaolog.StatusErro,
		Mensagem: mensagem,
	})
}

func (s *Service) notificar(row db.VpoEmissoe, mensagem, protocolo string) {
	if s.Notificar == nil {
		return
	}
	s.Notificar(StatusEvento{
		Uuid:      row.Uuid.String(),
		Codpac:    row.Codpac,
		Status:    row.Status,
		Mensagem:  mensagem,
		Protocolo: protocolo,
		Quando:    s.agora(),
	})
}

func (s *Service) lockEmissao(emissaoUuid string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emissaoLocks == nil {
		s.emissaoLocks = map[string]*sync.Mutex{}
	}
	lock, ok := s.emissaoLocks[emissaoUuid]
	if !ok {
		lock = &sync.Mutex{}
		s.emissaoLocks[emissaoUuid] = lock
	}
	return lock
}

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

func retryPermitido(codigo string) bool {
	return codigo == ErroTimeout || codigo == ErroLimitePolling || codigo == ErroNddCargo
}

func montarResultado(row db.VpoEmissoe, retryAfter int, mensagem string) ResultadoResponse {
	var emissao EmissaoResponse
	emissao.ParseFromEmissaoObject(row)
	return ResultadoResponse{
		Status:     row.Status,
		RetryAfter: retryAfter,
		Mensagem:   mensagem,
		Emissao:    emissao,
	}
}

func dormirPadrao(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func marshalRaw(v interface{}) pqtype.NullRawMessage {
	if v == nil {
		return pqtype.NullRawMessage{}
	}
	conteudo, err := json.Marshal(v)
	if err != nil {
		return pqtype.NullRawMessage{}
	}
	return pqtype.NullRawMessage{RawMessage: conteudo, Valid: true}
}

func nullFloat64(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v > 0}
}

func nullInt32(v int32) sql.NullInt32 {
	return sql.NullInt32{Int32: v, Valid: v > 0}
}
