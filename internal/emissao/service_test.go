package emissao

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	db "valepedagio/db/sqlc"
	"valepedagio/internal/emissaolog"
	"valepedagio/internal/nddcargo"
	"valepedagio/internal/pracas"
	"valepedagio/internal/progress"
	"valepedagio/internal/transportador"
	"valepedagio/validation"
)

var agoraTeste = time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)

const respostaNddSucesso = `<retEnvio><status>200</status><protocolo>351000012345</protocolo>` +
	`<pedagios><pedagio><codigo>102</codigo><nome>Praca BR-116 Sul</nome><valor>14,80</valor></pedagio></pedagios>` +
	`<distanciaKm>432,5</distanciaKm><tempoMinutos>380</tempoMinutos><valorTotal>14,80</valorTotal></retEnvio>`

const respostaNddFalha = `<retEnvio><status>500</status><ocorrencias>` +
	`<ocorrencia><codigo>778</codigo><tipo>erro</tipo><descricao>Veículo sem tag habilitada</descricao></ocorrencia>` +
	`</ocorrencias></retEnvio>`

const respostaNddProcessando = `<retEnvio><status>202</status></retEnvio>`

type fakeEmissaoRepo struct {
	rows  map[uuid.UUID]db.VpoEmissoe
	stats db.GetVpoEmissaoStatsRow
	agora time.Time
}

func newFakeEmissaoRepo() *fakeEmissaoRepo {
	return &fakeEmissaoRepo{rows: map[uuid.UUID]db.VpoEmissoe{}, agora: agoraTeste}
}

func (f *fakeEmissaoRepo) CreateVpoEmissao(ctx context.Context, arg db.CreateVpoEmissaoParams) (db.VpoEmissoe, error) {
	row := db.VpoEmissoe{
		Uuid:           arg.Uuid,
		Codpac:         arg.Codpac,
		Codtrn:         arg.Codtrn,
		Codmot:         arg.Codmot,
		RotaID:         arg.RotaID,
		RotaNome:       arg.RotaNome,
		Waypoints:      arg.Waypoints,
		TotalWaypoints: arg.TotalWaypoints,
		VpoData:        arg.VpoData,
		FontesDados:    arg.FontesDados,
		ScoreQualidade: arg.ScoreQualidade,
		Status:         arg.Status,
		NddRequestXml:  arg.NddRequestXml,
		PracasPedagio:  arg.PracasPedagio,
		TotalPracas:    arg.TotalPracas,
		CustoTotal:     arg.CustoTotal,
		DistanciaKm:    arg.DistanciaKm,
		TempoMinutos:   arg.TempoMinutos,
		UsuarioID:      arg.UsuarioID,
		IpAddress:      arg.IpAddress,
		UserAgent:      arg.UserAgent,
		CreatedAt:      f.agora,
	}
	f.rows[arg.Uuid] = row
	return row, nil
}

func (f *fakeEmissaoRepo) GetVpoEmissaoByUuid(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	row, ok := f.rows[argUuid]
	if !ok {
		return db.VpoEmissoe{}, sql.ErrNoRows
	}
	return row, nil
}

func (f *fakeEmissaoRepo) ListVpoEmissoes(ctx context.Context, arg db.ListVpoEmissoesParams) ([]db.VpoEmissoe, error) {
	var lista []db.VpoEmissoe
	for _, row := range f.rows {
		lista = append(lista, row)
	}
	return lista, nil
}

func (f *fakeEmissaoRepo) ListVpoEmissoesByCodpac(ctx context.Context, codpac int64) ([]db.VpoEmissoe, error) {
	var lista []db.VpoEmissoe
	for _, row := range f.rows {
		if row.Codpac == codpac {
			lista = append(lista, row)
		}
	}
	return lista, nil
}

func (f *fakeEmissaoRepo) GetVpoEmissaoStats(ctx context.Context, arg db.GetVpoEmissaoStatsParams) (db.GetVpoEmissaoStatsRow, error) {
	return f.stats, nil
}

func (f *fakeEmissaoRepo) MarkVpoEmissaoProcessing(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	row := f.rows[argUuid]
	row.Status = StatusProcessing
	row.RequestedAt = sql.NullTime{Time: f.agora, Valid: true}
	f.rows[argUuid] = row
	return row, nil
}

func (f *fakeEmissaoRepo) MarkVpoEmissaoCompleted(ctx context.Context, arg db.MarkVpoEmissaoCompletedParams) (db.VpoEmissoe, error) {
	row := f.rows[arg.Uuid]
	row.Status = StatusCompleted
	row.NddResponse = arg.NddResponse
	row.PracasPedagio = arg.PracasPedagio
	row.TotalPracas = arg.TotalPracas
	row.CustoTotal = arg.CustoTotal
	row.DistanciaKm = arg.DistanciaKm
	row.TempoMinutos = arg.TempoMinutos
	row.CompletedAt = sql.NullTime{Time: f.agora, Valid: true}
	f.rows[arg.Uuid] = row
	return row, nil
}

func (f *fakeEmissaoRepo) MarkVpoEmissaoFailed(ctx context.Context, arg db.MarkVpoEmissaoFailedParams) (db.VpoEmissoe, error) {
	row := f.rows[arg.Uuid]
	row.Status = StatusFailed
	row.ErrorMessage = arg.ErrorMessage
	row.ErrorCode = arg.ErrorCode
	row.NddResponse = arg.NddResponse
	row.FailedAt = sql.NullTime{Time: f.agora, Valid: true}
	f.rows[arg.Uuid] = row
	return row, nil
}

func (f *fakeEmissaoRepo) MarkVpoEmissaoCancelled(ctx context.Context, arg db.MarkVpoEmissaoCancelledParams) (db.VpoEmissoe, error) {
	row := f.rows[arg.Uuid]
	row.Status = StatusCancelled
	row.CancellationReason = arg.CancellationReason
	row.CancelledAt = sql.NullTime{Time: f.agora, Valid: true}
	f.rows[arg.Uuid] = row
	return row, nil
}

func (f *fakeEmissaoRepo) RegisterVpoEmissaoPolling(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	row := f.rows[argUuid]
	row.TentativasPolling++
	row.PolledAt = sql.NullTime{Time: f.agora, Valid: true}
	f.rows[argUuid] = row
	return row, nil
}

func (f *fakeEmissaoRepo) ResetVpoEmissaoForRetry(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	row := f.rows[argUuid]
	row.Status = StatusProcessing
	row.ErrorMessage = sql.NullString{}
	row.ErrorCode = sql.NullString{}
	row.TentativasPolling = 0
	row.RequestedAt = sql.NullTime{Time: f.agora, Valid: true}
	row.PolledAt = sql.NullTime{}
	row.FailedAt = sql.NullTime{}
	f.rows[argUuid] = row
	return row, nil
}

func (f *fakeEmissaoRepo) SetVpoEmissaoCancellationNdd(ctx context.Context, arg db.SetVpoEmissaoCancellationNddParams) (db.VpoEmissoe, error) {
	row := f.rows[arg.Uuid]
	row.Status = StatusCancelled
	row.CancellationReason = arg.CancellationReason
	row.NddCancellationRequest = arg.NddCancellationRequest
	row.NddCancellationResponse = arg.NddCancellationResponse
	row.CancelledAt = sql.NullTime{Time: f.agora, Valid: true}
	f.rows[arg.Uuid] = row
	return row, nil
}

type fakeProgressRepo struct {
	pacote     progress.Pacote
	veiculo    progress.Veiculo
	tag        string
	rota       progress.RotaSemParar
	municipios []progress.MunicipioRota
	entregas   []progress.Entrega
	semPacote  bool
}

func (f *fakeProgressRepo) GetPacote(ctx context.Context, codpac int64) (progress.Pacote, error) {
	if f.semPacote {
		return progress.Pacote{}, sql.ErrNoRows
	}
	return f.pacote, nil
}

func (f *fakeProgressRepo) GetTransporte(ctx context.Context, codtrn int64) (progress.Transporte, error) {
	return progress.Transporte{}, sql.ErrNoRows
}

func (f *fakeProgressRepo) GetDescricaoTipoVeiculo(ctx context.Context, tipcam int64) (string, error) {
	return "", sql.ErrNoRows
}

func (f *fakeProgressRepo) GetMotorista(ctx context.Context, codtrn, codmot int64) (progress.Motorista, error) {
	return progress.Motorista{}, sql.ErrNoRows
}

func (f *fakeProgressRepo) GetPrimeiroMotorista(ctx context.Context, codtrn int64) (progress.Motorista, error) {
	return progress.Motorista{}, sql.ErrNoRows
}

func (f *fakeProgressRepo) GetVeiculo(ctx context.Context, codtrn int64, numpla string) (progress.Veiculo, error) {
	if f.veiculo.Numpla == "" {
		return progress.Veiculo{}, sql.ErrNoRows
	}
	return f.veiculo, nil
}

func (f *fakeProgressRepo) GetTagSemParar(ctx context.Context, numpla string) (string, error) {
	if f.tag == "" {
		return "", sql.ErrNoRows
	}
	return f.tag, nil
}

func (f *fakeProgressRepo) GetRotaSemParar(ctx context.Context, rotaID int64) (progress.RotaSemParar, error) {
	if f.rota.ID == 0 {
		return progress.RotaSemParar{}, sql.ErrNoRows
	}
	return f.rota, nil
}

func (f *fakeProgressRepo) ListMunicipiosRota(ctx context.Context, rotaID int64) ([]progress.MunicipioRota, error) {
	return f.municipios, nil
}

func (f *fakeProgressRepo) ListEntregas(ctx context.Context, codpac int64) ([]progress.Entrega, error) {
	return f.entregas, nil
}

func (f *fakeProgressRepo) GetBairroNome(ctx context.Context, codbai int64) (string, error) {
	return "", sql.ErrNoRows
}

func (f *fakeProgressRepo) GetMunicipioNome(ctx context.Context, codmun int64) (string, error) {
	return "", sql.ErrNoRows
}

func (f *fakeProgressRepo) GetEstadoSigla(ctx context.Context, codest int64) (string, error) {
	return "", sql.ErrNoRows
}

type fakeTransportadorService struct {
	perfil transportador.TransportadorResponse
	erro   error
	syncs  []transportador.SincronizarDto
}

func (f *fakeTransportadorService) SincronizarService(ctx context.Context, data transportador.SincronizarDto) (transportador.TransportadorResponse, error) {
	f.syncs = append(f.syncs, data)
	return f.perfil, f.erro
}

func (f *fakeTransportadorService) GetTransportadorService(ctx context.Context, codtrn, codmot int64) (transportador.TransportadorResponse, error) {
	return f.perfil, f.erro
}

func (f *fakeTransportadorService) AtualizarManualService(ctx context.Context, data transportador.AtualizarManualDto) (transportador.TransportadorResponse, error) {
	return f.perfil, f.erro
}

func (f *fakeTransportadorService) SincronizarLoteService(ctx context.Context, request transportador.SincronizarLoteRequest) (transportador.SincronizarLoteResponse, error) {
	return transportador.SincronizarLoteResponse{}, f.erro
}

func (f *fakeTransportadorService) RegistrarUsoService(ctx context.Context, codtrn, codmot int64) error {
	return f.erro
}

type fakePracasService struct{}

func (f *fakePracasService) EnriquecerPracasService(ctx context.Context, lista []nddcargo.PracaPedagio) []pracas.PracaEnriquecida {
	enriquecidas := make([]pracas.PracaEnriquecida, 0, len(lista))
	for _, p := range lista {
		enriquecidas = append(enriquecidas, pracas.PracaEnriquecida{
			Codigo: p.Codigo,
			Nome:   p.Nome,
			Valor:  p.Valor,
			Cidade: "REGISTRO",
			Uf:     "SP",
		})
	}
	return enriquecidas
}

type fakeLogService struct {
	registros []emissaolog.RegistroFase
}

func (f *fakeLogService) RegistrarFaseService(ctx context.Context, registro emissaolog.RegistroFase) {
	f.registros = append(f.registros, registro)
}

func (f *fakeLogService) ListarLogsService(ctx context.Context, filtro emissaolog.FiltroLogsDto) (emissaolog.ListaLogsResponse, error) {
	return emissaolog.ListaLogsResponse{}, nil
}

func (f *fakeLogService) ListarPorUuidService(ctx context.Context, emissaoUuid string) ([]emissaolog.LogResponse, error) {
	return nil, nil
}

func (f *fakeLogService) EstatisticasService(ctx context.Context, de, ate string) (emissaolog.EstatisticasResponse, error) {
	return emissaolog.EstatisticasResponse{}, nil
}

func (f *fakeLogService) fases() []string {
	nomes := make([]string, 0, len(f.registros))
	for _, r := range f.registros {
		nomes = append(nomes, r.Fase)
	}
	return nomes
}

type stubAssinador struct {
	erro error
}

func (s *stubAssinador) SignXml(xmlContent, referenceID string) (string, error) {
	if s.erro != nil {
		return "", s.erro
	}
	return xmlContent + "<Signature/>", nil
}

type chamadaNdd struct {
	processCode int
	guid        string
}

type stubClienteNdd struct {
	envios    []chamadaNdd
	consultas []chamadaNdd

	respostaEnvio    string
	erroEnvio        error
	respostasPolling []string
	erroPolling      error
}

func (s *stubClienteNdd) Enviar(ctx context.Context, processCode int, xmlAssinado, guid string) (string, error) {
	s.envios = append(s.envios, chamadaNdd{processCode, guid})
	return s.respostaEnvio, s.erroEnvio
}

func (s *stubClienteNdd) ConsultarResultado(ctx context.Context, processCode int, guid string) (string, error) {
	s.consultas = append(s.consultas, chamadaNdd{processCode, guid})
	if s.erroPolling != nil {
		return "", s.erroPolling
	}
	if len(s.respostasPolling) == 0 {
		return "", nil
	}
	resposta := s.respostasPolling[0]
	if len(s.respostasPolling) > 1 {
		s.respostasPolling = s.respostasPolling[1:]
	}
	return resposta, nil
}

type cenario struct {
	service *Service
	repo    *fakeEmissaoRepo
	prog    *fakeProgressRepo
	transp  *fakeTransportadorService
	logs    *fakeLogService
	cliente *stubClienteNdd
	eventos []StatusEvento
}

func novoCenario() *cenario {
	c := &cenario{
		repo: newFakeEmissaoRepo(),
		prog: &fakeProgressRepo{
			pacote: progress.Pacote{
				Codpac: 4821,
				Codtrn: 310,
				Codmot: sql.NullInt64{Int64: 12, Valid: true},
				Numpla: sql.NullString{String: "ABC1234", Valid: true},
			},
			veiculo: progress.Veiculo{
				Numpla:  "ABC1234",
				Qtdeixo: sql.NullInt32{Int32: 3, Valid: true},
			},
			tag:  "TAG-00042",
			rota: progress.RotaSemParar{ID: 7, Nome: "SP Interior"},
			municipios: []progress.MunicipioRota{
				{Codmun: 1, Nome: "REGISTRO", CodigoIbge: sql.NullString{String: "3542602", Valid: true}, Uf: sql.NullString{String: "SP", Valid: true}},
				{Codmun: 2, Nome: "CURITIBA", CodigoIbge: sql.NullString{String: "4106902", Valid: true}, Uf: sql.NullString{String: "PR", Valid: true}},
			},
			entregas: []progress.Entrega{
				{Numseq: 1, GpsLat: sql.NullString{String: "244970000", Valid: true}, GpsLon: sql.NullString{String: "478440000", Valid: true}},
				{Numseq: 2, GpsLat: sql.NullString{String: "254280000", Valid: true}, GpsLon: sql.NullString{String: "492730000", Valid: true}},
			},
		},
		transp: &fakeTransportadorService{
			perfil: transportador.TransportadorResponse{
				DadosVpo: transportador.DadosVpo{
					Codtrn:        310,
					Codmot:        12,
					CpfCnpj:       "52998224725",
					AnttRntrc:     "123456",
					AnttNome:      "JOSE DA SILVA TRANSPORTES",
					CondutorNome:  "JOSE DA SILVA",
					Placa:         "ABC1234",
					VeiculoTipo:   "TRUCK",
					VeiculoModelo: "VOLVO FH 460",
				},
				ScoreQualidade: 100,
			},
		},
		logs:    &fakeLogService{},
		cliente: &stubClienteNdd{respostaEnvio: respostaNddSucesso},
	}

	builder := nddcargo.NewBuilder("12345678000190", "TOKEN-HOMOLOG", "", "")
	c.service = NewEmissaoService(c.repo, c.prog, c.transp, &fakePracasService{}, c.logs, builder, &stubAssinador{}, c.cliente, 50)
	c.service.agora = func() time.Time { return agoraTeste }
	c.service.dormir = func(ctx context.Context, d time.Duration) error { return nil }
	c.service.Notificar = func(evento StatusEvento) { c.eventos = append(c.eventos, evento) }
	return c
}

func (c *cenario) semearProcessando(t *testing.T) uuid.UUID {
	t.Helper()
	emissaoUuid := uuid.New()
	c.repo.rows[emissaoUuid] = db.VpoEmissoe{
		Uuid:        emissaoUuid,
		Codpac:      4821,
		Codtrn:      310,
		Status:      StatusProcessing,
		RequestedAt: sql.NullTime{Time: agoraTeste.Add(-2 * time.Minute), Valid: true},
	}
	return emissaoUuid
}

func TestIniciarEmissaoConcluidaNaResposta(t *testing.T) {
	c := novoCenario()

	resultado, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 4821}, Auditoria{UsuarioID: 9})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, resultado.Status)
	assert.Equal(t, "351000012345", resultado.Protocolo)
	assert.Equal(t, int64(4821), resultado.Codpac)

	require.Len(t, c.cliente.envios, 1)
	assert.Equal(t, nddcargo.ProcessCodeEmissaoVpo, c.cliente.envios[0].processCode)

	// Fases registradas na ordem do pipeline.
	assert.Equal(t, []string{
		emissaolog.FaseIniciado,
		emissaolog.FaseDadosSincronizados,
		emissaolog.FaseXmlGerado,
		emissaolog.FaseAssinado,
		emissaolog.FaseEnviado,
		emissaolog.FaseResposta,
		emissaolog.FaseSucesso,
	}, c.logs.fases())

	require.NotEmpty(t, c.eventos)
	assert.Equal(t, StatusCompleted, c.eventos[len(c.eventos)-1].Status)
	assert.Equal(t, "351000012345", c.eventos[len(c.eventos)-1].Protocolo)
}

func TestIniciarEmissaoFicaProcessando(t *testing.T) {
	c := novoCenario()
	c.cliente.respostaEnvio = respostaNddProcessando

	resultado, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 4821}, Auditoria{})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessing, resultado.Status)
	row := c.repo.rows[uuid.MustParse(resultado.Uuid)]
	assert.True(t, row.RequestedAt.Valid)
}

func TestIniciarEmissaoPerfilIncompleto(t *testing.T) {
	c := novoCenario()
	c.transp.perfil.CamposFaltantes = []transportador.CampoFaltante{
		{Campo: "antt_rntrc", Categoria: "obrigatorio"},
		{Campo: "condutor_nome_mae", Categoria: "obrigatorio"},
	}

	_, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 4821}, Auditoria{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidacaoIncompleta)
	assert.Contains(t, err.Error(), "antt_rntrc")

	// A recusa carrega o relatório de pendências para o corpo do 422.
	var recusa *ErroValidacao
	require.ErrorAs(t, err, &recusa)
	assert.Equal(t, int64(4821), recusa.Relatorio.Codpac)
	assert.False(t, recusa.Relatorio.Pronto)
	require.Len(t, recusa.Relatorio.CamposFaltantes, 2)
	assert.Equal(t, "antt_rntrc", recusa.Relatorio.CamposFaltantes[0].Campo)
	assert.Equal(t, "condutor_nome_mae", recusa.Relatorio.CamposFaltantes[1].Campo)
	// Nada enviado nem persistido.
	assert.Empty(t, c.cliente.envios)
	assert.Empty(t, c.repo.rows)
}

func TestIniciarEmissaoBypassValidacao(t *testing.T) {
	c := novoCenario()
	c.transp.perfil.CamposFaltantes = []transportador.CampoFaltante{{Campo: "antt_rntrc"}}

	resultado, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 4821, BypassValidacao: true}, Auditoria{})

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, resultado.Status)
}

func TestIniciarEmissaoPacoteInexistente(t *testing.T) {
	c := novoCenario()
	c.prog.semPacote = true

	_, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 999}, Auditoria{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pacote não encontrado")
}

func TestIniciarEmissaoFalhaNaAssinatura(t *testing.T) {
	c := novoCenario()
	assinador := &stubAssinador{erro: errors.New("certificado digital: arquivo pfx não encontrado")}
	c.service.Assinador = assinador

	_, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 4821}, Auditoria{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "assinatura digital")
	assert.Empty(t, c.cliente.envios)
	assert.Empty(t, c.repo.rows)
}

func TestIniciarEmissaoErroDeComunicacao(t *testing.T) {
	c := novoCenario()
	c.cliente.respostaEnvio = ""
	c.cliente.erroEnvio = errors.New("connection refused")

	resultado, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 4821}, Auditoria{})

	// A emissão existe e ficou como falha rastreável, não vira 500.
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, resultado.Status)
	assert.Equal(t, ErroComunicacao, resultado.ErrorCode)
}

func TestIniciarEmissaoPracasDoFrontendPrevalecem(t *testing.T) {
	c := novoCenario()
	pracasFrontend := []nddcargo.PracaPedagio{
		{Codigo: "900", Nome: "Praca Escolhida", Valor: 22.10},
	}

	resultado, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{
		Codpac:      4821,
		Pracas:      pracasFrontend,
		CustoTotal:  22.10,
		DistanciaKm: 410,
	}, Auditoria{})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, resultado.Status)
	require.Len(t, resultado.Pracas, 1)
	assert.Equal(t, "Praca Escolhida", resultado.Pracas[0].Nome)
	assert.InDelta(t, 22.10, resultado.CustoTotal, 0.001)
	assert.InDelta(t, 410.0, resultado.DistanciaKm, 0.001)
}

func TestConsultarResultadoConcluido(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	c.cliente.respostasPolling = []string{respostaNddSucesso}

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), false)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, resultado.Status)
	assert.Zero(t, resultado.RetryAfter)
	assert.Equal(t, "351000012345", resultado.Emissao.Protocolo)
	require.Len(t, c.cliente.consultas, 1)
	assert.Equal(t, nddcargo.ProcessCodeConsultaVpo, c.cliente.consultas[0].processCode)
	assert.Equal(t, emissaoUuid.String(), c.cliente.consultas[0].guid)
}

func TestConsultarResultadoAindaProcessando(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	c.cliente.respostasPolling = []string{respostaNddProcessando}

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), false)
	require.NoError(t, err)

	assert.Equal(t, StatusProcessing, resultado.Status)
	assert.Equal(t, 5, resultado.RetryAfter)
	assert.Equal(t, int32(1), c.repo.rows[emissaoUuid].TentativasPolling)
}

func TestConsultarResultadoFalhaNdd(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	c.cliente.respostasPolling = []string{respostaNddFalha}

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), false)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, resultado.Status)
	assert.Equal(t, ErroNddCargo, resultado.Emissao.ErrorCode)
	assert.Contains(t, resultado.Emissao.ErrorMessage, "Veículo sem tag habilitada")
}

func TestConsultarResultadoThrottleDePolling(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.PolledAt = sql.NullTime{Time: agoraTeste.Add(-2 * time.Second), Valid: true}
	c.repo.rows[emissaoUuid] = row

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), false)
	require.NoError(t, err)

	assert.Equal(t, StatusProcessing, resultado.Status)
	assert.Equal(t, 5, resultado.RetryAfter)
	// Dentro do intervalo mínimo não vai à NDD.
	assert.Empty(t, c.cliente.consultas)
}

func TestConsultarResultadoTimeout(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.RequestedAt = sql.NullTime{Time: agoraTeste.Add(-11 * time.Minute), Valid: true}
	c.repo.rows[emissaoUuid] = row

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), false)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, resultado.Status)
	assert.Equal(t, ErroTimeout, resultado.Emissao.ErrorCode)
	assert.Empty(t, c.cliente.consultas)
}

func TestConsultarResultadoLimiteDePolling(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.TentativasPolling = 50
	c.repo.rows[emissaoUuid] = row

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), false)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, resultado.Status)
	assert.Equal(t, ErroLimitePolling, resultado.Emissao.ErrorCode)
}

func TestConsultarResultadoForceRetry(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.Status = StatusFailed
	row.ErrorCode = validation.NewNullString(ErroTimeout)
	row.TentativasPolling = 50
	c.repo.rows[emissaoUuid] = row
	c.cliente.respostasPolling = []string{respostaNddSucesso}

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), true)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, resultado.Status)
	require.Len(t, c.cliente.consultas, 1)
}

func TestConsultarResultadoForceRetryZeraContadorDePolling(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.Status = StatusFailed
	row.ErrorCode = validation.NewNullString(ErroLimitePolling)
	row.TentativasPolling = 50
	row.PolledAt = sql.NullTime{Time: agoraTeste.Add(-time.Minute), Valid: true}
	c.repo.rows[emissaoUuid] = row
	c.cliente.respostasPolling = []string{respostaNddProcessando}

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), true)
	require.NoError(t, err)

	// A nova tentativa parte de contadores zerados: uma consulta sai de fato,
	// em vez de reestourar o limite sem falar com a NDD.
	require.Len(t, c.cliente.consultas, 1)
	assert.Equal(t, StatusProcessing, resultado.Status)
	assert.Equal(t, int32(1), c.repo.rows[emissaoUuid].TentativasPolling)
}

func TestConsultarResultadoForceRetryCodigoNaoElegivel(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.Status = StatusFailed
	row.ErrorCode = validation.NewNullString(ErroCertificado)
	c.repo.rows[emissaoUuid] = row

	resultado, err := c.service.ConsultarResultadoService(context.Background(), emissaoUuid.String(), true)
	require.NoError(t, err)

	// Erros de certificado não se resolvem repetindo: segue terminal.
	assert.Equal(t, StatusFailed, resultado.Status)
	assert.Empty(t, c.cliente.consultas)
}

func TestConsultarResultadoEmissaoInexistente(t *testing.T) {
	c := novoCenario()

	_, err := c.service.ConsultarResultadoService(context.Background(), uuid.NewString(), false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "não encontrada")
}

func TestCancelarEmissaoProcessando(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)

	resultado, err := c.service.CancelarService(context.Background(), emissaoUuid.String(), "pacote remontado")
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, resultado.Status)
	assert.Contains(t, c.logs.fases(), emissaolog.FaseCancelado)
}

func TestCancelarEmissaoJaCancelada(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.Status = StatusCancelled
	c.repo.rows[emissaoUuid] = row

	resultado, err := c.service.CancelarService(context.Background(), emissaoUuid.String(), "")

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resultado.Status)
}

func TestCancelarEmissaoConcluidaExigeNdd(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.Status = StatusCompleted
	c.repo.rows[emissaoUuid] = row

	_, err := c.service.CancelarService(context.Background(), emissaoUuid.String(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelamento na NDD")
}

func TestCancelarNdd(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.Status = StatusCompleted
	c.repo.rows[emissaoUuid] = row
	c.cliente.respostaEnvio = `<retCancelamento><status>200</status><protocolo>351000099999</protocolo></retCancelamento>`

	resultado, err := c.service.CancelarNddService(context.Background(), emissaoUuid.String(), CancelarNddRequest{
		NdvpNumero:         "000123456789",
		NdvpCodVerificador: "4821",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, resultado.Status)
	require.Len(t, c.cliente.envios, 1)
	assert.Equal(t, nddcargo.ProcessCodeCancelamento, c.cliente.envios[0].processCode)

	atual := c.repo.rows[emissaoUuid]
	assert.True(t, atual.NddCancellationRequest.Valid)
	assert.True(t, atual.NddCancellationResponse.Valid)
}

func TestCancelarNddRecusado(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)
	row := c.repo.rows[emissaoUuid]
	row.Status = StatusCompleted
	c.repo.rows[emissaoUuid] = row
	c.cliente.respostaEnvio = respostaNddFalha

	_, err := c.service.CancelarNddService(context.Background(), emissaoUuid.String(), CancelarNddRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recusou o cancelamento")
	assert.Equal(t, StatusCompleted, c.repo.rows[emissaoUuid].Status)
}

func TestCancelarNddSomenteConcluida(t *testing.T) {
	c := novoCenario()
	emissaoUuid := c.semearProcessando(t)

	_, err := c.service.CancelarNddService(context.Background(), emissaoUuid.String(), CancelarNddRequest{})

	require.Error(t, err)
	assert.Empty(t, c.cliente.envios)
}

func TestValidarPacote(t *testing.T) {
	c := novoCenario()
	c.transp.perfil.CamposFaltantes = []transportador.CampoFaltante{{Campo: "condutor_rg"}}
	c.transp.perfil.ScoreQualidade = 90

	resultado, err := c.service.ValidarPacoteService(context.Background(), 4821)
	require.NoError(t, err)

	assert.False(t, resultado.Pronto)
	assert.Equal(t, int32(90), resultado.ScoreQualidade)
	require.Len(t, c.transp.syncs, 1)
	assert.Equal(t, int64(310), c.transp.syncs[0].Codtrn)
	assert.Equal(t, "ABC1234", c.transp.syncs[0].Placa)
}

func TestWaypointsPacote(t *testing.T) {
	c := novoCenario()

	resultado, err := c.service.WaypointsPacoteService(context.Background(), 4821, 7)
	require.NoError(t, err)

	assert.Equal(t, "SP Interior", resultado.RotaNome)
	require.Len(t, resultado.Waypoints, 2)
	assert.Equal(t, "3542602", resultado.Waypoints[0].CodigoIbge)
	// GPS da primeira e da última entrega anexados às pontas da rota.
	assert.InDelta(t, -24.497, resultado.Waypoints[0].Latitude, 0.001)
	assert.InDelta(t, -25.428, resultado.Waypoints[1].Latitude, 0.001)
	assert.NotZero(t, resultado.Waypoints[1].Longitude)
}

func TestIniciarEmissaoRoteirizadorAutomatico(t *testing.T) {
	c := novoCenario()

	resultado, err := c.service.IniciarEmissaoService(context.Background(), IniciarEmissaoRequest{Codpac: 4821, RotaID: 7}, Auditoria{})
	require.NoError(t, err)

	// Com rota e tag mas sem praças do frontend, o roteirizador da NDD
	// roda antes da emissão.
	require.Len(t, c.cliente.envios, 2)
	assert.Equal(t, nddcargo.ProcessCodeRoteirizador, c.cliente.envios[0].processCode)
	assert.Equal(t, nddcargo.ProcessCodeEmissaoVpo, c.cliente.envios[1].processCode)

	assert.Equal(t, StatusCompleted, resultado.Status)
	assert.Equal(t, int32(2), resultado.TotalWaypoints)
	require.Len(t, resultado.Pracas, 1)
	assert.Equal(t, "Praca BR-116 Sul", resultado.Pracas[0].Nome)
	assert.InDelta(t, 14.80, resultado.CustoTotal, 0.001)
}

func TestConsultarRoteirizadorComPolling(t *testing.T) {
	c := novoCenario()
	c.cliente.respostaEnvio = respostaNddProcessando
	c.cliente.respostasPolling = []string{respostaNddProcessando, respostaNddSucesso}

	resultado, err := c.service.ConsultarRoteirizadorService(context.Background(), ConsultarRoteirizadorRequest{
		Waypoints: []nddcargo.Waypoint{
			{Nome: "REGISTRO", CodigoIbge: "3542602"},
			{Nome: "CURITIBA", CodigoIbge: "4106902"},
		},
		CategoriaPedagio: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, "concluido", resultado.Status)
	require.Len(t, resultado.Pracas, 1)
	assert.Equal(t, "Praca BR-116 Sul", resultado.Pracas[0].Nome)
	assert.Equal(t, "REGISTRO", resultado.Pracas[0].Cidade)
	assert.InDelta(t, 14.80, resultado.CustoTotal, 0.001)

	require.Len(t, c.cliente.envios, 1)
	assert.Equal(t, nddcargo.ProcessCodeRoteirizador, c.cliente.envios[0].processCode)
	assert.Len(t, c.cliente.consultas, 2)
}

func TestConsultarRoteirizadorSemWaypoints(t *testing.T) {
	c := novoCenario()

	_, err := c.service.ConsultarRoteirizadorService(context.Background(), ConsultarRoteirizadorRequest{})

	require.Error(t, err)
	assert.Empty(t, c.cliente.envios)
}

func TestEstatisticasEmissoes(t *testing.T) {
	c := novoCenario()
	c.repo.stats = db.GetVpoEmissaoStatsRow{
		Total:              80,
		Concluidas:         60,
		Falhas:             12,
		Canceladas:         8,
		TempoMedioSegundos: 42.7,
	}

	resultado, err := c.service.EstatisticasService(context.Background(), "2026-08-01", "2026-08-20")
	require.NoError(t, err)

	assert.Equal(t, int64(80), resultado.Total)
	assert.InDelta(t, 75.0, resultado.TaxaSucesso, 0.01)
	assert.InDelta(t, 42.7, resultado.TempoMedioSegundos, 0.01)
}
