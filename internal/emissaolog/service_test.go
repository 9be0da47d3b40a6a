package emissaolog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	db "valepedagio/db/sqlc"
)

type fakeLogRepo struct {
	criados    []db.CreateVpoEmissaoLogParams
	listParams db.ListVpoEmissaoLogsParams
	rows       []db.VpoEmissaoLog
	stats      db.GetVpoEmissaoLogStatsRow
	erro       error
}

func (f *fakeLogRepo) CreateVpoEmissaoLog(ctx context.Context, arg db.CreateVpoEmissaoLogParams) (db.VpoEmissaoLog, error) {
	if f.erro != nil {
		return db.VpoEmissaoLog{}, f.erro
	}
	f.criados = append(f.criados, arg)
	return db.VpoEmissaoLog{ID: int64(len(f.criados)), EmissaoUuid: arg.EmissaoUuid, Codpac: arg.Codpac, Fase: arg.Fase, Status: arg.Status}, nil
}

func (f *fakeLogRepo) ListVpoEmissaoLogs(ctx context.Context, arg db.ListVpoEmissaoLogsParams) ([]db.VpoEmissaoLog, error) {
	f.listParams = arg
	return f.rows, f.erro
}

func (f *fakeLogRepo) ListVpoEmissaoLogsByUuid(ctx context.Context, emissaoUuid uuid.UUID) ([]db.VpoEmissaoLog, error) {
	return f.rows, f.erro
}

func (f *fakeLogRepo) GetVpoEmissaoLogStats(ctx context.Context, arg db.GetVpoEmissaoLogStatsParams) (db.GetVpoEmissaoLogStatsRow, error) {
	return f.stats, f.erro
}

func newLogServiceForTest(repo *fakeLogRepo) *Service {
	s := NewEmissaoLogService(repo, "bucket-auditoria")
	s.ArquivarXml = func(uuid, fase string, xml []byte, bucket string) (string, error) {
		return "https://s3/" + bucket + "/" + uuid + "/" + fase + ".xml", nil
	}
	s.agora = func() time.Time {
		return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestRegistrarFaseComXml(t *testing.T) {
	repo := &fakeLogRepo{}
	s := newLogServiceForTest(repo)
	emissaoUuid := uuid.NewString()

	s.RegistrarFaseService(context.Background(), RegistroFase{
		Uuid:       emissaoUuid,
		Codpac:     4821,
		Fase:       FaseEnviado,
		Mensagem:   "emissão enviada à NDD",
		RequestXml: []byte("<doc></doc>"),
		Detalhes:   map[string]interface{}{"process_code": 2019},
		Duracao:    1200 * time.Millisecond,
	})

	require.Len(t, repo.criados, 1)
	criado := repo.criados[0]
	assert.Equal(t, emissaoUuid, criado.EmissaoUuid.String())
	assert.Equal(t, int64(4821), criado.Codpac)
	assert.Equal(t, FaseEnviado, criado.Fase)
	// Status vazio vira info.
	assert.Equal(t, StatusInfo, criado.Status)
	assert.Equal(t, "emissão enviada à NDD", criado.Mensagem.String)
	assert.Equal(t, "https://s3/bucket-auditoria/"+emissaoUuid+"/enviado_request.xml", criado.RequestXmlUrl.String)
	assert.False(t, criado.ResponseXmlUrl.Valid)
	assert.True(t, criado.Detalhes.Valid)
	assert.JSONEq(t, `{"process_code":2019}`, string(criado.Detalhes.RawMessage))
	assert.Equal(t, int64(1200), criado.DuracaoMs.Int64)
}

func TestRegistrarFaseUuidInvalidoNaoGrava(t *testing.T) {
	repo := &fakeLogRepo{}
	s := newLogServiceForTest(repo)

	s.RegistrarFaseService(context.Background(), RegistroFase{Uuid: "nao-e-uuid", Fase: FaseIniciado})

	assert.Empty(t, repo.criados)
}

// Falha no S3 não impede a gravação do log.
func TestRegistrarFaseS3Indisponivel(t *testing.T) {
	repo := &fakeLogRepo{}
	s := newLogServiceForTest(repo)
	s.ArquivarXml = func(uuid, fase string, xml []byte, bucket string) (string, error) {
		return "", errors.New("s3 fora do ar")
	}

	s.RegistrarFaseService(context.Background(), RegistroFase{
		Uuid:       uuid.NewString(),
		Fase:       FaseXmlGerado,
		RequestXml: []byte("<doc></doc>"),
	})

	require.Len(t, repo.criados, 1)
	assert.False(t, repo.criados[0].RequestXmlUrl.Valid)
}

func TestListarLogsPaginacaoPadrao(t *testing.T) {
	repo := &fakeLogRepo{}
	s := newLogServiceForTest(repo)

	resultado, err := s.ListarLogsService(context.Background(), FiltroLogsDto{Status: StatusErro})
	require.NoError(t, err)

	assert.Equal(t, int32(1), resultado.Page)
	assert.Equal(t, int32(perPagePadrao), resultado.PerPage)
	assert.Equal(t, StatusErro, repo.listParams.Status)
	assert.Equal(t, int32(0), repo.listParams.Off)
	assert.Equal(t, int32(perPagePadrao), repo.listParams.Lim)
	// Sem datas: últimos 30 dias.
	assert.Equal(t, time.Date(2026, 7, 21, 12, 0, 0, 0, time.UTC), repo.listParams.De)
}

func TestListarLogsPeriodoExplicito(t *testing.T) {
	repo := &fakeLogRepo{}
	s := newLogServiceForTest(repo)

	_, err := s.ListarLogsService(context.Background(), FiltroLogsDto{
		De:      "2026-08-01",
		Ate:     "2026-08-15",
		Page:    3,
		PerPage: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), repo.listParams.De)
	assert.Equal(t, time.Date(2026, 8, 15, 23, 59, 59, 0, time.UTC), repo.listParams.Ate)
	assert.Equal(t, int32(40), repo.listParams.Off)
	assert.Equal(t, int32(20), repo.listParams.Lim)
}

func TestListarLogsDataInvalida(t *testing.T) {
	s := newLogServiceForTest(&fakeLogRepo{})

	_, err := s.ListarLogsService(context.Background(), FiltroLogsDto{De: "01/08/2026"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AAAA-MM-DD")
}

func TestListarLogsPeriodoInvertido(t *testing.T) {
	s := newLogServiceForTest(&fakeLogRepo{})

	_, err := s.ListarLogsService(context.Background(), FiltroLogsDto{De: "2026-08-15", Ate: "2026-08-01"})

	require.Error(t, err)
}

func TestEstatisticas(t *testing.T) {
	repo := &fakeLogRepo{stats: db.GetVpoEmissaoLogStatsRow{
		Total:          40,
		Sucessos:       31,
		Erros:          6,
		DuracaoMediaMs: 1845.5,
	}}
	s := newLogServiceForTest(repo)

	resultado, err := s.EstatisticasService(context.Background(), "2026-08-01", "2026-08-20")
	require.NoError(t, err)

	assert.Equal(t, int64(40), resultado.Total)
	assert.Equal(t, int64(31), resultado.Sucessos)
	assert.Equal(t, int64(6), resultado.Erros)
	assert.InDelta(t, 77.5, resultado.TaxaSucesso, 0.01)
	assert.InDelta(t, 1845.5, resultado.DuracaoMediaMs, 0.01)
	assert.Equal(t, "2026-08-01", resultado.De)
	assert.Equal(t, "2026-08-20", resultado.Ate)
}

func TestEstatisticasSemRegistros(t *testing.T) {
	s := newLogServiceForTest(&fakeLogRepo{})

	resultado, err := s.EstatisticasService(context.Background(), "", "")
	require.NoError(t, err)

	assert.Zero(t, resultado.TaxaSucesso)
}
