package pracas

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	db "valepedagio/db/sqlc"
	"valepedagio/internal/nddcargo"
)

type fakePracasRepo struct {
	pracas []db.PracasPedagio
}

func (f *fakePracasRepo) GetPracaByNomeExato(ctx context.Context, nome string) (db.PracasPedagio, error) {
	for _, p := range f.pracas {
		if strings.EqualFold(p.Nome, nome) {
			return p, nil
		}
	}
	return db.PracasPedagio{}, sql.ErrNoRows
}

func (f *fakePracasRepo) ListPracasByRodoviaKm(ctx context.Context, arg db.ListPracasByRodoviaKmParams) ([]db.PracasPedagio, error) {
	resultado := []db.PracasPedagio{}
	for _, p := range f.pracas {
		if p.Rodovia == arg.Rodovia && p.Km.Valid &&
			p.Km.Float64 >= arg.Km.Float64 && p.Km.Float64 <= arg.Km_2.Float64 {
			resultado = append(resultado, p)
		}
	}
	return resultado, nil
}

func (f *fakePracasRepo) ListPracasByNomeParcial(ctx context.Context, nome string) ([]db.PracasPedagio, error) {
	resultado := []db.PracasPedagio{}
	for _, p := range f.pracas {
		if strings.Contains(strings.ToLower(p.Nome), strings.ToLower(nome)) {
			resultado = append(resultado, p)
		}
	}
	return resultado, nil
}

func (f *fakePracasRepo) ListPracasByRodoviaNomeParcial(ctx context.Context, arg db.ListPracasByRodoviaNomeParcialParams) ([]db.PracasPedagio, error) {
	resultado := []db.PracasPedagio{}
	for _, p := range f.pracas {
		if p.Rodovia == arg.Rodovia && strings.Contains(strings.ToLower(p.Nome), strings.ToLower(arg.Lower)) {
			resultado = append(resultado, p)
		}
	}
	return resultado, nil
}

func (f *fakePracasRepo) GetPracaByConcessionariaRodovia(ctx context.Context, arg db.GetPracaByConcessionariaRodoviaParams) (db.PracasPedagio, error) {
	for _, p := range f.pracas {
		if p.Rodovia == arg.Rodovia && p.Concessionaria.Valid &&
			strings.Contains(strings.ToLower(p.Concessionaria.String), strings.ToLower(arg.Lower)) {
			return p, nil
		}
	}
	return db.PracasPedagio{}, sql.ErrNoRows
}

func (f *fakePracasRepo) UpdatePracaCoordenadas(ctx context.Context, arg db.UpdatePracaCoordenadasParams) (db.PracasPedagio, error) {
	return db.PracasPedagio{}, sql.ErrNoRows
}

func pracaAntt(nome, rodovia string, km, lat, lon float64) db.PracasPedagio {
	return db.PracasPedagio{
		Nome:      nome,
		Rodovia:   sql.NullString{String: rodovia, Valid: rodovia != ""},
		Km:        sql.NullFloat64{Float64: km, Valid: km > 0},
		Municipio: sql.NullString{String: "REGISTRO", Valid: true},
		Uf:        sql.NullString{String: "SP", Valid: true},
		Latitude:  sql.NullFloat64{Float64: lat, Valid: true},
		Longitude: sql.NullFloat64{Float64: lon, Valid: true},
	}
}

func newPracasServiceForTest(repo InterfaceRepository) *Service {
	s := NewPracasService(repo, "")
	s.Geocodificar = func(ctx context.Context, endereco string) (float64, float64, error) {
		return 0, 0, errors.New("geocoding desligado no teste")
	}
	return s
}

func TestEnriquecerMatchNomeExato(t *testing.T) {
	repo := &fakePracasRepo{pracas: []db.PracasPedagio{
		pracaAntt("JACUPIRANGA", "BR-116", 512, -24.70, -48.00),
	}}
	s := newPracasServiceForTest(repo)

	resultado := s.EnriquecerPracasService(context.Background(), []nddcargo.PracaPedagio{
		{Codigo: "101", Nome: "Jacupiranga", Valor: 14.8},
	})

	require.Len(t, resultado, 1)
	assert.Equal(t, "nome_exato", resultado[0].MatchSource)
	assert.False(t, resultado[0].MatchIncerto)
	require.NotNil(t, resultado[0].Latitude)
	assert.InDelta(t, -24.70, *resultado[0].Latitude, 0.001)
	assert.Equal(t, "REGISTRO", resultado[0].Cidade)
	assert.Equal(t, "SP", resultado[0].Uf)
	assert.InDelta(t, 14.8, resultado[0].Valor, 0.001)
}

func TestEnriquecerMatchRodoviaKm(t *testing.T) {
	repo := &fakePracasRepo{pracas: []db.PracasPedagio{
		pracaAntt("PRACA P3 PELA ANTT", "BR-116", 515, -24.1, -47.9),
	}}
	s := newPracasServiceForTest(repo)

	resultado := s.EnriquecerPracasService(context.Background(), []nddcargo.PracaPedagio{
		{Codigo: "102", Nome: "P3", Rodovia: "br 116", Km: 512},
	})

	require.Len(t, resultado, 1)
	assert.Equal(t, "rodovia_km", resultado[0].MatchSource)
	assert.False(t, resultado[0].MatchIncerto)
	require.NotNil(t, resultado[0].Latitude)
}

// km=0 com o km embutido no nome da praça.
func TestEnriquecerKmExtraidoDoNome(t *testing.T) {
	repo := &fakePracasRepo{pracas: []db.PracasPedagio{
		pracaAntt("CAPIM BRANCO ANTT", "BR-040", 486, -19.5, -44.1),
	}}
	s := newPracasServiceForTest(repo)

	resultado := s.EnriquecerPracasService(context.Background(), []nddcargo.PracaPedagio{
		{Codigo: "103", Nome: "BR-040, KM487,268, NORTE, XYZQW", Rodovia: "BR-040", Km: 0},
	})

	require.Len(t, resultado, 1)
	assert.Equal(t, "rodovia_km", resultado[0].MatchSource)
}

func TestEnriquecerMatchNomeParcial(t *testing.T) {
	repo := &fakePracasRepo{pracas: []db.PracasPedagio{
		pracaAntt("PEDAGIO DE JACUPIRANGA SUL", "", 0, -24.7, -48.0),
	}}
	s := newPracasServiceForTest(repo)

	resultado := s.EnriquecerPracasService(context.Background(), []nddcargo.PracaPedagio{
		{Codigo: "104", Nome: "JACUPIRANGA"},
	})

	require.Len(t, resultado, 1)
	assert.Equal(t, "nome_parcial", resultado[0].MatchSource)
	assert.True(t, resultado[0].MatchIncerto)
}

func TestEnriquecerFallbackGeocoding(t *testing.T) {
	s := newPracasServiceForTest(&fakePracasRepo{})
	var enderecoGeocodificado string
	s.Geocodificar = func(ctx context.Context, endereco string) (float64, float64, error) {
		enderecoGeocodificado = endereco
		return -19.54, -44.13, nil
	}

	resultado := s.EnriquecerPracasService(context.Background(), []nddcargo.PracaPedagio{
		{Codigo: "105", Nome: "BR-040, KM487, NORTE, CAPIM BRANCO"},
	})

	require.Len(t, resultado, 1)
	assert.Equal(t, "geocoding", resultado[0].MatchSource)
	assert.True(t, resultado[0].MatchIncerto)
	assert.Equal(t, "CAPIM BRANCO, Brasil", enderecoGeocodificado)
	require.NotNil(t, resultado[0].Latitude)
	assert.InDelta(t, -19.54, *resultado[0].Latitude, 0.001)
	assert.Equal(t, "CAPIM BRANCO", resultado[0].Cidade)
}

func TestEnriquecerSemMatch(t *testing.T) {
	s := newPracasServiceForTest(&fakePracasRepo{})

	resultado := s.EnriquecerPracasService(context.Background(), []nddcargo.PracaPedagio{
		{Codigo: "106", Nome: ""},
	})

	require.Len(t, resultado, 1)
	assert.Equal(t, "none", resultado[0].MatchSource)
	assert.True(t, resultado[0].MatchIncerto)
	assert.Nil(t, resultado[0].Latitude)
	assert.Nil(t, resultado[0].Longitude)
	// Nome vazio sai normalizado para o frontend.
	assert.Equal(t, "Pedágio", resultado[0].Nome)
}

func TestNormalizarRodovia(t *testing.T) {
	assert.Equal(t, "BR-116", NormalizarRodovia("br 116"))
	assert.Equal(t, "BR-116", NormalizarRodovia("BR116"))
	assert.Equal(t, "BR-116", NormalizarRodovia("116"))
	assert.Equal(t, "SP-280", NormalizarRodovia("sp 280"))
	assert.Equal(t, "BR-116", NormalizarRodovia("BR-116"))
	assert.Equal(t, "", NormalizarRodovia("  "))
}

func TestExtrairKmDoNome(t *testing.T) {
	assert.InDelta(t, 487.268, ExtrairKmDoNome("BR-040, KM487,268, NORTE, CAPIM BRANCO"), 0.001)
	assert.InDelta(t, 43, ExtrairKmDoNome("ALEXÂNIA KM 43 SUL"), 0.001)
	assert.InDelta(t, 12.5, ExtrairKmDoNome("KM 12.5"), 0.001)
	assert.Zero(t, ExtrairKmDoNome("SEM QUILOMETRO"))
}

func TestExtrairMunicipioDoNome(t *testing.T) {
	assert.Equal(t, "CAPIM BRANCO", ExtrairMunicipioDoNome("BR-040, KM487,268, NORTE, CAPIM BRANCO"))
	assert.Equal(t, "ALEXÂNIA", ExtrairMunicipioDoNome("ALEXÂNIA KM 43 SUL"))
	assert.Equal(t, "", ExtrairMunicipioDoNome("KM 10"))
}

func TestNormalizarNome(t *testing.T) {
	assert.Equal(t, "JACUPIRANGA", NormalizarNome("  Jacupiranga "))
	assert.Equal(t, "ALEXANIA", NormalizarNome("Alexânia"))
	assert.Equal(t, "PRACA SAOPAULO 2", NormalizarNome("Praça  São-Paulo   2"))
}
