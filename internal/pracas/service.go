package pracas

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	"googlemaps.github.io/maps"

	db "valepedagio/db/sqlc"
	"valepedagio/internal/nddcargo"
)

// Tolerância de km no match por rodovia: as bases da NDD e da ANTT
// divergem na marcação quilométrica da mesma praça.
const toleranciaKm = 5.0

type InterfaceService interface {
	EnriquecerPracasService(ctx context.Context, pracas []nddcargo.PracaPedagio) []PracaEnriquecida
}

type Service struct {
	InterfaceService InterfaceRepository
	MapsApiKey       string

	Geocodificar func(ctx context.Context, endereco string) (float64, float64, error)
}

func NewPracasService(NewInterface InterfaceRepository, mapsApiKey string) *Service {
	s := &Service{
		InterfaceService: NewInterface,
		MapsApiKey:       mapsApiKey,
	}
	s.Geocodificar = s.geocodificarGoogle
	return s
}

// EnriquecerPracasService adiciona coordenadas e município às praças
// devolvidas pela NDD cruzando com a base local da ANTT. Nenhuma falha
// aqui é fatal: praça sem match sai com lat/lon nulos.
func (s *Service) EnriquecerPracasService(ctx context.Context, pracas []nddcargo.PracaPedagio) []PracaEnriquecida {
	resultado := make([]PracaEnriquecida, 0, len(pracas))
	matched := 0

	for _, praca := range pracas {
		enriquecida := s.enriquecerPraca(ctx, praca)
		if enriquecida.Latitude != nil {
			matched++
		}
		resultado = append(resultado, enriquecida)
	}

	log.Printf("pracas: matching concluído total=%d matched=%d", len(pracas), matched)
	return resultado
}

func (s *Service) enriquecerPraca(ctx context.Context, praca nddcargo.PracaPedagio) PracaEnriquecida {
	base := PracaEnriquecida{
		Codigo:       praca.Codigo,
		Nome:         praca.Nome,
		Rodovia:      praca.Rodovia,
		Km:           praca.Km,
		Valor:        praca.Valor,
		MatchIncerto: true,
		MatchSource:  "none",
	}
	if base.Nome == "" {
		base.Nome = "Pedágio"
	}

	// A NDD às vezes manda km=0 com o km embutido no nome da praça.
	km := praca.Km
	if km == 0 {
		km = ExtrairKmDoNome(praca.Nome)
	}
	rodovia := NormalizarRodovia(praca.Rodovia)

	if match, fonte, incerto := s.buscarMatch(ctx, praca.Nome, rodovia, km); match != nil {
		base.Latitude = nullFloat(match.Latitude)
		base.Longitude = nullFloat(match.Longitude)
		base.Cidade = match.Municipio.String
		base.Uf = match.Uf.String
		base.MatchIncerto = incerto
		base.MatchSource = fonte
		return base
	}

	// Último recurso: geocodificar o município extraído do nome.
	municipio := ExtrairMunicipioDoNome(praca.Nome)
	if municipio != "" && s.Geocodificar != nil {
		lat, lng, err := s.Geocodificar(ctx, municipio+", Brasil")
		if err != nil {
			log.Printf("pracas: geocoding falhou municipio=%s err=%v", municipio, err)
			return base
		}
		base.Latitude = &lat
		base.Longitude = &lng
		base.Cidade = municipio
		base.MatchSource = "geocoding"
	}

	return base
}

// buscarMatch percorre as estratégias da mais precisa para a mais
// frouxa. O booleano final marca match incerto (aproximado por nome ou
// concessionária, não por posição).
func (s *Service) buscarMatch(ctx context.Context, nome, rodovia string, km float64) (*db.PracasPedagio, string, bool) {
	nomeNorm := NormalizarNome(nome)

	if nomeNorm != "" {
		praca, err := s.InterfaceService.GetPracaByNomeExato(ctx, nomeNorm)
		if err == nil && praca.Latitude.Valid {
			return &praca, "nome_exato", false
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			log.Printf("pracas: busca por nome exato falhou err=%v", err)
		}
	}

	if rodovia != "" && km > 0 {
		encontradas, err := s.InterfaceService.ListPracasByRodoviaKm(ctx, db.ListPracasByRodoviaKmParams{
			Rodovia: sql.NullString{String: rodovia, Valid: true},
			Km:      sql.NullFloat64{Float64: km - toleranciaKm, Valid: true},
			Km_2:    sql.NullFloat64{Float64: km + toleranciaKm, Valid: true},
			Abs:     sql.NullFloat64{Float64: km, Valid: true},
		})
		if err != nil {
			log.Printf("pracas: busca por rodovia/km falhou err=%v", err)
		}
		for i := range encontradas {
			if encontradas[i].Latitude.Valid {
				return &encontradas[i], "rodovia_km", false
			}
		}
	}

	if len(nomeNorm) >= 4 {
		encontradas, err := s.InterfaceService.ListPracasByNomeParcial(ctx, nomeNorm)
		if err != nil {
			log.Printf("pracas: busca por nome parcial falhou err=%v", err)
		}
		for i := range encontradas {
			if encontradas[i].Latitude.Valid {
				return &encontradas[i], "nome_parcial", true
			}
		}
	}

	if rodovia != "" && len(nomeNorm) >= 3 {
		encontradas, err := s.InterfaceService.ListPracasByRodoviaNomeParcial(ctx, db.ListPracasByRodoviaNomeParcialParams{
			Rodovia: sql.NullString{String: rodovia, Valid: true},
			Lower:   nomeNorm,
		})
		if err != nil {
			log.Printf("pracas: busca por rodovia/nome falhou err=%v", err)
		}
		for i := range encontradas {
			if encontradas[i].Latitude.Valid {
				return &encontradas[i], "rodovia_nome", true
			}
		}
	}

	if rodovia != "" && nomeNorm != "" {
		praca, err := s.InterfaceService.GetPracaByConcessionariaRodovia(ctx, db.GetPracaByConcessionariaRodoviaParams{
			Lower:   nomeNorm,
			Rodovia: sql.NullString{String: rodovia, Valid: true},
		})
		if err == nil && praca.Latitude.Valid {
			return &praca, "concessionaria", true
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			log.Printf("pracas: busca por concessionária falhou err=%v", err)
		}
	}

	return nil, "none", true
}

func (s *Service) geocodificarGoogle(ctx context.Context, endereco string) (float64, float64, error) {
	client, err := maps.NewClient(maps.WithAPIKey(s.MapsApiKey))
	if err != nil {
		return 0, 0, err
	}

	resultados, err := client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  endereco,
		Region:   "br",
		Language: "pt-BR",
	})
	if err != nil {
		return 0, 0, err
	}
	if len(resultados) == 0 {
		return 0, 0, errors.New("endereço não encontrado no geocoding")
	}

	local := resultados[0].Geometry.Location
	return local.Lat, local.Lng, nil
}

var (
	reRodoviaUf     = regexp.MustCompile(`^([A-Z]{2})-?(\d{3})$`)
	reRodoviaNumero = regexp.MustCompile(`^(\d{3})$`)
	reKmNome        = regexp.MustCompile(`(?i)KM\s*(\d+)[,.]?(\d*)`)
	reDirecao       = regexp.MustCompile(`(?i)^(NORTE|SUL|LESTE|OESTE|KM\s*\d+|[A-Z]{2}[- ]\d+)$`)
	reMunicipioKm   = regexp.MustCompile(`(?i)^([A-ZÀ-ÿ\s]+?)\s+KM`)
	reNaoAlfanum    = regexp.MustCompile(`[^A-Z0-9 ]`)
	reEspacos       = regexp.MustCompile(`\s+`)
	reDigitosBorda  = regexp.MustCompile(`^\d+\s*|\s*\d+$`)
)

// NormalizarRodovia padroniza a grafia para o formato SIGLA-NNN usado na
// base da ANTT: "br 116" e "BR116" viram "BR-116", "116" vira "BR-116".
func NormalizarRodovia(rodovia string) string {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rodovia), " ", ""))
	if norm == "" {
		return ""
	}
	if m := reRodoviaNumero.FindStringSubmatch(norm); m != nil {
		return "BR-" + m[1]
	}
	if m := reRodoviaUf.FindStringSubmatch(norm); m != nil {
		return m[1] + "-" + m[2]
	}
	return norm
}

// ExtrairKmDoNome recupera o km embutido no nome da praça, nos formatos
// "KM487,268", "KM 487.268" e "KM487".
func ExtrairKmDoNome(nome string) float64 {
	m := reKmNome.FindStringSubmatch(nome)
	if m == nil {
		return 0
	}
	texto := m[1]
	if m[2] != "" {
		texto += "." + m[2]
	}
	km, err := strconv.ParseFloat(texto, 64)
	if err != nil {
		return 0
	}
	return km
}

// ExtrairMunicipioDoNome tenta achar o município no nome da praça:
// "BR-040, KM487,268, NORTE, CAPIM BRANCO" -> "CAPIM BRANCO";
// "ALEXÂNIA KM 43 SUL" -> "ALEXÂNIA".
func ExtrairMunicipioDoNome(nome string) string {
	partes := strings.Split(nome, ",")
	if len(partes) > 1 {
		for i := len(partes) - 1; i >= 0; i-- {
			parte := strings.TrimSpace(partes[i])
			if parte == "" || reDirecao.MatchString(parte) {
				continue
			}
			parte = strings.TrimSpace(reDigitosBorda.ReplaceAllString(parte, ""))
			if len([]rune(parte)) > 2 {
				return strings.ToUpper(parte)
			}
		}
	}

	if m := reMunicipioKm.FindStringSubmatch(nome); m != nil {
		return strings.ToUpper(strings.TrimSpace(m[1]))
	}
	return ""
}

// NormalizarNome deixa o nome comparável: maiúsculas, sem acentos, só
// alfanuméricos e espaço simples.
func NormalizarNome(nome string) string {
	nome = strings.ToUpper(strings.TrimSpace(nome))
	nome = removerAcentos(nome)
	nome = reNaoAlfanum.ReplaceAllString(nome, "")
	nome = reEspacos.ReplaceAllString(nome, " ")
	return strings.TrimSpace(nome)
}

var acentos = strings.NewReplacer(
	"À", "A", "Á", "A", "Â", "A", "Ã", "A", "Ä", "A", "Å", "A",
	"Ç", "C",
	"È", "E", "É", "E", "Ê", "E", "Ë", "E",
	"Ì", "I", "Í", "I", "Î", "I", "Ï", "I",
	"Ñ", "N",
	"Ò", "O", "Ó", "O", "Ô", "O", "Õ", "O", "Ö", "O",
	"Ù", "U", "Ú", "U", "Û", "U", "Ü", "U",
	"Ý", "Y",
)

func removerAcentos(s string) string {
	return acentos.Replace(s)
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
