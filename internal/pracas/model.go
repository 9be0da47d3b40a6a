package pracas

// PracaEnriquecida é a praça devolvida ao frontend: os dados vindos da
// NDD acrescidos de coordenadas e localização quando o matching com a
// base ANTT encontra correspondência.
type PracaEnriquecida struct {
	Codigo       string   `json:"codigo"`
	Nome         string   `json:"nome"`
	Rodovia      string   `json:"rodovia,omitempty"`
	Km           float64  `json:"km,omitempty"`
	Valor        float64  `json:"valor"`
	Cidade       string   `json:"cidade"`
	Uf           string   `json:"uf"`
	Latitude     *float64 `json:"lat"`
	Longitude    *float64 `json:"lon"`
	MatchIncerto bool     `json:"match_incerto"`
	MatchSource  string   `json:"match_source"`
}
