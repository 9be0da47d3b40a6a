package progress

import (
	"database/sql"
	"strconv"
)

type Pacote struct {
	Codpac int64          `json:"codpac"`
	Codtrn int64          `json:"codtrn"`
	Codmot sql.NullInt64  `json:"codmot"`
	Numpla sql.NullString `json:"numpla"`
}

type Transporte struct {
	Codtrn      int64          `json:"codtrn"`
	Nomtrn      string         `json:"nomtrn"`
	Flgautonomo bool           `json:"flgautonomo"`
	Codcnpjcpf  sql.NullString `json:"codcnpjcpf"`
	Cdantt      sql.NullString `json:"cdantt"`
	Datvldantt  sql.NullTime   `json:"datvldantt"`
	Tipcam      sql.NullInt64  `json:"tipcam"`
	Numpla      sql.NullString `json:"numpla"`
	Desvei      sql.NullString `json:"desvei"`
	Numrg       sql.NullString `json:"numrg"`
	Numhab      sql.NullString `json:"numhab"`
	Nommae      sql.NullString `json:"nommae"`
	Datnas      sql.NullTime   `json:"datnas"`
	Desend      sql.NullString `json:"desend"`
	Numend      sql.NullString `json:"numend"`
	Codbai      sql.NullInt64  `json:"codbai"`
	Codmun      sql.NullInt64  `json:"codmun"`
	Codest      sql.NullInt64  `json:"codest"`
	Dddcel      sql.NullString `json:"dddcel"`
	Numcel      sql.NullString `json:"numcel"`
	Dddtel      sql.NullString `json:"dddtel"`
	Numtel      sql.NullString `json:"numtel"`
	Email       sql.NullString `json:"email"`
}

type Motorista struct {
	Codmot      int64          `json:"codmot"`
	Nommot      sql.NullString `json:"nommot"`
	Codcpf      sql.NullString `json:"codcpf"`
	Codrntrc    sql.NullString `json:"codrntrc"`
	Datvldrntrc sql.NullTime   `json:"datvldrntrc"`
	Numrg       sql.NullString `json:"numrg"`
	Nommae      sql.NullString `json:"nommae"`
	Datnas      sql.NullTime   `json:"datnas"`
	Desend      sql.NullString `json:"desend"`
	Codbai      sql.NullInt64  `json:"codbai"`
	Codmun      sql.NullInt64  `json:"codmun"`
	Codest      sql.NullInt64  `json:"codest"`
	Dddtel      sql.NullString `json:"dddtel"`
	Numtel      sql.NullString `json:"numtel"`
	Email       sql.NullString `json:"email"`
}

type Veiculo struct {
	Numpla  string         `json:"numpla"`
	Tipcam  sql.NullInt64  `json:"tipcam"`
	Modvei  sql.NullString `json:"modvei"`
	Qtdeixo sql.NullInt32  `json:"qtdeixo"`
}

type RotaSemParar struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

type MunicipioRota struct {
	Codmun     int64          `json:"codmun"`
	Nome       string         `json:"nome"`
	CodigoIbge sql.NullString `json:"codigo_ibge"`
	Uf         sql.NullString `json:"uf"`
}

type Entrega struct {
	Numseq int64          `json:"numseq"`
	Razcli sql.NullString `json:"razcli"`
	GpsLat sql.NullString `json:"gps_lat"`
	GpsLon sql.NullString `json:"gps_lon"`
}

// DecodeGpsCoordinate converte a coordenada empacotada do ERP em graus
// decimais. O ERP grava o valor como inteiro multiplicado por 1e7 e sem
// sinal: primeiro dígito '2' ou '3' indica coordenada negativa.
func DecodeGpsCoordinate(raw string) (float64, bool) {
	if raw == "" || raw == "0" {
		return 0, false
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}

	negative := raw[0] == '2' || raw[0] == '3'

	decimal := float64(value) / 10_000_000
	if decimal < 0 {
		decimal = -decimal
	}
	if negative {
		decimal = -decimal
	}

	return decimal, true
}
