package transportador

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/sqlc-dev/pqtype"

	db "valepedagio/db/sqlc"
	"valepedagio/validation"
)

// DadosVpo é o perfil canônico do transportador usado na emissão de
// vale-pedágio: os 19 campos exigidos pelo layout NDD mais as chaves do
// ERP e os metadados de sincronização.
type DadosVpo struct {
	Codtrn      int64  `json:"codtrn"`
	Codmot      int64  `json:"codmot"`
	Numpla      string `json:"numpla"`
	Flgautonomo bool   `json:"flgautonomo"`

	CpfCnpj                string    `json:"cpf_cnpj"`
	AnttRntrc              string    `json:"antt_rntrc"`
	AnttNome               string    `json:"antt_nome"`
	AnttValidade           time.Time `json:"antt_validade"`
	AnttStatus             string    `json:"antt_status"`
	Placa                  string    `json:"placa"`
	VeiculoTipo            string    `json:"veiculo_tipo"`
	VeiculoModelo          string    `json:"veiculo_modelo"`
	CondutorRg             string    `json:"condutor_rg"`
	CondutorNome           string    `json:"condutor_nome"`
	CondutorSexo           string    `json:"condutor_sexo"`
	CondutorNomeMae        string    `json:"condutor_nome_mae"`
	CondutorDataNascimento time.Time `json:"condutor_data_nascimento"`
	EnderecoRua            string    `json:"endereco_rua"`
	EnderecoBairro         string    `json:"endereco_bairro"`
	EnderecoCidade         string    `json:"endereco_cidade"`
	EnderecoEstado         string    `json:"endereco_estado"`
	ContatoCelular         string    `json:"contato_celular"`
	ContatoEmail           string    `json:"contato_email"`

	FontesDados map[string]any `json:"fontes_dados"`
	AnttFonte   string         `json:"antt_fonte"`
}

type SincronizarDto struct {
	Codtrn          int64
	Codmot          int64
	Placa           string
	ForceAnttUpdate bool
}

type AtualizarManualRequest struct {
	CpfCnpj                string `json:"cpf_cnpj"`
	AnttRntrc              string `json:"antt_rntrc"`
	AnttNome               string `json:"antt_nome"`
	Placa                  string `json:"placa"`
	VeiculoTipo            string `json:"veiculo_tipo"`
	VeiculoModelo          string `json:"veiculo_modelo"`
	CondutorRg             string `json:"condutor_rg"`
	CondutorNome           string `json:"condutor_nome"`
	CondutorSexo           string `json:"condutor_sexo"`
	CondutorNomeMae        string `json:"condutor_nome_mae"`
	CondutorDataNascimento string `json:"condutor_data_nascimento"`
	EnderecoRua            string `json:"endereco_rua"`
	EnderecoBairro         string `json:"endereco_bairro"`
	EnderecoCidade         string `json:"endereco_cidade"`
	EnderecoEstado         string `json:"endereco_estado"`
	ContatoCelular         string `json:"contato_celular"`
	ContatoEmail           string `json:"contato_email"`
}

type AtualizarManualDto struct {
	AtualizarManualRequest AtualizarManualRequest
	Codtrn                 int64
	Codmot                 int64
}

type SincronizarLoteRequest struct {
	Codtrns         []int64 `json:"codtrns" validate:"required,min=1"`
	ForceAnttUpdate bool    `json:"force_antt_update"`
}

type ResultadoLote struct {
	Codtrn   int64  `json:"codtrn"`
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem"`
}

type SincronizarLoteResponse struct {
	Total      int             `json:"total"`
	Sucessos   int             `json:"sucessos"`
	Falhas     int             `json:"falhas"`
	Resultados []ResultadoLote `json:"resultados"`
}

type TransportadorResponse struct {
	DadosVpo

	CamposFaltantes    []CampoFaltante `json:"campos_faltantes"`
	Avisos             []string        `json:"avisos"`
	ScoreQualidade     int32           `json:"score_qualidade"`
	EditadoManualmente bool            `json:"editado_manualmente"`
	UltimaSyncProgress time.Time       `json:"ultima_sync_progress"`
	UltimaSyncAntt     time.Time       `json:"ultima_sync_antt"`
	TotalUsos          int32           `json:"total_usos"`
}

func (d *DadosVpo) ParseFromCacheObject(row db.VpoTransportadoresCache) {
	d.Codtrn = row.Codtrn
	d.Codmot = row.Codmot
	d.Numpla = row.Numpla.String
	d.Flgautonomo = row.Flgautonomo
	d.CpfCnpj = row.CpfCnpj.String
	d.AnttRntrc = row.AnttRntrc.String
	d.AnttNome = row.AnttNome.String
	d.AnttValidade = row.AnttValidade.Time
	d.AnttStatus = row.AnttStatus.String
	d.Placa = row.Placa.String
	d.VeiculoTipo = row.VeiculoTipo.String
	d.VeiculoModelo = row.VeiculoModelo.String
	d.CondutorRg = row.CondutorRg.String
	d.CondutorNome = row.CondutorNome.String
	d.CondutorSexo = row.CondutorSexo.String
	d.CondutorNomeMae = row.CondutorNomeMae.String
	d.CondutorDataNascimento = row.CondutorDataNascimento.Time
	d.EnderecoRua = row.EnderecoRua.String
	d.EnderecoBairro = row.EnderecoBairro.String
	d.EnderecoCidade = row.EnderecoCidade.String
	d.EnderecoEstado = row.EnderecoEstado.String
	d.ContatoCelular = row.ContatoCelular.String
	d.ContatoEmail = row.ContatoEmail.String
	d.AnttFonte = row.AnttFonte.String

	if row.FontesDados.Valid {
		_ = json.Unmarshal(row.FontesDados.RawMessage, &d.FontesDados)
	}
}

func (d DadosVpo) ParseToUpsertParams(
	score int32,
	faltantes []CampoFaltante,
	avisos []string,
	syncProgress, syncAntt time.Time,
) db.UpsertTransportadorCacheParams {
	return db.UpsertTransportadorCacheParams{
		Codtrn:                 d.Codtrn,
		Codmot:                 d.Codmot,
		Numpla:                 validation.NewNullString(d.Numpla),
		Flgautonomo:            d.Flgautonomo,
		CpfCnpj:                validation.NewNullString(d.CpfCnpj),
		AnttRntrc:              validation.NewNullString(d.AnttRntrc),
		AnttNome:               validation.NewNullString(d.AnttNome),
		AnttValidade:           newNullTime(d.AnttValidade),
		AnttStatus:             validation.NewNullString(d.AnttStatus),
		Placa:                  validation.NewNullString(d.Placa),
		VeiculoTipo:            validation.NewNullString(d.VeiculoTipo),
		VeiculoModelo:          validation.NewNullString(d.VeiculoModelo),
		CondutorRg:             validation.NewNullString(d.CondutorRg),
		CondutorNome:           validation.NewNullString(d.CondutorNome),
		CondutorSexo:           validation.NewNullString(d.CondutorSexo),
		CondutorNomeMae:        validation.NewNullString(d.CondutorNomeMae),
		CondutorDataNascimento: newNullTime(d.CondutorDataNascimento),
		EnderecoRua:            validation.NewNullString(d.EnderecoRua),
		EnderecoBairro:         validation.NewNullString(d.EnderecoBairro),
		EnderecoCidade:         validation.NewNullString(d.EnderecoCidade),
		EnderecoEstado:         validation.NewNullString(d.EnderecoEstado),
		ContatoCelular:         validation.NewNullString(d.ContatoCelular),
		ContatoEmail:           validation.NewNullString(d.ContatoEmail),
		FontesDados:            newNullRawMessage(d.FontesDados),
		CamposFaltantes:        newNullRawMessage(faltantes),
		Avisos:                 newNullRawMessage(avisos),
		AnttFonte:              validation.NewNullString(d.AnttFonte),
		ScoreQualidade:         score,
		UltimaSyncProgress:     newNullTime(syncProgress),
		UltimaSyncAntt:         newNullTime(syncAntt),
	}
}

func (t *TransportadorResponse) ParseFromCacheObject(row db.VpoTransportadoresCache) {
	t.DadosVpo.ParseFromCacheObject(row)
	t.ScoreQualidade = row.ScoreQualidade
	t.EditadoManualmente = row.EditadoManualmente
	t.UltimaSyncProgress = row.UltimaSyncProgress.Time
	t.UltimaSyncAntt = row.UltimaSyncAntt.Time
	t.TotalUsos = row.TotalUsos

	t.CamposFaltantes = []CampoFaltante{}
	if row.CamposFaltantes.Valid {
		_ = json.Unmarshal(row.CamposFaltantes.RawMessage, &t.CamposFaltantes)
	}

	t.Avisos = []string{}
	if row.Avisos.Valid {
		_ = json.Unmarshal(row.Avisos.RawMessage, &t.Avisos)
	}
}

func (r AtualizarManualDto) ParseToUpdateParams() db.UpdateTransportadorCacheManualParams {
	req := r.AtualizarManualRequest
	return db.UpdateTransportadorCacheManualParams{
		CpfCnpj:                validation.NewNullString(validation.OnlyDigits(req.CpfCnpj)),
		AnttRntrc:              validation.NewNullString(req.AnttRntrc),
		AnttNome:               validation.NewNullString(req.AnttNome),
		Placa:                  validation.NewNullString(FormatPlaca(req.Placa)),
		VeiculoTipo:            validation.NewNullString(req.VeiculoTipo),
		VeiculoModelo:          validation.NewNullString(req.VeiculoModelo),
		CondutorRg:             validation.NewNullString(req.CondutorRg),
		CondutorNome:           validation.NewNullString(req.CondutorNome),
		CondutorSexo:           validation.NewNullString(req.CondutorSexo),
		CondutorNomeMae:        validation.NewNullString(req.CondutorNomeMae),
		CondutorDataNascimento: parseNullDate(req.CondutorDataNascimento),
		EnderecoRua:            validation.NewNullString(req.EnderecoRua),
		EnderecoBairro:         validation.NewNullString(req.EnderecoBairro),
		EnderecoCidade:         validation.NewNullString(req.EnderecoCidade),
		EnderecoEstado:         validation.NewNullString(req.EnderecoEstado),
		ContatoCelular:         validation.NewNullString(validation.OnlyDigits(req.ContatoCelular)),
		ContatoEmail:           validation.NewNullString(req.ContatoEmail),
		Codtrn:                 r.Codtrn,
		Codmot:                 r.Codmot,
	}
}

// FormatPlaca remove separadores e normaliza a placa para maiúsculas.
func FormatPlaca(placa string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(placa) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTelefone concatena DDD + número garantindo 11 dígitos: números de
// celular antigos com 10 dígitos ganham o nono dígito.
func FormatTelefone(ddd, numero string) string {
	if ddd == "" || numero == "" {
		return ""
	}

	telefone := validation.OnlyDigits(ddd + numero)
	if len(telefone) == 10 {
		telefone = telefone[:2] + "9" + telefone[2:]
	}

	return telefone
}

// FormatEndereco concatena logradouro e número quando disponível.
func FormatEndereco(desend, numend string) string {
	if desend == "" {
		return ""
	}
	if numend != "" && numend != "0" {
		return desend + ", " + numend
	}
	return desend
}

func newNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func parseNullDate(value string) sql.NullTime {
	if value == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func newNullRawMessage(v any) pqtype.NullRawMessage {
	if v == nil {
		return pqtype.NullRawMessage{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return pqtype.NullRawMessage{}
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}
}
