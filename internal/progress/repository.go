package progress

import (
	"context"
	"database/sql"
)

type InterfaceRepository interface {
	GetPacote(ctx context.Context, codpac int64) (Pacote, error)
	GetTransporte(ctx context.Context, codtrn int64) (Transporte, error)
	GetDescricaoTipoVeiculo(ctx context.Context, tipcam int64) (string, error)
	GetMotorista(ctx context.Context, codtrn, codmot int64) (Motorista, error)
	GetPrimeiroMotorista(ctx context.Context, codtrn int64) (Motorista, error)
	GetVeiculo(ctx context.Context, codtrn int64, numpla string) (Veiculo, error)
	GetTagSemParar(ctx context.Context, numpla string) (string, error)
	GetRotaSemParar(ctx context.Context, rotaID int64) (RotaSemParar, error)
	ListMunicipiosRota(ctx context.Context, rotaID int64) ([]MunicipioRota, error)
	ListEntregas(ctx context.Context, codpac int64) ([]Entrega, error)
	GetBairroNome(ctx context.Context, codbai int64) (string, error)
	GetMunicipioNome(ctx context.Context, codmun int64) (string, error)
	GetEstadoSigla(ctx context.Context, codest int64) (string, error)
}

// Repository lê o espelho somente-leitura do ERP Progress/OpenEdge.
// As tabelas PUB.* pertencem ao ERP e não passam pelo sqlc.
type Repository struct {
	Conn *sql.DB
}

func NewProgressRepository(Conn *sql.DB) *Repository {
	return &Repository{
		Conn: Conn,
	}
}

func (r *Repository) GetPacote(ctx context.Context, codpac int64) (Pacote, error) {
	const query = `SELECT codpac, codtrn, codmot, numpla FROM PUB.pacote WHERE codpac = $1`

	var p Pacote
	err := r.Conn.QueryRowContext(ctx, query, codpac).Scan(
		&p.Codpac,
		&p.Codtrn,
		&p.Codmot,
		&p.Numpla,
	)
	return p, err
}

func (r *Repository) GetTransporte(ctx context.Context, codtrn int64) (Transporte, error) {
	const query = `SELECT codtrn, nomtrn, flgautonomo, codcnpjcpf, cdantt, datvldantt,
		tipcam, numpla, desvei, numrg, numhab, nommae, datnas, desend, numend,
		codbai, codmun, codest, dddcel, numcel, dddtel, numtel, "e-mail"
	FROM PUB.transporte WHERE codtrn = $1`

	var t Transporte
	err := r.Conn.QueryRowContext(ctx, query, codtrn).Scan(
		&t.Codtrn,
		&t.Nomtrn,
		&t.Flgautonomo,
		&t.Codcnpjcpf,
		&t.Cdantt,
		&t.Datvldantt,
		&t.Tipcam,
		&t.Numpla,
		&t.Desvei,
		&t.Numrg,
		&t.Numhab,
		&t.Nommae,
		&t.Datnas,
		&t.Desend,
		&t.Numend,
		&t.Codbai,
		&t.Codmun,
		&t.Codest,
		&t.Dddcel,
		&t.Numcel,
		&t.Dddtel,
		&t.Numtel,
		&t.Email,
	)
	return t, err
}

func (r *Repository) GetDescricaoTipoVeiculo(ctx context.Context, tipcam int64) (string, error) {
	const query = `SELECT destipcam FROM PUB.tipcam WHERE tipcam = $1`

	var destipcam string
	err := r.Conn.QueryRowContext(ctx, query, tipcam).Scan(&destipcam)
	return destipcam, err
}

func (r *Repository) GetMotorista(ctx context.Context, codtrn, codmot int64) (Motorista, error) {
	const query = `SELECT codmot, nommot, codcpf, codrntrc, datvldrntrc, numrg, nommae,
		datnas, desend, codbai, codmun, codest, dddtel, numtel, email
	FROM PUB.trnmot WHERE codtrn = $1 AND codmot = $2`

	var m Motorista
	err := r.Conn.QueryRowContext(ctx, query, codtrn, codmot).Scan(
		&m.Codmot,
		&m.Nommot,
		&m.Codcpf,
		&m.Codrntrc,
		&m.Datvldrntrc,
		&m.Numrg,
		&m.Nommae,
		&m.Datnas,
		&m.Desend,
		&m.Codbai,
		&m.Codmun,
		&m.Codest,
		&m.Dddtel,
		&m.Numtel,
		&m.Email,
	)
	return m, err
}

func (r *Repository) GetPrimeiroMotorista(ctx context.Context, codtrn int64) (Motorista, error) {
	const query = `SELECT codmot, nommot, codcpf, codrntrc, datvldrntrc, numrg, nommae,
		datnas, desend, codbai, codmun, codest, dddtel, numtel, email
	FROM PUB.trnmot WHERE codtrn = $1 ORDER BY codmot LIMIT 1`

	var m Motorista
	err := r.Conn.QueryRowContext(ctx, query, codtrn).Scan(
		&m.Codmot,
		&m.Nommot,
		&m.Codcpf,
		&m.Codrntrc,
		&m.Datvldrntrc,
		&m.Numrg,
		&m.Nommae,
		&m.Datnas,
		&m.Desend,
		&m.Codbai,
		&m.Codmun,
		&m.Codest,
		&m.Dddtel,
		&m.Numtel,
		&m.Email,
	)
	return m, err
}

func (r *Repository) GetVeiculo(ctx context.Context, codtrn int64, numpla string) (Veiculo, error) {
	const query = `SELECT numpla, tipcam, modvei, qtdeixo FROM PUB.trnvei
	WHERE codtrn = $1 AND numpla = $2`

	var v Veiculo
	err := r.Conn.QueryRowContext(ctx, query, codtrn, numpla).Scan(
		&v.Numpla,
		&v.Tipcam,
		&v.Modvei,
		&v.Qtdeixo,
	)
	return v, err
}

func (r *Repository) GetTagSemParar(ctx context.Context, numpla string) (string, error) {
	const query = `SELECT numtag FROM PUB.semPararVei WHERE numpla = $1`

	var numtag string
	err := r.Conn.QueryRowContext(ctx, query, numpla).Scan(&numtag)
	return numtag, err
}

func (r *Repository) GetRotaSemParar(ctx context.Context, rotaID int64) (RotaSemParar, error) {
	const query = `SELECT spararrotid, desspararrot FROM PUB.semPararRot WHERE spararrotid = $1`

	var rota RotaSemParar
	err := r.Conn.QueryRowContext(ctx, query, rotaID).Scan(&rota.ID, &rota.Nome)
	return rota, err
}

func (r *Repository) ListMunicipiosRota(ctx context.Context, rotaID int64) ([]MunicipioRota, error) {
	const query = `SELECT m.codmun, m.desmun, m.cdibge, e.sigest
	FROM PUB.semPararMunRot r
	JOIN PUB.municipio m ON m.codmun = r.codmun
	JOIN PUB.estado e ON e.codest = m.codest
	WHERE r.spararrotid = $1
	ORDER BY r.seqmun`

	rows, err := r.Conn.QueryContext(ctx, query, rotaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	municipios := []MunicipioRota{}
	for rows.Next() {
		var m MunicipioRota
		if err := rows.Scan(&m.Codmun, &m.Nome, &m.CodigoIbge, &m.Uf); err != nil {
			return nil, err
		}
		municipios = append(municipios, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return municipios, nil
}

func (r *Repository) ListEntregas(ctx context.Context, codpac int64) ([]Entrega, error) {
	const query = `SELECT numseq, razcli, gpslat, gpslon FROM PUB.itinerarioPacote
	WHERE codpac = $1 ORDER BY numseq`

	rows, err := r.Conn.QueryContext(ctx, query, codpac)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entregas := []Entrega{}
	for rows.Next() {
		var e Entrega
		if err := rows.Scan(&e.Numseq, &e.Razcli, &e.GpsLat, &e.GpsLon); err != nil {
			return nil, err
		}
		entregas = append(entregas, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entregas, nil
}

func (r *Repository) GetBairroNome(ctx context.Context, codbai int64) (string, error) {
	const query = `SELECT desbai FROM PUB.bairro WHERE codbai = $1`

	var desbai string
	err := r.Conn.QueryRowContext(ctx, query, codbai).Scan(&desbai)
	return desbai, err
}

func (r *Repository) GetMunicipioNome(ctx context.Context, codmun int64) (string, error) {
	const query = `SELECT desmun FROM PUB.municipio WHERE codmun = $1`

	var desmun string
	err := r.Conn.QueryRowContext(ctx, query, codmun).Scan(&desmun)
	return desmun, err
}

func (r *Repository) GetEstadoSigla(ctx context.Context, codest int64) (string, error) {
	const query = `SELECT sigest FROM PUB.estado WHERE codest = $1`

	var sigest string
	err := r.Conn.QueryRowContext(ctx, query, codest).Scan(&sigest)
	return sigest, err
}
