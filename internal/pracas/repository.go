package pracas

import (
	"context"
	"database/sql"

	db "valepedagio/db/sqlc"
)

type InterfaceRepository interface {
	GetPracaByNomeExato(ctx context.Context, nome string) (db.PracasPedagio, error)
	ListPracasByRodoviaKm(ctx context.Context, arg db.ListPracasByRodoviaKmParams) ([]db.PracasPedagio, error)
	ListPracasByNomeParcial(ctx context.Context, nome string) ([]db.PracasPedagio, error)
	ListPracasByRodoviaNomeParcial(ctx context.Context, arg db.ListPracasByRodoviaNomeParcialParams) ([]db.PracasPedagio, error)
	GetPracaByConcessionariaRodovia(ctx context.Context, arg db.GetPracaByConcessionariaRodoviaParams) (db.PracasPedagio, error)
	UpdatePracaCoordenadas(ctx context.Context, arg db.UpdatePracaCoordenadasParams) (db.PracasPedagio, error)
}

type Repository struct {
	Conn    *sql.DB
	DBtx    db.DBTX
	Queries *db.Queries
	SqlConn *sql.DB
}

func NewPracasRepository(Conn *sql.DB) *Repository {
	q := db.New(Conn)
	return &Repository{
		Conn:    Conn,
		DBtx:    Conn,
		Queries: q,
		SqlConn: Conn,
	}
}

func (r *Repository) GetPracaByNomeExato(ctx context.Context, nome string) (db.PracasPedagio, error) {
	return r.Queries.GetPracaByNomeExato(ctx, nome)
}
func (r *Repository) ListPracasByRodoviaKm(ctx context.Context, arg db.ListPracasByRodoviaKmParams) ([]db.PracasPedagio, error) {
	return r.Queries.ListPracasByRodoviaKm(ctx, arg)
}
func (r *Repository) ListPracasByNomeParcial(ctx context.Context, nome string) ([]db.PracasPedagio, error) {
	return r.Queries.ListPracasByNomeParcial(ctx, nome)
}
func (r *Repository) ListPracasByRodoviaNomeParcial(ctx context.Context, arg db.ListPracasByRodoviaNomeParcialParams) ([]db.PracasPedagio, error) {
	return r.Queries.ListPracasByRodoviaNomeParcial(ctx, arg)
}
func (r *Repository) GetPracaByConcessionariaRodovia(ctx context.Context, arg db.GetPracaByConcessionariaRodoviaParams) (db.PracasPedagio, error) {
	return r.Queries.GetPracaByConcessionariaRodovia(ctx, arg)
}
func (r *Repository) UpdatePracaCoordenadas(ctx context.Context, arg db.UpdatePracaCoordenadasParams) (db.PracasPedagio, error) {
	return r.Queries.UpdatePracaCoordenadas(ctx, arg)
}
