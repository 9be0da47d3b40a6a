package transportador

import (
	"context"
	"database/sql"

	db "valepedagio/db/sqlc"
)

type InterfaceRepository interface {
	GetTransportadorCache(ctx context.Context, arg db.GetTransportadorCacheParams) (db.VpoTransportadoresCache, error)
	UpsertTransportadorCache(ctx context.Context, arg db.UpsertTransportadorCacheParams) (db.VpoTransportadoresCache, error)
	UpdateTransportadorCacheManual(ctx context.Context, arg db.UpdateTransportadorCacheManualParams) (db.VpoTransportadoresCache, error)
	RegisterTransportadorCacheUso(ctx context.Context, arg db.RegisterTransportadorCacheUsoParams) error
	GetMotoristaEmpresaCache(ctx context.Context, arg db.GetMotoristaEmpresaCacheParams) (db.MotoristasEmpresaCache, error)
	UpsertMotoristaEmpresaCache(ctx context.Context, arg db.UpsertMotoristaEmpresaCacheParams) (db.MotoristasEmpresaCache, error)
}

type Repository struct {
	Conn    *sql.DB
	DBtx    db.DBTX
	Queries *db.Queries
	SqlConn *sql.DB
}

func NewTransportadorRepository(Conn *sql.DB) *Repository {
	q := db.New(Conn)
	return &Repository{
		Conn:    Conn,
		DBtx:    Conn,
		Queries: q,
		SqlConn: Conn,
	}
}

func (r *Repository) GetTransportadorCache(ctx context.Context, arg db.GetTransportadorCacheParams) (db.VpoTransportadoresCache, error) {
	return r.Queries.GetTransportadorCache(ctx, arg)
}
func (r *Repository) UpsertTransportadorCache(ctx context.Context, arg db.UpsertTransportadorCacheParams) (db.VpoTransportadoresCache, error) {
	return r.Queries.UpsertTransportadorCache(ctx, arg)
}
func (r *Repository) UpdateTransportadorCacheManual(ctx context.Context, arg db.UpdateTransportadorCacheManualParams) (db.VpoTransportadoresCache, error) {
	return r.Queries.UpdateTransportadorCacheManual(ctx, arg)
}
func (r *Repository) RegisterTransportadorCacheUso(ctx context.Context, arg db.RegisterTransportadorCacheUsoParams) error {
	return r.Queries.RegisterTransportadorCacheUso(ctx, arg)
}
func (r *Repository) GetMotoristaEmpresaCache(ctx context.Context, arg db.GetMotoristaEmpresaCacheParams) (db.MotoristasEmpresaCache, error) {
	return r.Queries.GetMotoristaEmpresaCache(ctx, arg)
}
func (r *Repository) UpsertMotoristaEmpresaCache(ctx context.Context, arg db.UpsertMotoristaEmpresaCacheParams) (db.MotoristasEmpresaCache, error) {
	return r.Queries.UpsertMotoristaEmpresaCache(ctx, arg)
}
