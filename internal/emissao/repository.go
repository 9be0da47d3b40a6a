package emissao

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	db "valepedagio/db/sqlc"
)

type InterfaceRepository interface {
	CreateVpoEmissao(ctx context.Context, arg db.CreateVpoEmissaoParams) (db.VpoEmissoe, error)
	GetVpoEmissaoByUuid(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error)
	ListVpoEmissoes(ctx context.Context, arg db.ListVpoEmissoesParams) ([]db.VpoEmissoe, error)
	ListVpoEmissoesByCodpac(ctx context.Context, codpac int64) ([]db.VpoEmissoe, error)
	GetVpoEmissaoStats(ctx context.Context, arg db.GetVpoEmissaoStatsParams) (db.GetVpoEmissaoStatsRow, error)
	MarkVpoEmissaoProcessing(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error)
	MarkVpoEmissaoCompleted(ctx context.Context, arg db.MarkVpoEmissaoCompletedParams) (db.VpoEmissoe, error)
	MarkVpoEmissaoFailed(ctx context.Context, arg db.MarkVpoEmissaoFailedParams) (db.VpoEmissoe, error)
	MarkVpoEmissaoCancelled(ctx context.Context, arg db.MarkVpoEmissaoCancelledParams) (db.VpoEmissoe, error)
	RegisterVpoEmissaoPolling(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error)
	ResetVpoEmissaoForRetry(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error)
	SetVpoEmissaoCancellationNdd(ctx context.Context, arg db.SetVpoEmissaoCancellationNddParams) (db.VpoEmissoe, error)
}

type Repository struct {
	Conn    *sql.DB
	DBtx    db.DBTX
	Queries *db.Queries
	SqlConn *sql.DB
}

func NewEmissaoRepository(Conn *sql.DB) *Repository {
	q := db.New(Conn)
	return &Repository{
		Conn:    Conn,
		DBtx:    Conn,
		Queries: q,
		SqlConn: Conn,
	}
}

func (r *Repository) CreateVpoEmissao(ctx context.Context, arg db.CreateVpoEmissaoParams) (db.VpoEmissoe, error) {
	return r.Queries.CreateVpoEmissao(ctx, arg)
}
func (r *Repository) GetVpoEmissaoByUuid(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	return r.Queries.GetVpoEmissaoByUuid(ctx, argUuid)
}
func (r *Repository) ListVpoEmissoes(ctx context.Context, arg db.ListVpoEmissoesParams) ([]db.VpoEmissoe, error) {
	return r.Queries.ListVpoEmissoes(ctx, arg)
}
func (r *Repository) ListVpoEmissoesByCodpac(ctx context.Context, codpac int64) ([]db.VpoEmissoe, error) {
	return r.Queries.ListVpoEmissoesByCodpac(ctx, codpac)
}
func (r *Repository) GetVpoEmissaoStats(ctx context.Context, arg db.GetVpoEmissaoStatsParams) (db.GetVpoEmissaoStatsRow, error) {
	return r.Queries.GetVpoEmissaoStats(ctx, arg)
}
func (r *Repository) MarkVpoEmissaoProcessing(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	return r.Queries.MarkVpoEmissaoProcessing(ctx, argUuid)
}
func (r *Repository) MarkVpoEmissaoCompleted(ctx context.Context, arg db.MarkVpoEmissaoCompletedParams) (db.VpoEmissoe, error) {
	return r.Queries.MarkVpoEmissaoCompleted(ctx, arg)
}
func (r *Repository) MarkVpoEmissaoFailed(ctx context.Context, arg db.MarkVpoEmissaoFailedParams) (db.VpoEmissoe, error) {
	return r.Queries.MarkVpoEmissaoFailed(ctx, arg)
}
func (r *Repository) MarkVpoEmissaoCancelled(ctx context.Context, arg db.MarkVpoEmissaoCancelledParams) (db.VpoEmissoe, error) {
	return r.Queries.MarkVpoEmissaoCancelled(ctx, arg)
}
func (r *Repository) RegisterVpoEmissaoPolling(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	return r.Queries.RegisterVpoEmissaoPolling(ctx, argUuid)
}
func (r *Repository) ResetVpoEmissaoForRetry(ctx context.Context, argUuid uuid.UUID) (db.VpoEmissoe, error) {
	return r.Queries.ResetVpoEmissaoForRetry(ctx, argUuid)
}
func (r *Repository) SetVpoEmissaoCancellationNdd(ctx context.Context, arg db.SetVpoEmissaoCancellationNddParams) (db.VpoEmissoe, error) {
	return r.Queries.SetVpoEmissaoCancellationNdd(ctx, arg)
}
