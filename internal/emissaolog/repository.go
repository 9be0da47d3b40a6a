package emissaolog

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	db "valepedagio/db/sqlc"
)

type InterfaceRepository interface {
	CreateVpoEmissaoLog(ctx context.Context, arg db.CreateVpoEmissaoLogParams) (db.VpoEmissaoLog, error)
	ListVpoEmissaoLogs(ctx context.Context, arg db.ListVpoEmissaoLogsParams) ([]db.VpoEmissaoLog, error)
	ListVpoEmissaoLogsByUuid(ctx context.Context, emissaoUuid uuid.UUID) ([]db.VpoEmissaoLog, error)
	GetVpoEmissaoLogStats(ctx context.Context, arg db.GetVpoEmissaoLogStatsParams) (db.GetVpoEmissaoLogStatsRow, error)
}

type Repository struct {
	Conn    *sql.DB
	DBtx    db.DBTX
	Queries *db.Queries
	SqlConn *sql.DB
}

func NewEmissaoLogRepository(Conn *sql.DB) *Repository {
	q := db.New(Conn)
	return &Repository{
		Conn:    Conn,
		DBtx:    Conn,
		Queries: q,
		SqlConn: Conn,
	}
}

func (r *Repository) CreateVpoEmissaoLog(ctx context.Context, arg db.CreateVpoEmissaoLogParams) (db.VpoEmissaoLog, error) {
	return r.Queries.CreateVpoEmissaoLog(ctx, arg)
}
func (r *Repository) ListVpoEmissaoLogs(ctx context.Context, arg db.ListVpoEmissaoLogsParams) ([]db.VpoEmissaoLog, error) {
	return r.Queries.ListVpoEmissaoLogs(ctx, arg)
}
func (r *Repository) ListVpoEmissaoLogsByUuid(ctx context.Context, emissaoUuid uuid.UUID) ([]db.VpoEmissaoLog, error) {
	return r.Queries.ListVpoEmissaoLogsByUuid(ctx, emissaoUuid)
}
func (r *Repository) GetVpoEmissaoLogStats(ctx context.Context, arg db.GetVpoEmissaoLogStatsParams) (db.GetVpoEmissaoLogStatsRow, error) {
	return r.Queries.GetVpoEmissaoLogStats(ctx, arg)
}
