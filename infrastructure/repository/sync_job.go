package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/metrics-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SyncJobRepository interface {
	Create(ctx context.Context, job *domain.SyncJob) error
	GetByID(ctx context.Context, id string) (*domain.SyncJob, error)
	// Transition só aplica a mudança se o job ainda estiver em t.From e
	// devolve false quando nenhuma linha foi alterada.
	Transition(ctx context.Context, id string, t domain.JobTransition) (bool, error)
}

type syncJobRepository struct {
	conn postgres.Queryer
}

func NewSyncJobRepository(conn postgres.Queryer) SyncJobRepository {
	return &syncJobRepository{
		conn: conn,
	}
}

func (r *syncJobRepository) Create(ctx context.Context, job *domain.SyncJob) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert(domain.SyncJobsTable).
		Columns("id", "user_id", "ad_account_id", "job_type", "status", "started_at").
		Values(job.ID, job.UserID, job.AdAccountID, string(job.JobType), string(job.Status), job.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sqlQuery, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao criar job: %w", err)
	}

	return nil
}

func (r *syncJobRepository) GetByID(ctx context.Context, id string) (*domain.SyncJob, error) {
	sqlQuery, args, err := squirrel.
		Select("id", "user_id", "ad_account_id", "job_type", "status", "started_at", "completed_at", "error_message", "details").
		From(domain.SyncJobsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	job, err := r.scanJob(r.conn.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return job, nil
}

func (r *syncJobRepository) scanJob(row *sql.Row) (*domain.SyncJob, error) {
	var (
		job          domain.SyncJob
		jobType      string
		status       string
		completedAt  sql.NullTime
		errorMessage sql.NullString
		details      []byte
	)

	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.AdAccountID,
		&jobType,
		&status,
		&job.StartedAt,
		&completedAt,
		&errorMessage,
		&details,
	); err != nil {
		return nil, err
	}

	job.JobType = domain.JobType(jobType)
	job.Status = domain.JobStatus(status)
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	if errorMessage.Valid {
		job.ErrorMessage = &errorMessage.String
	}
	if len(details) > 0 {
		job.Details = &domain.JobDetails{}
		if err := json.Unmarshal(details, job.Details); err != nil {
			return nil, fmt.Errorf("erro ao desserializar detalhes do job: %w", err)
		}
	}

	return &job, nil
}

func (r *syncJobRepository) Transition(ctx context.Context, id string, t domain.JobTransition) (bool, error) {
	sqlQuery, args, err := buildTransitionQuery(id, t)
	if err != nil {
		return false, err
	}

	result, err := r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar job %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func buildTransitionQuery(id string, t domain.JobTransition) (string, []interface{}, error) {
	query := squirrel.
		Update(domain.SyncJobsTable).
		Set("status", string(t.To)).
		Where(squirrel.Eq{"id": id, "status": string(t.From)}).
		PlaceholderFormat(squirrel.Dollar)

	if t.CompletedAt != nil {
		query = query.Set("completed_at", *t.CompletedAt)
	}
	if t.ErrorMessage != nil {
		query = query.Set("error_message", *t.ErrorMessage)
	}
	if t.Details != nil {
		details, err := json.Marshal(t.Details)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao serializar detalhes do job: %w", err)
		}
		query = query.Set("details", string(details))
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return sqlQuery, args, nil
}
