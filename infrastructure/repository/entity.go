package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/metrics-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

const adAccountsTable = "ad_accounts"

// EntityRepository lê a hierarquia de anúncios mantida por outro serviço.
// O pipeline só escreve last_synced_at, em MetricsRepository.
type EntityRepository interface {
	ListEntities(ctx context.Context, level domain.EntityLevel, parentIDs []string) ([]domain.Entity, error)
	ListConnectedAccounts(ctx context.Context) ([]domain.ConnectedAccount, error)
	GetConnectedAccount(ctx context.Context, userID, adAccountID string) (*domain.ConnectedAccount, error)
}

type entityRepository struct {
	conn postgres.Queryer
}

func NewEntityRepository(conn postgres.Queryer) EntityRepository {
	return &entityRepository{
		conn: conn,
	}
}

func (r *entityRepository) ListEntities(ctx context.Context, level domain.EntityLevel, parentIDs []string) ([]domain.Entity, error) {
	if len(parentIDs) == 0 {
		return []domain.Entity{}, nil
	}

	query, args, err := buildListEntitiesQuery(level, parentIDs)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao listar %s: %w", level.EntityTable(), err)
	}
	defer rows.Close()

	entities := make([]domain.Entity, 0)
	for rows.Next() {
		var (
			entity       domain.Entity
			lastSyncedAt sql.NullTime
		)

		if err := rows.Scan(&entity.ID, &entity.ParentID, &entity.Name, &lastSyncedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler %s: %w", level.EntityTable(), err)
		}

		entity.Level = level
		if lastSyncedAt.Valid {
			entity.LastSyncedAt = &lastSyncedAt.Time
		}

		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer %s: %w", level.EntityTable(), err)
	}

	return entities, nil
}

func buildListEntitiesQuery(level domain.EntityLevel, parentIDs []string) (string, []interface{}, error) {
	table := level.EntityTable()
	if table == "" {
		return "", nil, fmt.Errorf("nível de entidade inválido: %q", level)
	}

	query, args, err := squirrel.
		Select("id", level.ParentColumn(), "name", "last_synced_at").
		From(table).
		Where(squirrel.Expr(level.ParentColumn()+" = ANY(?)", pq.Array(parentIDs))).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

func (r *entityRepository) ListConnectedAccounts(ctx context.Context) ([]domain.ConnectedAccount, error) {
	query, args, err := squirrel.
		Select("user_id", "id", "access_token").
		From(adAccountsTable).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.NotEq{"access_token": nil}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas conectadas: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.ConnectedAccount, 0)
	for rows.Next() {
		var account domain.ConnectedAccount
		if err := rows.Scan(&account.UserID, &account.AdAccountID, &account.AccessToken); err != nil {
			return nil, fmt.Errorf("erro ao ler conta conectada: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer contas conectadas: %w", err)
	}

	return accounts, nil
}

// GetConnectedAccount devolve nil quando a conta não existe ou não pertence ao usuário
func (r *entityRepository) GetConnectedAccount(ctx context.Context, userID, adAccountID string) (*domain.ConnectedAccount, error) {
	query, args, err := squirrel.
		Select("user_id", "id", "COALESCE(access_token, '')").
		From(adAccountsTable).
		Where(squirrel.Eq{"id": adAccountID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	account := &domain.ConnectedAccount{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(&account.UserID, &account.AdAccountID, &account.AccessToken)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar conta %s: %w", adAccountID, err)
	}

	return account, nil
}
