package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/metrics-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

var metricColumns = []string{
	"date",
	"impressions",
	"clicks",
	"reach",
	"frequency",
	"spend",
	"cpc",
	"cpm",
	"ctr",
	"unique_clicks",
	"unique_ctr",
	"cost_per_result",
	"conversions",
	"conversion_rate",
}

type MetricsRepository interface {
	UpsertMetrics(ctx context.Context, level domain.EntityLevel, records []domain.MetricRecord) (int64, error)
	MarkSynced(ctx context.Context, level domain.EntityLevel, entityIDs []string, syncedAt time.Time) error
}

type metricsRepository struct {
	conn postgres.Queryer
}

func NewMetricsRepository(conn postgres.Queryer) MetricsRepository {
	return &metricsRepository{
		conn: conn,
	}
}

// UpsertMetrics grava todos os registros em uma única instrução. Reexecutar com
// os mesmos registros não cria linhas novas.
func (r *metricsRepository) UpsertMetrics(ctx context.Context, level domain.EntityLevel, records []domain.MetricRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	sqlQuery, args, err := BuildUpsertQuery(level, records)
	if err != nil {
		return 0, err
	}

	result, err := r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// BuildUpsertQuery monta o INSERT ... ON CONFLICT (<chave>, date) do nível
func BuildUpsertQuery(level domain.EntityLevel, records []domain.MetricRecord) (string, []interface{}, error) {
	table := level.MetricsTable()
	if table == "" {
		return "", nil, fmt.Errorf("nível de entidade inválido: %q", level)
	}
	keyColumn := level.KeyColumn()

	columns := append([]string{keyColumn}, metricColumns...)

	query := squirrel.StatementBuilder.
		Insert(table).
		Columns(columns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, m := range records {
		query = query.Values(
			m.EntityID,
			m.Date,
			m.Impressions,
			m.Clicks,
			m.Reach,
			m.Frequency,
			decimalOrZero(m.Spend),
			decimalOrZero(m.CPC),
			decimalOrZero(m.CPM),
			m.CTR,
			m.UniqueClicks,
			m.UniqueCTR,
			decimalOrZero(m.CostPerResult),
			m.Conversions,
			m.ConversionRate,
		)
	}

	updates := make([]string, 0, len(metricColumns))
	for _, column := range metricColumns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	updates = append(updates, "updated_at = NOW()")

	query = query.Suffix(fmt.Sprintf(
		"ON CONFLICT (%s, date) DO UPDATE SET %s",
		keyColumn,
		strings.Join(updates, ", "),
	))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	return sqlQuery, args, nil
}

// MarkSynced atualiza last_synced_at de todas as entidades em uma instrução
func (r *metricsRepository) MarkSynced(ctx context.Context, level domain.EntityLevel, entityIDs []string, syncedAt time.Time) error {
	if len(entityIDs) == 0 {
		return nil
	}

	table := level.EntityTable()
	if table == "" {
		return fmt.Errorf("nível de entidade inválido: %q", level)
	}

	sqlQuery, args, err := squirrel.
		Update(table).
		Set("last_synced_at", syncedAt).
		Where(squirrel.Expr("id = ANY(?)", pq.Array(entityIDs))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao atualizar last_synced_at de %s: %w", table, err)
	}

	return nil
}

func decimalOrZero(v string) string {
	if strings.TrimSpace(v) == "" {
		return domain.ZeroDecimal
	}
	return v
}
