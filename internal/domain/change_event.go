package domain

import "time"

// SyncJobsTable é a tabela de jobs, usada também como canal de notificação
const SyncJobsTable = "sync_jobs"

type ChangeOperation string

const (
	ChangeUpsert ChangeOperation = "upsert"
	ChangeUpdate ChangeOperation = "update"
	ChangeInsert ChangeOperation = "insert"
)

// ChangeEvent é publicado a cada mutação feita pelo pipeline para que a UI
// filtre por (tabela, usuário).
type ChangeEvent struct {
	ID         string          `json:"id"`
	Table      string          `json:"table"`
	UserID     string          `json:"user_id"`
	Operation  ChangeOperation `json:"operation"`
	EntityIDs  []string        `json:"entity_ids,omitempty"`
	Count      int             `json:"count"`
	JobID      string          `json:"job_id,omitempty"`
	Status     JobStatus       `json:"status,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
