package domain

import "time"

type JobType string

const (
	JobTypeAccount  JobType = "account"
	JobTypeCampaign JobType = "campaign"
	JobTypeAdSet    JobType = "adset"
	JobTypeAd       JobType = "ad"
	JobTypeMetrics  JobType = "metrics"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// IsTerminal indica se o job já terminou
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo aplica a máquina de estados pending -> running -> {completed | failed}.
// Um job que não conseguiu começar pode ir direto de pending para failed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusRunning || next == JobStatusFailed
	case JobStatusRunning:
		return next == JobStatusCompleted || next == JobStatusFailed
	}
	return false
}

// JobDetails acumula as contagens por nível para observabilidade
type JobDetails struct {
	CampaignsSynced  int                    `json:"campaigns_synced"`
	AdSetsSynced     int                    `json:"adsets_synced"`
	AdsSynced        int                    `json:"ads_synced"`
	PermissionIssues bool                   `json:"permission_issues"`
	LevelErrors      map[EntityLevel]string `json:"level_errors,omitempty"`
}

// SetSynced registra quantas entidades foram listadas no nível
func (d *JobDetails) SetSynced(level EntityLevel, count int) {
	switch level {
	case LevelCampaign:
		d.CampaignsSynced = count
	case LevelAdSet:
		d.AdSetsSynced = count
	case LevelAd:
		d.AdsSynced = count
	}
}

// AddLevelError guarda a última falha vista no nível
func (d *JobDetails) AddLevelError(level EntityLevel, err error) {
	if err == nil {
		return
	}
	if d.LevelErrors == nil {
		d.LevelErrors = make(map[EntityLevel]string)
	}
	d.LevelErrors[level] = err.Error()
}

type SyncJob struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	AdAccountID  string      `json:"ad_account_id"`
	JobType      JobType     `json:"job_type"`
	Status       JobStatus   `json:"status"`
	StartedAt    time.Time   `json:"started_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	ErrorMessage *string     `json:"error_message,omitempty"`
	Details      *JobDetails `json:"details,omitempty"`
}

// JobTransition descreve uma mudança de estado a ser persistida
type JobTransition struct {
	From         JobStatus
	To           JobStatus
	CompletedAt  *time.Time
	ErrorMessage *string
	Details      *JobDetails
}
