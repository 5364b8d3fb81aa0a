package execution

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one dispatch outcome kept for the execution trail.
type Record struct {
	ID        uuid.UUID `json:"id"`
	TaskID    string    `json:"task_id"`
	AgentID   string    `json:"agent_id"`
	AgentName string    `json:"agent_name"`
	Status    string    `json:"status"`
	ElapsedMs int64     `json:"elapsed_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines execution trail persistence.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	ListByAgent(ctx context.Context, agentID string, limit int) ([]*Record, error)
}
