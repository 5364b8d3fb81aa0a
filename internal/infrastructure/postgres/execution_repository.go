package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agent-hub/agent-hub/internal/domain/execution"
)

// ExecutionRepository implements execution.Repository.
type ExecutionRepository struct {
	pool *pgxpool.Pool
}

func NewExecutionRepository(pool *pgxpool.Pool) *ExecutionRepository {
	return &ExecutionRepository{pool: pool}
}

func (r *ExecutionRepository) Create(ctx context.Context, rec *execution.Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO execution_records
		(id, task_id, agent_id, agent_name, status, elapsed_ms, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, rec.ID, rec.TaskID, rec.AgentID, rec.AgentName, rec.Status, rec.ElapsedMs, rec.CreatedAt)
	return err
}

func (r *ExecutionRepository) ListByAgent(ctx context.Context, agentID string, limit int) ([]*execution.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, task_id, agent_id, agent_name, status, elapsed_ms, created_at
		FROM execution_records
		WHERE agent_id=$1
		ORDER BY created_at DESC
		LIMIT $2
	`, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*execution.Record, 0)
	for rows.Next() {
		rec := &execution.Record{}
		if err := rows.Scan(&rec.ID, &rec.TaskID, &rec.AgentID, &rec.AgentName, &rec.Status, &rec.ElapsedMs, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
