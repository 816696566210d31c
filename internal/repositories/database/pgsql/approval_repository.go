package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_app/internal/models"
	"github.com/finbooks/finbooks_app/internal/utils/mapping"
)

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(pool Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

const approvalColumns = `approval_id, company_id, target_type, target_id, content_hash, approval_type, status, requested_by, requested_at, decided_by, decided_at, notes`

func scanApproval(row pgx.Row) (models.Approval, error) {
	var m models.Approval
	err := row.Scan(
		&m.ApprovalID,
		&m.CompanyID,
		&m.TargetType,
		&m.TargetID,
		&m.ContentHash,
		&m.ApprovalType,
		&m.Status,
		&m.RequestedBy,
		&m.RequestedAt,
		&m.DecidedBy,
		&m.DecidedAt,
		&m.Notes,
	)
	return m, err
}

// SaveApproval inserts a new approval record.
func (r *PgxApprovalRepository) SaveApproval(ctx context.Context, approval domain.Approval) error {
	m := mapping.ToModelApproval(approval)
	query := `
		INSERT INTO approvals (` + approvalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ApprovalID,
		m.CompanyID,
		m.TargetType,
		m.TargetID,
		m.ContentHash,
		m.ApprovalType,
		m.Status,
		m.RequestedBy,
		m.RequestedAt,
		m.DecidedBy,
		m.DecidedAt,
		m.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert approval "+m.ApprovalID, err)
	}
	return nil
}

// UpdateApproval persists an approval decision.
func (r *PgxApprovalRepository) UpdateApproval(ctx context.Context, approval domain.Approval) error {
	m := mapping.ToModelApproval(approval)
	query := `
		UPDATE approvals
		SET status = $2, decided_by = $3, decided_at = $4, notes = $5
		WHERE approval_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.ApprovalID, m.Status, m.DecidedBy, m.DecidedAt, m.Notes)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update approval "+m.ApprovalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindApprovalByID retrieves one approval.
func (r *PgxApprovalRepository) FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE approval_id = $1;`
	m, err := scanApproval(r.Pool.QueryRow(ctx, query, approvalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find approval "+approvalID, err)
	}
	approval := mapping.ToDomainApproval(m)
	return &approval, nil
}

// FindApprovalsByTarget returns all approvals bound to a target entity,
// newest first.
func (r *PgxApprovalRepository) FindApprovalsByTarget(ctx context.Context, targetType, targetID string) ([]domain.Approval, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approvals
		WHERE target_type = $1 AND target_id = $2
		ORDER BY requested_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, targetType, targetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query approvals for "+targetType+" "+targetID, err)
	}
	defer rows.Close()

	approvals := []domain.Approval{}
	for rows.Next() {
		m, err := scanApproval(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan approval row", err)
		}
		approvals = append(approvals, mapping.ToDomainApproval(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating approval rows", err)
	}
	return approvals, nil
}
