package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	portsrepo "github.com/finbooks/finbooks_app/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// GenerateNextNumber hands out the next transaction number for the
// company and the month the date falls in. The upsert with RETURNING
// serializes concurrent callers on the counter row, so numbers never
// repeat within a period.
func (r *PgxSequenceRepository) GenerateNextNumber(ctx context.Context, companyID string, date time.Time) (string, error) {
	period := date.UTC().Format("200601")
	query := `
		INSERT INTO transaction_sequences (company_id, period, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, period) DO UPDATE
		SET last_value = transaction_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := r.Pool.QueryRow(ctx, query, companyID, period).Scan(&next); err != nil {
		return "", apperrors.NewAppError(500, "failed to generate transaction number for company "+companyID, err)
	}
	return fmt.Sprintf("TXN-%s-%05d", period, next), nil
}
