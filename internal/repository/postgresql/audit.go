package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Record(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	var payload []byte
	if entry.Payload != nil {
		var err error
		payload, err = json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal audit payload: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (company_id, user_id, action, entity_type, entity_id, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := q.Exec(ctx, query, entry.CompanyID, entry.UserID, entry.Action, entry.EntityType, entry.EntityID, payload); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
