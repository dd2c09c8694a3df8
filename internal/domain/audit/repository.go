package audit

import "context"

type AuditRepository interface {
	Record(ctx context.Context, entry Entry) error
}
