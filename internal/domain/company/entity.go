package company

import "time"

// Company - Code is the uppercase prefix of every employee number, e.g. ACME-2025-001
type Company struct {
	ID        string
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
