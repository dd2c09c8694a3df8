package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultOnboardingChecklist(t *testing.T) {
	hire := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	items := GetDefaultOnboardingChecklist("emp-1", hire)

	assert.Len(t, items, len(defaultChecklist))
	for i, item := range items {
		assert.Equal(t, "emp-1", item.EmployeeID)
		assert.Equal(t, i, item.Position)
		assert.False(t, item.DueDate.Before(hire), item.Task)
		assert.False(t, item.IsCompleted)
	}
}

func TestGetDefaultLeaveTypes(t *testing.T) {
	types := GetDefaultLeaveTypes("company-1")

	codes := map[string]bool{}
	for _, lt := range types {
		assert.Equal(t, "company-1", lt.CompanyID)
		assert.True(t, lt.IsActive)
		assert.True(t, lt.DefaultDays.IsPositive(), lt.Code)
		codes[lt.Code] = true
	}
	assert.Len(t, codes, len(types), "codes must be unique")
	assert.True(t, codes["ANNUAL"])
}
