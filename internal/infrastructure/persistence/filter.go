package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tkforgeworks/cookconnect/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering to a query. The order
// column must appear in the caller's allowlist; anything else falls
// back to created_at so filter input can never reach the SQL text.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedColumns map[string]bool) *gorm.DB {
	column := strings.ToLower(strings.TrimSpace(filter.OrderBy))
	if !allowedColumns[column] {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		direction = "ASC"
	}
	return query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}
