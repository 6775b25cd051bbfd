package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// containsClause builds a case-sensitive substring predicate for column.
// LIKE is avoided because sqlite folds ASCII case and both dialects treat
// % and _ in the query as wildcards.
func containsClause(db *gorm.DB, column string) string {
	switch db.Name() {
	case "postgres":
		return fmt.Sprintf("strpos(%s, ?) > 0", column)
	default:
		return fmt.Sprintf("instr(%s, ?) > 0", column)
	}
}

// isBlank reports whether a search query should return the unfiltered set.
func isBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
