package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKey reports a unique constraint violation.
// gorm.ErrDuplicatedKey is returned when the dialector translates errors; the message
// checks cover connections opened without TranslateError.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") || // postgres
		strings.Contains(msg, "duplicate entry") // mysql
}

// likePattern escapes LIKE wildcards with '!' (portable across postgres, mysql and sqlite)
// and wraps the lower-cased term in %...%.
func likePattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

// prefixPattern is likePattern anchored at the start
func prefixPattern(term string) string {
	return escapeLike(term) + "%"
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(term string) string {
	return likeEscaper.Replace(strings.ToLower(term))
}
