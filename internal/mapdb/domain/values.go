package domain

import (
	"database/sql"
	"regexp"
	"strconv"

	"shamtool/internal/shared/dbentity"
)

var mapCodePattern = regexp.MustCompile(`^@?(\d+)$`)

// ParseMapCode normalizes "@123456" and "123456" to 123456.
func ParseMapCode(s string) (int64, bool) {
	m := mapCodePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	code, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return code, true
}

// FormatMapCode renders code the way players type it.
func FormatMapCode(code int64) string {
	return "@" + strconv.FormatInt(code, 10)
}

// ListFilter narrows a catalog listing. Nil flags do not filter.
type ListFilter struct {
	Author    string
	Divinity  *bool
	Spiritual *bool
	Limit     int
	Offset    int
}

func updateInt(e *dbentity.Entity, attr string, v *int64) {
	if v != nil {
		e.Update(attr, sql.NullInt64{Int64: *v, Valid: true})
	}
}

func updateBool(e *dbentity.Entity, attr string, v *bool) {
	if v != nil {
		e.Update(attr, sql.NullBool{Bool: *v, Valid: true})
	}
}

func nullInt(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullBool(n sql.NullBool) *bool {
	if !n.Valid {
		return nil
	}
	v := n.Bool
	return &v
}

func nullString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
