package natsort

import "database/sql"

// NaturalSortOrder is the scalar form of Key with SQL null semantics: a null
// value yields a null result without computing a key. Width follows the same
// rules as Key, so values outside (0, MaxWidth] mean DefaultWidth.
func NaturalSortOrder(value sql.NullString, width int) sql.NullString {
	if !value.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: Key(value.String, width), Valid: true}
}
