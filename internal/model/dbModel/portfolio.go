package dbModel

import (
	"database/sql"
	"time"
)

type Portfolio struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	CreatedDate time.Time      `db:"created_date"`
	UserID      sql.NullInt64  `db:"user_id"`
	UserLogin   sql.NullString `db:"user_login"`
}
