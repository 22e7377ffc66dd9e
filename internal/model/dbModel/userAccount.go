package dbModel

type UserAccount struct {
	ID           int64  `db:"id"`
	Login        string `db:"login"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}
