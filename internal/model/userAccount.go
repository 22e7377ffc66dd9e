package model

type UserAccount struct {
	ID           int64
	Login        string
	Email        string
	PasswordHash string
}

// UserAccountChanges holds the fields of a partial update, nil means untouched.
type UserAccountChanges struct {
	Login    *string
	Email    *string
	Password *string
}
