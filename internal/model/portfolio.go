package model

import "time"

type Portfolio struct {
	ID          int64
	Name        string
	CreatedDate time.Time
	User        *UserRef
}

type UserRef struct {
	ID    int64
	Login string
}

type PortfolioChanges struct {
	Name        *string
	CreatedDate *time.Time
	UserID      *int64
}
