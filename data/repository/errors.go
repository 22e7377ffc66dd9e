package repository

import "errors"

var (
	ErrAlreadyExists     = errors.New("error already exists")
	ErrNotFound          = errors.New("error not found")
	ErrReferenceNotFound = errors.New("error referenced entity not found")
)
