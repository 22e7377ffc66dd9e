package model

type SortOrder struct {
	Field string
	Desc  bool
}

type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

type Page[T any] struct {
	Items []T
	Total int64
}
