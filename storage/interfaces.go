package storage

import (
	"context"

	"catalog-dashboard/models"
)

// TitleSource is anything the dataset loader can read raw catalog rows from.
type TitleSource interface {
	Name() string
	ReadRaw(ctx context.Context) ([]*models.RawTitle, error)
}

// TitleWriter persists the cleaned base dataset.
type TitleWriter interface {
	Write(ctx context.Context, titles []models.Title) error
	Close() error
}

// TableWriter persists a rendered tabular view.
type TableWriter interface {
	WriteTable(columns []string, rows [][]string) error
	Close() error
}
