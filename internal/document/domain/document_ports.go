package domain

import "context"

type DocumentRepository interface {
	FetchAll(ctx context.Context) ([]Document, error)
}

// DocumentStore además permite registrar documentos nuevos.
type DocumentStore interface {
	DocumentRepository
	Save(ctx context.Context, doc Document) error
}
