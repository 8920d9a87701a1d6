package domain

import "context"

// ApplicationRepository es el almacén del que sale el dataset completo.
// Lo implementan fixtures, sqlite y postgres.
type ApplicationRepository interface {
	FetchAll(ctx context.Context) ([]Application, error)
}
