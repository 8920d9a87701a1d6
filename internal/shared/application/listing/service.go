package listing

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

// Service implementa los casos de uso de cualquier vista de listado:
// obtener el dataset, filtrar, ordenar, paginar y contar.
// Los contextos (consent, referral, document, task) lo instancian con su tipo.
type Service[T any] struct {
	provider provider.Provider[T]
	resolve  sharedDomain.FieldResolver[T]
	sorts    query.SortRegistry[T]
	log      *zap.Logger
}

func NewService[T any](p provider.Provider[T], resolve sharedDomain.FieldResolver[T], sorts query.SortRegistry[T], log *zap.Logger) *Service[T] {
	return &Service[T]{provider: p, resolve: resolve, sorts: sorts, log: log}
}

// SortFields lista los campos por los que se puede ordenar.
func (s *Service[T]) SortFields() []string {
	return s.sorts.Fields()
}

// List devuelve la página pedida. Los errores de contrato (página, orden)
// se detectan antes de tocar el proveedor.
func (s *Service[T]) List(ctx context.Context, q query.ListQuery) (listview.PageResult[T], error) {
	if err := q.Page.Validate(); err != nil {
		return listview.PageResult[T]{}, err
	}
	key, err := s.sorts.Resolve(q.Sort)
	if err != nil {
		return listview.PageResult[T]{}, err
	}

	items, err := s.provider.FetchAll(ctx)
	if err != nil {
		s.log.Error("Failed to fetch dataset for list view", zap.Error(err))
		return listview.PageResult[T]{}, err
	}

	view := listview.View[T]{
		Predicates: []listview.Predicate[T]{sharedDomain.Predicate(q.Criteria, s.resolve)},
		Key:        key,
		Direction:  q.Sort.Direction(),
		Page:       q.Page,
	}
	result, err := view.Apply(items)
	if err != nil {
		return listview.PageResult[T]{}, err
	}

	s.log.Debug("List view computed",
		zap.Int("total_items", result.TotalItems),
		zap.Int("page", result.CurrentPage),
		zap.Int("total_pages", result.TotalPages),
	)
	return result, nil
}

// Find devuelve los elementos que cumplen criteria, sin paginar, en el orden del proveedor.
func (s *Service[T]) Find(ctx context.Context, criteria sharedDomain.Criteria) ([]T, error) {
	items, err := s.provider.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return listview.Filter(items, sharedDomain.Predicate(criteria, s.resolve)), nil
}

// First devuelve el primer elemento que cumple criteria.
func (s *Service[T]) First(ctx context.Context, criteria sharedDomain.Criteria) (T, bool, error) {
	var zero T
	found, err := s.Find(ctx, criteria)
	if err != nil || len(found) == 0 {
		return zero, false, err
	}
	return found[0], true, nil
}

// CountBy agrupa por field los elementos que cumplen criteria y cuenta cada grupo.
// Un campo que el resolver no conoce es ErrInvalidArgument.
func (s *Service[T]) CountBy(ctx context.Context, criteria sharedDomain.Criteria, field string) (map[string]int, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	var zero T
	if _, ok := s.resolve(zero, field); !ok {
		return nil, fmt.Errorf("%w: unknown field %q", listview.ErrInvalidArgument, field)
	}

	items, err := s.Find(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return listview.CountBy(items, func(item T) string {
		v, _ := s.resolve(item, field)
		return fmt.Sprint(v)
	}), nil
}
