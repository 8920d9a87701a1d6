package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	"github.com/davicafu/consentlab/internal/shared/application/listing"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

// ApplicationService define los casos de uso de la tabla de solicitudes.
type ApplicationService struct {
	listing *listing.Service[consentDomain.Application]
	log     *zap.Logger
}

func NewApplicationService(p provider.Provider[consentDomain.Application], log *zap.Logger) *ApplicationService {
	return &ApplicationService{
		listing: listing.NewService(p, consentDomain.ResolveField, consentDomain.Sorts, log),
		log:     log,
	}
}

// ListApplications devuelve la página pedida de la tabla.
func (s *ApplicationService) ListApplications(ctx context.Context, q query.ListQuery) (listview.PageResult[consentDomain.Application], error) {
	return s.listing.List(ctx, q)
}

// GetApplication busca por id o, si no hay coincidencia, por número de referencia.
func (s *ApplicationService) GetApplication(ctx context.Context, idOrRef string) (consentDomain.Application, error) {
	app, ok, err := s.listing.First(ctx, sharedDomain.Or(
		sharedDomain.Where("id", sharedDomain.OpEq, idOrRef),
		sharedDomain.Where("reference", sharedDomain.OpILike, idOrRef),
	))
	if err != nil {
		s.log.Error("Failed to fetch application", zap.String("id", idOrRef), zap.Error(err))
		return consentDomain.Application{}, err
	}
	if !ok {
		s.log.Warn("Application not found", zap.String("id", idOrRef))
		return consentDomain.Application{}, consentDomain.ErrApplicationNotFound
	}
	return app, nil
}

// Stats cuenta las solicitudes que cumplen criteria agrupadas por field.
func (s *ApplicationService) Stats(ctx context.Context, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error) {
	counts, err := s.listing.CountBy(ctx, criteria, field)
	if err != nil {
		if !errors.Is(err, sharedDomain.ErrInvalidArgument) {
			s.log.Error("Failed to compute application stats", zap.String("field", field), zap.Error(err))
		}
		return nil, err
	}
	return listview.SortedCounts(counts), nil
}

// SortFields expone las columnas ordenables para el cliente.
func (s *ApplicationService) SortFields() []string {
	return s.listing.SortFields()
}
