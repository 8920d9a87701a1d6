package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	referralDomain "github.com/davicafu/consentlab/internal/referral/domain"
	"github.com/davicafu/consentlab/internal/shared/application/listing"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

// ReferralService define los casos de uso de la vista de consultas internas.
type ReferralService struct {
	listing *listing.Service[referralDomain.Referral]
	log     *zap.Logger
}

// NewReferralService recibe el reloj para poder calcular "overdue" de forma determinista en tests.
func NewReferralService(p provider.Provider[referralDomain.Referral], now func() time.Time, log *zap.Logger) *ReferralService {
	if now == nil {
		now = time.Now
	}
	return &ReferralService{
		listing: listing.NewService(p, referralDomain.NewFieldResolver(now), referralDomain.Sorts, log),
		log:     log,
	}
}

func (s *ReferralService) ListReferrals(ctx context.Context, q query.ListQuery) (listview.PageResult[referralDomain.Referral], error) {
	return s.listing.List(ctx, q)
}

// Stats agrupa por field. "overdue" agrupa en "true"/"false".
func (s *ReferralService) Stats(ctx context.Context, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error) {
	counts, err := s.listing.CountBy(ctx, criteria, field)
	if err != nil {
		return nil, err
	}
	return listview.SortedCounts(counts), nil
}
