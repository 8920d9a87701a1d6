package domain

import "context"

type ReferralRepository interface {
	FetchAll(ctx context.Context) ([]Referral, error)
}
