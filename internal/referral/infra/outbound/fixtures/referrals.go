package fixtures

import (
	_ "embed"

	referralDomain "github.com/davicafu/consentlab/internal/referral/domain"
	sharedFixtures "github.com/davicafu/consentlab/internal/shared/infra/fixtures"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
)

//go:embed referrals.yaml
var referralsYAML []byte

func Referrals() ([]referralDomain.Referral, error) {
	return sharedFixtures.DecodeYAML(referralsYAML, referralDomain.Referral.Validate)
}

func NewReferralRepo() (*provider.Static[referralDomain.Referral], error) {
	refs, err := Referrals()
	if err != nil {
		return nil, err
	}
	return provider.NewStatic(refs), nil
}
