package fixtures

import (
	_ "embed"

	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	sharedFixtures "github.com/davicafu/consentlab/internal/shared/infra/fixtures"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
)

//go:embed applications.yaml
var applicationsYAML []byte

// Applications decodifica el dataset embebido.
func Applications() ([]consentDomain.Application, error) {
	return sharedFixtures.DecodeYAML(applicationsYAML, consentDomain.Application.Validate)
}

// NewApplicationRepo sirve las solicitudes embebidas desde memoria.
func NewApplicationRepo() (*provider.Static[consentDomain.Application], error) {
	apps, err := Applications()
	if err != nil {
		return nil, err
	}
	return provider.NewStatic(apps), nil
}

var _ consentDomain.ApplicationRepository = (*provider.Static[consentDomain.Application])(nil)
