package fixtures

import (
	_ "embed"

	documentDomain "github.com/davicafu/consentlab/internal/document/domain"
	sharedFixtures "github.com/davicafu/consentlab/internal/shared/infra/fixtures"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
)

//go:embed documents.yaml
var documentsYAML []byte

func Documents() ([]documentDomain.Document, error) {
	return sharedFixtures.DecodeYAML(documentsYAML, documentDomain.Document.Validate)
}

func NewDocumentRepo() (*provider.Static[documentDomain.Document], error) {
	docs, err := Documents()
	if err != nil {
		return nil, err
	}
	return provider.NewStatic(docs), nil
}
