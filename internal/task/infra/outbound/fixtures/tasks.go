package fixtures

import (
	_ "embed"

	sharedFixtures "github.com/davicafu/consentlab/internal/shared/infra/fixtures"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
)

//go:embed tasks.yaml
var tasksYAML []byte

// Tasks es el tablero de ejemplo; sirve de semilla para el store sqlite.
func Tasks() ([]taskDomain.Task, error) {
	return sharedFixtures.DecodeYAML(tasksYAML, taskDomain.Task.Validate)
}

func NewTaskRepo() (*provider.Static[taskDomain.Task], error) {
	tasks, err := Tasks()
	if err != nil {
		return nil, err
	}
	return provider.NewStatic(tasks), nil
}
