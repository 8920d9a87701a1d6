package domain

import (
	"time"

	shared "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

// --- Criterios específicos para solicitudes ---

// StatusCriteria busca solicitudes en cualquiera de los estados indicados.
type StatusCriteria struct {
	Statuses []Status
}

func (c StatusCriteria) ToConditions() []shared.Criterion {
	if len(c.Statuses) == 0 {
		return nil
	}
	if len(c.Statuses) == 1 {
		return []shared.Criterion{{Field: "status", Op: shared.OpEq, Value: c.Statuses[0]}}
	}
	return []shared.Criterion{{Field: "status", Op: shared.OpIn, Value: c.Statuses}}
}

// DepartmentCriteria filtra por departamento responsable.
type DepartmentCriteria struct {
	Department string
}

func (c DepartmentCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "department", Op: shared.OpEq, Value: c.Department}}
}

// TypeCriteria filtra por tipo de obra.
type TypeCriteria struct {
	Type string
}

func (c TypeCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "type", Op: shared.OpEq, Value: c.Type}}
}

// LodgedRangeCriteria acota la fecha de presentación. Ambos extremos son opcionales.
type LodgedRangeCriteria struct {
	From *time.Time
	To   *time.Time
}

func (c LodgedRangeCriteria) ToConditions() []shared.Criterion {
	var conds []shared.Criterion
	if c.From != nil {
		conds = append(conds, shared.Criterion{Field: "lodged_at", Op: shared.OpGte, Value: *c.From})
	}
	if c.To != nil {
		conds = append(conds, shared.Criterion{Field: "lodged_at", Op: shared.OpLte, Value: *c.To})
	}
	return conds
}

// SearchCriteria es la caja de búsqueda: referencia, dirección o solicitante.
func SearchCriteria(text string) shared.Criteria {
	pattern := "%" + text + "%"
	return shared.Or(
		shared.Where("reference", shared.OpILike, pattern),
		shared.Where("address", shared.OpILike, pattern),
		shared.Where("applicant", shared.OpILike, pattern),
	)
}

// Sorts son las columnas ordenables de la tabla de solicitudes.
var Sorts = query.SortRegistry[Application]{
	"reference":     listview.By(func(a Application) string { return a.Reference }),
	"address":       listview.ByFold(func(a Application) string { return a.Address }),
	"applicant":     listview.ByFold(func(a Application) string { return a.Applicant }),
	"status":        listview.By(func(a Application) string { return string(a.Status) }),
	"department":    listview.By(func(a Application) string { return a.Department }),
	"lodged_at":     listview.ByTime(func(a Application) time.Time { return a.LodgedAt }),
	"last_modified": listview.ByTime(func(a Application) time.Time { return a.LastModified }),
}
