package domain

import (
	"time"

	shared "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

type ClassificationCriteria struct {
	Classification Classification
}

func (c ClassificationCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "classification", Op: shared.OpEq, Value: c.Classification}}
}

// ApplicationCriteria filtra los documentos de una solicitud.
type ApplicationCriteria struct {
	Reference string
}

func (c ApplicationCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "application_ref", Op: shared.OpILike, Value: c.Reference}}
}

// NameLikeCriteria busca por nombre de fichero.
type NameLikeCriteria struct {
	Name string
}

func (c NameLikeCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "name", Op: shared.OpILike, Value: "%" + c.Name + "%"}}
}

var Sorts = query.SortRegistry[Document]{
	"name":           listview.ByFold(func(d Document) string { return d.Name }),
	"classification": listview.By(func(d Document) string { return string(d.Classification) }),
	"size_bytes":     listview.By(func(d Document) int64 { return d.SizeBytes }),
	"uploaded_by":    listview.ByFold(func(d Document) string { return d.UploadedBy }),
	"last_modified":  listview.ByTime(func(d Document) time.Time { return d.LastModified }),
}
