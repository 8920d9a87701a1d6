package domain

import (
	"time"

	shared "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

type DepartmentCriteria struct {
	Department string
}

func (c DepartmentCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "department", Op: shared.OpEq, Value: c.Department}}
}

type StatusCriteria struct {
	Status Status
}

func (c StatusCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "status", Op: shared.OpEq, Value: c.Status}}
}

// AssigneeCriteria filtra por la persona asignada (sin distinguir mayúsculas).
type AssigneeCriteria struct {
	Assignee string
}

func (c AssigneeCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "assigned_to", Op: shared.OpILike, Value: c.Assignee}}
}

// OverdueCriteria se queda con las consultas vencidas (o con las no vencidas).
type OverdueCriteria struct {
	Overdue bool
}

func (c OverdueCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "overdue", Op: shared.OpEq, Value: c.Overdue}}
}

func SearchCriteria(text string) shared.Criteria {
	pattern := "%" + text + "%"
	return shared.Or(
		shared.Where("application_ref", shared.OpILike, pattern),
		shared.Where("assigned_to", shared.OpILike, pattern),
		shared.Where("department", shared.OpILike, pattern),
	)
}

var Sorts = query.SortRegistry[Referral]{
	"application_ref": listview.By(func(r Referral) string { return r.ApplicationRef }),
	"department":      listview.By(func(r Referral) string { return r.Department }),
	"status":          listview.By(func(r Referral) string { return string(r.Status) }),
	"assigned_to":     listview.ByFold(func(r Referral) string { return r.AssignedTo }),
	"due_date":        listview.ByTime(func(r Referral) time.Time { return r.DueDate }),
	"last_modified":   listview.ByTime(func(r Referral) time.Time { return r.LastModified }),
}
