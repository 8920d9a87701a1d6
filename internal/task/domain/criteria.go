package domain

import (
	"time"

	shared "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

// ColumnCriteria busca tareas en una o varias columnas del tablero.
type ColumnCriteria struct {
	Columns []Column
}

func (c ColumnCriteria) ToConditions() []shared.Criterion {
	if len(c.Columns) == 1 {
		return []shared.Criterion{{Field: "column", Op: shared.OpEq, Value: c.Columns[0]}}
	}
	values := make([]interface{}, len(c.Columns))
	for i, col := range c.Columns {
		values[i] = col
	}
	return []shared.Criterion{{Field: "column", Op: shared.OpIn, Value: values}}
}

type PriorityCriteria struct {
	Priority Priority
}

func (c PriorityCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "priority", Op: shared.OpEq, Value: c.Priority}}
}

// AssigneeCriteria busca tareas de una persona (sin distinguir mayúsculas).
type AssigneeCriteria struct {
	Assignee string
}

func (c AssigneeCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "assignee", Op: shared.OpILike, Value: c.Assignee}}
}

type ApplicationCriteria struct {
	Reference string
}

func (c ApplicationCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "application_ref", Op: shared.OpILike, Value: c.Reference}}
}

// DueRangeCriteria usa punteros para que ambos extremos sean opcionales.
type DueRangeCriteria struct {
	Start *time.Time
	End   *time.Time
}

func (c DueRangeCriteria) ToConditions() []shared.Criterion {
	var conds []shared.Criterion
	if c.Start != nil {
		conds = append(conds, shared.Criterion{Field: "due_date", Op: shared.OpGte, Value: *c.Start})
	}
	if c.End != nil {
		conds = append(conds, shared.Criterion{Field: "due_date", Op: shared.OpLte, Value: *c.End})
	}
	return conds
}

func SearchCriteria(text string) shared.Criteria {
	pattern := "%" + text + "%"
	return shared.Or(
		shared.Where("title", shared.OpILike, pattern),
		shared.Where("application_ref", shared.OpILike, pattern),
		shared.Where("assignee", shared.OpILike, pattern),
	)
}

var byPriority = listview.By(func(t Task) int { return t.Priority.Rank() })

// byDue deja las tareas sin fecha al final.
func byDue(a, b Task) int {
	switch {
	case a.DueDate.IsZero() && b.DueDate.IsZero():
		return 0
	case a.DueDate.IsZero():
		return 1
	case b.DueDate.IsZero():
		return -1
	}
	return a.DueDate.Compare(b.DueDate)
}

// BoardOrder: prioridad descendente y, a igual prioridad, vencimiento más próximo.
func BoardOrder(a, b Task) int {
	if c := byPriority(b, a); c != 0 {
		return c
	}
	return byDue(a, b)
}

var Sorts = query.SortRegistry[Task]{
	"title":           listview.ByFold(func(t Task) string { return t.Title }),
	"application_ref": listview.By(func(t Task) string { return t.ApplicationRef }),
	"assignee":        listview.ByFold(func(t Task) string { return t.Assignee }),
	"column":          listview.By(func(t Task) int { return columnIndex(t.Column) }),
	"priority":        byPriority,
	"due_date":        byDue,
	"created_at":      listview.ByTime(func(t Task) time.Time { return t.CreatedAt }),
	"updated_at":      listview.ByTime(func(t Task) time.Time { return t.UpdatedAt }),
}

func columnIndex(c Column) int {
	for i, col := range Columns {
		if col == c {
			return i
		}
	}
	return len(Columns)
}
