package domain

import (
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
)

const Dataset = "referrals"

type Status string

const (
	StatusRequested  Status = "Requested"
	StatusInProgress Status = "In Progress"
	StatusResponded  Status = "Responded"
	StatusClosed     Status = "Closed"
)

var Statuses = []Status{StatusRequested, StatusInProgress, StatusResponded, StatusClosed}

func ParseStatus(s string) (Status, error) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	for _, st := range Statuses {
		if strings.EqualFold(string(st), norm) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown referral status %q", sharedDomain.ErrInvalidArgument, s)
}

// Open indica que el departamento todavía no ha contestado.
func (s Status) Open() bool {
	return s == StatusRequested || s == StatusInProgress
}

var ErrInvalidReferral = fmt.Errorf("%w: invalid referral", sharedDomain.ErrInvalidArgument)

// Referral es una consulta interna a otro departamento sobre una solicitud.
type Referral struct {
	ID             string    `json:"id" yaml:"id"`
	ApplicationRef string    `json:"applicationRef" yaml:"application_ref"`
	Department     string    `json:"department" yaml:"department"`
	Status         Status    `json:"status" yaml:"status"`
	AssignedTo     string    `json:"assignedTo" yaml:"assigned_to"`
	DueDate        time.Time `json:"dueDate" yaml:"due_date"`
	LastModified   time.Time `json:"lastModified" yaml:"last_modified"`
}

func (r Referral) Validate() error {
	if r.ID == "" || r.ApplicationRef == "" {
		return fmt.Errorf("%w: id and application_ref are required", ErrInvalidReferral)
	}
	if _, err := ParseStatus(string(r.Status)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidReferral, r.ID, err)
	}
	return nil
}

// Overdue: sigue abierta y la fecha límite ya pasó.
func (r Referral) Overdue(now time.Time) bool {
	return r.Status.Open() && r.DueDate.Before(now)
}

// NewFieldResolver expone los campos de Referral. "overdue" depende del reloj.
func NewFieldResolver(now func() time.Time) sharedDomain.FieldResolver[Referral] {
	return func(r Referral, field string) (interface{}, bool) {
		switch field {
		case "id":
			return r.ID, true
		case "application_ref":
			return r.ApplicationRef, true
		case "department":
			return r.Department, true
		case "status":
			return r.Status, true
		case "assigned_to":
			return r.AssignedTo, true
		case "due_date":
			return r.DueDate, true
		case "last_modified":
			return r.LastModified, true
		case "overdue":
			return r.Overdue(now()), true
		}
		return nil, false
	}
}
