package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
)

// Dataset es el nombre lógico del dataset de solicitudes (caché, eventos).
const Dataset = "applications"

type Status string

const (
	StatusLodged    Status = "Lodged"
	StatusPending   Status = "Pending"
	StatusInReview  Status = "In Review"
	StatusApproved  Status = "Approved"
	StatusDeclined  Status = "Declined"
	StatusWithdrawn Status = "Withdrawn"
)

// Statuses en el orden del flujo de tramitación.
var Statuses = []Status{StatusLodged, StatusPending, StatusInReview, StatusApproved, StatusDeclined, StatusWithdrawn}

// ParseStatus acepta el nombre sin distinguir mayúsculas ni separadores ("in_review", "In Review").
func ParseStatus(s string) (Status, error) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	for _, st := range Statuses {
		if strings.EqualFold(string(st), norm) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown application status %q", sharedDomain.ErrInvalidArgument, s)
}

// Final indica si la solicitud ya no admite más tramitación.
func (s Status) Final() bool {
	return s == StatusApproved || s == StatusDeclined || s == StatusWithdrawn
}

var (
	ErrApplicationNotFound = fmt.Errorf("application %w", sharedDomain.ErrNotFound)
	ErrInvalidApplication  = errors.New("invalid application")
)

// Application es una solicitud de licencia de obra tal como la ve el portal.
type Application struct {
	ID           string    `json:"id" yaml:"id"`
	Reference    string    `json:"reference" yaml:"reference"`
	Address      string    `json:"address" yaml:"address"`
	Applicant    string    `json:"applicant" yaml:"applicant"`
	Type         string    `json:"type" yaml:"type"`
	Status       Status    `json:"status" yaml:"status"`
	Officer      string    `json:"officer" yaml:"officer"`
	Department   string    `json:"department" yaml:"department"`
	LodgedAt     time.Time `json:"lodgedAt" yaml:"lodged_at"`
	LastModified time.Time `json:"lastModified" yaml:"last_modified"`
}

// Validate comprueba los campos mínimos que exige cualquier almacén.
func (a Application) Validate() error {
	if a.ID == "" || a.Reference == "" {
		return fmt.Errorf("%w: id and reference are required", ErrInvalidApplication)
	}
	if _, err := ParseStatus(string(a.Status)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidApplication, a.Reference, err)
	}
	return nil
}

// ResolveField expone los campos filtrables/agrupables de Application.
func ResolveField(a Application, field string) (interface{}, bool) {
	switch field {
	case "id":
		return a.ID, true
	case "reference":
		return a.Reference, true
	case "address":
		return a.Address, true
	case "applicant":
		return a.Applicant, true
	case "type":
		return a.Type, true
	case "status":
		return a.Status, true
	case "officer":
		return a.Officer, true
	case "department":
		return a.Department, true
	case "lodged_at":
		return a.LodgedAt, true
	case "last_modified":
		return a.LastModified, true
	}
	return nil, false
}
