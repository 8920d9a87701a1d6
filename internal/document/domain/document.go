package domain

import (
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
)

const Dataset = "documents"

type Classification string

const (
	ClassPlans          Classification = "Plans"
	ClassSpecifications Classification = "Specifications"
	ClassCorrespondence Classification = "Correspondence"
	ClassCertificates   Classification = "Certificates"
	ClassReports        Classification = "Reports"
	ClassPhotos         Classification = "Photos"
)

var Classifications = []Classification{ClassPlans, ClassSpecifications, ClassCorrespondence, ClassCertificates, ClassReports, ClassPhotos}

func ParseClassification(s string) (Classification, error) {
	for _, c := range Classifications {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown document classification %q", sharedDomain.ErrInvalidArgument, s)
}

var (
	ErrDocumentNotFound = fmt.Errorf("document %w", sharedDomain.ErrNotFound)
	ErrInvalidDocument  = fmt.Errorf("%w: invalid document", sharedDomain.ErrInvalidArgument)
)

// Document es una entrada del registro documental de una solicitud.
type Document struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Classification Classification `json:"classification" yaml:"classification"`
	ApplicationRef string         `json:"applicationRef" yaml:"application_ref"`
	UploadedBy     string         `json:"uploadedBy" yaml:"uploaded_by"`
	SizeBytes      int64          `json:"sizeBytes" yaml:"size_bytes"`
	LastModified   time.Time      `json:"lastModified" yaml:"last_modified"`
}

func (d Document) Validate() error {
	if d.ID == "" || d.Name == "" {
		return fmt.Errorf("%w: id and name are required", ErrInvalidDocument)
	}
	if d.SizeBytes < 0 {
		return fmt.Errorf("%w: %s: negative size", ErrInvalidDocument, d.ID)
	}
	if _, err := ParseClassification(string(d.Classification)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, d.ID, err)
	}
	return nil
}

// Extension devuelve la extensión del nombre en minúsculas, sin el punto.
func (d Document) Extension() string {
	i := strings.LastIndexByte(d.Name, '.')
	if i < 0 || i == len(d.Name)-1 {
		return ""
	}
	return strings.ToLower(d.Name[i+1:])
}

func ResolveField(d Document, field string) (interface{}, bool) {
	switch field {
	case "id":
		return d.ID, true
	case "name":
		return d.Name, true
	case "classification":
		return d.Classification, true
	case "application_ref":
		return d.ApplicationRef, true
	case "uploaded_by":
		return d.UploadedBy, true
	case "size_bytes":
		return d.SizeBytes, true
	case "extension":
		return d.Extension(), true
	case "last_modified":
		return d.LastModified, true
	}
	return nil, false
}

// ErrReadOnly: el origen configurado no admite altas.
var ErrReadOnly = fmt.Errorf("%w: document register is read-only", sharedDomain.ErrInvalidArgument)
