package events

import "reflect"

const (
	// DatasetChangedType lo emite cualquier sistema externo que modifica un
	// dataset (importaciones nocturnas, el backoffice del ayuntamiento...).
	DatasetChangedType = "dataset.changed"

	// DatasetTopic es el topic común de cambios de datasets del portal.
	DatasetTopic = "portal-datasets"
)

// Estos son contratos de integración, NO entidades del dominio.
type DatasetChanged struct {
	Dataset     string `json:"dataset"`
	AggregateID string `json:"aggregateId,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// NewDatasetRegistry registra el evento genérico de cambio de dataset.
func NewDatasetRegistry() map[string]EventMetadata {
	return map[string]EventMetadata{
		DatasetChangedType: {
			Type:  reflect.TypeOf(DatasetChanged{}),
			Topic: DatasetTopic,
		},
	}
}

// MergeRegistries une los registros de cada contexto.
func MergeRegistries(registries ...map[string]EventMetadata) map[string]EventMetadata {
	out := make(map[string]EventMetadata)
	for _, r := range registries {
		for k, v := range r {
			out[k] = v
		}
	}
	return out
}
