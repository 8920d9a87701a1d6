package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	documentDomain "github.com/davicafu/consentlab/internal/document/domain"
	"github.com/davicafu/consentlab/internal/shared/application/listing"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedEvents "github.com/davicafu/consentlab/internal/shared/events"
	sharedBus "github.com/davicafu/consentlab/internal/shared/platform/bus"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

// DocumentService define los casos de uso del registro documental.
type DocumentService struct {
	listing   *listing.Service[documentDomain.Document]
	store     documentDomain.DocumentStore
	publisher sharedBus.EventPublisher
	now       func() time.Time
	log       *zap.Logger
}

// NewDocumentService lista desde p. store y publisher son opcionales: sin
// store el registro es de solo lectura.
func NewDocumentService(p provider.Provider[documentDomain.Document], store documentDomain.DocumentStore, publisher sharedBus.EventPublisher, now func() time.Time, log *zap.Logger) *DocumentService {
	return &DocumentService{
		listing:   listing.NewService(p, documentDomain.ResolveField, documentDomain.Sorts, log),
		store:     store,
		publisher: publisher,
		now:       now,
		log:       log,
	}
}

func (s *DocumentService) ListDocuments(ctx context.Context, q query.ListQuery) (listview.PageResult[documentDomain.Document], error) {
	return s.listing.List(ctx, q)
}

func (s *DocumentService) Stats(ctx context.Context, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error) {
	counts, err := s.listing.CountBy(ctx, criteria, field)
	if err != nil {
		return nil, err
	}
	return listview.SortedCounts(counts), nil
}

// Writable indica si hay un almacén que admita altas.
func (s *DocumentService) Writable() bool {
	return s.store != nil
}

// RegisterDocument guarda el documento y avisa de que el dataset cambió.
func (s *DocumentService) RegisterDocument(ctx context.Context, doc documentDomain.Document) (documentDomain.Document, error) {
	if s.store == nil {
		return documentDomain.Document{}, documentDomain.ErrReadOnly
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.LastModified = s.now().UTC()

	if err := s.store.Save(ctx, doc); err != nil {
		s.log.Error("Failed to register document", zap.String("document_id", doc.ID), zap.Error(err))
		return documentDomain.Document{}, err
	}

	if s.publisher != nil {
		evt, err := sharedEvents.NewIntegrationEvent(sharedEvents.DatasetChangedType, documentDomain.Dataset,
			sharedEvents.DatasetChanged{Dataset: documentDomain.Dataset, AggregateID: doc.ID, Reason: "document registered"},
			doc.LastModified)
		if err == nil {
			err = s.publisher.Publish(ctx, evt)
		}
		if err != nil {
			// El documento ya está guardado; la caché caducará por TTL.
			s.log.Warn("⚠️ Failed to publish dataset change", zap.String("document_id", doc.ID), zap.Error(err))
		}
	}
	return doc, nil
}
