package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	documentDomain "github.com/davicafu/consentlab/internal/document/domain"
)

// JSONDocumentStorage es un adaptador outbound que guarda el registro documental en un fichero JSON.
type JSONDocumentStorage struct {
	filePath string
	mu       sync.Mutex // serializa lecturas/escrituras del fichero
}

func NewJSONDocumentStorage(filePath string) *JSONDocumentStorage {
	return &JSONDocumentStorage{filePath: filePath}
}

// FetchAll recupera todos los documentos. Fichero ausente o vacío = lista vacía.
func (s *JSONDocumentStorage) FetchAll(ctx context.Context) ([]documentDomain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll()
}

// Save registra un documento; si ya existe uno con el mismo ID lo reemplaza.
func (s *JSONDocumentStorage) Save(ctx context.Context, doc documentDomain.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readAll()
	if err != nil {
		return err
	}

	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	return s.writeAll(docs)
}

// SeedIfMissing crea el fichero con docs solo si todavía no existe.
func (s *JSONDocumentStorage) SeedIfMissing(ctx context.Context, docs []documentDomain.Document) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.filePath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	for _, d := range docs {
		if err := d.Validate(); err != nil {
			return false, err
		}
	}
	return true, s.writeAll(docs)
}

// readAll es un helper interno no concurrente.
func (s *JSONDocumentStorage) readAll() ([]documentDomain.Document, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []documentDomain.Document{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []documentDomain.Document{}, nil
	}

	var docs []documentDomain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.filePath, err)
	}
	if docs == nil {
		docs = []documentDomain.Document{}
	}
	return docs, nil
}

// writeAll escribe a un temporal y renombra para no dejar el fichero a medias.
func (s *JSONDocumentStorage) writeAll(docs []documentDomain.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".documents-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.filePath)
}

var _ documentDomain.DocumentStore = (*JSONDocumentStorage)(nil)
