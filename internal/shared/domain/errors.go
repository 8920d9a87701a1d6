package domain

import (
	"errors"

	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

var (
	// ErrInvalidArgument es el mismo centinela que usa listview, para que
	// los errores de contrato de cualquier capa se traten igual.
	ErrInvalidArgument = listview.ErrInvalidArgument

	// ErrNotFound lo envuelven los errores "no encontrado" de cada contexto.
	ErrNotFound = errors.New("not found")
)
