package http

import (
	"net/http"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/response"
)

type LookupHandler interface {
	Departments(w http.ResponseWriter, r *http.Request)
	Locations(w http.ResponseWriter, r *http.Request)
}

type lookupHandlerImpl struct {
	lookupService lookup.LookupService
}

func NewLookupHandler(lookupService lookup.LookupService) LookupHandler {
	return &lookupHandlerImpl{lookupService: lookupService}
}

// Departments implements LookupHandler
func (h *lookupHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	options, err := h.lookupService.Departments(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, options)
}

// Locations implements LookupHandler
func (h *lookupHandlerImpl) Locations(w http.ResponseWriter, r *http.Request) {
	options, err := h.lookupService.Locations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, options)
}
