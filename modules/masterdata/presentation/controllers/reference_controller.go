package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/capability"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/reference"
	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/httpapi"
)

// ReferenceController serves the flat reference datasets: countries,
// organization types and capability levels. PUT replaces the whole
// list, mirroring how the datasets are stored.
type ReferenceController struct {
	basePath  string
	reference *services.ReferenceService
	log       *logrus.Logger
}

func NewReferenceController(reference *services.ReferenceService, log *logrus.Logger) *ReferenceController {
	return &ReferenceController{
		basePath:  "/api/master-data/reference",
		reference: reference,
		log:       log,
	}
}

func (c *ReferenceController) Key() string {
	return c.basePath
}

func (c *ReferenceController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/countries", c.listCountries).Methods(http.MethodGet)
	router.HandleFunc("/countries", c.replaceCountries).Methods(http.MethodPut)
	router.HandleFunc("/organization-types", c.listOrganizationTypes).Methods(http.MethodGet)
	router.HandleFunc("/organization-types", c.replaceOrganizationTypes).Methods(http.MethodPut)
	router.HandleFunc("/capability-levels", c.listCapabilityLevels).Methods(http.MethodGet)
	router.HandleFunc("/capability-levels", c.replaceCapabilityLevels).Methods(http.MethodPut)
}

func (c *ReferenceController) listCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := c.reference.Countries(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, countries)
}

func (c *ReferenceController) replaceCountries(w http.ResponseWriter, r *http.Request) {
	var countries []reference.Country
	if err := json.NewDecoder(r.Body).Decode(&countries); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", nil)
		return
	}
	if err := c.reference.ReplaceCountries(r.Context(), countries); err != nil {
		c.log.WithError(err).Warn("api: replace countries rejected")
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "REFERENCE_INVALID", err.Error(), nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, countries)
}

func (c *ReferenceController) listOrganizationTypes(w http.ResponseWriter, r *http.Request) {
	types, err := c.reference.OrganizationTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, types)
}

func (c *ReferenceController) replaceOrganizationTypes(w http.ResponseWriter, r *http.Request) {
	var types []reference.OrganizationType
	if err := json.NewDecoder(r.Body).Decode(&types); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", nil)
		return
	}
	if err := c.reference.ReplaceOrganizationTypes(r.Context(), types); err != nil {
		c.log.WithError(err).Warn("api: replace organization types rejected")
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "REFERENCE_INVALID", err.Error(), nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, types)
}

func (c *ReferenceController) listCapabilityLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := c.reference.CapabilityLevels(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, levels)
}

func (c *ReferenceController) replaceCapabilityLevels(w http.ResponseWriter, r *http.Request) {
	var levels []capability.Level
	if err := json.NewDecoder(r.Body).Decode(&levels); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", nil)
		return
	}
	if err := c.reference.ReplaceCapabilityLevels(r.Context(), levels); err != nil {
		c.log.WithError(err).Warn("api: replace capability levels rejected")
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "REFERENCE_INVALID", err.Error(), nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, levels)
}
