package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/presentation/controllers/dtos"
	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/httpapi"
)

// HierarchyController is the CRUD surface of the console: segments and
// the domain group tree.
type HierarchyController struct {
	basePath  string
	hierarchy *services.HierarchyService
	log       *logrus.Logger
}

func NewHierarchyController(hierarchy *services.HierarchyService, log *logrus.Logger) *HierarchyController {
	return &HierarchyController{
		basePath:  "/api/master-data",
		hierarchy: hierarchy,
		log:       log,
	}
}

func (c *HierarchyController) Key() string {
	return c.basePath
}

func (c *HierarchyController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/hierarchy", c.getHierarchy).Methods(http.MethodGet)

	router.HandleFunc("/segments", c.listSegments).Methods(http.MethodGet)
	router.HandleFunc("/segments", c.createSegment).Methods(http.MethodPost)
	router.HandleFunc("/segments/{id}", c.deleteSegment).Methods(http.MethodDelete)

	router.HandleFunc("/domain-groups", c.createDomainGroup).Methods(http.MethodPost)
	router.HandleFunc("/domain-groups/{id}", c.deleteDomainGroup).Methods(http.MethodDelete)
	router.HandleFunc("/categories", c.createCategory).Methods(http.MethodPost)
	router.HandleFunc("/categories/{id}", c.deleteCategory).Methods(http.MethodDelete)
	router.HandleFunc("/sub-categories", c.createSubCategory).Methods(http.MethodPost)
	router.HandleFunc("/sub-categories/{id}", c.deleteSubCategory).Methods(http.MethodDelete)
}

func (c *HierarchyController) getHierarchy(w http.ResponseWriter, r *http.Request) {
	data, err := c.hierarchy.Data(r.Context())
	if err != nil {
		c.log.WithError(err).Error("api: load hierarchy failed")
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, data)
}

func (c *HierarchyController) listSegments(w http.ResponseWriter, r *http.Request) {
	segments, err := c.hierarchy.Segments(r.Context())
	if err != nil {
		c.log.WithError(err).Error("api: list segments failed")
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, segments)
}

func (c *HierarchyController) createSegment(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateSegmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	segment, err := c.hierarchy.CreateSegment(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, segment)
}

func (c *HierarchyController) deleteSegment(w http.ResponseWriter, r *http.Request) {
	if err := c.hierarchy.DeleteSegment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *HierarchyController) createDomainGroup(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateDomainGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := c.hierarchy.CreateDomainGroup(r.Context(), req.IndustrySegment, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, result)
}

func (c *HierarchyController) createCategory(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := c.hierarchy.CreateCategory(r.Context(), req.IndustrySegment, req.DomainGroup, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, result)
}

func (c *HierarchyController) createSubCategory(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateSubCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := c.hierarchy.CreateSubCategory(
		r.Context(), req.IndustrySegment, req.DomainGroup, req.Category, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, result)
}

func (c *HierarchyController) deleteDomainGroup(w http.ResponseWriter, r *http.Request) {
	if err := c.hierarchy.DeleteDomainGroup(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *HierarchyController) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := c.hierarchy.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *HierarchyController) deleteSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := c.hierarchy.DeleteSubCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

type validatable interface {
	Validate() error
}

// decodeBody parses and validates a JSON request body, answering a 400
// itself when either step fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", nil)
		return false
	}
	if err := dst.Validate(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return false
	}
	return true
}
