package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/httpapi"
)

// ImportController handles the bulk entry points: spreadsheet upload,
// the one-click template and the xlsx export.
type ImportController struct {
	basePath      string
	ingest        *services.IngestService
	merge         *services.MergeService
	template      *services.TemplateService
	excelExport   *services.ExcelExportService
	maxUploadSize int64
	log           *logrus.Logger
}

func NewImportController(
	ingest *services.IngestService,
	merge *services.MergeService,
	template *services.TemplateService,
	excelExport *services.ExcelExportService,
	maxUploadSize int64,
	log *logrus.Logger,
) *ImportController {
	return &ImportController{
		basePath:      "/api/master-data",
		ingest:        ingest,
		merge:         merge,
		template:      template,
		excelExport:   excelExport,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (c *ImportController) Key() string {
	return c.basePath + "/import"
}

func (c *ImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/spreadsheet", c.uploadSpreadsheet).Methods(http.MethodPost)
	router.HandleFunc("/template", c.loadTemplate).Methods(http.MethodPost)
	router.HandleFunc("/template/preview", c.previewTemplate).Methods(http.MethodGet)
	router.HandleFunc("/export.xlsx", c.exportWorkbook).Methods(http.MethodGet)
}

// uploadResponse combines the per-row ingest view with what the merge
// persisted, so the UI can show both in one round trip.
type uploadResponse struct {
	Ingest *services.IngestOutcome `json:"ingest"`
	Merge  *services.MergeResult   `json:"merge,omitempty"`
}

func (c *ImportController) uploadSpreadsheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadSize)
	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_UPLOAD", "expected a multipart file upload", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_UPLOAD", "missing file field", nil)
		return
	}
	defer file.Close()

	outcome, err := c.ingest.Ingest(file, header.Filename)
	if err != nil {
		c.log.WithError(err).WithField("file", header.Filename).Warn("api: spreadsheet rejected")
		writeServiceError(w, err)
		return
	}

	resp := &uploadResponse{Ingest: outcome}
	if !outcome.Hierarchy.IsEmpty() {
		result, err := c.merge.Convert(r.Context(), outcome.Hierarchy, header.Filename)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp.Merge = result
	}

	status := http.StatusOK
	if resp.Merge == nil {
		// Parsed but nothing usable; the row errors explain why.
		status = http.StatusUnprocessableEntity
	}
	_ = httpapi.WriteJSON(w, status, resp)
}

func (c *ImportController) loadTemplate(w http.ResponseWriter, r *http.Request) {
	result, err := c.template.Load(r.Context())
	if err != nil {
		c.log.WithError(err).Error("api: template load failed")
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, result)
}

func (c *ImportController) previewTemplate(w http.ResponseWriter, _ *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, c.template.Preview())
}

func (c *ImportController) exportWorkbook(w http.ResponseWriter, r *http.Request) {
	payload, err := c.excelExport.Export(r.Context())
	if err != nil {
		c.log.WithError(err).Error("api: excel export failed")
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="master-data.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
