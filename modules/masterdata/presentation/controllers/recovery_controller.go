package controllers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/httpapi"
)

// RecoveryController is the backup and reset surface.
type RecoveryController struct {
	basePath      string
	recovery      *services.RecoveryService
	maxUploadSize int64
	log           *logrus.Logger
}

func NewRecoveryController(recovery *services.RecoveryService, maxUploadSize int64, log *logrus.Logger) *RecoveryController {
	return &RecoveryController{
		basePath:      "/api/master-data/recovery",
		recovery:      recovery,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

func (c *RecoveryController) Key() string {
	return c.basePath
}

func (c *RecoveryController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/export", c.export).Methods(http.MethodGet)
	router.HandleFunc("/import", c.importBackup).Methods(http.MethodPost)
	router.HandleFunc("/health", c.health).Methods(http.MethodGet)
	router.HandleFunc("/restore-defaults", c.restoreDefaults).Methods(http.MethodPost)
	router.HandleFunc("/clear", c.clearAll).Methods(http.MethodPost)
}

func (c *RecoveryController) export(w http.ResponseWriter, r *http.Request) {
	doc, err := c.recovery.Export(r.Context())
	if err != nil {
		c.log.WithError(err).Error("api: backup export failed")
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="master-data-backup.json"`)
	_ = httpapi.WriteJSON(w, http.StatusOK, doc)
}

func (c *RecoveryController) importBackup(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, c.maxUploadSize))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "backup document too large", nil)
		return
	}
	doc, err := c.recovery.Import(r.Context(), payload)
	if err != nil {
		c.log.WithError(err).Warn("api: backup import rejected")
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, doc)
}

func (c *RecoveryController) health(w http.ResponseWriter, r *http.Request) {
	_ = httpapi.WriteJSON(w, http.StatusOK, c.recovery.Health(r.Context()))
}

func (c *RecoveryController) restoreDefaults(w http.ResponseWriter, r *http.Request) {
	if err := c.recovery.RestoreDefaults(r.Context()); err != nil {
		c.log.WithError(err).Error("api: restore defaults failed")
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (c *RecoveryController) clearAll(w http.ResponseWriter, r *http.Request) {
	if err := c.recovery.ClearAll(r.Context()); err != nil {
		c.log.WithError(err).Error("api: clear failed")
		writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
