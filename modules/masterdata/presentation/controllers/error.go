package controllers

import (
	"errors"
	"net/http"

	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/excel"
	"github.com/strata-hq/masterdata/pkg/httpapi"
	"github.com/strata-hq/masterdata/pkg/serrors"
)

// writeServiceError maps a service error onto an HTTP status and the
// standard error envelope. Unknown errors become a 500 with a generic
// code so internals never leak into responses.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrSegmentExists),
		errors.Is(err, services.ErrSegmentInUse),
		errors.Is(err, services.ErrAmbiguousSegment):
		status = http.StatusConflict
	case errors.Is(err, services.ErrEmptyHierarchy),
		errors.Is(err, services.ErrMalformedBackup),
		errors.Is(err, services.ErrUnsupportedBackup),
		errors.Is(err, services.ErrInvalidBackup),
		errors.Is(err, excel.ErrUnreadableFile):
		status = http.StatusUnprocessableEntity
	}

	code := serrors.CodeOf(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}
	_ = httpapi.WriteError(w, status, code, err.Error(), nil)
}
