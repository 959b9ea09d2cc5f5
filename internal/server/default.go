package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/presentation/controllers"
	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/configuration"
	"github.com/strata-hq/masterdata/pkg/eventbus"
	"github.com/strata-hq/masterdata/pkg/httpapi"
	"github.com/strata-hq/masterdata/pkg/kv"
	"github.com/strata-hq/masterdata/pkg/middleware"
	"github.com/strata-hq/masterdata/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Store         kv.Store
	EventBus      eventbus.EventBus
}

// Default assembles the full service graph and mounts every API
// controller on one router.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	log := options.Logger
	conf := options.Configuration

	datasets, err := services.NewDatasets(options.Store, log)
	if err != nil {
		return nil, err
	}

	merge := services.NewMergeService(datasets, options.EventBus, log)
	hierarchySvc := services.NewHierarchyService(datasets, merge, options.EventBus)
	ingest := services.NewIngestService(log)
	template := services.NewTemplateService(merge)
	excelExport := services.NewExcelExportService(hierarchySvc)
	recovery := services.NewRecoveryService(datasets, options.Store, log)
	referenceSvc := services.NewReferenceService(datasets)

	middlewares := []mux.MiddlewareFunc{
		middleware.Recover(log),
		middleware.WithLogger(log),
		middleware.Cors("http://localhost:3000"),
	}

	mounted := []controllers.Controller{
		controllers.NewHierarchyController(hierarchySvc, log),
		controllers.NewImportController(ingest, merge, template, excelExport, conf.MaxUploadSize, log),
		controllers.NewRecoveryController(recovery, conf.MaxUploadSize, log),
		controllers.NewReferenceController(referenceSvc, log),
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "ROUTE_NOT_FOUND", "no such route", nil)
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	return server.NewHTTPServer(mounted, middlewares, notFound, notAllowed), nil
}
