package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/modules/masterdata/presentation/controllers"
	"github.com/strata-hq/masterdata/modules/masterdata/services"
	"github.com/strata-hq/masterdata/pkg/eventbus"
	"github.com/strata-hq/masterdata/pkg/kv"
)

type apiEnv struct {
	router *mux.Router
	merge  *services.MergeService
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	store := kv.NewMemoryStore()
	datasets, err := services.NewDatasets(store, log)
	require.NoError(t, err)

	bus := eventbus.NewEventPublisher(log)
	merge := services.NewMergeService(datasets, bus, log)
	hierarchySvc := services.NewHierarchyService(datasets, merge, bus)
	ingest := services.NewIngestService(log)
	template := services.NewTemplateService(merge)
	excelExport := services.NewExcelExportService(hierarchySvc)
	recovery := services.NewRecoveryService(datasets, store, log)
	referenceSvc := services.NewReferenceService(datasets)

	router := mux.NewRouter()
	mounted := []controllers.Controller{
		controllers.NewHierarchyController(hierarchySvc, log),
		controllers.NewImportController(ingest, merge, template, excelExport, 1<<20, log),
		controllers.NewRecoveryController(recovery, 1<<20, log),
		controllers.NewReferenceController(referenceSvc, log),
	}
	for _, c := range mounted {
		c.Register(router)
	}
	return &apiEnv{router: router, merge: merge}
}

func (e *apiEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHierarchyController_SegmentLifecycle(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/master-data/segments",
		map[string]string{"name": "Life Sciences", "description": "pharma"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var segment hierarchy.IndustrySegment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &segment))
	assert.Equal(t, "Life Sciences", segment.Name)

	// Duplicate names come back as a conflict.
	rec = env.do(t, http.MethodPost, "/api/master-data/segments",
		map[string]string{"name": "life sciences"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "HIERARCHY_SEGMENT_EXISTS")

	rec = env.do(t, http.MethodGet, "/api/master-data/segments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var segments []hierarchy.IndustrySegment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &segments))
	assert.Len(t, segments, 1)

	rec = env.do(t, http.MethodDelete, "/api/master-data/segments/"+segment.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHierarchyController_CreateRejectsBadBody(t *testing.T) {
	env := newAPIEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/master-data/segments", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/master-data/domain-groups", map[string]string{"name": "Engineering"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHierarchyController_GroupTree(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/master-data/domain-groups",
		map[string]string{"industrySegment": "Technology", "name": "Engineering"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/master-data/sub-categories", map[string]string{
		"industrySegment": "Technology",
		"domainGroup":     "Engineering",
		"category":        "Platform",
		"name":            "Observability",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/master-data/hierarchy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data hierarchy.DomainGroupsData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Len(t, data.DomainGroups, 1)
	assert.Len(t, data.Categories, 1)
	assert.Len(t, data.SubCategories, 1)

	// Deleting the group cascades.
	rec = env.do(t, http.MethodDelete, "/api/master-data/domain-groups/"+data.DomainGroups[0].ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/master-data/hierarchy", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Empty(t, data.Categories)
	assert.Empty(t, data.SubCategories)
}

func TestImportController_SpreadsheetUpload(t *testing.T) {
	env := newAPIEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(strings.Join([]string{
		"Industry Segment,Domain Group,Category,Sub-Category",
		"Tech,Engineering,Platform,Observability",
		"Tech,Engineering,Platform,Infrastructure",
	}, "\n")))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/master-data/spreadsheet", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Ingest services.IngestOutcome `json:"ingest"`
		Merge  *services.MergeResult  `json:"merge"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Ingest.Result.ValidRows)
	require.NotNil(t, resp.Merge)
	assert.Equal(t, 1, resp.Merge.Stats.CreatedGroups)
	assert.Equal(t, 2, resp.Merge.Stats.CreatedSubCategories)
}

func TestImportController_EmptySpreadsheetIsUnprocessable(t *testing.T) {
	env := newAPIEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "empty.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Industry Segment,Domain Group,Category,Sub-Category\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/master-data/spreadsheet", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data found in Excel file")
}

func TestImportController_TemplateAndExport(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/master-data/template", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result services.MergeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 52, result.Stats.CreatedSubCategories)

	rec = env.do(t, http.MethodGet, "/api/master-data/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "master-data.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestRecoveryController_ExportImportAndHealth(t *testing.T) {
	env := newAPIEnv(t)

	m := hierarchy.NewMap()
	m.Add("Tech", "Engineering", "Platform", "Observability")
	_, err := env.merge.Convert(context.Background(), m, "fixture")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/master-data/recovery/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	backup := rec.Body.Bytes()

	rec = env.do(t, http.MethodPost, "/api/master-data/recovery/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/master-data/recovery/import", bytes.NewReader(backup))
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/master-data/hierarchy", nil)
	var data hierarchy.DomainGroupsData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Len(t, data.SubCategories, 1)

	rec = env.do(t, http.MethodGet, "/api/master-data/recovery/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "domain_groups")
}

func TestRecoveryController_ImportRejectsGarbage(t *testing.T) {
	env := newAPIEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/master-data/recovery/import", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "RECOVERY_MALFORMED_BACKUP")
}

func TestReferenceController_ReplaceValidation(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/api/master-data/reference/countries", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate country codes are rejected by dataset validation.
	rec = env.do(t, http.MethodPut, "/api/master-data/reference/countries", []map[string]any{
		{"code": "US", "name": "United States", "region": "Americas", "isActive": true},
		{"code": "US", "name": "United States Again", "region": "Americas", "isActive": true},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
