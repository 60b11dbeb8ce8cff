package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"lead-harmonizer/internal/classify"
	"lead-harmonizer/internal/pipeline"
	"lead-harmonizer/internal/schema"
)

const leadsCSV = "marca,email_cliente,prezzo\nFerrari,a.ferrari@libero.it,€198.500\n"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	c := classify.New(classify.StubCapability{
		"marca": {TargetField: string(schema.VehicleMake), Confidence: 0.8},
	}, classify.DefaultConfig(), nil)

	h, err := pipeline.New(pipeline.Options{Classifier: c})
	require.NoError(t, err)

	return NewServer(NewHandler(h, "test", nil))
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestHandleHealth(t *testing.T) {
	e := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestHandleSchema(t *testing.T) {
	e := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/schema", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var fields []FieldInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	require.Len(t, fields, schema.FieldCount)
	assert.Equal(t, "vehicle_make", fields[0].Name)
	assert.Equal(t, "decimal", fields[2].Kind)
	assert.NotEmpty(t, fields[2].Description)
	assert.Equal(t, "convert_to_decimal", fields[2].Transformation)
}

func TestHandleHarmonize(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		check  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "json by default",
			accept: "",
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var p ReportPayload
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
				require.Len(t, p.Records, 1)
				assert.Equal(t, "Ferrari", p.Records[0]["vehicle_make"])
				assert.Equal(t, "198500.0", p.Records[0]["price"])
				assert.Equal(t, "prezzo", p.Sources["price"])
				assert.Contains(t, p.Languages, "marca")
				assert.Equal(t, 3, p.Summary.Mapped)
				assert.Contains(t, p.Missing, "customer_phone")
				assert.NotEmpty(t, p.RunID)
			},
		},
		{
			name:   "csv",
			accept: MIMETextCSV,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), MIMETextCSV))
				assert.NotEmpty(t, rec.Header().Get("X-Run-Id"))

				want := strings.Join(schema.Header(), ",") + "\n" +
					"Ferrari,,198500.0,,,,,,a.ferrari@libero.it,,\n"
				assert.Equal(t, want, rec.Body.String())
			},
		},
		{
			name:   "msgpack",
			accept: MIMEMsgpack,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, MIMEMsgpack, rec.Header().Get(echo.HeaderContentType))

				var p struct {
					RunID        string              `msgpack:"run_id"`
					QualityScore float64             `msgpack:"quality_score"`
					Records      []map[string]string `msgpack:"records"`
				}
				require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &p))
				assert.NotEmpty(t, p.RunID)
				assert.Greater(t, p.QualityScore, 0.0)
				require.Len(t, p.Records, 1)
				assert.Equal(t, "a.ferrari@libero.it", p.Records[0]["customer_email"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(t)

			req := httptest.NewRequest(http.MethodPost, "/api/harmonize", strings.NewReader(leadsCSV))
			req.Header.Set(echo.HeaderContentType, MIMETextCSV)
			if tt.accept != "" {
				req.Header.Set(echo.HeaderAccept, tt.accept)
			}

			rec := serve(e, req)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			tt.check(t, rec)
		})
	}
}

func TestHandleHarmonize_Multipart(t *testing.T) {
	e := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(UploadField, "leads.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(leadsCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/harmonize", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())

	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p ReportPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Len(t, p.Records, 1)
	assert.Equal(t, "Ferrari", p.Records[0]["vehicle_make"])
}

func TestHandleHarmonize_Errors(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{"empty body", MIMETextCSV, "", http.StatusBadRequest, "BAD_REQUEST"},
		{"blank body", MIMETextCSV, " \n\n", http.StatusBadRequest, "BAD_REQUEST"},
		{"unsupported type", echo.MIMEApplicationJSON, `{"a":1}`, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"multipart without file", "multipart/form-data; boundary=xyz", "--xyz--\r\n", http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(t)

			req := httptest.NewRequest(http.MethodPost, "/api/harmonize", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, tt.contentType)

			rec := serve(e, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var apiErr APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", NewBadRequestError("bad", nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"echo error", echo.NewHTTPError(http.StatusNotFound, "nope"), http.StatusNotFound, "HTTP_ERROR"},
		{"plain error", assert.AnError, http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var apiErr APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestNewBadRequestError_Details(t *testing.T) {
	err := NewBadRequestError("bad", assert.AnError)

	assert.Equal(t, assert.AnError.Error(), err.Details)
	assert.Equal(t, "BAD_REQUEST: bad", err.Error())
}
