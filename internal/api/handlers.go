package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"lead-harmonizer/internal/pipeline"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/table"
)

const (
	MIMETextCSV = "text/csv"
	MIMEMsgpack = "application/msgpack"

	// UploadField is the multipart form field holding the CSV.
	UploadField = "file"
)

// Handler serves the harmonizer routes.
type Handler struct {
	harmonizer *pipeline.Harmonizer
	version    string
	logger     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(h *pipeline.Harmonizer, version string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{harmonizer: h, version: version, logger: logger}
}

// FieldInfo describes one target field.
type FieldInfo struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Description    string `json:"description"`
	Transformation string `json:"transformation"`
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// HandleSchema handles GET /api/schema.
func (h *Handler) HandleSchema(c echo.Context) error {
	reg := h.harmonizer.Transformer().Registry()

	out := make([]FieldInfo, 0, schema.FieldCount)
	for _, f := range schema.Fields() {
		out = append(out, FieldInfo{
			Name:           string(f),
			Kind:           string(f.Kind()),
			Description:    schema.Describe(f),
			Transformation: reg.NameOf(f),
		})
	}

	return c.JSON(http.StatusOK, out)
}

// HandleHarmonize handles POST /api/harmonize.
func (h *Handler) HandleHarmonize(c echo.Context) error {
	body, err := h.readUpload(c)
	if err != nil {
		return err
	}

	rep, err := h.harmonizer.Run(c.Request().Context(), bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, table.ErrEmptyInput) {
			return NewBadRequestError("input has no header row", err)
		}

		return NewBadRequestError("cannot read CSV", err)
	}

	h.logger.Info("harmonized upload",
		"run_id", rep.RunID,
		"rows", len(rep.Records),
		"mapped", rep.Summary.Mapped,
		"quality", rep.QualityScore)

	accept := c.Request().Header.Get(echo.HeaderAccept)

	switch {
	case strings.Contains(accept, MIMETextCSV):
		var buf bytes.Buffer
		if err := table.Write(&buf, rep.Records); err != nil {
			return NewInternalError("failed to encode CSV", err)
		}

		c.Response().Header().Set("X-Run-Id", rep.RunID)

		return c.Blob(http.StatusOK, MIMETextCSV+"; charset=utf-8", buf.Bytes())
	case strings.Contains(accept, MIMEMsgpack):
		data, err := msgpack.Marshal(NewReportPayload(rep))
		if err != nil {
			return NewInternalError("failed to encode report", err)
		}

		return c.Blob(http.StatusOK, MIMEMsgpack, data)
	default:
		return c.JSON(http.StatusOK, NewReportPayload(rep))
	}
}

// readUpload returns the CSV bytes from a multipart upload or the raw body.
func (h *Handler) readUpload(c echo.Context) ([]byte, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)

	mediaType, _, err := mime.ParseMediaType(ct)
	if ct != "" && err != nil {
		return nil, NewUnsupportedMediaError(ct)
	}

	if mediaType == echo.MIMEMultipartForm {
		fh, err := c.FormFile(UploadField)
		if err != nil {
			return nil, NewBadRequestError("missing form field \""+UploadField+"\"", err)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, NewInternalError("failed to open upload", err)
		}
		defer f.Close()

		return readAll(f)
	}

	switch mediaType {
	case "", MIMETextCSV, echo.MIMETextPlain, "application/csv", echo.MIMEOctetStream:
	default:
		return nil, NewUnsupportedMediaError(ct)
	}

	return readAll(c.Request().Body)
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewBadRequestError("failed to read upload", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, NewBadRequestError("upload is empty", nil)
	}

	return data, nil
}
