package http_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/extraction"
	"github.com/itcguard/itc-api/internal/application/report"
	"github.com/itcguard/itc-api/internal/application/usecase"
	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/infrastructure/bolt"
	"github.com/itcguard/itc-api/internal/infrastructure/imaging"
	"github.com/itcguard/itc-api/internal/infrastructure/pdf"
	apphttp "github.com/itcguard/itc-api/internal/interfaces/http"
	pkgjwt "github.com/itcguard/itc-api/pkg/jwt"
	"github.com/itcguard/itc-api/pkg/logger"
)

// ── Fakes ──

type fakeModel struct {
	raw   string
	reply string
	err   error
}

func (f *fakeModel) ExtractInvoice(context.Context, []byte, string) (string, error) {
	return f.raw, f.err
}

func (f *fakeModel) Reply(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

// ── Harness ──

type harness struct {
	app   *fiber.App
	model *fakeModel
}

func newHarness(t *testing.T, secret string) *harness {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "itc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := logger.Nop()
	model := &fakeModel{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:  "itc-api-test",
		Store:        store,
		ComplianceUC: usecase.NewComplianceUseCase(store, log),
		ScanUC: usecase.NewScanUseCase(model, imaging.NewConverter(), extraction.NewNormalizer(),
			store, 5*time.Second, log),
		AssistantUC: usecase.NewAssistantUseCase(model, store, 5*time.Second, log),
		GSTR3BUC:    report.NewGSTR3BUseCase(store, pdf.NewMarotoGSTR3BGenerator("test"), log),
		JWTSecret:   secret,
		JWTIssuer:   testIssuer,
		Log:         log,
	})
	return &harness{app: app, model: model}
}

func (h *harness) do(t *testing.T, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (h *harness) create(t *testing.T, body map[string]any) dto.TaxRecordResponse {
	t.Helper()
	resp, out := h.do(t, http.MethodPost, "/api/compliance", body, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(out))
	var rec dto.TaxRecordResponse
	require.NoError(t, json.Unmarshal(out, &rec))
	return rec
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

// ── Health ──

func TestHealth(t *testing.T) {
	h := newHarness(t, "")
	resp, out := h.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "connected", body.DBStatus)
	assert.Equal(t, "itc-api-test", body.Service)
	assert.NotEmpty(t, body.Timestamp)
}

// ── Compliance ──

func TestCompliance_CreateListAndGet(t *testing.T) {
	h := newHarness(t, "")
	rec := h.create(t, map[string]any{
		"vendor_name":  "Acme Traders",
		"gstin":        "27aapfu0939f1zv",
		"amount":       1180,
		"invoice_date": "2024-03-15",
		"cgst":         90,
		"sgst":         90,
	})
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Pending", rec.Status)
	require.NotNil(t, rec.GSTIN)
	assert.Equal(t, "27AAPFU0939F1ZV", *rec.GSTIN)

	h.create(t, map[string]any{"vendor_name": "No GSTIN Co", "amount": 500, "status": "Failed"})

	resp, out := h.do(t, http.MethodGet, "/api/compliance", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list dto.ComplianceListResponse
	require.NoError(t, json.Unmarshal(out, &list))
	assert.Len(t, list.Records, 2)
	assert.Equal(t, "1680", list.Stats.TotalOutstanding.String())
	assert.Equal(t, "500", list.Stats.ITCAtRisk.String())
	assert.True(t, list.Stats.SafeToPay.IsZero())

	resp, out = h.do(t, http.MethodGet, "/api/compliance/"+rec.ID, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.TaxRecordResponse
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "Acme Traders", got.VendorName)
	require.NotNil(t, got.InvoiceDate)
	assert.Equal(t, "2024-03-15", *got.InvoiceDate)
}

func TestCompliance_CreateValidation(t *testing.T) {
	h := newHarness(t, "")

	resp, out := h.do(t, http.MethodPost, "/api/compliance", map[string]any{"amount": 10}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, out).Code)

	resp, out = h.do(t, http.MethodPost, "/api/compliance", map[string]any{"vendor_name": "X", "amount": -1}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, out).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/compliance", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r, err := h.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, r.StatusCode)
}

func TestCompliance_NotFound(t *testing.T) {
	h := newHarness(t, "")
	resp, out := h.do(t, http.MethodGet, "/api/compliance/does-not-exist", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, out).Code)
}

func TestCompliance_UpdateVerifySettle(t *testing.T) {
	h := newHarness(t, "")
	rec := h.create(t, map[string]any{"vendor_name": "Acme", "gstin": "29AABCU9603R1ZM", "amount": 100})

	resp, out := h.do(t, http.MethodPost, "/api/compliance/"+rec.ID+"/verify", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var v dto.VerificationResponse
	require.NoError(t, json.Unmarshal(out, &v))
	assert.False(t, v.Valid)
	assert.Equal(t, "Failed", v.Record.Status)
	assert.Contains(t, v.Reason, "check character")

	// A Failed record cannot be settled.
	resp, out = h.do(t, http.MethodPost, "/api/compliance/"+rec.ID+"/settle", nil, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, out).Code)

	resp, out = h.do(t, http.MethodPatch, "/api/compliance/"+rec.ID, map[string]any{"gstin": "29AABCU9603R1ZJ"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(out))

	resp, out = h.do(t, http.MethodPost, "/api/compliance/"+rec.ID+"/verify", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(out, &v))
	assert.True(t, v.Valid)
	assert.Equal(t, "Safe", v.Record.Status)

	resp, _ = h.do(t, http.MethodPost, "/api/compliance/"+rec.ID+"/settle", nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/api/compliance/"+rec.ID, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompliance_Block(t *testing.T) {
	h := newHarness(t, "")
	rec := h.create(t, map[string]any{"vendor_name": "Shady", "amount": 100, "status": "Failed"})

	resp, _ := h.do(t, http.MethodPost, "/api/compliance/"+rec.ID+"/block", nil, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/api/compliance/"+rec.ID+"/block", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompliance_EmptyPatchRejected(t *testing.T) {
	h := newHarness(t, "")
	rec := h.create(t, map[string]any{"vendor_name": "Acme", "amount": 100})

	resp, _ := h.do(t, http.MethodPatch, "/api/compliance/"+rec.ID, map[string]any{}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ── Scan ──

func TestScan(t *testing.T) {
	img := base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes"))

	t.Run("extracts and saves", func(t *testing.T) {
		h := newHarness(t, "")
		h.model.raw = "```json\n{\"vendor_name\":\"Acme\",\"total_amount\":\"1,180.00\",\"gstin\":\"27AAPFU0939F1ZV\"}\n```"

		resp, out := h.do(t, http.MethodPost, "/api/scan",
			map[string]any{"image": "data:image/jpeg;base64," + img, "save": true}, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(out))
		var sr dto.ScanResponse
		require.NoError(t, json.Unmarshal(out, &sr))
		assert.True(t, sr.Saved)
		assert.Equal(t, "Acme", sr.Data.VendorName)
		assert.Equal(t, "1180", sr.Data.Amount.String())
		assert.NotEmpty(t, sr.Data.ID)

		_, out = h.do(t, http.MethodGet, "/api/compliance", nil, "")
		var list dto.ComplianceListResponse
		require.NoError(t, json.Unmarshal(out, &list))
		assert.Len(t, list.Records, 1)
	})

	t.Run("unusable model output is 422 with raw", func(t *testing.T) {
		h := newHarness(t, "")
		h.model.raw = "I cannot read this invoice."

		resp, out := h.do(t, http.MethodPost, "/api/scan",
			map[string]any{"image": img, "mimeType": "image/png"}, "")
		require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		var e dto.ExtractionErrorResponse
		require.NoError(t, json.Unmarshal(out, &e))
		assert.Equal(t, "EXTRACTION_FAILED", e.Code)
		assert.Equal(t, "I cannot read this invoice.", e.Raw)
	})

	t.Run("model failure is 502", func(t *testing.T) {
		h := newHarness(t, "")
		h.model.err = errors.Join(domain.ErrModelUnavailable, errors.New("upstream 500"))

		resp, out := h.do(t, http.MethodPost, "/api/scan", map[string]any{"image": img}, "")
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "MODEL_UNAVAILABLE", decodeError(t, out).Code)
	})

	t.Run("bad base64 is 400", func(t *testing.T) {
		h := newHarness(t, "")
		resp, out := h.do(t, http.MethodPost, "/api/scan", map[string]any{"image": "%%%"}, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_IMAGE", decodeError(t, out).Code)
	})
}

// ── Reports ──

func TestGSTR3BReport(t *testing.T) {
	h := newHarness(t, "")
	h.create(t, map[string]any{
		"vendor_name": "Acme", "amount": 1180, "invoice_date": "2024-03-15",
		"taxable_value": 1000, "cgst": 90, "sgst": 90,
	})

	resp, out := h.do(t, http.MethodGet, "/api/reports/gstr3b?month=3&year=2024", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(out))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "gstr3b_report_3_2024.pdf")
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	resp, _ = h.do(t, http.MethodGet, "/api/reports/gstr3b?month=13&year=2024", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/api/reports/gstr3b?month=march&year=2024", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ── Assistant ──

func TestChat(t *testing.T) {
	h := newHarness(t, "")
	h.model.reply = "  You have no ITC at risk.  "

	resp, out := h.do(t, http.MethodPost, "/api/chat", map[string]any{"message": "Am I safe?"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cr dto.ChatResponse
	require.NoError(t, json.Unmarshal(out, &cr))
	assert.Equal(t, "You have no ITC at risk.", cr.Reply)

	resp, _ = h.do(t, http.MethodPost, "/api/chat", map[string]any{"message": "  "}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ── Auth wiring ──

func TestRouter_AuthEnabled(t *testing.T) {
	h := newHarness(t, testJWTSecret)

	resp, _ := h.do(t, http.MethodGet, "/api/compliance", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "health stays public")

	viewer := tokenForRole(t, pkgjwt.RoleViewer)
	resp, _ = h.do(t, http.MethodGet, "/api/compliance", nil, viewer)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/api/compliance", map[string]any{"vendor_name": "A", "amount": 1}, viewer)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/api/compliance",
		map[string]any{"vendor_name": "A", "amount": 1}, tokenForRole(t, pkgjwt.RoleAccountant))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
