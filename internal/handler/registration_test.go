package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/model"
	"github.com/cache2k25/registration-backend/internal/payment"
	"github.com/cache2k25/registration-backend/internal/registration"
	"github.com/cache2k25/registration-backend/internal/repository"
	"github.com/cache2k25/registration-backend/internal/service"
)

const handlerSecret = "handler_secret"

func newTestService(t *testing.T) *service.RegistrationService {
	t.Helper()
	cat := catalog.New()
	return &service.RegistrationService{
		Catalog:  cat,
		Builder:  registration.NewBuilder(cat),
		Verifier: payment.NewHMACVerifier(handlerSecret),
		Store:    repository.NewLedger(filepath.Join(t.TempDir(), "regs.xlsx"), "CACHE2K25"),
	}
}

func signedPayload(eventID, orderID, paymentID string) string {
	sig := payment.Sign(orderID, paymentID, []byte(handlerSecret))
	return fmt.Sprintf(`{
		"eventId": %q,
		"participantName": "Asha Rao",
		"email": "asha@example.com",
		"phone": "9876543210",
		"college": "Cache Institute of Technology",
		"paymentId": %q,
		"orderId": %q,
		"signature": %q,
		"paymentMethod": "upi"
	}`, eventID, paymentID, orderID, sig)
}

func doJSON(h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRegisterHappyPath(t *testing.T) {
	svc := newTestService(t)
	h := NewRegistrationHandler(svc)

	rec := doJSON(h.Register, http.MethodPost, "/registrations", signedPayload("web-dev", "order_1", "pay_1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Success        bool   `json:"success"`
		RegistrationID string `json:"registrationId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || !strings.HasPrefix(resp.RegistrationID, "CACHE2K25_") {
		t.Fatalf("unexpected response %+v", resp)
	}

	rec = doJSON(h.List, http.MethodGet, "/registrations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	var rows []model.ConfirmedRegistration
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].PaymentStatus != model.PaymentStatusCompleted {
		t.Errorf("payment status %q", rows[0].PaymentStatus)
	}
	if rows[0].TotalAmount != 500 {
		t.Errorf("amount %d, want catalog price 500", rows[0].TotalAmount)
	}
}

func TestRegisterRejectsBadSignature(t *testing.T) {
	svc := newTestService(t)
	h := NewRegistrationHandler(svc)

	body := strings.Replace(signedPayload("web-dev", "order_1", "pay_1"), `"paymentId": "pay_1"`, `"paymentId": "pay_2"`, 1)
	rec := doJSON(h.Register, http.MethodPost, "/registrations", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}

	rec = doJSON(h.List, http.MethodGet, "/registrations", "")
	var rows []model.ConfirmedRegistration
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatal("row persisted despite failed verification")
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	svc := newTestService(t)
	h := NewRegistrationHandler(svc)

	body := strings.Replace(signedPayload("web-dev", "order_1", "pay_1"), `"email": "asha@example.com"`, `"email": "nope"`, 1)
	rec := doJSON(h.Register, http.MethodPost, "/registrations", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "causes") {
		t.Errorf("validation causes missing from body: %s", rec.Body)
	}
}

func TestRegisterUnknownEvent(t *testing.T) {
	svc := newTestService(t)
	h := NewRegistrationHandler(svc)

	rec := doJSON(h.Register, http.MethodPost, "/registrations", signedPayload("no-such-event", "order_1", "pay_1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestListByEventFiltersRows(t *testing.T) {
	svc := newTestService(t)
	h := NewRegistrationHandler(svc)

	for i, eventID := range []string{"web-dev", "pycharm", "web-dev"} {
		order := fmt.Sprintf("order_%d", i)
		pay := fmt.Sprintf("pay_%d", i)
		rec := doJSON(h.Register, http.MethodPost, "/registrations", signedPayload(eventID, order, pay))
		if rec.Code != http.StatusOK {
			t.Fatalf("seed %d: status %d body %s", i, rec.Code, rec.Body)
		}
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/registrations/pycharm", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("eventId")
	c.SetParamValues("pycharm")
	if err := h.ListByEvent(c); err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}

	var rows []model.ConfirmedRegistration
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 pycharm row, got %d", len(rows))
	}
	if rows[0].EventID != "pycharm" {
		t.Errorf("wrong event in filter: %s", rows[0].EventID)
	}
}

func TestExportNotFoundBeforeFirstWrite(t *testing.T) {
	store := repository.NewLedger(filepath.Join(t.TempDir(), "regs.xlsx"), "CACHE2K25")
	h := NewExportHandler(store, "cache2k25_registrations.xlsx")

	rec := doJSON(h.Export, http.MethodGet, "/export", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
