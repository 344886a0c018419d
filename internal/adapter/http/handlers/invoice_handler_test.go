package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"freelance_billing/internal/adapter/http/handlers/mocks"
	"freelance_billing/internal/adapter/http/middleware"
	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.GET("/v1/invoices/:id", h.GetInvoice)

		uc.EXPECT().GetByID(gomock.Any(), "inv-404").Return(entities.Invoice{}, usecase.ErrInvoiceNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.GET("/v1/invoices/:id", h.GetInvoice)

		uc.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{ID: "inv-1", Amount: 1000, Status: entities.InvoiceStatusPending}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["id"] != "inv-1" || body["status"] != "pending" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestInvoiceHandler_RecordPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:id/payment", h.RecordPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payment", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:id/payment", h.RecordPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payment", bytes.NewBufferString(`{"kind":"partial"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("declined payment maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:id/payment", h.RecordPayment)

		uc.EXPECT().RecordPayment(gomock.Any(), "inv-1", entities.PaymentKindFull, gomock.Any()).Return(entities.Invoice{}, usecase.ErrPaymentGatewayDeclined)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payment", bytes.NewBufferString(`{"kind":"full"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("deposit success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:id/payment", h.RecordPayment)

		uc.EXPECT().RecordPayment(gomock.Any(), "inv-1", entities.PaymentKindDeposit, gomock.Any()).Return(
			entities.Invoice{ID: "inv-1", Amount: 1000, Status: entities.InvoiceStatusPending, DepositPaid: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payment", bytes.NewBufferString(`{"kind":"deposit","payment":{"payment_method_id":"pix"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["deposit_paid"] != true {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestInvoiceHandler_AdminRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminRouter := func(h *InvoiceHandler) *gin.Engine {
		r := gin.New()
		grp := r.Group("/v1/invoices", middleware.AdminAuth("secret"))
		grp.GET("", h.ListInvoices)
		grp.POST("/:id/reset", h.ResetInvoice)
		grp.DELETE("/:id", h.DeleteInvoice)
		return r
	}

	t.Run("missing token is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := adminRouter(NewInvoiceHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/reset", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("bad token is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := adminRouter(NewInvoiceHandler(uc))

		req := httptest.NewRequest(http.MethodDelete, "/v1/invoices/inv-1", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("reset success carries the actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := adminRouter(NewInvoiceHandler(uc))

		uc.EXPECT().ResetToPending(gomock.Any(), "inv-1", "admin").Return(entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusPending}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/reset", nil)
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("delete success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := adminRouter(NewInvoiceHandler(uc))

		uc.EXPECT().Delete(gomock.Any(), "inv-1", "admin").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/invoices/inv-1", nil)
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("delete not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := adminRouter(NewInvoiceHandler(uc))

		uc.EXPECT().Delete(gomock.Any(), "inv-404", "admin").Return(usecase.ErrInvoiceNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/v1/invoices/inv-404", nil)
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		r := adminRouter(NewInvoiceHandler(uc))

		uc.EXPECT().List(gomock.Any()).Return([]entities.Invoice{{ID: "inv-1"}, {ID: "inv-2"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
		req.Header.Set("Authorization", "Bearer secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if len(body) != 2 {
			t.Fatalf("expected 2 invoices, got %d", len(body))
		}
	})
}
