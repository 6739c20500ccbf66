package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/MuzzammilWits/HoodGoods-sub000/internal/service"
	"github.com/google/uuid"
)

// --- Mock ---

type SellerOrderManagerMock struct {
	sellerOrder  *domain.SellerOrder
	sellerOrders []*domain.SellerOrder
	err          error

	gotStatus domain.SellerOrderStatus
}

func (m *SellerOrderManagerMock) ListOrders(ctx context.Context, sellerUserID string) ([]*domain.SellerOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sellerOrders, nil
}

func (m *SellerOrderManagerMock) UpdateStatus(ctx context.Context, sellerUserID string, id uuid.UUID, status domain.SellerOrderStatus) (*domain.SellerOrder, error) {
	m.gotStatus = status
	if m.err != nil {
		return nil, m.err
	}
	return m.sellerOrder, nil
}

func testSellerOrder(status domain.SellerOrderStatus) *domain.SellerOrder {
	return &domain.SellerOrder{
		ID:             uuid.New(),
		OrderID:        uuid.New(),
		StoreID:        1,
		SellerUserID:   "seller-1",
		DeliveryMethod: domain.DeliveryStandard,
		DeliveryPrice:  50.00,
		ItemsSubtotal:  50.00,
		SellerTotal:    100.00,
		Status:         status,
	}
}

func statusBody(t *testing.T, status string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(UpdateStatusRequestDTO{Status: status})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return bytes.NewBuffer(body)
}

// --- ListOrders tests ---

func TestSellerListOrders_Success(t *testing.T) {
	so := testSellerOrder(domain.SellerOrderStatusProcessing)
	handler := NewSellerHandler(&SellerOrderManagerMock{sellerOrders: []*domain.SellerOrder{so}})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("GET", "/api/v1/seller/orders", nil), "seller-1")

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []SellerOrderDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("expected 1 seller order, got %d", len(response))
	}
	if response[0].ID != so.ID.String() {
		t.Errorf("expected id %q, got %q", so.ID.String(), response[0].ID)
	}
	if response[0].Status != "Processing" {
		t.Errorf("expected status 'Processing', got %q", response[0].Status)
	}
}

func TestSellerListOrders_MissingUser(t *testing.T) {
	handler := NewSellerHandler(&SellerOrderManagerMock{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/seller/orders", nil)

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

// --- UpdateStatus tests ---

func TestSellerUpdateStatus_Success(t *testing.T) {
	so := testSellerOrder(domain.SellerOrderStatusPackaging)
	mock := &SellerOrderManagerMock{sellerOrder: so}
	handler := NewSellerHandler(mock)

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PATCH", "/api/v1/seller/orders/"+so.ID.String()+"/status", statusBody(t, "Packaging")), "seller-1")
	request = withURLParam(request, "seller_order_id", so.ID.String())

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
	if mock.gotStatus != domain.SellerOrderStatusPackaging {
		t.Errorf("expected status 'Packaging' passed to service, got %q", mock.gotStatus)
	}

	var response SellerOrderDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "Packaging" {
		t.Errorf("expected status 'Packaging', got %q", response.Status)
	}
}

func TestSellerUpdateStatus_InvalidID(t *testing.T) {
	handler := NewSellerHandler(&SellerOrderManagerMock{})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PATCH", "/api/v1/seller/orders/nope/status", statusBody(t, "Packaging")), "seller-1")
	request = withURLParam(request, "seller_order_id", "nope")

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestSellerUpdateStatus_MissingStatus(t *testing.T) {
	handler := NewSellerHandler(&SellerOrderManagerMock{})

	id := uuid.New().String()
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PATCH", "/api/v1/seller/orders/"+id+"/status", statusBody(t, "")), "seller-1")
	request = withURLParam(request, "seller_order_id", id)

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if resp := decodeErrorResponse(t, recorder); resp.Code != "missing_status" {
		t.Errorf("expected code 'missing_status', got %q", resp.Code)
	}
}

func TestSellerUpdateStatus_IllegalTransition(t *testing.T) {
	handler := NewSellerHandler(&SellerOrderManagerMock{err: service.IllegalTransitionError})

	id := uuid.New().String()
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PATCH", "/api/v1/seller/orders/"+id+"/status", statusBody(t, "Delivered")), "seller-1")
	request = withURLParam(request, "seller_order_id", id)

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, recorder.Code)
	}
	if resp := decodeErrorResponse(t, recorder); resp.Code != "illegal_status_transition" {
		t.Errorf("expected code 'illegal_status_transition', got %q", resp.Code)
	}
}

func TestSellerUpdateStatus_NotFound(t *testing.T) {
	handler := NewSellerHandler(&SellerOrderManagerMock{err: service.ErrSellerOrderNotFound})

	id := uuid.New().String()
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PATCH", "/api/v1/seller/orders/"+id+"/status", statusBody(t, "Packaging")), "seller-1")
	request = withURLParam(request, "seller_order_id", id)

	handler.UpdateStatus(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
