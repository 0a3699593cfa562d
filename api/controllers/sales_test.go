package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	salessvc "github.com/stocktrail/stocktrail-backend/internal/sales"
	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
)

type stubSalesService struct {
	createRes   *salessvc.CreateResult
	createErr   error
	lastCreate  salessvc.CreateInput
	listRows    []salessvc.DTO
	lastFilters salessvc.Filters
	report      *salessvc.RevenueReportDTO
	lastGran    salessvc.Granularity
}

func (s *stubSalesService) Create(ctx context.Context, input salessvc.CreateInput) (*salessvc.CreateResult, error) {
	s.lastCreate = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createRes, nil
}

func (s *stubSalesService) List(ctx context.Context, filters salessvc.Filters) ([]salessvc.DTO, error) {
	s.lastFilters = filters
	return s.listRows, nil
}

func (s *stubSalesService) Revenue(ctx context.Context, granularity salessvc.Granularity) (*salessvc.RevenueReportDTO, error) {
	s.lastGran = granularity
	return s.report, nil
}

func TestCreateSaleController(t *testing.T) {
	logg := testLogger()
	inventoryID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubSalesService{createRes: &salessvc.CreateResult{InventoryID: inventoryID, QuantitySold: 2, RemainingQuantity: 8, Status: "available"}}
		body := `{"inventory_id":"` + inventoryID.String() + `","quantity_sold":2}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateSale(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastCreate.QuantitySold != 2 {
			t.Fatalf("expected quantity 2 forwarded, got %d", stub.lastCreate.QuantitySold)
		}
	})

	t.Run("zero quantity rejected by validator", func(t *testing.T) {
		body := `{"inventory_id":"` + inventoryID.String() + `","quantity_sold":0}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateSale(&stubSalesService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("insufficient stock maps to 400", func(t *testing.T) {
		stub := &stubSalesService{createErr: pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock")}
		body := `{"inventory_id":"` + inventoryID.String() + `","quantity_sold":5}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateSale(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown inventory maps to 404", func(t *testing.T) {
		stub := &stubSalesService{createErr: pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")}
		body := `{"inventory_id":"` + inventoryID.String() + `","quantity_sold":5}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateSale(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestListSalesController(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	t.Run("filters forwarded", func(t *testing.T) {
		stub := &stubSalesService{}
		target := "/api/v1/sales?start_date=2026-01-01&end_date=2026-01-31&product_id=" + productID.String() + "&category=laptops"
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		ListSales(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastFilters.StartDate == nil || stub.lastFilters.StartDate.Format("2006-01-02") != "2026-01-01" {
			t.Fatalf("start_date not forwarded: %+v", stub.lastFilters.StartDate)
		}
		if stub.lastFilters.ProductID == nil || *stub.lastFilters.ProductID != productID {
			t.Fatalf("product_id not forwarded")
		}
		if stub.lastFilters.Category == nil || string(*stub.lastFilters.Category) != "laptops" {
			t.Fatalf("category not forwarded")
		}
	})

	t.Run("bad date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?start_date=January", nil)
		rec := httptest.NewRecorder()

		ListSales(&stubSalesService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("bad category", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?category=appliances", nil)
		rec := httptest.NewRecorder()

		ListSales(&stubSalesService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestRevenueController(t *testing.T) {
	logg := testLogger()

	request := func(granularity string, stub *stubSalesService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/revenue/"+granularity, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("granularity", granularity)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		Revenue(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid granularity", func(t *testing.T) {
		stub := &stubSalesService{report: &salessvc.RevenueReportDTO{Granularity: "weekly", Buckets: []salessvc.RevenueBucketDTO{}}}
		rec := request("weekly", stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastGran != salessvc.GranularityWeekly {
			t.Fatalf("expected weekly forwarded, got %s", stub.lastGran)
		}

		var envelope struct {
			Data salessvc.RevenueReportDTO `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if envelope.Data.Granularity != "weekly" {
			t.Fatalf("unexpected report: %+v", envelope.Data)
		}
	})

	t.Run("invalid granularity", func(t *testing.T) {
		rec := request("hourly", &stubSalesService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
