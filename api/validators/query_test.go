package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?page=3", nil)

	value, err := ParseQueryInt(req, "page", 1, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 3 {
		t.Fatalf("expected 3, got %d", value)
	}

	value, err = ParseQueryInt(req, "missing", 7, 1, 100)
	if err != nil || value != 7 {
		t.Fatalf("expected default 7, got %d (%v)", value, err)
	}

	req = httptest.NewRequest("GET", "/?page=abc", nil)
	if _, err := ParseQueryInt(req, "page", 1, 1, 100); err == nil {
		t.Fatal("expected error for non-numeric value")
	}

	req = httptest.NewRequest("GET", "/?page=500", nil)
	_, err = ParseQueryInt(req, "page", 1, 1, 100)
	if err == nil {
		t.Fatal("expected error for out-of-range value")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestParseQueryDate(t *testing.T) {
	req := httptest.NewRequest("GET", "/?start_date=2026-01-15", nil)

	value, err := ParseQueryDate(req, "start_date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value == nil || value.Format("2006-01-02") != "2026-01-15" {
		t.Fatalf("unexpected date: %v", value)
	}

	value, err = ParseQueryDate(req, "end_date")
	if err != nil || value != nil {
		t.Fatalf("expected nil for absent param, got %v (%v)", value, err)
	}

	req = httptest.NewRequest("GET", "/?start_date=15/01/2026", nil)
	if _, err := ParseQueryDate(req, "start_date"); err == nil {
		t.Fatal("expected error for wrong format")
	}
}

func TestParseQueryUUID(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest("GET", "/?product_id="+id.String(), nil)

	value, err := ParseQueryUUID(req, "product_id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value == nil || *value != id {
		t.Fatalf("unexpected uuid: %v", value)
	}

	req = httptest.NewRequest("GET", "/?product_id=nope", nil)
	if _, err := ParseQueryUUID(req, "product_id"); err == nil {
		t.Fatal("expected error for invalid uuid")
	}
}
