package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/validation"
)

type stubReviewService struct {
	reviews []domain.ReviewWithAuthor
	added   []string
}

func (s *stubReviewService) Add(_ context.Context, vehicleID, _, _ string) error {
	s.added = append(s.added, vehicleID)
	return nil
}

func (s *stubReviewService) ListByVehicle(context.Context, string) ([]domain.ReviewWithAuthor, error) {
	return s.reviews, nil
}

func newInventoryHandler(inventory *stubInventoryService, flash *stubFlashStore) *InventoryHandler {
	views := NewViewBuilder(inventory, flash, false)
	return NewInventoryHandler(inventory, &stubReviewService{}, views, validation.NewFormValidator(), flash, false, zerolog.Nop())
}

func TestByClassification_EmptyClassificationIsANormalPage(t *testing.T) {
	e := newTestEcho(t)
	inventory := &stubInventoryService{classifications: []domain.Classification{{ID: "c1", Name: "SUV"}}}
	h := newInventoryHandler(inventory, &stubFlashStore{})

	req := httptest.NewRequest(http.MethodGet, "/inv/type/c1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("classificationID")
	c.SetParamValues("c1")

	if err := h.ByClassification(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no matching vehicles") {
		t.Fatalf("empty classification must render the notice, got: %s", rec.Body.String())
	}
}

func TestByClassification_UnknownClassificationPropagatesNotFound(t *testing.T) {
	e := newTestEcho(t)
	inventory := &stubInventoryService{classifications: []domain.Classification{{ID: "c1", Name: "SUV"}}}
	h := newInventoryHandler(inventory, &stubFlashStore{})

	req := httptest.NewRequest(http.MethodGet, "/inv/type/nope", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("classificationID")
	c.SetParamValues("nope")

	if err := h.ByClassification(c); err != domain.ErrClassificationNotFound {
		t.Fatalf("expected ErrClassificationNotFound, got %v", err)
	}
}

func TestDetail_RendersFormattedPriceAndMiles(t *testing.T) {
	e := newTestEcho(t)
	inventory := &stubInventoryService{
		classifications: []domain.Classification{{ID: "c1", Name: "SUV"}},
		vehicle: &domain.Vehicle{
			ID: "v1", ClassificationID: "c1", Make: "Jeep", Model: "Wrangler",
			Description: "Rugged.", Image: "/img/w.jpg", Thumbnail: "/img/w-tn.jpg",
			Price: 28995, Year: 2021, Miles: 41250, Color: "Yellow",
		},
	}
	h := newInventoryHandler(inventory, &stubFlashStore{})

	req := httptest.NewRequest(http.MethodGet, "/inv/detail/v1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("vehicleID")
	c.SetParamValues("v1")

	if err := h.Detail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "$28,995") {
		t.Fatalf("price not formatted as currency: %s", body)
	}
	if !strings.Contains(body, "41,250") {
		t.Fatalf("miles not formatted with separators: %s", body)
	}
	if !strings.Contains(body, "2021 Jeep Wrangler") {
		t.Fatalf("title missing year make model")
	}
}

func TestAddClassification_NonAlphaNameRejectedAndEchoed(t *testing.T) {
	e := newTestEcho(t)
	inventory := &stubInventoryService{classifications: []domain.Classification{{ID: "c1", Name: "SUV"}}}
	h := newInventoryHandler(inventory, &stubFlashStore{})

	c, rec := postForm(t, e, "/inv/add-classification", url.Values{
		"classification_name": {"Off Road!"},
	})

	if err := h.AddClassification(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Off Road!") {
		t.Fatalf("rejected name must be echoed for correction")
	}
}

func TestAddInventory_InvalidYearRejectedWithAllFieldsEchoed(t *testing.T) {
	e := newTestEcho(t)
	inventory := &stubInventoryService{classifications: []domain.Classification{{ID: "c1", Name: "SUV"}}}
	h := newInventoryHandler(inventory, &stubFlashStore{})

	c, rec := postForm(t, e, "/inv/add-inventory", url.Values{
		"classification_id": {"c1"},
		"inv_make":          {"Jeep"},
		"inv_model":         {"Wrangler"},
		"inv_description":   {"Rugged."},
		"inv_image":         {"/img/w.jpg"},
		"inv_thumbnail":     {"/img/w-tn.jpg"},
		"inv_price":         {"28995"},
		"inv_year":          {"1850"},
		"inv_miles":         {"41250"},
		"inv_color":         {"Yellow"},
	})

	if err := h.AddInventory(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Jeep", "Wrangler", "Rugged.", "Yellow", "1850"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing echoed field %q", want)
		}
	}
}

func TestInventoryJSON_ReturnsVehicles(t *testing.T) {
	e := newTestEcho(t)
	inventory := &stubInventoryService{
		classifications: []domain.Classification{{ID: "c1", Name: "SUV"}},
		vehicles: []domain.Vehicle{
			{ID: "v1", ClassificationID: "c1", Make: "Jeep", Model: "Wrangler"},
		},
	}
	h := newInventoryHandler(inventory, &stubFlashStore{})

	req := httptest.NewRequest(http.MethodGet, "/inv/inventory/c1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("classificationID")
	c.SetParamValues("c1")

	if err := h.InventoryJSON(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"make":"Jeep"`) {
		t.Fatalf("unexpected json body: %s", rec.Body.String())
	}
}
