package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"invomaster/internal/export"
	"invomaster/internal/repository"
	"invomaster/internal/service"
	"invomaster/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// testAPI wires real services over an in-memory store behind a chi router,
// the same shape the server package assembles at startup.
type testAPI struct {
	router   chi.Router
	catalog  service.CatalogService
	invoices service.InvoiceService
	draft    *service.InvoiceBuilder
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	logger := zap.NewNop()

	catalog, err := service.NewCatalogService(ctx, repository.NewProductRepository(store))
	if err != nil {
		t.Fatalf("Failed to create catalog: %v", err)
	}
	invoices, err := service.NewInvoiceService(catalog, repository.NewInvoiceRepository(store))
	if err != nil {
		t.Fatalf("Failed to create invoice service: %v", err)
	}
	favorites, err := service.NewFavoritesService(ctx, repository.NewFavoritesRepository(store))
	if err != nil {
		t.Fatalf("Failed to create favorites service: %v", err)
	}
	draft := service.NewInvoiceBuilder()

	router := chi.NewRouter()
	NewProductHandler(catalog, logger).RegisterRoutes(router)
	NewInvoiceHandler(draft, invoices, catalog, export.NewPDFRenderer("Generox"),
		decimal.NewFromFloat(0.1), logger).RegisterRoutes(router)
	NewFavoritesHandler(favorites, catalog, logger).RegisterRoutes(router)
	NewDashboardHandler(service.NewDashboardService(catalog), logger).RegisterRoutes(router)

	return &testAPI{router: router, catalog: catalog, invoices: invoices, draft: draft}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to decode response body: %v\n%s", err, rr.Body.String())
	}
	return v
}

func productPayload(id string, price float64, qty int) ProductRequest {
	return ProductRequest{
		ID:           id,
		Name:         "Product " + id,
		Description:  "test product",
		BuyingPrice:  price / 2,
		ShippingCost: 1,
		SellingPrice: price,
		Quantity:     qty,
		ShipmentDate: "2026-03-01",
	}
}
