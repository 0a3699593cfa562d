package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocktrail/stocktrail-backend/api/controllers"
	"github.com/stocktrail/stocktrail-backend/api/middleware"
	inventorysvc "github.com/stocktrail/stocktrail-backend/internal/inventory"
	productsvc "github.com/stocktrail/stocktrail-backend/internal/products"
	salessvc "github.com/stocktrail/stocktrail-backend/internal/sales"
	"github.com/stocktrail/stocktrail-backend/pkg/config"
	"github.com/stocktrail/stocktrail-backend/pkg/db"
	"github.com/stocktrail/stocktrail-backend/pkg/logger"
	"github.com/stocktrail/stocktrail-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	productService productsvc.Service,
	inventoryService inventorysvc.Service,
	salesService salessvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	maxUpload := int64(cfg.Uploads.MaxUploadMB) << 20

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
			r.Post("/upload/product_image", controllers.UploadProductImage(productService, maxUpload, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(inventoryService, logg))
			r.Patch("/{inventoryId}", controllers.UpdateInventory(inventoryService, logg))
		})

		r.Get("/inventory_history/{inventoryId}", controllers.InventoryHistory(inventoryService, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.CreateSale(salesService, logg))
			r.Get("/", controllers.ListSales(salesService, logg))
			r.Get("/revenue/{granularity}", controllers.Revenue(salesService, logg))
		})
	})

	return r
}
