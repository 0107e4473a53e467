package router

import (
	"fmt"
	"net/http"
	"time"

	"petshop/internal/adapters/auth/mockauth"
	"petshop/internal/adapters/erp/mock1c"
	"petshop/internal/adapters/payments/mockpay"
	mem "petshop/internal/adapters/storage/memory"
	"petshop/internal/domain/catalog"
	"petshop/internal/domain/categories"
	"petshop/internal/domain/erp"
	"petshop/internal/domain/orders"
	"petshop/internal/domain/payments"
	"petshop/internal/domain/pets"
	"petshop/internal/domain/recommendations"
	"petshop/internal/domain/wishlist"
	"petshop/internal/middleware"
	"petshop/internal/platform/httpjson"
	"petshop/internal/platform/logger"
	"petshop/internal/ports/auth"
	"petshop/internal/seed"

	_ "petshop/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => Nop

	AuthVerifier    auth.AuthVerifier // nil => mockauth (cualquier token = mock-user-id)
	DebugAuthHeader bool              // acepta X-Debug-User-ID
	FrontendURL     string            // origen CORS permitido

	RateLimitRPS   float64 // <= 0 => sin límite
	RateLimitBurst int
	TrustProxy     bool // toma la IP de X-Forwarded-For / X-Real-IP (sólo detrás de un proxy propio)

	// Stores. Si vienen nil se usan los in-memory (catálogo con el seed embebido).
	Products catalog.Repository
	Pets     pets.Repository
	Orders   orders.Repository
	Wishlist wishlist.Repository
	Snapshot catalog.SnapshotWriter // nil => sin copia en disco

	// Datos de referencia. nil => seed embebido.
	Categories []categories.Category
	Breeds     []pets.Breed

	// Colaboradores externos. nil => mocks (con latencia si MockDelays).
	Gateways   []payments.Gateway
	Syncer     erp.Syncer
	MockDelays bool
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if err := opts.withDefaults(); err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.DebugUserHeader},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.AuthContext(opts.AuthVerifier, opts.DebugAuthHeader))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]any{"status": "ok", "timestamp": time.Now().UTC()})
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusNotFound, map[string]string{"error": "Not Found", "path": r.URL.Path})
	})

	// Services por módulo
	catalogSvc := catalog.NewService(opts.Products, opts.Snapshot, log)
	categoriesSvc := categories.NewService(opts.Categories)
	petsSvc := pets.NewService(opts.Pets, pets.NewBreedTable(opts.Breeds))
	recsSvc := recommendations.NewService(petsSvc, catalogSvc)
	ordersSvc := orders.NewService(opts.Orders, catalogSvc)
	paymentsSvc := payments.NewService(ordersSvc, log, opts.Gateways...)
	erpSvc := erp.NewService(opts.Syncer, ordersSvc, catalogSvc, log)
	wishlistSvc := wishlist.NewService(opts.Wishlist, catalogSvc)

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc, log)
	categories.RegisterRoutes(r, categoriesSvc, log)
	pets.RegisterRoutes(r, petsSvc, log)
	recommendations.RegisterRoutes(r, recsSvc, log)
	orders.RegisterRoutes(r, ordersSvc, log)
	payments.RegisterRoutes(r, paymentsSvc, log)
	erp.RegisterRoutes(r, erpSvc, log)
	wishlist.RegisterRoutes(r, wishlistSvc, log)

	return r, nil
}

func (o *Options) withDefaults() error {
	if o.AuthVerifier == nil {
		o.AuthVerifier = mockauth.NewVerifier("")
	}
	if o.FrontendURL == "" {
		o.FrontendURL = "http://localhost:3000"
	}

	if o.Products == nil {
		seeded, err := seed.Products()
		if err != nil {
			return fmt.Errorf("router: %w", err)
		}
		o.Products = mem.NewProductRepo(seeded)
	}
	if o.Pets == nil {
		o.Pets = mem.NewPetRepo()
	}
	if o.Orders == nil {
		o.Orders = mem.NewOrderRepo()
	}
	if o.Wishlist == nil {
		o.Wishlist = mem.NewWishlistRepo()
	}

	if o.Categories == nil {
		cats, err := seed.Categories()
		if err != nil {
			return fmt.Errorf("router: %w", err)
		}
		o.Categories = cats
	}
	if o.Breeds == nil {
		breeds, err := seed.Breeds()
		if err != nil {
			return fmt.Errorf("router: %w", err)
		}
		o.Breeds = breeds
	}

	if o.Gateways == nil {
		card, sbp, split := mockpay.DefaultCardDelay, mockpay.DefaultSBPDelay, mockpay.DefaultYandexSplitDelay
		if !o.MockDelays {
			card, sbp, split = 0, 0, 0
		}
		o.Gateways = []payments.Gateway{
			mockpay.NewCard(card),
			mockpay.NewSBP(sbp),
			mockpay.NewYandexSplit(split),
		}
	}
	if o.Syncer == nil {
		delay := mock1c.DefaultDelay
		if !o.MockDelays {
			delay = 0
		}
		o.Syncer = mock1c.NewSyncer(delay)
	}
	return nil
}
