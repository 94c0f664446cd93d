// Package server exposes the invoice engine over HTTP.
package server

import (
	"context"
	"net/http"
	"strings"
	"sync"

	analyticsdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/refresh"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/config"
	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoicenumber"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/observability/logger"
	paymentdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/payment/domain"
	shopdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	log    *zap.Logger
	cfg    config.Config

	shopRepo     shopdomain.Repository
	invoiceSvc   invoicedomain.Service
	paymentSvc   paymentdomain.Service
	analyticsSvc analyticsdomain.Service
	numberInfo   *invoicenumber.Provider
	snapshots    *refresh.Holder

	defaultShopMu sync.Mutex
	defaultShopID snowflake.ID
}

type Params struct {
	fx.In

	Engine       *gin.Engine
	DB           *gorm.DB
	Log          *zap.Logger
	Cfg          config.Config
	ShopRepo     shopdomain.Repository
	InvoiceSvc   invoicedomain.Service
	PaymentSvc   paymentdomain.Service
	AnalyticsSvc analyticsdomain.Service
	NumberInfo   *invoicenumber.Provider
	Snapshots    *refresh.Holder
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		engine:       p.Engine,
		db:           p.DB,
		log:          p.Log.Named("server"),
		cfg:          p.Cfg,
		shopRepo:     p.ShopRepo,
		invoiceSvc:   p.InvoiceSvc,
		paymentSvc:   p.PaymentSvc,
		analyticsSvc: p.AnalyticsSvc,
		numberInfo:   p.NumberInfo,
		snapshots:    p.Snapshots,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Health)

	api := s.engine.Group("/api")
	api.Use(s.ShopScope)
	{
		api.GET("/invoices", s.ListInvoices)
		api.POST("/invoices", s.CreateInvoice)
		api.GET("/invoices/:id", s.GetInvoice)
		api.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)
		api.POST("/invoices/:id/milestones", s.RecordMilestone)
		api.POST("/invoices/:id/payments", s.ApplyPayment)
		api.POST("/invoice-numbers", s.GenerateInvoiceNumber)
		api.GET("/analytics", s.GetAnalytics)
		api.GET("/analytics/weekly", s.GetWeeklyAnalytics)
	}
}

// ShopScope resolves the active shop from the X-Shop-ID header, falling
// back to the default shop for single-tenant installs.
func (s *Server) ShopScope(c *gin.Context) {
	header := strings.TrimSpace(c.GetHeader("X-Shop-ID"))
	var shopID snowflake.ID
	if header != "" {
		parsed, err := snowflake.ParseString(header)
		if err != nil {
			AbortWithError(c, shopdomain.ErrInvalidShopID)
			return
		}
		shopID = parsed
	} else {
		resolved, err := s.resolveDefaultShop(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		shopID = resolved
	}

	ctx := shopcontext.WithShopID(c.Request.Context(), shopID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// resolveDefaultShop caches only a successful lookup; a transient store
// error is returned to the caller and the next request queries again.
func (s *Server) resolveDefaultShop(ctx context.Context) (snowflake.ID, error) {
	s.defaultShopMu.Lock()
	defer s.defaultShopMu.Unlock()
	if s.defaultShopID != 0 {
		return s.defaultShopID, nil
	}

	shop, err := s.shopRepo.FindBySlug(ctx, s.db, "main")
	if err != nil {
		return 0, err
	}
	if shop == nil {
		return 0, shopdomain.ErrShopNotFound
	}
	s.defaultShopID = shop.ID
	return s.defaultShopID, nil
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server starting", zap.String("addr", s.cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
