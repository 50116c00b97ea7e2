// @title        BeybladeStore gateway
// @version      1.0
// @description  JSON gateway over the Xano-backed store.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/beyblade-store/docs"
	"github.com/MikeMC777/beyblade-store/internal/config"
	"github.com/MikeMC777/beyblade-store/internal/httpx"
	"github.com/MikeMC777/beyblade-store/internal/metrics"
	"github.com/MikeMC777/beyblade-store/internal/xano"
)

func newRouter(cfg config.Config, c *xano.Client) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(cfg.AppOrigin))

	r.GET("/healthz", func(ctx *gin.Context) { ctx.String(http.StatusOK, "ok") })

	if cfg.DevProxy {
		proxy, err := httpx.DevProxy(cfg.DevMount, cfg.DevProxyUpstream, cfg.DevProxyRewrite)
		if err != nil {
			return nil, err
		}
		r.Any(cfg.DevMount+"/*path", proxy)
	}

	v1 := r.Group("/v1")
	v1.GET("/products", listProductsHandler(c))
	v1.GET("/products/:id", getProductHandler(c))
	v1.POST("/products", createProductHandler(c))
	v1.DELETE("/products/:id", deleteProductHandler(c))
	v1.GET("/categories", listCategoriesHandler(c))
	v1.POST("/categories", createCategoryHandler(c))
	v1.DELETE("/categories/:id", deleteCategoryHandler(c))
	v1.GET("/orders", listOrdersHandler(c))
	v1.POST("/auth/login", loginHandler(c))
	v1.POST("/auth/signup", signupHandler(c))
	v1.GET("/auth/me", meHandler(c))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r, nil
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mp, shutdownMetrics, err := metrics.Init(ctx, cfg)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}
	cm, err := metrics.NewClientMetrics(mp)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	r, err := newRouter(cfg, xano.NewClient(cfg, cm))
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{Addr: cfg.StorefrontAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Printf("storefront listening on %s (dev proxy=%v)", cfg.StorefrontAddr, cfg.DevProxy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		log.Printf("metrics shutdown: %v", err)
	}
}
