package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "library-backend/docs"
	"library-backend/internal/library_mgmt/authors"
	"library-backend/internal/library_mgmt/books"
	"library-backend/internal/library_mgmt/customers"
	"library-backend/internal/library_mgmt/transactions"
	"library-backend/internal/platform/auth"
	"library-backend/internal/platform/cache"
	"library-backend/internal/platform/config"
	"library-backend/internal/platform/requestid"
)

func newRouter(cfg *config.Config, conn *sql.DB, c *cache.Cache) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestid.Middleware())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		// CORS と Swagger UI は開発中のみ
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", cfg.Auth.Header, requestid.Header},
			ExposeHeaders:    []string{"Content-Length", "Location", "Link", requestid.Header},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	issuer := auth.NewIssuer([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)

	// /api/v1
	public := r.Group("/api/v1")
	protected := public.Group("", auth.RequireAuth(issuer, cfg.Auth.Header))
	auth.RegisterRoutes(public, protected, auth.NewService(conn, issuer))

	bookSvc := books.NewService(conn, cfg.DB.Driver, c)
	txSvc := transactions.NewService(conn, transactions.Policy{
		LoanDays:          cfg.Lending.LoanDays,
		RequirePrivileges: cfg.Lending.RequirePrivileges,
	})
	// 貸出・返却で availability が変わるので本のキャッシュを落とす
	txSvc.OnBookChanged(bookSvc.EvictBook)

	transactions.RegisterRoutes(protected, txSvc)
	books.RegisterRoutes(protected, bookSvc)
	authors.RegisterRoutes(protected, authors.NewService(conn, cfg.DB.Driver))
	customers.RegisterRoutes(protected, customers.NewService(conn, cfg.DB.Driver, c))

	return r
}
