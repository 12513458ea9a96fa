package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"church-site-backend/internal/client"
	"church-site-backend/internal/handler"
	"church-site-backend/internal/middleware"
	"church-site-backend/internal/service"
)

type Server struct {
	echo            *echo.Echo
	donationHandler *handler.DonationHandler
	prayerHandler   *handler.PrayerHandler
	contentHandler  *handler.ContentHandler
	adminHandler    *handler.AdminHandler
	proxyHandler    *handler.ProxyHandler
	authService     service.AuthService
}

func NewServer(
	donationService service.DonationService,
	prayerService service.PrayerService,
	contentService service.ContentService,
	authService service.AuthService,
	pesapalClient client.PesapalClient,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		// The pesapal relay answers its own CORS; its browser clients expect
		// a 200 preflight, not the 204 this middleware sends.
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/pesapal")
		},
	}))

	s := &Server{
		echo:            e,
		donationHandler: handler.NewDonationHandler(donationService),
		prayerHandler:   handler.NewPrayerHandler(prayerService),
		contentHandler:  handler.NewContentHandler(contentService),
		adminHandler:    handler.NewAdminHandler(authService),
		proxyHandler:    handler.NewProxyHandler(pesapalClient),
		authService:     authService,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public content --------
	api.GET("/gallery", s.contentHandler.ListGallery)
	api.GET("/devotions", s.contentHandler.ListDevotions)
	api.GET("/resources", s.contentHandler.ListResources)

	// -------- giving --------
	api.POST("/donations", s.donationHandler.Donate)
	s.echo.GET("/payment/callback", s.donationHandler.Callback)

	// -------- prayer --------
	api.POST("/prayer-requests", s.prayerHandler.Submit)

	// -------- admin dashboard --------
	admin := api.Group("/admin")
	admin.POST("/login", s.adminHandler.Login)

	guarded := admin.Group("", middleware.AdminAuth(s.authService))
	guarded.GET("/donations", s.donationHandler.ListDonations)
	guarded.GET("/prayer-requests", s.prayerHandler.List)
	guarded.PUT("/prayer-requests/:id/status", s.prayerHandler.UpdateStatus)
	guarded.DELETE("/prayer-requests/:id", s.prayerHandler.Delete)
	guarded.POST("/gallery", s.contentHandler.CreateGalleryItem)
	guarded.DELETE("/gallery/:id", s.contentHandler.DeleteGalleryItem)
	guarded.POST("/devotions", s.contentHandler.CreateDevotion)
	guarded.DELETE("/devotions/:id", s.contentHandler.DeleteDevotion)
	guarded.POST("/resources", s.contentHandler.CreateResource)
	guarded.DELETE("/resources/:id", s.contentHandler.DeleteResource)
	guarded.POST("/media", s.contentHandler.UploadMedia)

	// -------- pesapal forwarding proxy --------
	proxy := s.echo.Group("/pesapal", proxyCORS)
	proxy.GET("/test", s.proxyHandler.Test)
	proxy.POST("/auth", s.proxyHandler.Auth)
	proxy.POST("/submit-order", s.proxyHandler.SubmitOrder)
	proxy.GET("/transaction-status", s.proxyHandler.TransactionStatus)
	proxy.Any("/*", s.proxyHandler.NotFound)
}

// proxyCORS sets the relay's CORS headers and answers preflight requests
// with 200 and an empty body.
func proxyCORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
