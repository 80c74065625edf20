package routes

import (
	"net/http"

	"github.com/batch26/keepsake/internal/app"
	"github.com/batch26/keepsake/internal/handler"
	"github.com/batch26/keepsake/internal/middleware"
	"github.com/batch26/keepsake/internal/ui"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.TimelineService)
	yearbook := handler.NewYearbookHandler(app.YearbookService)
	wall := handler.NewWallHandler(app.WallService)
	vault := handler.NewVaultHandler(app.VaultService)
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	dashboard := handler.NewDashboardHandler(app.YearbookService)
	newsletter := handler.NewNewsletterHandler(app.EmailService)
	blobs := handler.NewBlobHandler(app.Storage)
	seo := handler.NewSEOHandler(app.SitemapService)

	mux := http.NewServeMux()

	// ============================================================================
	// STATIC
	// ============================================================================

	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(ui.AssetsFS))))
	mux.HandleFunc("GET /blobs/{path...}", blobs.ServeBlob)
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// ============================================================================
	// VIEWS
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /timeline", home.TimelinePage)
	mux.HandleFunc("GET /yearbook", yearbook.YearbookPage)
	mux.HandleFunc("GET /vault", vault.VaultPage)
	mux.HandleFunc("GET /wall", wall.WallPage)

	// Yearbook
	mux.HandleFunc("GET /yearbook/{id}", yearbook.StudentDialog)
	mux.HandleFunc("POST /yearbook/{id}/guestbook", yearbook.SignGuestbook)

	// Wall
	mux.HandleFunc("POST /wall", wall.PostMessage)

	// Vault
	mux.HandleFunc("POST /vault/upload", middleware.RequireAuth(vault.Upload))

	// Reunion updates
	mux.HandleFunc("POST /newsletter/subscribe", newsletter.Subscribe)

	// ============================================================================
	// AUTH (rate limited)
	// ============================================================================

	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /auth/dialog", auth.AuthDialog)
	mux.HandleFunc("POST /auth/signin", rateLimiter(auth.SignIn))
	mux.HandleFunc("POST /auth/signup", rateLimiter(auth.SignUp))
	mux.HandleFunc("POST /auth/signout", auth.SignOut)

	// OAuth (google, github)
	mux.HandleFunc("GET /auth/{provider}", rateLimiter(auth.OAuthStart))
	mux.HandleFunc("GET /auth/{provider}/callback", rateLimiter(auth.OAuthCallback))

	// Dashboard
	mux.HandleFunc("GET /dashboard/dialog", middleware.RequireAuth(dashboard.DashboardDialog))
	mux.HandleFunc("POST /dashboard/profile", middleware.RequireAuth(dashboard.SaveProfile))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // SecurityHeaders reads the S3 endpoint from it
		middleware.NonceMiddleware, // before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.Session(app.SessionProvider, app.AuthService),
		middleware.WithURLPath,
	)
}
