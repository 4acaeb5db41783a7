package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vncsmyrnk/survey/internal/core/ports"
	_ "github.com/vncsmyrnk/survey/internal/docs"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth         *AuthHandler
	Survey       *SurveyHandler
	Response     *ResponseHandler
	Results      *ResultsHandler
	Notification *NotificationHandler
	User         *UserHandler
	// Webhook is optional; the identity webhook route is only mounted when set.
	Webhook *WebhookHandler
}

func NewHandler(h Handlers, authService ports.AuthService, allowedOrigins []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/oauth", func(r chi.Router) {
		r.Post("/callback", h.Auth.GoogleCallback)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
	})

	if h.Webhook != nil {
		r.Post("/webhooks/identity", h.Webhook.HandleIdentityEvent)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(Authenticate(authService))

		r.Get("/me", h.User.GetMe)
		r.Get("/users", h.User.ListUsers)
		r.Get("/dashboard", h.User.GetDashboard)

		r.Route("/surveys", func(r chi.Router) {
			r.Post("/", h.Survey.CreateSurvey)
			r.Get("/", h.Survey.ListSurveys)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Survey.GetSurvey)
				r.Delete("/", h.Survey.DeleteSurvey)
				r.Post("/responses", h.Response.SubmitResponse)
				r.Get("/responses", h.Response.ListResponses)
				r.Get("/results", h.Results.GetResults)
				r.Post("/notifications", h.Notification.NotifyRecipients)
			})
		})
	})

	return otelhttp.NewHandler(r, "survey-api")
}
