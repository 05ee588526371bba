package handler

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/jobhub-dev/jobhub/backend/internal/config"
	"github.com/jobhub-dev/jobhub/backend/internal/metrics"
	"github.com/jobhub-dev/jobhub/backend/internal/ratelimit"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	store       Store
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	authLimiter *ratelimit.Limiter

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store Store, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report validation failures against the json field names the client sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		store:       store,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		authLimiter: ratelimit.NewLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.Window)*time.Second),

		Mux: chi.NewRouter(),
	}, nil
}

// CleanupLimiter releases idle rate-limit state. Run it periodically from the
// serving binary.
func (h *Handler) CleanupLimiter() {
	h.authLimiter.Cleanup()
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(metrics.Middleware)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", h.config.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	h.Mux.Get("/health", h.Health)
	h.Mux.Handle("/metrics", promhttp.Handler())

	h.Mux.Route("/api/auth", func(r chi.Router) {
		r.With(h.rateLimit).Post("/register", h.Register)
		r.With(h.rateLimit).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(h.authenticate).Get("/me", h.Me)
		r.Route("/reset-password", func(r chi.Router) {
			r.With(h.rateLimit).Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	h.Mux.Route("/api/users", func(r chi.Router) {
		r.With(h.authenticate).Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.With(h.authenticate).Put("/{id}", h.UpdateUser)
	})

	h.Mux.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", h.ListJobs)
		r.With(h.authenticate).Post("/", h.CreateJob)
		r.With(h.authenticate).Get("/my-jobs/list", h.MyJobs)
		r.Get("/{id}", h.GetJob)
		r.With(h.authenticate).Put("/{id}", h.UpdateJob)
		r.With(h.authenticate).Delete("/{id}", h.DeleteJob)
		r.With(h.authenticate).Get("/{id}/applicants", h.ListApplicants)
	})

	h.Mux.Route("/api/applications", func(r chi.Router) {
		r.With(h.authenticate).Post("/", h.Apply)
		r.With(h.authenticate).Get("/my-applications/list", h.MyApplications)
		r.With(h.authenticate).Patch("/{id}/status", h.UpdateApplicationStatus)
	})
}
