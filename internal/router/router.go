package router

import (
	"database/sql"
	"net/http"

	"vetco-api/internal/adapters/notify/expo"
	mem "vetco-api/internal/adapters/storage/memory"
	pg "vetco-api/internal/adapters/storage/postgres"
	"vetco-api/internal/config"
	"vetco-api/internal/domain/breathing"
	"vetco-api/internal/domain/devices"
	"vetco-api/internal/domain/messages"
	"vetco-api/internal/domain/pets"
	"vetco-api/internal/domain/schedules"
	"vetco-api/internal/domain/vets"
	"vetco-api/internal/middleware"
	"vetco-api/internal/platform/httpclient"
	"vetco-api/internal/platform/logger"
	"vetco-api/internal/ports/auth"
	"vetco-api/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, decide por DB_DSN (env)
	// y cae a in-memory.
	DB *sql.DB

	// Opcional: rate limiting de mensajes. Nil = sin límite.
	Redis *redislib.Client

	// Opcional: push. Nil = se decide por EXPO_PUSH_URL o queda noop.
	Notifier notify.Dispatcher

	Log logger.Logger
	Cfg *config.Config
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Cfg
	if cfg == nil {
		c := config.Load()
		cfg = &c
	}

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		petRepo      pets.Repository
		vetRepo      vets.Repository
		messageRepo  messages.Repository
		breathRepo   breathing.Repository
		scheduleRepo schedules.Repository
		deviceRepo   devices.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if cfg.DBDSN != "" {
			opened, err := pg.Open(cfg.DBDSN)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to in-memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		vetRepo = pg.NewVetsRepo(db)
		messageRepo = pg.NewMessagesRepo(db)
		breathRepo = pg.NewBreathingRepo(db)
		scheduleRepo = pg.NewSchedulesRepo(db)
		deviceRepo = pg.NewDevicesRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		vetRepo = mem.NewVetRepo()
		messageRepo = mem.NewMessageRepo()
		breathRepo = mem.NewBreathingRepo()
		scheduleRepo = mem.NewScheduleRepo()
		deviceRepo = mem.NewDeviceRepo()
	}

	devicesSvc := devices.NewService(deviceRepo)

	// Push: best-effort siempre; sin EXPO_PUSH_URL queda noop.
	notifier := opts.Notifier
	if notifier == nil {
		if cfg.ExpoPushURL != "" {
			notifier = expo.NewDispatcher(httpclient.New(0), cfg.ExpoPushURL, devicesSvc, log)
		} else {
			notifier = notify.Noop{}
		}
	}

	// Rate limiting de envío de mensajes (degrada abierto sin Redis).
	rdb := opts.Redis
	if rdb == nil && cfg.RedisAddr != "" {
		rdb = redislib.NewClient(&redislib.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	sendLimiter := middleware.NewRateLimiter(rdb, "msg", cfg.MsgRateLimit, cfg.MsgRateWindow)

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	vetsSvc := vets.NewService(vetRepo)
	messagesSvc := messages.NewService(messageRepo, notifier, log)
	breathingSvc := breathing.NewService(breathRepo)
	schedulesSvc := schedules.NewService(scheduleRepo, notifier, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	vets.RegisterRoutes(r, vetsSvc)
	messages.RegisterRoutes(r, messagesSvc, vetsSvc, sendLimiter.ByActor)
	breathing.RegisterRoutes(r, breathingSvc, petsSvc)
	schedules.RegisterRoutes(r, schedulesSvc, petsSvc)
	devices.RegisterRoutes(r, devicesSvc)

	return r
}
