package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"race-admin/core/config"
	"race-admin/core/database"
	"race-admin/core/loader"
	"race-admin/core/logger"
	"race-admin/core/middleware/auth"
	"race-admin/core/middleware/metrics"
	"race-admin/core/middleware/rayid"
	"race-admin/core/models"
	"race-admin/core/password"
	"race-admin/core/policy"
	"race-admin/core/session"
	"race-admin/core/storage"

	authfeature "race-admin/feature/auth"
	"race-admin/feature/health"
	"race-admin/feature/race"
	"race-admin/feature/record"
	"race-admin/feature/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "race-admin/docs/swagger"
)

// @title Race Admin API
// @version 1.0
// @description API for managing school competitions, participation records and accounts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

// publicPaths are served without a session.
var publicPaths = []string{"/login", "/health", "/metrics", "/swagger"}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the race admin server",
	Long:  `Connects to the database, opens the session store and serves the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		if cfg.Server.AutoMigrate {
			if err := database.Migrate(db, models.All()...); err != nil {
				logg.Fatal("Failed to migrate schema", zap.Error(err))
			}
		}

		// 4. Session Store
		sessions, err := session.NewStore(cfg.Session)
		if err != nil {
			logg.Fatal("Failed to open session store", zap.Error(err))
		}

		// 5. Storage (Optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			if store, err = storage.NewClient(cfg.Storage); err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		} else {
			logg.Info("Object storage disabled, record export unavailable")
		}

		app, err := newApp(cfg, logg, db, sessions, store)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// newApp wires middleware and features onto a Fiber app.
func newApp(cfg *config.Config, logg *zap.Logger, db *gorm.DB, sessions session.Store, store storage.Client) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit(),
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(metrics.New())

	// Public
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{
		Sessions: sessions,
		Public:   publicPaths,
		Logger:   logg,
	}))

	checker := policy.NewRolePolicy()
	users := user.NewFeature(logg, db, password.NewBcrypt(0), cfg.Server.DefaultPassword, checker, sessions)

	mgr := loader.NewManager()
	mgr.Register(health.NewFeature(logg, db, sessions, store, cfg.Storage.Bucket))
	mgr.Register(authfeature.NewFeature(logg, users.Service(), sessions))
	mgr.Register(users)
	mgr.Register(race.NewFeature(logg, db, checker))
	mgr.Register(record.NewFeature(logg, db, store, cfg.Storage.Bucket, checker))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
