package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/certificates"
	"edujobs-backend/internal/courses"
	"edujobs-backend/internal/cvs"
	"edujobs-backend/internal/dashboard"
	"edujobs-backend/internal/export"
	"edujobs-backend/internal/jobs"
	"edujobs-backend/internal/render"
	"edujobs-backend/internal/services/health"
	"edujobs-backend/internal/shared/cache"
	"edujobs-backend/internal/shared/config"
	"edujobs-backend/internal/shared/server"
	"edujobs-backend/internal/shared/server/middleware"
	"edujobs-backend/internal/shared/storage/db"
	"edujobs-backend/internal/shared/storage/object"
	localstore "edujobs-backend/internal/shared/storage/object/local"
	s3store "edujobs-backend/internal/shared/storage/object/s3"
	"edujobs-backend/internal/uploads"
	"edujobs-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *db.DB
	Store  object.ObjectStore
	Cache  *cache.Redis
	Ledger export.Ledger

	UsersRepo        users.Repo
	CoursesRepo      courses.Repo
	CVsRepo          cvs.Repo
	CertificatesRepo certificates.Repo
	JobsRepo         jobs.Repo

	Runner              *export.Runner
	Sweeper             *export.Sweeper
	UsersService        *users.Service
	CoursesService      *courses.Service
	CVsService          *cvs.Service
	CertificatesService *certificates.Service
	JobsService         *jobs.Service
	DashboardService    *dashboard.Service
}

// Build prepares shared dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	database, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		if database != nil {
			_ = database.Close()
		}
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     database,
		Store:  store,
		Cache:  cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword),
	}
	buildServices(app)
	app.Router = server.NewRouter(app.routerDeps())
	return app, nil
}

// Close releases the database pool and the cache client.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	errs = append(errs, a.Cache.Close())
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, database.DB); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return database, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.UploadDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var sqlDB *sql.DB
	if app.DB != nil {
		sqlDB = app.DB.DB
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.CoursesRepo = &courses.PGRepo{DB: sqlDB}
		app.CVsRepo = &cvs.PGRepo{DB: sqlDB}
		app.CertificatesRepo = &certificates.PGRepo{DB: sqlDB}
		app.JobsRepo = &jobs.PGRepo{DB: sqlDB}
		app.Ledger = &export.PGLedger{DB: sqlDB}
	} else {
		memUsers := users.NewMemoryRepo()
		app.UsersRepo = memUsers
		app.CoursesRepo = courses.NewMemoryRepo(userLookup(memUsers))
		app.CVsRepo = cvs.NewMemoryRepo()
		app.CertificatesRepo = certificates.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.Ledger = export.NewMemoryLedger()
	}

	app.Runner = &export.Runner{
		Store:        app.Store,
		Ledger:       app.Ledger,
		WriteTimeout: app.Config.ExportTimeout,
	}
	app.Sweeper = &export.Sweeper{
		Store:  app.Store,
		Ledger: app.Ledger,
		References: map[export.Kind]export.ReferenceChecker{
			export.KindCV:          app.CVsRepo,
			export.KindCertificate: app.CertificatesRepo,
		},
		Grace: app.Config.SweepGrace,
	}

	pdf := render.PDF{}
	app.UsersService = users.NewService(app.UsersRepo)
	app.CoursesService = &courses.Service{Repo: app.CoursesRepo}
	app.CVsService = &cvs.Service{
		Source: cvs.UserSource{Users: app.UsersRepo},
		Repo:   app.CVsRepo,
		Runner: app.Runner,
		PDF:    pdf,
	}
	app.CertificatesService = &certificates.Service{
		Enrollments: certificates.CourseSource{Courses: app.CoursesRepo},
		Repo:        app.CertificatesRepo,
		Runner:      app.Runner,
		PDF:         pdf,
	}
	app.DashboardService = &dashboard.Service{
		Users: app.UsersRepo,
		Jobs:  app.JobsRepo,
		TTL:   app.Config.DashboardCacheTTL,
	}
	if app.Cache.Enabled() {
		app.DashboardService.Cache = app.Cache
	}
	app.JobsService = &jobs.Service{
		Repo:  app.JobsRepo,
		Users: app.UsersRepo,
		Cache: app.DashboardService,
	}
}

func (a *App) routerDeps() server.RouterDeps {
	var presigner uploads.Presigner
	if s3, ok := a.Store.(*s3store.Store); ok {
		presigner = s3
	}
	var pinger health.Pinger
	if a.DB != nil {
		pinger = a.DB
	}
	return server.RouterDeps{
		Config:        a.Config,
		Health:        health.NewService(pinger, a.Cache),
		Users:         users.NewHandler(a.UsersService),
		Courses:       courses.NewHandler(a.CoursesService),
		CVs:           cvs.NewHandler(a.CVsService),
		Certificates:  certificates.NewHandler(a.CertificatesService),
		Jobs:          jobs.NewHandler(a.JobsService),
		Dashboard:     dashboard.NewHandler(a.DashboardService),
		Uploads:       uploads.NewHandler(a.Store, presigner),
		ExportLimiter: middleware.NewRateLimiter(time.Now),
	}
}

// userLookup feeds enrollee names to the in-memory courses repo.
func userLookup(repo users.Repo) courses.UserLookup {
	return func(ctx context.Context, userID string) (string, string, error) {
		user, profile, err := repo.GetWithProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return "", "", courses.ErrNotFound
			}
			return "", "", err
		}
		name := ""
		if profile != nil {
			name = profile.Name
		}
		return user.Email, name, nil
	}
}
