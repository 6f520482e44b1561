package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/internal/memstore"
	"github.com/jmorenovfever/AI4Devs-backend-fever/internal/migrations"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/config"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/dbx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/fsx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/fsx/fsxlocal"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/fsx/fsxs3"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/iam/auth"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/ratelimit"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application/applicationinfra"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate/candidateapi"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate/candidateinfra"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate/candidatesrv"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position/positionapi"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position/positioninfra"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position/positionsrv"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/resume/resumeapi"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/resume/resumesrv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB      // nil with the memory driver
	Redis      *redis.Client // nil unless redis.enabled
	FileSystem fsx.FileSystem
	Transactor dbx.Transactor

	// Repositories
	CandidateRepo   candidate.Repository
	ApplicationRepo application.Repository
	Positions       position.Directory

	// Services
	TokenService     *auth.JWTService
	CandidateService *candidatesrv.CandidateService
	PositionService  *positionsrv.PositionService
	ResumeService    *resumesrv.Service

	// API Handlers
	CandidateHandlers *candidateapi.Handlers
	PositionHandlers  *positionapi.Handlers
	ResumeHandlers    *resumeapi.ResumeHandlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
	RateLimiter    *ratelimit.KeyedLimiter
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// 1. Database
	if cfg.Database.IsMemory() {
		store := memstore.New()
		if cfg.Database.Seed {
			id := memstore.SeedDemo(store)
			logx.Infof("Seeded demo position %s", id)
		}
		c.Transactor = store
		c.CandidateRepo = memstore.NewCandidateRepository(store)
		c.ApplicationRepo = memstore.NewApplicationRepository(store)
		c.Positions = memstore.NewPositionDirectory(store)
		logx.Warn("Using the in-memory store; data is lost on restart")
	} else {
		db, err := connectDB(cfg.Database)
		if err != nil {
			return err
		}
		c.DB = db
		c.Transactor = dbx.NewTransactor(db)

		if cfg.Database.Migrate {
			if _, err := migrations.Apply(ctx, db); err != nil {
				return err
			}
		}
		if cfg.Database.Seed {
			id, err := migrations.Seed(ctx, db)
			if err != nil {
				return fmt.Errorf("seed database: %w", err)
			}
			logx.Infof("Demo position available with id %s", id)
		}
	}

	// 2. Redis Connection
	if cfg.Redis.Enabled {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. Resume storage
	switch cfg.Storage.Driver {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			return fmt.Errorf("load AWS config: %w", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket, cfg.Storage.Prefix)
	default:
		fs, err := fsxlocal.NewLocalFileSystem(cfg.Storage.LocalDir)
		if err != nil {
			return err
		}
		c.FileSystem = fs
	}

	// 4. Auth
	if cfg.Auth.Enabled && cfg.UsesDefaultSecret() {
		logx.Warn("auth.jwt_secret is the default value (unsafe for production)")
	}
	c.TokenService = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService, cfg.Auth.Enabled)
	c.RateLimiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)

	return nil
}

func connectDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		c.CandidateRepo = candidateinfra.NewPostgresCandidateRepository(c.DB)
		c.ApplicationRepo = applicationinfra.NewPostgresApplicationRepository(c.DB)
		c.Positions = positioninfra.NewPostgresDirectory(c.DB)
	}

	if c.Redis != nil {
		c.Positions = positioninfra.NewRedisCachedDirectory(c.Positions, c.Redis, c.Config.Redis.PositionCacheTTL)
	}
}

func (c *Container) initServices() {
	c.CandidateService = candidatesrv.NewCandidateService(
		c.CandidateRepo,
		c.ApplicationRepo,
		c.Positions,
		c.Transactor,
	)
	c.PositionService = positionsrv.NewPositionService(c.Positions)
	c.ResumeService = resumesrv.NewService(c.FileSystem)

	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.PositionHandlers = positionapi.NewHandlers(c.PositionService, c.CandidateService)
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService)
}

// Ready reports whether the backing stores answer.
func (c *Container) Ready(ctx context.Context) map[string]bool {
	status := map[string]bool{}
	if c.DB != nil {
		status["db"] = c.DB.PingContext(ctx) == nil
	}
	if c.Redis != nil {
		status["redis"] = c.Redis.Ping(ctx).Err() == nil
	}
	return status
}

// Close releases connections held by the container
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
}
