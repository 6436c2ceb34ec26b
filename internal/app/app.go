package app

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"brawl-missions/internal/auth"
	"brawl-missions/internal/config"
	"brawl-missions/internal/db"
	brawlerdomain "brawl-missions/internal/domain/brawler"
	crewdomain "brawl-missions/internal/domain/crew"
	missiondomain "brawl-missions/internal/domain/mission"
	"brawl-missions/internal/events"
	"brawl-missions/internal/imageupload"
	brawlerrepo "brawl-missions/internal/repository/postgres/brawler"
	crewrepo "brawl-missions/internal/repository/postgres/crew"
	missionrepo "brawl-missions/internal/repository/postgres/mission"
	"brawl-missions/internal/transport/httpserver"
	"brawl-missions/internal/transport/httpserver/handler"
	brawlershandler "brawl-missions/internal/transport/httpserver/handler/brawlers"
	commonhandler "brawl-missions/internal/transport/httpserver/handler/common"
	crewhandler "brawl-missions/internal/transport/httpserver/handler/crew"
	missionshandler "brawl-missions/internal/transport/httpserver/handler/missions"
	"brawl-missions/pkg/logger"
)

// Services are the domain services shared by the HTTP server and the CLI.
type Services struct {
	Viewing    *missiondomain.ViewingService
	Management *missiondomain.ManagementService
	Operation  *missiondomain.OperationService
	Crew       *crewdomain.Service
	Brawlers   *brawlerdomain.Service
}

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	bus        *events.NATSBus
	services   Services
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, cfg.Env == "development", log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log, db: dbConn}

	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg, dbConn, log); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	publisher := events.NewNoop(log)
	if cfg.NATS.URL != "" {
		log.Info("app: connecting to nats")
		bus, err := events.ConnectNATS(cfg.NATS.URL, log)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.bus = bus
		publisher = bus.Publisher(log)
	} else {
		log.Warn("app: NATS_URL not set, lifecycle events are discarded")
	}

	var uploader brawlerdomain.ImageUploader
	if cfg.Cloudinary.URL != "" {
		cld, err := imageupload.NewCloudinary(cfg.Cloudinary.URL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		uploader = cld
	} else {
		log.Warn("app: CLOUDINARY_URL not set, avatar upload is disabled")
	}

	tokens := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	missions := missionrepo.NewPostgres(dbConn)
	viewing := missiondomain.NewViewingService(missions)
	a.services = Services{
		Viewing:    viewing,
		Management: missiondomain.NewManagementService(missions, viewing),
		Operation:  missiondomain.NewOperationService(missions, viewing, cfg.Missions.MaxCrewPerMission, publisher),
		Crew:       crewdomain.NewService(crewrepo.NewPostgres(dbConn), publisher),
		Brawlers:   brawlerdomain.NewService(brawlerrepo.NewPostgres(dbConn), auth.NewArgon2Hasher(auth.DefaultArgon2Params), tokens, uploader),
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	handlers := handler.New(
		commonhandler.New(sqlDB, log),
		missionshandler.New(a.services.Viewing, a.services.Management, a.services.Operation, log),
		crewhandler.New(a.services.Crew, log),
		brawlershandler.New(a.services.Brawlers, log),
	)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, tokens, log)

	a.httpServer = httpserver.New(cfg, router)
	return a, nil
}

// Migrate brings the schema up to date. Postgres uses the SQL migration
// files; sqlite is created from the models.
func Migrate(cfg config.Config, dbConn *gorm.DB, log logger.Logger) error {
	if cfg.DB.Driver == config.DriverSQLite {
		return db.AutoMigrate(dbConn)
	}
	if err := db.Migrate(dbConn, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Services() Services {
	return a.services
}

func (a *App) Close() error {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
