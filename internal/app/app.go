package app

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"corpsite-back/internal/msg/inbox"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"corpsite-back/internal/api/http/handler"
	"corpsite-back/internal/api/http/route"
	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/config"
	"corpsite-back/internal/model"
	"corpsite-back/internal/msg/outbox"
	"corpsite-back/internal/repository"
	"corpsite-back/internal/service"
	"corpsite-back/pkg/blobstore"
	"corpsite-back/pkg/cryptobox"
	elasticsearch "corpsite-back/pkg/elastic"
	"corpsite-back/pkg/geoip"
	"corpsite-back/pkg/jwt"
	"corpsite-back/pkg/kafka"
	"corpsite-back/pkg/mailer"
	"corpsite-back/pkg/postgres"
	"corpsite-back/pkg/redis"
	"corpsite-back/pkg/server"
)

const (
	consumerBufferSize = 1000
)

const defaultTimeout = 15 * time.Second

type HealthRepository interface {
	IsOK() (bool, error)
	CheckDB(ctx context.Context, ext repository.RepoExtension) error
}

type HealthService interface {
	IsOK() (bool, error)
	CheckDB(ctx context.Context) error
}

type HealthHandler interface {
	Ping(c *gin.Context)
	ProtectedPing(c *gin.Context)
	Health(c *gin.Context)
}

type AuthRepository interface {
	Pool() *pgxpool.Pool
	UpdateUserAsConfirmed(ctx context.Context, ext repository.RepoExtension, userID uuid.UUID) error
	InsertVerificationToken(ctx context.Context, ext repository.RepoExtension, verificationToken *model.VerificationToken) error
	SelectVerificationToken(ctx context.Context, ext repository.RepoExtension, token []byte) (*model.VerificationToken, error)
	DeleteVerificationTokenByUserID(ctx context.Context, ext repository.RepoExtension, userID uuid.UUID) error
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (user *model.User, userToken []byte, err error)
	ResendConfirmation(ctx context.Context, email string) ([]byte, error)
	Confirmation(ctx context.Context, incCode string, incToken []byte) error
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, err error)
}

type AuthHandler interface {
	Register(c *gin.Context)
	ResendConfirmation(c *gin.Context)
	Confirmation(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Refresh(c *gin.Context)
}

type UserRepository interface {
	Pool() *pgxpool.Pool
	InsertUser(ctx context.Context, ext repository.RepoExtension, user *model.User) (*model.User, error)
	InsertStaffUser(ctx context.Context, ext repository.RepoExtension, user *model.User) (*model.User, error)
	CountAdmins(ctx context.Context, ext repository.RepoExtension) (int64, error)
	SelectUserByID(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) (*model.User, error)
	SelectUserByEmail(ctx context.Context, ext repository.RepoExtension, email string) (*model.User, error)
	Delete(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
	Block(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
	InsertPasswordResetToken(ctx context.Context, ext repository.RepoExtension, userID uuid.UUID, token []byte, expiresAt time.Time) error
	SelectUserByResetToken(ctx context.Context, ext repository.RepoExtension, token []byte) (*model.User, error)
	DeletePasswordResetToken(ctx context.Context, ext repository.RepoExtension, token []byte) error
	UpdateUserPassword(ctx context.Context, ext repository.RepoExtension, userID uuid.UUID, hashedPassword []byte) error
}

type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateUser(ctx context.Context, username, email, password, role string) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	BlockUser(ctx context.Context, id uuid.UUID) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	DeleteSelf(ctx context.Context, userID uuid.UUID) error
}

type UserHandler interface {
	CreateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
	BlockUser(c *gin.Context)
	GetUser(*gin.Context)
	GetUserJWT(c *gin.Context)
	ForgotPassword(c *gin.Context)
	ResetPassword(c *gin.Context)
	DeleteSelf(c *gin.Context)
}

type InquiryRepository interface {
	Create(ctx context.Context, ext repository.RepoExtension, inq *model.Inquiry) error
	GetByID(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) (*model.Inquiry, error)
	Update(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, patch *model.InquiryPatch) (*model.Inquiry, error)
	SetAnswer(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, answer string) (*model.Inquiry, error)
	List(ctx context.Context, ext repository.RepoExtension, params model.InquiryQueryParams) ([]model.Inquiry, int, error)
	Delete(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
}

type InquiryService interface {
	CreatePublic(ctx context.Context, req *model.InquiryCreateRequest) (*model.InquiryView, error)
	CreateSecret(ctx context.Context, req *model.SecretInquiryCreateRequest) (*model.InquiryView, error)
	VerifyPassword(ctx context.Context, id uuid.UUID, candidate string) (bool, error)
	View(ctx context.Context, id uuid.UUID, verified bool) (*model.InquiryView, error)
	List(ctx context.Context, params model.InquiryQueryParams, admin bool) (*model.InquiryListResponse, error)
	AddAnswer(ctx context.Context, id uuid.UUID, answer string) (*model.InquiryView, error)
	AddAnswerWithNotification(ctx context.Context, id uuid.UUID, answer string) (*model.InquiryView, model.NotificationOutcome, error)
	Update(ctx context.Context, id uuid.UUID, req *model.InquiryUpdateRequest) (*model.InquiryView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InquiryHandler interface {
	CreateInquiry(c *gin.Context)
	CreateSecretInquiry(c *gin.Context)
	VerifyInquiry(c *gin.Context)
	GetInquiry(c *gin.Context)
	ListInquiries(c *gin.Context)
	AnswerInquiry(c *gin.Context)
	UpdateInquiry(c *gin.Context)
	DeleteInquiry(c *gin.Context)
}

type PageRepository interface {
	Create(ctx context.Context, ext repository.RepoExtension, page *model.Page) error
	GetByID(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) (*model.Page, error)
	Update(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, upd *model.PageUpdateRequest) (*model.Page, error)
	List(ctx context.Context, ext repository.RepoExtension, params model.PageQueryParams) ([]model.Page, int, error)
	Delete(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
}

type PageService interface {
	Create(ctx context.Context, req *model.PageCreateRequest) (*model.Page, error)
	GetByID(ctx context.Context, id uuid.UUID, publishedOnly bool) (*model.Page, error)
	List(ctx context.Context, params model.PageQueryParams) (*model.PageListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.PageUpdateRequest) (*model.Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PageHandler interface {
	CreatePage(c *gin.Context)
	GetPage(c *gin.Context)
	ListPages(c *gin.Context)
	UpdatePage(c *gin.Context)
	DeletePage(c *gin.Context)
}

type NoticeRepository interface {
	Pool() *pgxpool.Pool

	Create(ctx context.Context, ext repository.RepoExtension, notice *model.Notice) error
	GetByID(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, countView bool) (*model.Notice, error)
	Update(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, upd *model.NoticeUpdateRequest) (*model.Notice, error)
	List(ctx context.Context, ext repository.RepoExtension, limit, offset int) ([]model.Notice, int, error)
	Delete(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error

	InsertAttachment(ctx context.Context, ext repository.RepoExtension, att *model.Attachment) error
	SelectAttachment(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) (*model.Attachment, error)
	SelectAttachmentsByNotice(ctx context.Context, ext repository.RepoExtension, noticeID uuid.UUID) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
}

type NoticeService interface {
	Create(ctx context.Context, req *model.NoticeCreateRequest) (*model.Notice, error)
	GetByID(ctx context.Context, id uuid.UUID, countView bool) (*model.Notice, error)
	List(ctx context.Context, params model.NoticeQueryParams) (*model.NoticeListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.NoticeUpdateRequest) (*model.Notice, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddAttachment(ctx context.Context, noticeID uuid.UUID, fileName, contentType string, data []byte) (*model.Attachment, error)
	AttachmentURL(ctx context.Context, id uuid.UUID) (string, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

type NoticeHandler interface {
	CreateNotice(c *gin.Context)
	GetNotice(c *gin.Context)
	ListNotices(c *gin.Context)
	UpdateNotice(c *gin.Context)
	DeleteNotice(c *gin.Context)
	UploadAttachment(c *gin.Context)
	GetAttachmentURL(c *gin.Context)
	DeleteAttachment(c *gin.Context)
}

type SearchRepository interface {
	EnsureIndex(ctx context.Context) error
	Index(ctx context.Context, doc *model.SearchDocument) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params model.SearchParams) ([]model.SearchResult, int, error)
}

type SearchService interface {
	Search(ctx context.Context, query string) (*model.SearchResponse, error)
}

type SearchHandler interface {
	Search(c *gin.Context)
}

type VisitRepository interface {
	Pool() *pgxpool.Pool

	InsertVisit(ctx context.Context, ext repository.RepoExtension, visit *model.Visit) error
	BumpDayStats(ctx context.Context, ext repository.RepoExtension, day time.Time, isBot bool) error
	SelectDayStats(ctx context.Context, ext repository.RepoExtension, from, to time.Time) ([]model.VisitDayStats, error)
	SelectSnapshot(ctx context.Context, ext repository.RepoExtension) (*model.VisitSnapshot, error)
}

type VisitService interface {
	RecordVisit(ctx context.Context, event model.VisitEvent) error
	Stats(ctx context.Context, params model.VisitStatsQueryParams) (*model.VisitStatsResponse, error)
	Snapshot(ctx context.Context) (*model.VisitSnapshot, error)
}

type VisitHandler interface {
	GetStats(c *gin.Context)
	StreamStats(c *gin.Context)
}

type APIKeyRepository interface {
	Insert(ctx context.Context, key *model.APIKey) error
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]model.APIKey, error)
	GetAllActive(ctx context.Context) ([]model.APIKey, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

type APIKeyService interface {
	Generate(ctx context.Context, userID uuid.UUID, name string, ttl time.Duration) (string, error)
	GetUserKeys(ctx context.Context, userID uuid.UUID) ([]model.APIKey, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

type APIKeyHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Revoke(c *gin.Context)
}

type OutboxRepository interface {
	InsertMessage(ctx context.Context, ext repository.RepoExtension, message model.OutboxMessage) error
	UpdateAsSent(ctx context.Context, ext repository.RepoExtension, messageID uuid.UUID) error
	SelectUnsentBatch(ctx context.Context, ext repository.RepoExtension, batchSize int) ([]model.OutboxMessage, error)
}

type InboxRepository interface {
	InsertMessage(ctx context.Context, ext repository.RepoExtension, message model.InboxMessage) error
	UpdateAsProcessed(ctx context.Context, ext repository.RepoExtension, messageID uuid.UUID) error
	SelectUnprocessedBatch(ctx context.Context, ext repository.RepoExtension, batchSize int) ([]model.InboxMessage, error)
}

type Publisher interface {
	Run(ctx context.Context)
}

type Subscriber interface {
	Run(ctx context.Context)
}

type App struct {
	Cfg        *config.Config
	Log        *zap.Logger
	Handler    *Handler
	Service    *Service
	Security   *Security
	DB         postgres.Postgres
	RDB        redis.Redis
	Mailer     mailer.Mailer
	HTTPServer server.HTTPServer
	EBus       *EBus
	GeoDB      geoip.GeoIP
}

type Repository struct {
	HealthRepository  HealthRepository
	AuthRepository    AuthRepository
	UserRepository    UserRepository
	APIKeyRepository  APIKeyRepository
	InquiryRepository InquiryRepository
	PageRepository    PageRepository
	NoticeRepository  NoticeRepository
	SearchRepository  SearchRepository
	VisitRepository   VisitRepository
	OutboxRepository  OutboxRepository
	InboxRepository   InboxRepository
}

type Service struct {
	HealthService  HealthService
	AuthService    AuthService
	UserService    *service.UserService
	APIKeyService  APIKeyService
	InquiryService InquiryService
	PageService    PageService
	NoticeService  NoticeService
	SearchService  SearchService
	VisitService   VisitService
}

type Handler struct {
	HealthHandler  HealthHandler
	AuthHandler    AuthHandler
	UserHandler    UserHandler
	APIKeyHandler  APIKeyHandler
	InquiryHandler InquiryHandler
	PageHandler    PageHandler
	NoticeHandler  NoticeHandler
	SearchHandler  SearchHandler
	VisitHandler   VisitHandler
}

type Security struct {
	PrivateKey *ecdsa.PrivateKey
	PublicKey  *ecdsa.PublicKey
}

type EBus struct {
	OutboxPublisher Publisher
	InboxSubscriber Subscriber
}

func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := initDB(&cfg.Database)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := initRedis(&cfg.Redis)
	if err != nil {
		log.Error("Failed to initialize redis", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	sec, err := initSecurity(log, cfg.Key)
	if err != nil {
		log.Error("Failed to initialize security", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize security: %w", err)
	}

	// Без ключа шифрования сервис не стартует: секретные обращения
	// без него невозможны.
	box, err := cryptobox.New([]byte(cfg.Crypto.InquiryKey), log)
	if err != nil {
		log.Error("Failed to initialize cryptobox", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize cryptobox: %w", err)
	}

	mlr := initMailer(log, &cfg.Mailer)

	es, err := initElastic(log, &cfg.Elastic)
	if err != nil {
		log.Error("Failed to initialize elastic", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize elastic: %w", err)
	}

	blobs, err := initBlobStore(log, &cfg.S3)
	if err != nil {
		log.Error("Failed to initialize blob storage", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	repo := initRepository(log, db, es)

	if err := repo.SearchRepository.EnsureIndex(ctx); err != nil {
		log.Error("Failed to EnsureIndex a search repository", zap.Error(err))
		return nil, fmt.Errorf("failed to EnsureIndex a search repository: %w", err)
	}

	geo, err := initGeo(log, &cfg.Geo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize geo: %w", err)
	}

	svc := initService(log, &cfg.JWT, sec, repo, mlr, rdb, box, blobs)

	hdl := initHandler(log, &cfg.JWT, svc)

	httpServer := initHTTPServer(log, cfg, sec.PublicKey, hdl, svc, repo)

	eBus, err := initEBus(log, &cfg.Kafka, repo, geo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ebus: %w", err)
	}

	return &App{
		Cfg:        cfg,
		Log:        log,
		Handler:    hdl,
		Service:    svc,
		DB:         db,
		RDB:        rdb,
		Mailer:     mlr,
		HTTPServer: httpServer,
		EBus:       eBus,
		GeoDB:      geo,
	}, nil
}

func MustNew(cfg *config.Config, log *zap.Logger) *App {
	app, err := New(cfg, log)
	if err != nil {
		panic(err)
	}
	return app
}

func (a *App) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	defer close(errs)

	go func() {
		if err := a.HTTPServer.Run(); err != nil {
			errs <- err
		}
	}()

	go func() {
		a.EBus.OutboxPublisher.Run(ctx)
	}()

	go func() {
		a.EBus.InboxSubscriber.Run(ctx)
	}()

	if err := <-errs; err != nil {
		return err
	}

	return nil
}

func (a *App) Shutdown() error {
	a.DB.Close()
	a.Log.Debug("Database closed")

	err := apperrors.ErrShutdown

	if rdbErr := a.RDB.Close(); rdbErr != nil {
		err = fmt.Errorf("%w, failed to close RDB: %w", err, rdbErr)
	}

	a.Log.Debug("Redis closed")

	if srvErr := a.HTTPServer.Shutdown(); srvErr != nil {
		err = fmt.Errorf("%w, failed to shutdown http server: %w", err, srvErr)
	}

	a.Log.Debug("Http server shutdown")

	if geoErr := a.GeoDB.Close(); geoErr != nil {
		err = fmt.Errorf("%w, failed to close GeoDB: %w", err, geoErr)
	}

	a.Log.Debug("GeoDB closed")

	if !errors.Is(err, apperrors.ErrShutdown) {
		return err
	}

	return nil
}

func initDB(cfg *config.Database) (postgres.Postgres, error) {
	postgresCfg := &postgres.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Name:     cfg.Name,
		SSLMode:  cfg.SSLMode,
		MaxConns: cfg.MaxConns,
		MinConns: cfg.MinConns,
		Migration: postgres.Migration{
			Path:      cfg.Migration.Path,
			AutoApply: cfg.Migration.AutoApply,
		},
	}

	db, err := postgres.New(postgresCfg)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func initRedis(cfg *config.Redis) (redis.Redis, error) {
	redisCfg := &redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	rdb, err := redis.New(redisCfg)
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func initMailer(log *zap.Logger, cfg *config.Mailer) mailer.Mailer {
	mailerCfg := &mailer.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		UseTLS:   cfg.UseTLS,
		Timeout:  cfg.Timeout,
	}

	mlr := mailer.New(mailerCfg)
	log.Debug("Mailer initialized")
	return mlr
}

func initElastic(log *zap.Logger, cfg *config.Elastic) (elasticsearch.Elasticsearch, error) {
	elasticCfg := &elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		CloudID:   cfg.CloudID,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout,
	}

	client, err := elasticsearch.New(elasticCfg)
	if err != nil {
		return nil, err
	}

	log.Debug("Elasticsearch initialized")
	return client, nil
}

func initBlobStore(log *zap.Logger, cfg *config.S3) (blobstore.BlobStore, error) {
	blobCfg := &blobstore.Config{
		Endpoint:     cfg.Endpoint,
		Region:       cfg.Region,
		Bucket:       cfg.Bucket,
		AccessKey:    cfg.AccessKey,
		SecretKey:    cfg.SecretKey,
		UsePathStyle: cfg.UsePathStyle,
	}

	blobs, err := blobstore.New(blobCfg)
	if err != nil {
		return nil, err
	}

	log.Debug("Blob storage initialized")
	return blobs, nil
}

func initSecurity(log *zap.Logger, cfg config.Key) (*Security, error) {
	privateKey, err := jwt.LoadECDSAPrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	log.Debug("Private key loaded")

	publicKey, err := jwt.LoadECDSAPublicKey(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load public key: %w", err)
	}

	log.Debug("Public key loaded")

	return &Security{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
	}, nil
}

func initHandler(log *zap.Logger, jwtCfg *config.JWT, svc *Service) *Handler {
	healthHandler := handler.NewHealthHandler(log, svc.HealthService)
	log.Debug("Health handler initialized")

	authHandler := handler.NewAuthHandler(log, svc.AuthService, jwtCfg.AccessTokenTTL, jwtCfg.RefreshTokenTTL)
	log.Debug("Auth handler initialized")

	userHandler := handler.NewUserHandler(svc.UserService)
	log.Debug("User handler initialized")

	apiKeyHandler := handler.NewAPIKeyHandler(svc.APIKeyService)
	log.Debug("API Key handler initialized")

	inquiryHandler := handler.NewInquiryHandler(svc.InquiryService)
	log.Debug("Inquiry handler initialized")

	pageHandler := handler.NewPageHandler(svc.PageService)
	log.Debug("Page handler initialized")

	noticeHandler := handler.NewNoticeHandler(svc.NoticeService)
	log.Debug("Notice handler initialized")

	searchHandler := handler.NewSearchHandler(svc.SearchService)
	log.Debug("Search handler initialized")

	visitHandler := handler.NewVisitHandler(log, svc.VisitService)
	log.Debug("Visit handler initialized")

	return &Handler{
		HealthHandler:  healthHandler,
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		APIKeyHandler:  apiKeyHandler,
		InquiryHandler: inquiryHandler,
		PageHandler:    pageHandler,
		NoticeHandler:  noticeHandler,
		SearchHandler:  searchHandler,
		VisitHandler:   visitHandler,
	}
}

func initService(
	log *zap.Logger,
	jwtCfg *config.JWT,
	sec *Security,
	repo *Repository,
	mlr mailer.Mailer,
	rdb redis.Redis,
	box *cryptobox.CryptoBox,
	blobs blobstore.BlobStore,
) *Service {
	healthSvc := service.NewHealthService(log, repo.HealthRepository)
	log.Debug("Health service initialized")

	authSvc := service.NewAuthService(log, sec.PublicKey, sec.PrivateKey, repo.AuthRepository, repo.UserRepository, mlr, rdb, jwtCfg.AccessTokenTTL, jwtCfg.RefreshTokenTTL)
	log.Debug("Auth service initialized")

	userSvc := service.NewUserService(repo.UserRepository, mlr)
	log.Debug("User service initialized")

	apiKeySvc := service.NewAPIKeyService(repo.APIKeyRepository)
	log.Debug("API Key service initialized")

	inquirySvc := service.NewInquiryService(log, repo.InquiryRepository, box, mlr)
	log.Debug("Inquiry service initialized")

	pageSvc := service.NewPageService(log, repo.PageRepository, repo.SearchRepository)
	log.Debug("Page service initialized")

	noticeSvc := service.NewNoticeService(log, repo.NoticeRepository, blobs, repo.SearchRepository)
	log.Debug("Notice service initialized")

	searchSvc := service.NewSearchService(repo.SearchRepository)
	log.Debug("Search service initialized")

	visitSvc := service.NewVisitService(log, repo.VisitRepository, repo.OutboxRepository)
	log.Debug("Visit service initialized")

	return &Service{
		HealthService:  healthSvc,
		AuthService:    authSvc,
		UserService:    userSvc,
		APIKeyService:  apiKeySvc,
		InquiryService: inquirySvc,
		PageService:    pageSvc,
		NoticeService:  noticeSvc,
		SearchService:  searchSvc,
		VisitService:   visitSvc,
	}
}

func initRepository(log *zap.Logger, db postgres.Postgres, es elasticsearch.Elasticsearch) *Repository {
	healthRepo := repository.NewHealthRepository(db.Pool())
	log.Debug("Health repository initialized")

	authRepo := repository.NewAuthRepository(db.Pool())
	log.Debug("Auth repository initialized")

	userRepo := repository.NewUserRepository(db.Pool())
	log.Debug("User repository initialized")

	apiKeyRepo := repository.NewAPIKeyRepository(db.Pool())
	log.Debug("Api key repository initialized")

	inquiryRepo := repository.NewInquiryRepository(db.Pool())
	log.Debug("Inquiry repository initialized")

	pageRepo := repository.NewPageRepository(db.Pool())
	log.Debug("Page repository initialized")

	noticeRepo := repository.NewNoticeRepository(db.Pool())
	log.Debug("Notice repository initialized")

	visitRepo := repository.NewVisitRepository(db.Pool())
	log.Debug("Visit repository initialized")

	outboxRepo := repository.NewOutboxRepository(db.Pool())
	log.Debug("Outbox repository initialized")

	inboxRepo := repository.NewInboxRepository(db.Pool())
	log.Debug("Inbox repository initialized")

	searchRepo := repository.NewSearchRepository(es.Client())
	log.Debug("Search repository initialized")

	return &Repository{
		HealthRepository:  healthRepo,
		AuthRepository:    authRepo,
		UserRepository:    userRepo,
		APIKeyRepository:  apiKeyRepo,
		InquiryRepository: inquiryRepo,
		PageRepository:    pageRepo,
		NoticeRepository:  noticeRepo,
		SearchRepository:  searchRepo,
		VisitRepository:   visitRepo,
		OutboxRepository:  outboxRepo,
		InboxRepository:   inboxRepo,
	}
}

func initHTTPServer(log *zap.Logger, cfg *config.Config, publicKey *ecdsa.PublicKey, hdl *Handler, svc *Service, repo *Repository) server.HTTPServer {
	router := route.SetupRouter(
		log,
		cfg,
		publicKey,
		hdl.HealthHandler,
		hdl.AuthHandler,
		hdl.UserHandler,
		hdl.InquiryHandler,
		hdl.PageHandler,
		hdl.NoticeHandler,
		hdl.SearchHandler,
		hdl.VisitHandler,
		hdl.APIKeyHandler,
		repo.APIKeyRepository,
		svc.VisitService,
	)

	httpServer := server.NewHTTPServer(
		server.WithAddr(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		server.WithTimeout(cfg.HTTPServer.Timeout.Read, cfg.HTTPServer.Timeout.Write, cfg.HTTPServer.Timeout.Idle),
		server.WithHandler(router),
	)

	return httpServer
}

func initEBus(log *zap.Logger, cfg *config.Kafka, repo *Repository, geo geoip.GeoIP) (*EBus, error) {
	producer, err := kafka.NewProducer(
		cfg.Brokers,
		kafka.WithBalancer(kafka.RoundRobin),
		kafka.WithRequiredAcks(kafka.RequireAll),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init kafka producer: %w", err)
	}

	log.Debug("Kafka producer initialized")

	outboxCfg := outbox.Config{
		Name:         cfg.Producer.Name,
		WorkerCount:  cfg.Producer.WorkerCount,
		PollInterval: cfg.Producer.PollInterval,
		BatchSize:    cfg.Producer.BatchSize,
	}

	publisher := outbox.NewPublisher(
		log,
		outboxCfg,
		producer,
		repo.OutboxRepository,
	)

	log.Debug("Outbox publisher initialized")

	consumerGroup, err := kafka.NewConsumerGroupRunner(
		cfg.Brokers,
		cfg.Subscriber.GroupID,
		[]string{cfg.Subscriber.Topic},
		consumerBufferSize,
		kafka.WithBalancerConsumer(kafka.RoundrobinBalanceStrategy),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	go func() {
		startAndRunningStr := <-consumerGroup.Info()

		log.Info(startAndRunningStr)
	}()

	inboxCfg := inbox.Config{
		Name:        cfg.Subscriber.Name,
		WorkerCount: cfg.Subscriber.WorkerCount,
		BatchSize:   cfg.Producer.BatchSize,
		Topic:       cfg.Subscriber.Topic,
	}

	subscriber := inbox.NewSubscriber(
		log,
		inboxCfg,
		consumerGroup,
		repo.InboxRepository,
		repo.VisitRepository,
		geo,
	)

	return &EBus{
		OutboxPublisher: publisher,
		InboxSubscriber: subscriber,
	}, err
}

func initGeo(log *zap.Logger, cfg *config.Geo) (geoip.GeoIP, error) {
	geo, err := geoip.NewGeo(cfg.GeoLiteCountryPath, cfg.GeoLiteASNPath)
	if err != nil {
		return geo, fmt.Errorf("failed to init geoip: %w", err)
	}

	log.Debug("GeoIP initialized")

	return geo, nil
}
