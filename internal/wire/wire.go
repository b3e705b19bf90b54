package wire

import (
	"Pinwall/internal/api"
	"Pinwall/internal/api/config"
	"Pinwall/internal/api/handler"
	"Pinwall/internal/job"
	"Pinwall/internal/pkg/cron"
	"Pinwall/internal/pkg/kafka"
	"Pinwall/internal/pkg/mongo"
	"Pinwall/internal/pkg/oauth"
	"Pinwall/internal/pkg/security"
	"Pinwall/internal/pkg/storage"
	"Pinwall/internal/repository"
	"Pinwall/internal/service"
	"fmt"
	log "log/slog"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const stateSecretBytes = 32

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	// KafkaManager 未启用 Kafka 时为 nil
	KafkaManager *kafka.ConsumerManager
	producer     *kafka.EventProducer
}

// Close 释放容器持有的外部连接
func (a *ApplicationContainer) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			log.Error("failed to close kafka producer", "err", err)
		}
	}
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, imageStore storage.ImageStore, cfg *config.Config) (*ApplicationContainer, error) {
	masker, err := buildMasker(cfg.Share)
	if err != nil {
		return nil, err
	}
	oauthCfg, err := ensureStateSecret(cfg.OAuth)
	if err != nil {
		return nil, err
	}

	// 仓储层
	postRepo := repository.NewPostRepository(db)
	postActionRepo := repository.NewPostActionRepo(db)
	tagRepo := repository.NewTagRepository(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	notificationRepo := mongo.NewNotificationRepo(mongoDB)

	// 服务层
	userService := service.NewUserService(userRepo)
	hashtagService := service.NewHashtagService(tagRepo)
	notificationService := service.NewNotificationService(notificationRepo, postRepo, userRepo)
	postService := service.NewPostService(postRepo, userRepo, postActionRepo, imageStore, hashtagService, masker, cfg.Server.MaxUploadBytes())
	authService := service.NewAuthService(service.AuthConfig{
		OAuth:   oauthCfg,
		Session: cfg.Session,
	}, oauth.NewGoogleProvider(oauthCfg), userService, sessionRepo)

	app := &ApplicationContainer{DB: db}

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewEventProducer(cfg.Kafka)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", err)
		}
		consumerMgr, err := kafka.NewConsumerManager(cfg.Kafka, notificationService)
		if err != nil {
			_ = producer.Close()
			return nil, fmt.Errorf("failed to create kafka consumer group: %w", err)
		}
		publisher = producer
		app.producer = producer
		app.KafkaManager = consumerMgr
	} else {
		publisher = service.NewInlinePublisher(notificationService)
	}
	postActionService := service.NewPostActionService(postRepo, postActionRepo, publisher, cfg.Share, masker)

	handlers := &api.HandlersGroup{
		PostHandler:       handler.NewPostHandler(postService, cfg.Server.MaxUploadBytes()),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		HashtagHandler:    handler.NewHashtagHandler(hashtagService),
		AuthHandler: handler.NewAuthHandler(authService, userService, handler.CookieConfig{
			SessionName:       cfg.Session.CookieName,
			StateName:         oauthCfg.StateCookie,
			Secure:            cfg.Server.CookieSecure,
			PostLoginRedirect: oauthCfg.PostLoginRedirect,
		}),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
	}

	opts := api.RouterOptions{
		Authenticator:  authService,
		SessionCookie:  cfg.Session.CookieName,
		PublicURL:      cfg.Server.PublicURL,
		TrustedProxies: cfg.Server.TrustedProxies,
	}
	if local, ok := imageStore.(*storage.LocalStore); ok {
		opts.UploadDir = local.Dir()
		opts.UploadURLPrefix = local.URLPrefix()
	}
	app.Router = api.SetupRouter(handlers, opts)

	app.CronMgr = cron.NewCronManager(cfg.Cron,
		job.NewTrendingHashtagJob(hashtagService),
		job.NewSessionCleanupJob(authService),
	)

	return app, nil
}

func buildMasker(cfg config.ShareConfig) (*security.IDMasker, error) {
	if !cfg.MaskIDs {
		return nil, nil
	}
	masker, err := security.NewIDMasker(cfg.MaskKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to create id masker: %w", err)
	}
	return masker, nil
}

// ensureStateSecret 未配置签名密钥时使用进程内随机密钥, 重启后未完成的登录会失效
func ensureStateSecret(cfg config.OAuthConfig) (config.OAuthConfig, error) {
	if cfg.StateSecret != "" {
		return cfg, nil
	}
	secret, err := security.RandomToken(stateSecretBytes)
	if err != nil {
		return cfg, err
	}
	log.Warn("oauth.state_secret is empty, using a random secret for this process")
	cfg.StateSecret = secret
	return cfg, nil
}
