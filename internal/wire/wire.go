package wire

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/events"
	"Inkwell/internal/pkg/mailer"
	"Inkwell/internal/pkg/push"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	Producer     *events.Producer
	KafkaManager *events.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)
	statRepo := repository.NewMonthlyStatRepo(db)
	userRepo := repository.NewUserRepo(db)
	subscriberRepo := repository.NewSubscriberRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	esPostRepo := es.NewPostRepo(es.Client)

	producer, err := events.NewProducer(cfg)
	if err != nil {
		return nil, err
	}

	pusher := push.NewClient(cfg.Push)
	mailerClient := mailer.NewClient(cfg.Newsletter)

	engageService := service.NewEngageService(postRepo, statRepo, producer)
	postService := service.NewPostService(postRepo, esPostRepo, producer)
	userService := service.NewUserService(userRepo, mailerClient, cfg.Server.BaseURL)
	notificationService := service.NewNotificationService(notificationRepo)
	newsletterService := service.NewNewsletterService(subscriberRepo, postRepo, mailerClient, cfg.Server.BaseURL)
	sitemapService := service.NewSitemapService(postRepo)
	mediaService := service.NewMediaService()

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		PostHandler:         handler.NewPostHandler(postService),
		EngageHandler:       handler.NewEngageHandler(engageService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		NewsletterHandler:   handler.NewNewsletterHandler(newsletterService),
		SitemapHandler:      handler.NewSitemapHandler(sitemapService),
		MediaHandler:        handler.NewMediaHandler(mediaService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := events.NewConsumerManager(cfg, notificationRepo, pusher)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewNewsletterJob(newsletterService))

	return &ApplicationContainer{
		Router:       router,
		Producer:     producer,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
