package httpserver

import (
	friendHTTP "blognest-api/internal/friend/delivery/http"
	friendPostgres "blognest-api/internal/friend/repository/postgre"
	friendUsecase "blognest-api/internal/friend/usecase"
	messageHTTP "blognest-api/internal/message/delivery/http"
	messagePostgres "blognest-api/internal/message/repository/postgre"
	messageUsecase "blognest-api/internal/message/usecase"
	"blognest-api/internal/middleware"
	notificationHTTP "blognest-api/internal/notification/delivery/http"
	notificationPostgres "blognest-api/internal/notification/repository/postgre"
	notificationUsecase "blognest-api/internal/notification/usecase"
	"blognest-api/internal/realtime"
	redisDelivery "blognest-api/internal/realtime/delivery/redis"
	userHTTP "blognest-api/internal/user/delivery/http"
	userPostgres "blognest-api/internal/user/repository/postgre"
	userUsecase "blognest-api/internal/user/usecase"
	viewHTTP "blognest-api/internal/view/delivery/http"
	viewPostgres "blognest-api/internal/view/repository/postgre"
	viewUsecase "blognest-api/internal/view/usecase"

	// Executes the init function in docs.go which registers the
	// Swagger specification.
	_ "blognest-api/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const Api = "/api/v1"

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	srv.gin.Use(middleware.Recovery(srv.logger, srv.discord))

	mw := middleware.New(srv.logger, srv.jwtMgr, srv.cfg.Cookie)

	// Real-time core. The broker-backed delivery publishes through
	// Redis when enabled; the publishing instance then receives its own
	// message via the subscriber, so local fan-out happens exactly once
	// either way.
	srv.registry = realtime.NewRegistry(srv.logger, srv.cfg.SSE.SendBufferSize, srv.cfg.SSE.MaxChannelsPerUser)
	srv.conversations = realtime.NewConversationRegistry(srv.logger, srv.cfg.SSE.SendBufferSize)

	local := realtime.NewLocalDelivery(srv.registry, srv.conversations)
	var delivery realtime.Delivery = local
	if srv.cfg.Broker.Enabled {
		delivery = redisDelivery.NewBrokerDelivery(srv.redis, local, srv.cfg.Broker.ChannelPrefix, srv.logger)
		srv.subscriber = redisDelivery.New(srv.redis, srv.registry, srv.conversations, srv.cfg.Broker.ChannelPrefix, srv.logger)
	}

	// Repositories
	userRepo := userPostgres.New(srv.logger, srv.db)
	notificationRepo := notificationPostgres.New(srv.logger, srv.db)
	messageRepo := messagePostgres.New(srv.logger, srv.db)
	friendRepo := friendPostgres.New(srv.logger, srv.db)
	viewRepo := viewPostgres.New(srv.logger, srv.db)

	publisher := realtime.NewPublisher(srv.logger, notificationRepo, delivery, srv.registry)

	// Usecases. Notification and friend depend on each other at
	// runtime (pending counts one way, notification pushes the other),
	// so the counter is attached after construction.
	userUC := userUsecase.New(srv.logger, userRepo, srv.jwtMgr)
	notificationUC := notificationUsecase.New(srv.logger, notificationRepo, publisher, srv.registry, userUC)
	friendUC := friendUsecase.New(srv.logger, friendRepo, notificationUC, userUC)
	notificationUC.SetPendingCounter(friendUC)

	messageUC := messageUsecase.New(
		srv.logger, messageRepo, publisher, srv.conversations,
		friendUC, userUC, srv.storage, srv.cfg.Message, srv.cfg.MinIO.Bucket,
	)

	viewUC := viewUsecase.New(srv.logger, viewRepo, srv.redis)
	srv.viewFlusher = viewUsecase.NewFlusher(srv.logger, viewUC, srv.cfg.View.FlushInterval)

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := srv.gin.Group(Api)
	userHTTP.New(srv.logger, userUC, srv.discord, srv.cfg.Cookie).RegisterRoutes(api, mw)
	notificationHTTP.New(srv.logger, notificationUC, srv.jwtMgr, srv.discord, srv.cfg.SSE, srv.cfg.Cookie.Name).RegisterRoutes(api, mw)
	messageHTTP.New(srv.logger, messageUC, srv.jwtMgr, srv.discord, srv.cfg.SSE, srv.cfg.Cookie.Name).RegisterRoutes(api, mw)
	friendHTTP.New(srv.logger, friendUC, srv.discord).RegisterRoutes(api, mw)
	viewHTTP.New(srv.logger, viewUC, srv.discord).RegisterRoutes(api)

	return nil
}
