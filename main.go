package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"match-service/internal/db"
	"match-service/internal/handlers"
	"match-service/internal/matching"
	"match-service/internal/middleware"
	"match-service/internal/notify"
	"match-service/internal/observability"
	"match-service/internal/rabbitmq"
	"match-service/internal/repositories"
	"match-service/internal/scheduler"
	"match-service/internal/service"
	"match-service/internal/telemetry"
	"match-service/internal/ws"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, getEnv("SERVICE_NAME", "match-service"), os.Getenv("OTLP_ENDPOINT"))
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	publisher := rabbitmq.NewPublisher(os.Getenv("AMQP_URL"), getEnv("AMQP_EXCHANGE", "match_events"))
	defer publisher.Close()
	log.Printf("notification publisher mode=%s", rabbitmq.PublisherMode(publisher))

	userRepo := repositories.NewUserRepo(database)
	profileRepo := repositories.NewProfileRepo(database)
	matchRepo := repositories.NewMatchRepo(database)
	roomRepo := repositories.NewRoomRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	subscriptionRepo := repositories.NewSubscriptionRepo(database)
	notificationRepo := repositories.NewNotificationRepo(database)
	giftRepo := repositories.NewGiftRepo(database)
	typingRepo := repositories.NewTypingRepo(rdb)

	notifier := notify.NewService(notificationRepo, publisher, "notifications.user")

	finder := matching.NewFinder(userRepo, profileRepo)
	matchService := service.NewMatchService(userRepo, profileRepo, matchRepo, roomRepo, notifier)
	chatService := service.NewChatService(roomRepo, messageRepo, subscriptionRepo, userRepo, giftRepo, typingRepo, notifier)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, roomRepo, notifier)

	sweeper := scheduler.New(userRepo, matchRepo, roomRepo, subscriptionRepo, typingRepo, notifier, notifier)
	go sweeper.Run(ctx)

	hub := ws.NewHub()
	verifier := middleware.NewTokenVerifier(getEnv("JWT_SECRET", "dev-secret"))

	matchHandler := handlers.NewMatchHandler(finder, matchService, userRepo)
	chatHandler := handlers.NewChatHandler(roomRepo, chatService, hub)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	giftHandler := handlers.NewGiftHandler(giftRepo, chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	adminHandler := handlers.NewAdminHandler(userRepo, matchService)
	roomWS := ws.NewRoomWebSocketHandler(hub, chatService, verifier)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(getEnv("SERVICE_NAME", "match-service")))
	router.Use(observability.HTTPMetricsMiddleware())

	authMiddleware := middleware.AuthMiddleware(verifier)

	router.GET("/candidates", authMiddleware, matchHandler.GetCandidates)
	router.POST("/matches", authMiddleware, matchHandler.CreateMatch)
	router.DELETE("/matches/:match_id", authMiddleware, matchHandler.DeleteMatch)

	router.GET("/profile", authMiddleware, profileHandler.GetProfile)
	router.PUT("/profile", authMiddleware, profileHandler.PutProfile)

	router.GET("/rooms", authMiddleware, chatHandler.ListRooms)
	router.GET("/rooms/:room_id", authMiddleware, chatHandler.GetRoom)
	router.GET("/rooms/:room_id/messages", authMiddleware, chatHandler.GetRoomMessages)
	router.POST("/rooms/:room_id/messages", authMiddleware, chatHandler.PostRoomMessage)

	router.GET("/gifts", authMiddleware, giftHandler.ListGifts)
	router.POST("/gifts/send", authMiddleware, giftHandler.SendGift)

	router.GET("/notifications", authMiddleware, notificationHandler.ListNotifications)
	router.POST("/notifications/:notification_id/read", authMiddleware, notificationHandler.MarkRead)
	router.POST("/notifications/:notification_id/dismiss", authMiddleware, notificationHandler.Dismiss)

	router.POST("/subscriptions", authMiddleware, subscriptionHandler.CreateSubscription)
	router.POST("/subscriptions/:subscription_id/confirm", authMiddleware, subscriptionHandler.ConfirmSubscription)

	adminMiddleware := middleware.AdminMiddleware(os.Getenv("ADMIN_TOKEN"))
	admin := router.Group("/admin", adminMiddleware)
	admin.POST("/users/:user_id/ban", adminHandler.BanUser)
	admin.POST("/users/:user_id/unban", adminHandler.UnbanUser)
	admin.POST("/rooms/:room_id/lock", adminHandler.LockRoom)
	admin.POST("/rooms/:room_id/unlock", adminHandler.UnlockRoom)
	admin.POST("/rooms/:room_id/extend", adminHandler.ExtendRoom)
	admin.DELETE("/rooms/:room_id", adminHandler.DeleteRoom)
	admin.POST("/domains", adminHandler.ApproveDomain)

	router.GET("/ws/rooms/:room_id", roomWS.Handle)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := getEnv("PORT", "8086")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
