// File: droptruck/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"droptruck/config"
	"droptruck/cron"
	"droptruck/database"
	callRecordRepo "droptruck/database/repository/callrecord"
	catalogRepo "droptruck/database/repository/catalog"
	"droptruck/handlers"
	"droptruck/middleware"
	"droptruck/routes"
	"droptruck/services/call"
	"droptruck/services/dispatch"
	ai "droptruck/services/intelligence"
	"droptruck/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitCatalogDB()
	database.InitMongo()
	utils.InitContextCache()
	utils.StartHealthMonitor(database.CatalogDB, database.MongoClient, utils.GetContextCacheClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Optional collaborators degrade rather than abort.
	var catalog catalogRepo.CatalogRepository
	if database.CatalogDB != nil {
		catalog = catalogRepo.NewGormCatalogRepo(database.CatalogDB)
	}

	var records callRecordRepo.CallRecordRepository
	if database.MongoClient != nil {
		records = callRecordRepo.NewMongoCallRecordRepo()
	}

	var responder ai.Responder
	if key := config.AppConfig.OpenAIAPIKey; key != "" {
		responder = ai.NewOpenAIResponder(key, config.AppConfig.OpenAIModel)
	} else {
		logger.Warn("OPENAI_API_KEY not set, agent will run in echo mode")
		responder = ai.EchoResponder{}
	}

	ctxStore := ai.NewRedisContextStore(utils.GetContextCacheClient(), 30*time.Minute)
	dispatchClient := dispatch.NewClient(config.AppConfig.BookingAPIURL, catalog)

	callService := call.NewDefaultCallService(responder, catalog, dispatchClient, ctxStore, records)
	callService.AudioDir = config.AppConfig.AudioOutputDir

	// Follow-up reminders need the queue Redis; skip them when Redis is down.
	if utils.GetContextCacheClient() != nil {
		cron.InitFollowUpWorker()
		callService.FollowUps = cron.NewEnqueuer()
	}

	callHandler := handlers.NewCallHandler(callService, logger)
	sttHandler := handlers.NewSTTHandler(callService, config.AppConfig.GoogleServiceAccountFile)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StartCall:     callHandler.StartCall,
		HandleTurn:    callHandler.HandleTurn,
		GetBooking:    callHandler.GetBooking,
		GetTranscript: callHandler.GetTranscript,
		EndCall:       callHandler.EndCall,
		Transcribe:    sttHandler.Transcribe,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
