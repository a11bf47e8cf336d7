package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ServiceFinder-App/internal/domain/service"
	"ServiceFinder-App/internal/handler"
	"ServiceFinder-App/internal/infrastructure/database"
	"ServiceFinder-App/internal/infrastructure/geocoding"
	"ServiceFinder-App/internal/infrastructure/overpass"
	"ServiceFinder-App/internal/repository"
	"ServiceFinder-App/internal/usecase"
	"ServiceFinder-App/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	if err := logger.Init(); err != nil {
		log.Fatalf("ロガー初期化失敗: %v", err)
	}
	defer logger.Sync()

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "service_finder.db"
	}

	fmt.Println("Initializing SQLite client...")
	sqliteClient, err := database.NewSQLiteClient(sqlitePath)
	if err != nil {
		log.Fatalf("SQLiteクライアント初期化失敗: %v", err)
	}
	defer sqliteClient.Close()

	fmt.Println("Performing SQLite health check...")
	if err := sqliteClient.HealthCheck(); err != nil {
		log.Fatalf("SQLiteヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ SQLite connection successful!")

	// リポジトリとプロバイダの初期化
	recentRepo, err := repository.NewSQLiteRecentSearchesRepository(sqliteClient, logger.GetLogger("recent"))
	if err != nil {
		log.Fatalf("最近の検索リポジトリ初期化失敗: %v", err)
	}
	geocodingProvider := geocoding.NewNominatimProvider(os.Getenv("NOMINATIM_BASE_URL"))
	featureProvider := overpass.NewOverpassProvider(os.Getenv("OVERPASS_BASE_URL"))

	// サービスとユースケースの初期化
	geocodingService := service.NewGeocodingService(geocodingProvider, recentRepo, logger.GetLogger("geocoding"))
	discoveryService := service.NewPlaceDiscoveryService(featureProvider, logger.GetLogger("discovery"))
	sessionUseCase := usecase.NewLocationSessionUseCase(geocodingService, discoveryService, logger.GetLogger("session"))

	// ハンドラーの初期化
	configHandler := handler.NewConfigHandler()
	locationHandler := handler.NewLocationHandler(geocodingService)
	sessionHandler := handler.NewSessionHandler(sessionUseCase)

	// ルーターの設定（ブラウザから直接呼ばれるためCORSを許可）
	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.GET("/health", configHandler.GetHealth)
		api.GET("/config", configHandler.GetConfig)

		api.GET("/locations/search", locationHandler.GetSearch)
		api.GET("/locations/recent", locationHandler.GetRecent)
		api.DELETE("/locations/recent", locationHandler.DeleteRecent)

		api.POST("/sessions", sessionHandler.PostSession)
		api.GET("/sessions/:id", sessionHandler.GetSession)
		api.POST("/sessions/:id/detect", sessionHandler.PostDetect)
		api.POST("/sessions/:id/detect/result", sessionHandler.PostDetectResult)
		api.POST("/sessions/:id/location", sessionHandler.PostLocation)
		api.PUT("/sessions/:id/category", sessionHandler.PutCategory)
		api.PUT("/sessions/:id/filters", sessionHandler.PutFilters)
		api.POST("/sessions/:id/search", sessionHandler.PostSearch)
		api.POST("/sessions/:id/refresh", sessionHandler.PostRefresh)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("ServiceFinder-App server starting on :%s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("サーバー起動失敗: %v", err)
	}
}
