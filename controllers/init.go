package controllers

import (
	"github.com/MrazzKa/CalorieCam-sub001/config"
	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/services"

	goredis "github.com/redis/go-redis/v9"
)

// Shared service singletons, wired once at startup.
var (
	analysisSvc *services.AnalysisService
	matcherSvc  *services.MatcherService
	mealSvc     *services.MealService
	goalSvc     *services.DailyGoalService
	pushSvc     *services.PushService
	hub         *services.RealtimeHub
	resultCache services.Cache
)

// Init builds the service graph. Redis and SNS are optional at boot:
// without them the pipeline still works, it just recomputes every
// request and stays silent on push.
func Init() {
	llm := services.NewLLMClient()

	extractors := []services.VisionExtractor{services.NewOpenAIVisionService(llm)}
	if rek, err := services.NewRekognitionService(); err == nil {
		extractors = append(extractors, rek)
	} else {
		logger.Warn("rekognition fallback unavailable", "error", err)
	}
	extractor := services.NewFallbackExtractor(extractors...)

	cache, err := services.NewRedisCache()
	if err != nil {
		logger.Warn("redis unavailable, analysis cache disabled", "error", err)
	} else {
		resultCache = cache
	}

	repo := services.NewGormFoodRepository(config.DB)
	matcherSvc = services.NewMatcherService(repo, llm, services.NewUSDAService())
	analysisSvc = services.NewAnalysisService(extractor, matcherSvc, repo, resultCache)

	hub = services.NewRealtimeHub()
	mealSvc = services.NewMealService()
	pushSvc, err = services.NewPushService(config.DB)
	if err != nil {
		logger.Warn("push service unavailable", "error", err)
		pushSvc = nil
	}
	goalSvc = services.NewDailyGoalService(mealSvc, hub, pushSvc)
}

// RedisClient exposes the shared connection for the quota middleware;
// nil when Redis is down.
func RedisClient() *goredis.Client {
	if rc, ok := resultCache.(*services.RedisCache); ok {
		return rc.Client()
	}
	return nil
}
