package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/themobileprof/healthdesk-be/internal/api/middleware"
	"github.com/themobileprof/healthdesk-be/internal/diagnosis"
	"github.com/themobileprof/healthdesk-be/internal/history"
	"github.com/themobileprof/healthdesk-be/internal/knowledge"
	"github.com/themobileprof/healthdesk-be/internal/symptoms"
)

// Deps is everything the router wires together. Users, Assessments and
// DB are nil when the service runs without a database; the routes that
// need them then answer 503.
type Deps struct {
	Logger      zerolog.Logger
	KB          *knowledge.Static
	Users       UserStore
	Assessments AssessmentStore
	DB          Pinger
	Recorder    *history.Recorder
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	IPLimiter   *middleware.RateLimiter
	UserLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.SecurityHeaders(),
		middleware.CORS(d.CORSOrigins),
	)
	if d.IPLimiter != nil {
		router.Use(middleware.PerIP(d.IPLimiter))
	}

	perUser := func(c *gin.Context) { c.Next() }
	if d.UserLimiter != nil {
		perUser = middleware.PerUser(d.UserLimiter)
	}

	analyzer := symptoms.NewAnalyzer(d.KB)
	triageHandler := NewTriageHandler(analyzer, symptoms.NewExtractor(d.KB), d.Recorder)
	diagnosisHandler := NewDiagnosisHandler(diagnosis.NewEngine(d.KB), d.Recorder)
	knowledgeHandler := NewKnowledgeHandler(d.KB)
	healthHandler := NewHealthHandler(d.DB)

	router.GET("/health", healthHandler.Health)
	router.GET("/readyz", healthHandler.Ready)

	auth := router.Group("/api/auth")
	if d.Users != nil {
		authHandler := NewAuthHandler(d.Users, d.JWTSecret, d.TokenTTL)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWTAuth(d.JWTSecret), authHandler.Me)
	} else {
		auth.Any("/*path", storageDisabled)
	}

	kb := router.Group("/api/knowledge")
	{
		kb.GET("/categories", knowledgeHandler.Categories)
		kb.GET("/categories/:name", knowledgeHandler.Category)
		kb.GET("/patterns", knowledgeHandler.Patterns)
		kb.GET("/metrics", knowledgeHandler.Metrics)
	}

	// Anonymous use is allowed; signed-in calls are recorded
	triage := router.Group("/api/symptoms")
	triage.Use(middleware.OptionalJWTAuth(d.JWTSecret), perUser)
	{
		triage.POST("/analyze", triageHandler.AnalyzeSymptoms)
		triage.POST("/emergency", triageHandler.CheckEmergency)
		triage.POST("/severity", triageHandler.AssessSeverity)
	}

	diag := router.Group("/api/diagnosis")
	diag.Use(middleware.OptionalJWTAuth(d.JWTSecret), perUser)
	{
		diag.POST("/analyze", diagnosisHandler.AnalyzeDiagnosis)
		diag.POST("/interactions", diagnosisHandler.CheckInteractions)
		diag.POST("/metrics", diagnosisHandler.AnalyzeMetrics)
		diag.POST("/risk", diagnosisHandler.AssessRisk)
	}

	hist := router.Group("/api/history")
	if d.Assessments != nil {
		historyHandler := NewHistoryHandler(d.Assessments)
		hist.Use(middleware.JWTAuth(d.JWTSecret), perUser)
		hist.GET("", historyHandler.List)
		hist.GET("/:id", historyHandler.Get)
		hist.DELETE("/:id", historyHandler.Delete)
	} else {
		hist.Any("", storageDisabled)
		hist.Any("/*path", storageDisabled)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func storageDisabled(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Accounts and history are disabled: no database configured"})
}
