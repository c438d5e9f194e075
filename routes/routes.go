package routes

import (
	"fmt"
	"net/http"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/docs"
	"github.com/ariebrainware/embryo-ai/endpoint"
	"github.com/ariebrainware/embryo-ai/middleware"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter builds the HTTP router. clf and store may be nil; the handlers that need them answer 500.
func SetupRouter(cfg *config.Config, db *gorm.DB, store *util.UploadStore, clf *classifier.Classifier) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
		middleware.DatabaseMiddleware(db),
		middleware.UploadStoreMiddleware(store),
		middleware.ClassifierMiddleware(clf),
		middleware.IdentifyUser(),
		middleware.EndpointCallLogger(),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	r.GET("/healthz", healthz)

	docs.SwaggerInfo.Title = cfg.AppName + " API"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	authLimit := middleware.RateLimiter(middleware.RateLimitConfig{})
	api.POST("/register", authLimit, endpoint.Register)
	api.POST("/login", authLimit, endpoint.Login)
	api.POST("/reset-passwords", middleware.RequireAPIToken(cfg.APIToken), endpoint.ResetPasswords)
	api.GET("/token/validate", endpoint.ValidateToken)

	api.GET("/patients", endpoint.ListPatients)
	api.GET("/user/:username", endpoint.GetUserProfile)
	api.PUT("/user/:username", endpoint.UpdateUserProfile)
	api.GET("/doctor", endpoint.GetDoctor)
	api.POST("/doctor/select-patient", endpoint.SelectPatient)
	api.GET("/doctor/patients", endpoint.ListDoctorPatients)

	api.POST("/upload-report", endpoint.UploadReport)
	api.GET("/reports", endpoint.ListReports)
	api.GET("/report/:id", endpoint.GetReport)
	api.GET("/reports/:id/pdf", endpoint.DownloadReportPDF)
	api.GET("/medical-records/:id/pdf", endpoint.DownloadMedicalRecordPDF)

	api.POST("/appointments", endpoint.CreateAppointment)
	api.GET("/appointments", endpoint.ListAppointments)
	api.PUT("/appointments", endpoint.UpdateAppointment)
	api.PUT("/appointments/:id", endpoint.UpdateAppointment)

	api.POST("/analyze-embryo", endpoint.AnalyzeEmbryo)

	return r
}

func healthz(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, util.APIResponse{Success: false, Message: "Database unreachable", Error: err.Error()})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "ok"})
}
