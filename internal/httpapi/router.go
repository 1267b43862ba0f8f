package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperagentio/dispute-agent/internal/common"
	"github.com/hyperagentio/dispute-agent/internal/config"
	"github.com/hyperagentio/dispute-agent/internal/httpapi/handlers"
	"github.com/hyperagentio/dispute-agent/internal/httpapi/middleware"
	"github.com/hyperagentio/dispute-agent/internal/signing"
	"github.com/hyperagentio/dispute-agent/internal/verify"
)

func NewRouter(cfg config.Config, svc *verify.Service, signer *signing.Signer) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())

	h := handlers.NewHandler(cfg, svc, signer)

	r.GET("/", h.ServiceInfo)
	r.GET("/ping", h.Ping)

	r.POST("/verify", h.SubmitVerification)
	r.GET("/verify/:job_id", h.JobStatus)

	r.POST("/validate", h.SubmitCrossValidation)

	return r
}
