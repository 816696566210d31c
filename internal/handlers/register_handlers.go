package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
	"github.com/finbooks/finbooks_app/internal/middleware"
	"github.com/finbooks/finbooks_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	if err := RegisterValidations(); err != nil {
		panic(err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity route registrations. Every route under the group requires the
// caller identity header.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerCompanyRoutes(v1, services.Company)

	companySpecific := v1.Group("/companies/:company_id")
	{
		registerAccountRoutes(companySpecific, services.Account)
		registerTransactionRoutes(companySpecific, services.Transaction, services.Detection)
		registerJournalRoutes(companySpecific, services.Journal)
		registerApprovalRoutes(companySpecific, services.Approval)
	}
}
