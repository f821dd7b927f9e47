package industry

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

type industryHandler struct {
	service IndustryServiceInterface
}

func newIndustryHandler(service IndustryServiceInterface) *industryHandler {
	return &industryHandler{
		service: service,
	}
}

// handleList handles GET /industries
func (h *industryHandler) handleList(c *gin.Context) {
	response, svcErr := h.service.ListIndustries(c.Request.Context())
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleGet handles GET /industries/{industryId}
func (h *industryHandler) handleGet(c *gin.Context) {
	industryID, ok := utils.ParseIDParam(c, "industryId")
	if !ok {
		utils.SendBadRequest(c, "invalid industry ID")
		return
	}

	industry, svcErr := h.service.GetIndustry(c.Request.Context(), industryID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, industry)
}
