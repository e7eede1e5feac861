package handler

import (
	"serving-broker/internal/adapter/http/dto"
	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"
	"serving-broker/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler handles provider directory endpoints.
type DirectoryHandler struct {
	directory ports.ProviderDirectory
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directory ports.ProviderDirectory) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// List handles GET /api/v1/services.
func (h *DirectoryHandler) List(c *gin.Context) {
	var q dto.ListServicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	services, err := h.directory.ListServices(c.Request.Context(), q.Offset, q.Limit, q.IncludeUnacknowledged)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, toServiceResponse(&services[i]))
	}
	response.OK(c, items)
}

// Select handles GET /api/v1/services/select?service_type=...
func (h *DirectoryHandler) Select(c *gin.Context) {
	var q dto.SelectQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	svc, err := h.directory.SelectProvider(c.Request.Context(), domain.ServiceType(q.ServiceType))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toServiceResponse(svc))
}

// Get handles GET /api/v1/services/:provider.
func (h *DirectoryHandler) Get(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}

	svc, err := h.directory.GetService(c.Request.Context(), provider)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toServiceResponse(svc))
}

// providerParam parses the :provider path parameter, writing the error
// response itself when the address is malformed.
func providerParam(c *gin.Context) (common.Address, bool) {
	provider, ok := dto.ParseAddress(c.Param("provider"))
	if !ok {
		response.Error(c, apperror.ErrInvalidAddress())
		return common.Address{}, false
	}
	return provider, true
}

func toServiceResponse(s *domain.ProviderService) dto.ServiceResponse {
	resp := dto.ServiceResponse{
		Provider:      s.Provider.Hex(),
		ServiceType:   string(s.ServiceType),
		Endpoint:      s.Endpoint,
		Model:         s.Model,
		InputPrice:    s.InputPrice.String(),
		OutputPrice:   s.OutputPrice.String(),
		MinFee:        s.MinFee,
		Verifiability: string(s.Verifiability),
	}
	if s.TEESigner != (common.Address{}) {
		resp.TEESigner = s.TEESigner.Hex()
	}
	if s.Health != nil {
		resp.Health = &dto.HealthResponse{
			Status:          string(s.Health.Status),
			UptimePercent:   s.Health.UptimePercent,
			AvgResponseTime: s.Health.AvgResponseTime.Milliseconds(),
			LastCheck:       dto.FormatTime(s.Health.LastCheck),
		}
	}
	return resp
}
