package handler

import (
	"net/http"

	"serving-broker/internal/adapter/http/dto"
	"serving-broker/internal/core/ports"
	"serving-broker/internal/service"
	"serving-broker/pkg/apperror"
	"serving-broker/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequestHandler handles the per-request billing endpoints: acknowledgement,
// header issuance, provider-side verification and settlement.
type RequestHandler struct {
	auth      ports.RequestAuthenticator
	settler   ports.ResponseSettler
	directory ports.ProviderDirectory
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(auth ports.RequestAuthenticator, settler ports.ResponseSettler, directory ports.ProviderDirectory) *RequestHandler {
	return &RequestHandler{auth: auth, settler: settler, directory: directory}
}

// Acknowledge handles POST /api/v1/providers/:provider/acknowledge.
func (h *RequestHandler) Acknowledge(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}

	if err := h.auth.AcknowledgeProvider(c.Request.Context(), provider); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"provider": provider.Hex(), "acknowledged": true})
}

// Metadata handles GET /api/v1/providers/:provider/metadata.
func (h *RequestHandler) Metadata(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}

	meta, err := h.auth.GetServiceMetadata(c.Request.Context(), provider)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, meta)
}

// Headers handles POST /api/v1/providers/:provider/headers. The request body
// is the exact body the caller is about to send to the provider.
func (h *RequestHandler) Headers(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperror.Validation("request body could not be read"))
		return
	}
	if len(body) == 0 {
		body = nil
	}

	headers, err := h.auth.GetRequestHeaders(c.Request.Context(), provider, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.HeadersResponse{Headers: headers})
}

// Verify handles POST /api/v1/verify.
func (h *RequestHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var body []byte
	if req.Body != "" {
		body = []byte(req.Body)
	}

	user, err := h.auth.VerifyRequestHeaders(c.Request.Context(), req.Headers, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.VerifyResponse{User: user.Hex()})
}

// Settle handles POST /api/v1/providers/:provider/settle. The response
// identifier and usage are taken from the request when given, otherwise
// extracted from the raw provider response.
func (h *RequestHandler) Settle(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	responseID := req.ResponseID
	usage := req.Usage
	body := []byte(req.ResponseBody)

	if responseID == "" && (len(req.ResponseHeaders) > 0 || len(body) > 0) {
		svc, err := h.directory.GetService(c.Request.Context(), provider)
		if err != nil {
			response.Error(c, err)
			return
		}
		header := make(http.Header, len(req.ResponseHeaders))
		for k, v := range req.ResponseHeaders {
			header.Set(k, v)
		}
		responseID, err = service.ExtractResponseID(svc.ServiceType, header, body)
		if err != nil {
			response.Error(c, err)
			return
		}
	}
	if usage == "" && len(body) > 0 {
		usage = service.ExtractUsage(body)
	}

	s, err := h.settler.ProcessResponse(c.Request.Context(), ports.SettleRequest{
		Provider:   provider,
		ResponseID: responseID,
		UsageData:  usage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SettlementResponse{
		Provider:       s.Provider.Hex(),
		ResponseID:     s.ResponseID,
		Verified:       s.Verified,
		Fee:            s.Fee,
		Charged:        s.Charged,
		UnderCollected: s.UnderCollected,
		TxID:           s.TxID,
		Duplicate:      s.Duplicate,
		SettledAt:      dto.FormatTime(s.SettledAt),
	})
}
