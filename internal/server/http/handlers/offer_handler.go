package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/server/http/dto"
)

// OfferHandler manages offer ledger endpoints.
type OfferHandler struct {
	facade OfferFacade
}

// NewOfferHandler constructs OfferHandler.
func NewOfferHandler(facade OfferFacade) *OfferHandler {
	return &OfferHandler{facade: facade}
}

// Create handles POST /api/admin/offers.
func (h *OfferHandler) Create(c *gin.Context) {
	var req dto.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	offer, err := h.facade.CreateOffer(c.Request.Context(), offerFromRequest(0, req))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOffer):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOfferResponse(*offer))
}

// Update handles PATCH /api/admin/offers/:id.
func (h *OfferHandler) Update(c *gin.Context) {
	offerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	offer, err := h.facade.UpdateOffer(c.Request.Context(), offerFromRequest(offerID, req))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound),
			errors.Is(err, domainErrors.ErrOfferNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidOffer):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOfferResponse(*offer))
}

// Deactivate handles DELETE /api/admin/offers/:id.
func (h *OfferHandler) Deactivate(c *gin.Context) {
	offerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeactivateOffer(c.Request.Context(), offerID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound),
			errors.Is(err, domainErrors.ErrOfferNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Get handles GET /api/admin/offers/:id.
func (h *OfferHandler) Get(c *gin.Context) {
	offerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	offer, err := h.facade.Offer(c.Request.Context(), offerID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound),
			errors.Is(err, domainErrors.ErrOfferNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOfferResponse(*offer))
}

// List handles GET /api/admin/offers.
func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.facade.Offers(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOfferResponses(offers))
}

// ListActive handles GET /api/offers/active.
func (h *OfferHandler) ListActive(c *gin.Context) {
	offers, err := h.facade.ActiveOffers(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOfferResponses(offers))
}

// ListPromoCodes handles GET /api/offers/promocodes.
func (h *OfferHandler) ListPromoCodes(c *gin.Context) {
	offers, err := h.facade.ActivePromoCodes(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOfferResponses(offers))
}

// Validate handles POST /api/offers/validate.
func (h *OfferHandler) Validate(c *gin.Context) {
	var req dto.ValidateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	offer, err := h.facade.ValidateOffer(c.Request.Context(), req.Code, CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrOfferNotFound),
			errors.Is(err, domainErrors.ErrOfferExhausted),
			errors.Is(err, domainErrors.ErrOfferAlreadyRedeemed):
			c.JSON(http.StatusOK, dto.ValidateOfferResponse{Valid: false})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	resp := toOfferResponse(*offer)
	c.JSON(http.StatusOK, dto.ValidateOfferResponse{Valid: true, Offer: &resp})
}

func offerFromRequest(id int64, req dto.OfferRequest) *model.Offer {
	return &model.Offer{
		ID:                 id,
		Name:               req.Name,
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		MaxDiscountAmount:  req.MaxDiscountAmount,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		AutoApply:          req.AutoApply,
		MaxUsageCount:      req.MaxUsageCount,
	}
}

func toOfferResponse(offer model.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:                 offer.ID,
		Name:               offer.Name,
		Code:               offer.Code,
		DiscountPercentage: offer.DiscountPercentage,
		MaxDiscountAmount:  offer.MaxDiscountAmount,
		StartDate:          offer.StartDate,
		EndDate:            offer.EndDate,
		Status:             string(offer.Status),
		AutoApply:          offer.AutoApply,
		UsageCount:         offer.UsageCount,
		MaxUsageCount:      offer.MaxUsageCount,
	}
}

func toOfferResponses(offers []model.Offer) []dto.OfferResponse {
	response := make([]dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		response = append(response, toOfferResponse(o))
	}
	return response
}
