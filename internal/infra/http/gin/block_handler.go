package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybase/internal/app/dto"
	"staybase/internal/app/services/blocksvc"
	domainacc "staybase/internal/domain/accommodations"
	domainblocks "staybase/internal/domain/blocks"
)

// BlockHandler wires manual blocked-period management to HTTP. Reservation
// blocks are event-driven and have no HTTP mutation surface.
type BlockHandler struct {
	Service *blocksvc.Service
}

type createBlockRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Notes     string `json:"notes"`
}

func (h BlockHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req createBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDayParam(req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := parseDayParam(req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	block, err := h.Service.CreateManualBlock(c.Request.Context(), blocksvc.CreateManualBlockParams{
		AccommodationID: domainacc.AccommodationID(c.Param("id")),
		StartDate:       start,
		EndDate:         end,
		Notes:           req.Notes,
	}, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapBlock(block))
}

func (h BlockHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	err := h.Service.DeleteManualBlock(c.Request.Context(),
		domainacc.AccommodationID(c.Param("id")),
		domainblocks.BlockID(c.Param("blockId")),
		caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h BlockHandler) List(c *gin.Context) {
	blocks, err := h.Service.ListBlocks(c.Request.Context(), domainacc.AccommodationID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapBlocks(blocks))
}

var _ BlockHTTP = BlockHandler{}
