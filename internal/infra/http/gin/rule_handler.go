package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybase/internal/app/dto"
	rulesvc "staybase/internal/app/services/rules"
	domainacc "staybase/internal/domain/accommodations"
	domainpricing "staybase/internal/domain/pricing"
)

// RuleHandler wires pricing-rule management to HTTP.
type RuleHandler struct {
	Service *rulesvc.Service
}

type createRuleRequest struct {
	StartDate     string   `json:"startDate" binding:"required"`
	EndDate       string   `json:"endDate" binding:"required"`
	OverridePrice *float64 `json:"overridePrice"`
	Multiplier    *float64 `json:"multiplier"`
	PeriodType    string   `json:"periodType"`
	MinStayDays   int      `json:"minStayDays"`
	MaxStayDays   int      `json:"maxStayDays"`
}

func (h RuleHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req createRuleRequest
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
	rule, err := h.Service.CreateRule(c.Request.Context(), rulesvc.CreateRuleParams{
		AccommodationID: domainacc.AccommodationID(c.Param("id")),
		StartDate:       start,
		EndDate:         end,
		OverridePrice:   req.OverridePrice,
		Multiplier:      req.Multiplier,
		PeriodType:      domainpricing.PeriodType(req.PeriodType),
		MinStayDays:     req.MinStayDays,
		MaxStayDays:     req.MaxStayDays,
	}, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapRule(rule))
}

type updateRuleRequest struct {
	StartDate     *string  `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	OverridePrice *float64 `json:"overridePrice"`
	ClearOverride bool     `json:"clearOverride"`
	Multiplier    *float64 `json:"multiplier"`
	PeriodType    *string  `json:"periodType"`
	MinStayDays   *int     `json:"minStayDays"`
	MaxStayDays   *int     `json:"maxStayDays"`
}

func (h RuleHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := rulesvc.UpdateRuleParams{
		OverridePrice: req.OverridePrice,
		ClearOverride: req.ClearOverride,
		Multiplier:    req.Multiplier,
		MinStayDays:   req.MinStayDays,
		MaxStayDays:   req.MaxStayDays,
	}
	if req.StartDate != nil {
		start, err := parseDayParam(*req.StartDate)
		if err != nil {
			respondError(c, err)
			return
		}
		params.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDayParam(*req.EndDate)
		if err != nil {
			respondError(c, err)
			return
		}
		params.EndDate = &end
	}
	if req.PeriodType != nil {
		periodType := domainpricing.PeriodType(*req.PeriodType)
		params.PeriodType = &periodType
	}

	rule, err := h.Service.UpdateRule(c.Request.Context(),
		domainacc.AccommodationID(c.Param("id")),
		domainpricing.RuleID(c.Param("ruleId")),
		params, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRule(rule))
}

func (h RuleHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	err := h.Service.DeleteRule(c.Request.Context(),
		domainacc.AccommodationID(c.Param("id")),
		domainpricing.RuleID(c.Param("ruleId")),
		caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h RuleHandler) List(c *gin.Context) {
	rules, err := h.Service.ListRules(c.Request.Context(), domainacc.AccommodationID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRules(rules))
}

var _ RuleHTTP = RuleHandler{}
