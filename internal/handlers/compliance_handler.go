package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/waterwise-labs/greywater-api/internal/errors"
	"github.com/waterwise-labs/greywater-api/internal/middleware"
	"github.com/waterwise-labs/greywater-api/internal/models"
	"github.com/waterwise-labs/greywater-api/internal/services"
	"github.com/waterwise-labs/greywater-api/internal/slug"
)

// ComplianceHandler serves the per-location regulation lookup.
type ComplianceHandler struct {
	service services.PolicyService
}

// NewComplianceHandler creates a new ComplianceHandler instance.
func NewComplianceHandler(service services.PolicyService) *ComplianceHandler {
	return &ComplianceHandler{
		service: service,
	}
}

// ComplianceRequest represents the query parameters for the compliance endpoint.
type ComplianceRequest struct {
	State  string `form:"state" binding:"required"`
	County string `form:"county"`
	City   string `form:"city"`
	Sector string `form:"sector" binding:"omitempty,oneof=residential commercial"`
}

// LocationInfo echoes the resolved location back to the client with
// canonical names.
type LocationInfo struct {
	State     string  `json:"state"`
	StateName string  `json:"state_name"`
	County    *string `json:"county,omitempty"`
	City      *string `json:"city,omitempty"`
}

// ComplianceLevels is the per-level breakdown of a resolution. State is
// always present; county and city appear only when they were part of the
// request and resolved to a jurisdiction with its own record or programs.
type ComplianceLevels struct {
	State     *models.ComplianceRecord `json:"state"`
	County    *models.ComplianceRecord `json:"county,omitempty"`
	City      *models.ComplianceRecord `json:"city,omitempty"`
	Effective models.EffectivePolicy   `json:"effective"`
}

// ComplianceResponse represents the response for the compliance endpoint.
type ComplianceResponse struct {
	Status     string           `json:"status"`
	Location   LocationInfo     `json:"location"`
	Compliance ComplianceLevels `json:"compliance"`
}

// Get handles GET /api/v1/compliance.
// It resolves which regulations actually govern the supplied location:
// state-level rules by default, overridden wholesale by a county or city
// that maintains its own policy.
func (h *ComplianceHandler) Get(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req ComplianceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	if log != nil {
		log.Info("Processing compliance request", map[string]interface{}{
			"state":  req.State,
			"county": req.County,
			"city":   req.City,
		})
	}

	resolved, err := h.service.Resolve(c.Request.Context(), req.State, req.County, req.City)
	if err != nil {
		if errors.Is(err, services.ErrJurisdictionNotFound) {
			apierrors.JurisdictionNotFound(c, err.Error())
			return
		}
		apierrors.InternalServerError(c, "Failed to resolve compliance data", err)
		return
	}

	response := ComplianceResponse{
		Status:   "success",
		Location: buildLocation(resolved),
		Compliance: ComplianceLevels{
			State:     resolved.State.Record,
			County:    levelRecord(resolved.County),
			City:      levelRecord(resolved.City),
			Effective: resolved.Effective,
		},
	}

	c.JSON(http.StatusOK, response)
}

func buildLocation(resolved *services.ResolvedPolicy) LocationInfo {
	loc := LocationInfo{
		State:     resolved.State.Jurisdiction.StateCode,
		StateName: slug.StateNameFromCode(resolved.State.Jurisdiction.StateCode),
	}
	if resolved.County != nil {
		name := resolved.County.Jurisdiction.Name
		loc.County = &name
	}
	if resolved.City != nil {
		name := resolved.City.Jurisdiction.Name
		loc.City = &name
	}
	return loc
}

// levelRecord picks the JSON body for a county or city level. A level with
// its own record shows that record; a level with no record but with
// incentive programs still gets a block so the programs are visible; a
// level with neither is omitted entirely.
func levelRecord(level *services.LevelResult) *models.ComplianceRecord {
	if level == nil {
		return nil
	}
	if level.Record != nil {
		return level.Record
	}
	if len(level.Programs) == 0 {
		return nil
	}

	record := &models.ComplianceRecord{
		JurisdictionID: level.Jurisdiction.ID,
		Level:          level.Jurisdiction.Level,
		StateCode:      level.Jurisdiction.StateCode,
	}
	switch level.Jurisdiction.Level {
	case models.LevelCounty:
		name := level.Jurisdiction.Name
		record.CountyName = &name
	case models.LevelCity:
		name := level.Jurisdiction.Name
		record.CityName = &name
	}
	record.AttachIncentives(level.Programs)
	return record
}
