package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/services"
	"github.com/wiseman/studentrecords/internal/middleware"
)

// ModuleController handles module catalog operations
type ModuleController struct {
	moduleService services.ModuleService
}

// NewModuleController creates a new ModuleController
func NewModuleController(moduleService services.ModuleService) *ModuleController {
	return &ModuleController{
		moduleService: moduleService,
	}
}

// CreateModule handles catalog entry creation
// @Summary Add a module
// @Description Creates a new catalog entry with a generated id. Duplicate codes are accepted.
// @Tags modules
// @Accept json
// @Produce json
// @Param request body dto.CreateModuleRequest true "Module information"
// @Success 201 {object} dto.APIResponse{data=models.Module} "Module created"
// @Failure 400 {object} dto.ErrorResponse "Invalid module data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	module, err := c.moduleService.AddModule(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      module,
		Timestamp: time.Now(),
	})
}

// ListModules retrieves the full catalog
// @Summary List all modules
// @Description Retrieves every catalog entry. Order is not guaranteed.
// @Tags modules
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Module} "Modules retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	modules, err := c.moduleService.ListModules(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      modules,
		Timestamp: time.Now(),
	})
}
