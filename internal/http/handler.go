package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/supply-agreements/internal/apperr"
	"github.com/nurpe/supply-agreements/internal/repository"
	"github.com/nurpe/supply-agreements/internal/service"
)

type Handler struct {
	agreements *service.AgreementService
	log        zerolog.Logger
}

func NewHandler(agreements *service.AgreementService, log zerolog.Logger) *Handler {
	return &Handler{agreements: agreements, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/agreements", h.list)
	protected.GET("/agreements/search", h.search)
	protected.GET("/agreements/export", h.exportExcel)
	protected.GET("/agreements/:id", h.get)
	protected.GET("/agreements/:id/pdf", h.exportPDF)
	protected.POST("/agreements", h.create)
	protected.PATCH("/agreements/:id", h.update)
	protected.DELETE("/agreements/:id", h.delete)
}

type createAgreementData struct {
	SupplierID          *int64  `json:"supplier_id"`
	CustomerID          *int64  `json:"customer_id"`
	SupplierWarehouseID *int64  `json:"supplier_warehouse_id"`
	CustomerWarehouseID *int64  `json:"customer_warehouse_id"`
	Status              *string `json:"status"`
}

type createAgreementRequest struct {
	CreateData *createAgreementData        `json:"createData"`
	Materials  *[]repository.MaterialInput `json:"materials"`
}

type updateAgreementData struct {
	SupplierID          *int64  `json:"supplier_id"`
	CustomerID          *int64  `json:"customer_id"`
	SupplierWarehouseID *int64  `json:"supplier_warehouse_id"`
	CustomerWarehouseID *int64  `json:"customer_warehouse_id"`
	Status              *string `json:"status"`
}

type updateAgreementRequest struct {
	UpdateData *updateAgreementData        `json:"updateData"`
	Materials  *[]repository.MaterialInput `json:"materials"`
}

func (h *Handler) list(c *gin.Context) {
	views, err := h.agreements.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.agreements.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) search(c *gin.Context) {
	views, err := h.agreements.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) create(c *gin.Context) {
	var req createAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CreateData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "createData is required"})
		return
	}

	required := []struct {
		field string
		value *int64
	}{
		{"supplier_id", req.CreateData.SupplierID},
		{"customer_id", req.CreateData.CustomerID},
		{"supplier_warehouse_id", req.CreateData.SupplierWarehouseID},
		{"customer_warehouse_id", req.CreateData.CustomerWarehouseID},
	}
	for _, ref := range required {
		if ref.value == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ref.field + " is required"})
			return
		}
		if *ref.value <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": ref.field + " must be a positive integer"})
			return
		}
	}

	var materials []repository.MaterialInput
	if req.Materials != nil {
		materials = *req.Materials
	}

	view, err := h.agreements.Create(c.Request.Context(), service.CreateAgreementInput{
		SupplierID:          *req.CreateData.SupplierID,
		CustomerID:          *req.CreateData.CustomerID,
		SupplierWarehouseID: *req.CreateData.SupplierWarehouseID,
		CustomerWarehouseID: *req.CreateData.CustomerWarehouseID,
		Status:              req.CreateData.Status,
	}, materials)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UpdateData == nil && req.Materials == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "updateData is required"})
		return
	}

	input := service.UpdateAgreementInput{}
	if req.UpdateData != nil {
		optional := []struct {
			field string
			value *int64
		}{
			{"supplier_id", req.UpdateData.SupplierID},
			{"customer_id", req.UpdateData.CustomerID},
			{"supplier_warehouse_id", req.UpdateData.SupplierWarehouseID},
			{"customer_warehouse_id", req.UpdateData.CustomerWarehouseID},
		}
		for _, ref := range optional {
			if ref.value != nil && *ref.value <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": ref.field + " must be a positive integer"})
				return
			}
		}
		input = service.UpdateAgreementInput{
			SupplierID:          req.UpdateData.SupplierID,
			CustomerID:          req.UpdateData.CustomerID,
			SupplierWarehouseID: req.UpdateData.SupplierWarehouseID,
			CustomerWarehouseID: req.UpdateData.CustomerWarehouseID,
			Status:              req.UpdateData.Status,
		}
	}

	view, err := h.agreements.Update(c.Request.Context(), id, input, req.Materials)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.agreements.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) exportExcel(c *gin.Context) {
	result, err := h.agreements.ExportExcel(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.agreements.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrStorage):
		h.log.Error().Err(err).Msg("storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		h.log.Error().Err(err).Msg("agreement operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
