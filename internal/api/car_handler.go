package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-platform/internal/adapter"
	"github.com/drivehub/rental-platform/internal/service"
	"github.com/drivehub/rental-platform/internal/validate"
)

type CarHandler struct {
	inventory *service.InventoryService
	codec     *adapter.Codec
}

func NewCarHandler(inventory *service.InventoryService, codec *adapter.Codec) *CarHandler {
	return &CarHandler{inventory: inventory, codec: codec}
}

func (h *CarHandler) Create(c *gin.Context) {
	var payload validate.CarPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	car, err := h.inventory.CreateCar(c.Request.Context(), payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (h *CarHandler) Get(c *gin.Context) {
	car, err := h.inventory.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	body, err := h.codec.EncodeCar(*car)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *CarHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 0)

	result, err := h.inventory.ListCars(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CarHandler) Update(c *gin.Context) {
	var payload validate.CarPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	car, err := h.inventory.UpdateCar(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) Delete(c *gin.Context) {
	car, err := h.inventory.DeleteCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "car deleted", "car": car})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *CarHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.inventory.BulkDeleteCars(c.Request.Context(), req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type bulkUpdateRequest struct {
	IDs   []string            `json:"ids"`
	Patch validate.CarPayload `json:"patch"`
}

func (h *CarHandler) BulkUpdate(c *gin.Context) {
	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.inventory.BulkUpdateCars(c.Request.Context(), req.IDs, req.Patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
