package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Donny1114/Device-Management-System/internal/middleware"
	"github.com/Donny1114/Device-Management-System/internal/model"
	"github.com/Donny1114/Device-Management-System/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type exportFormat struct {
	ext         string
	contentType string
	write       func(ctx context.Context, w io.Writer) error
}

// DeviceHandler handles device registry and report requests
type DeviceHandler struct {
	devices service.DeviceService
	reports service.ReportService
	logger  *zap.Logger
	formats map[string]exportFormat
}

// NewDeviceHandler creates a new DeviceHandler
func NewDeviceHandler(devices service.DeviceService, reports service.ReportService, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{
		devices: devices,
		reports: reports,
		logger:  logger,
		formats: map[string]exportFormat{
			"xlsx": {ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", write: reports.WriteSpreadsheet},
			"pdf":  {ext: "pdf", contentType: "application/pdf", write: reports.WriteDocument},
			"csv":  {ext: "csv", contentType: "text/csv", write: reports.WriteCSV},
		},
	}
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	devices, err := h.devices.ListDevices(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list devices", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		internalError(c, "Failed to retrieve devices", err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (h *DeviceHandler) AddDevice(c *gin.Context) {
	var req model.AddDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	device, err := h.devices.AddDevice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "device_types": model.DeviceTypes})
			return
		}
		h.logger.Error("failed to add device", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		internalError(c, "Failed to add device", err)
		return
	}

	h.logger.Info("device added via API",
		zap.Int64("device_id", device.ID),
		zap.String("username", c.GetString(middleware.AuthUsernameKey)),
	)
	c.JSON(http.StatusCreated, device)
}

// ListDeviceTypes returns the device type catalogue
func (h *DeviceHandler) ListDeviceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, model.DeviceTypes)
}

// ExportDevices streams the whole registry as an attachment in the format
// named by the :format path parameter.
func (h *DeviceHandler) ExportDevices(c *gin.Context) {
	format, ok := h.formats[c.Param("format")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown export format, use xlsx, pdf or csv"})
		return
	}

	var buf bytes.Buffer
	if err := format.write(c.Request.Context(), &buf); err != nil {
		if errors.Is(err, service.ErrUnsupportedText) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to export devices",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("format", format.ext),
			zap.Error(err),
		)
		internalError(c, "Failed to export devices", err)
		return
	}

	fileName := fmt.Sprintf("devices_export_%s.%s", time.Now().Format("20060102_150405"), format.ext)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, format.contentType, buf.Bytes())
}

// RegisterDeviceRoutes registers device routes
func (h *DeviceHandler) RegisterDeviceRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	deviceRoutes := rg.Group("/devices")
	deviceRoutes.Use(authMiddleware, middleware.UserMiddleware())
	{
		deviceRoutes.GET("", h.ListDevices)
		deviceRoutes.POST("", h.AddDevice)
		deviceRoutes.GET("/types", h.ListDeviceTypes)
		deviceRoutes.GET("/export/:format", h.ExportDevices)
	}
}
