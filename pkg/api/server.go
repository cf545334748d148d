// Package api provides the REST API server for dx7syx
package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/james-see/dx7syx/pkg/converter"
	"github.com/james-see/dx7syx/pkg/converter/devices"
	"github.com/james-see/dx7syx/pkg/dx7"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title DX7 SysEx API
// @version 1.0
// @description API for decoding and encoding Yamaha DX7 voice and cartridge dumps
// @host localhost:8080
// @BasePath /api/v1

// maxUpload is far above a cartridge dump wrapped in a MIDI file.
const maxUpload = 1 << 20

// StartServer starts the API server on the specified port
func StartServer(port int, channel dx7.Channel) error {
	return NewRouter(converter.New(devices.NewDX7(channel))).Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine serving every route
func NewRouter(conv *converter.Converter) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	h := &handler{conv: conv}

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/formats", listFormats)
		v1.GET("/voices/init", h.initVoice)
		v1.POST("/decode", h.decode)
		v1.POST("/encode", h.encode)
		v1.POST("/extract", h.extract)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

type handler struct {
	conv *converter.Converter
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dx7syx",
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns a list of supported file formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":     []string{"syx", "midi", "json", "yaml"},
		"conversions": converter.GetSupportedConversions(),
	})
}

// initVoice godoc
// @Summary INIT VOICE
// @Description Returns the INIT VOICE patch as a voice document
// @Tags voices
// @Produce json
// @Success 200 {object} converter.Document
// @Router /api/v1/voices/init [get]
func (h *handler) initVoice(c *gin.Context) {
	c.JSON(http.StatusOK, converter.NewVoiceDocument(dx7.DefaultChannel(), dx7.InitVoice()))
}

// decode godoc
// @Summary Decode a dump
// @Description Upload a .syx or .mid file and receive it as a JSON document
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Dump to decode"
// @Success 200 {object} converter.Document
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/decode [post]
func (h *handler) decode(c *gin.Context) {
	data, name, ok := readUpload(c)
	if !ok {
		return
	}

	format := converter.DetectFormat(name)
	if format == converter.FormatUnknown {
		format = converter.DetectFormatFromContent(data)
	}

	doc, err := h.conv.Decode(data, format)
	if err != nil {
		slog.Debug("decode failed", "file", name, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// encode godoc
// @Summary Encode a document
// @Description Post a JSON document and receive a .syx or .mid file
// @Tags convert
// @Accept json
// @Produce application/octet-stream
// @Param format query string false "Output format: syx (default) or midi"
// @Param document body converter.Document true "Document to encode"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/encode [post]
func (h *handler) encode(c *gin.Context) {
	format := converter.Format(strings.ToLower(c.DefaultQuery("format", "syx")))
	if format == "mid" {
		format = converter.FormatMIDI
	}
	if format != converter.FormatSyx && format != converter.FormatMIDI {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format"})
		return
	}

	var doc converter.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.conv.Encode(&doc, format)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ext := ".syx"
	contentType := "application/octet-stream"
	if format == converter.FormatMIDI {
		ext = ".mid"
		contentType = "audio/midi"
	}
	sendFile(c, string(doc.Kind)+ext, contentType, result)
}

// extract godoc
// @Summary Extract a voice
// @Description Upload a cartridge dump and receive one of its voices as a single voice dump
// @Tags convert
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Cartridge dump"
// @Param slot query int true "Voice slot (1-32)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/extract [post]
func (h *handler) extract(c *gin.Context) {
	slot, err := strconv.Atoi(c.Query("slot"))
	if err != nil || slot < 1 || slot > dx7.VoiceCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot must be 1-32"})
		return
	}

	data, name, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := h.conv.ExtractVoice(data, slot)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	sendFile(c, fmt.Sprintf("%s-%02d.syx", base, slot), "application/octet-stream", result)
}

func readUpload(c *gin.Context) ([]byte, string, bool) {
	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	// Read file content
	data, err := io.ReadAll(io.LimitReader(file, maxUpload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, "", false
	}
	return data, header.Filename, true
}

func sendFile(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	c.Data(http.StatusOK, contentType, data)
}
