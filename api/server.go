// Package api exposes a launchpad device over a small REST surface.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	launchpad "github.com/lhpt2/launchpad-mini-control"
	"github.com/lhpt2/launchpad-mini-control/midi"
)

// Server holds the device the endpoints act on and the backend used for
// discovery listings.
type Server struct {
	dev     *launchpad.Device
	backend midi.Interface
}

func NewServer(dev *launchpad.Device, backend midi.Interface) *Server {
	return &Server{dev: dev, backend: backend}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())

	r.GET("/health", s.healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", s.healthCheck)
		v1.GET("/devices", s.listDevices)
		v1.GET("/colors", s.listColors)
		v1.POST("/grid/position", s.setPosition)
		v1.POST("/grid/all", s.setAll)
		v1.POST("/grid/row", s.setFirstRow)
		v1.POST("/grid/matrix", s.setMatrix)
		v1.POST("/grid/blackout", s.blackout)
		v1.POST("/device/reset", s.reset)
		v1.POST("/device/mode", s.selectMode)
		v1.POST("/device/duty-cycle", s.setDutyCycle)
		v1.POST("/device/buffer", s.setBufferMode)
		v1.POST("/device/buffer/swap", s.swapBuffers)
	}

	return r
}

// Run starts the server on the given port and blocks.
func (s *Server) Run(port int) error {
	return s.Router().Run(fmt.Sprintf(":%d", port))
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

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lpctl",
	})
}

func (s *Server) listDevices(c *gin.Context) {
	devs, err := s.backend.Devices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type deviceJSON struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Direction string `json:"direction"`
	}
	out := make([]deviceJSON, 0, len(devs))
	for _, d := range devs {
		out = append(out, deviceJSON{ID: d.ID, Name: d.Name, Direction: d.Dir.String()})
	}
	c.JSON(http.StatusOK, gin.H{"devices": out})
}

func (s *Server) listColors(c *gin.Context) {
	names := make([]string, 0, len(launchpad.Gradient))
	for _, col := range launchpad.Gradient {
		names = append(names, col.String())
	}
	c.JSON(http.StatusOK, gin.H{"colors": names})
}

type positionRequest struct {
	Row   uint8  `json:"row"`
	Col   uint8  `json:"col"`
	Color string `json:"color" binding:"required"`
}

func (s *Server) setPosition(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	color, ok := launchpad.ColorByName(req.Color)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown color %q", req.Color)})
		return
	}
	// The control row has 8 round buttons and no scene column.
	if req.Row > launchpad.ControlRow || req.Col > launchpad.SceneCol ||
		(req.Row == launchpad.ControlRow && req.Col >= launchpad.SceneCol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position out of range"})
		return
	}

	if err := s.dev.SetPosition(req.Row, req.Col, color); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type colorRequest struct {
	Color string `json:"color" binding:"required"`
}

func (s *Server) setAll(c *gin.Context) {
	s.runColorCommand(c, s.dev.SetAll)
}

func (s *Server) setFirstRow(c *gin.Context) {
	s.runColorCommand(c, s.dev.SetFirstRow)
}

func (s *Server) runColorCommand(c *gin.Context, cmd func(launchpad.Color) error) {
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	color, ok := launchpad.ColorByName(req.Color)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown color %q", req.Color)})
		return
	}

	if err := cmd(color); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type matrixRequest struct {
	Grid [8][9]string `json:"grid" binding:"required"`
}

func (s *Server) setMatrix(c *gin.Context) {
	var req matrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mat [8][9]launchpad.Color
	for row := range req.Grid {
		for col, name := range req.Grid[row] {
			color, ok := launchpad.ColorByName(name)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("unknown color %q at (%d,%d)", name, row, col),
				})
				return
			}
			mat[row][col] = color
		}
	}

	if err := s.dev.SetMatrix(mat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type blackoutRequest struct {
	Full bool `json:"full"`
}

func (s *Server) blackout(c *gin.Context) {
	var req blackoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	cmd := s.dev.Blackout
	if req.Full {
		cmd = s.dev.FullBlackout
	}
	if err := cmd(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) reset(c *gin.Context) {
	if err := s.dev.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (s *Server) selectMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, ok := launchpad.GridModeByName(req.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown grid mode %q", req.Mode)})
		return
	}

	if err := s.dev.SelectMode(mode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Out-of-range duty values are not rejected here; the device command
// clamps them, same as every other caller.
type dutyCycleRequest struct {
	Numerator   uint8 `json:"numerator"`
	Denominator uint8 `json:"denominator"`
}

func (s *Server) setDutyCycle(c *gin.Context) {
	var req dutyCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.dev.SetDutyCycle(req.Numerator, req.Denominator); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type bufferRequest struct {
	Setting string `json:"setting" binding:"required"`
	Copy    bool   `json:"copy"`
}

var bufferSettings = map[string]launchpad.BufferSetting{
	"zero-only":   launchpad.ZeroOnly,
	"one-active":  launchpad.OneActive,
	"zero-active": launchpad.ZeroActive,
	"one-only":    launchpad.OneOnly,
}

func (s *Server) setBufferMode(c *gin.Context) {
	var req bufferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, ok := bufferSettings[req.Setting]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown buffer setting %q", req.Setting)})
		return
	}

	if err := s.dev.SetBufferMode(setting, req.Copy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "doubleBuffered": s.dev.IsDoubleBuffered()})
}

type swapRequest struct {
	Copy bool `json:"copy"`
}

func (s *Server) swapBuffers(c *gin.Context) {
	var req swapRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := s.dev.SwapBuffers(req.Copy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "doubleBuffered": s.dev.IsDoubleBuffered()})
}
