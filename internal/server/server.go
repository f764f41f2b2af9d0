// Package server exposes the scan pipeline over HTTP. It is a thin
// presentation layer; all data shaping happens in scout and pricing.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"snapscout/internal/ebay"
	"snapscout/internal/export"
	"snapscout/internal/scout"
	"snapscout/internal/vision"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Scanner abstracts the scan service so handlers can be tested with a fake.
type Scanner interface {
	Scan(ctx context.Context, p scout.Params) *scout.Result
}

// Server holds the handler dependencies.
type Server struct {
	extractor  vision.Extractor
	scanner    Scanner
	rateSource scout.RateSource
}

// New creates a server.
func New(extractor vision.Extractor, scanner Scanner, rateSource scout.RateSource) *Server {
	return &Server{extractor: extractor, scanner: scanner, rateSource: rateSource}
}

// Router builds the gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/countries", s.listCountries)
		api.GET("/rates", s.currentRates)
		api.POST("/keyword", s.extractKeyword)
		api.POST("/search", s.search)
		api.POST("/export", s.exportSearch)
	}
	return r
}

func (s *Server) listCountries(c *gin.Context) {
	c.JSON(http.StatusOK, scout.DefaultCountries)
}

func (s *Server) currentRates(c *gin.Context) {
	c.JSON(http.StatusOK, s.rateSource.Current(c.Request.Context()))
}

// extractKeyword derives a search keyword from an uploaded product photo.
// Extraction failure is recoverable: the client shows the reason and lets
// the user retry or type a keyword manually.
func (s *Server) extractKeyword(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keyword, err := s.extractor.ExtractKeyword(c.Request.Context(), image, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Warn().Err(err).Msg("keyword extraction failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keyword": keyword})
}

type searchRequest struct {
	Keyword      string   `json:"keyword" binding:"required"`
	Marketplaces []string `json:"marketplaces"`
	Mode         string   `json:"mode"`
	LookbackDays int      `json:"lookback_days"`
	Limit        int      `json:"limit"`
}

func (s *Server) search(c *gin.Context) {
	result, ok := s.runScan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "no_data": result.NoData()})
}

func (s *Server) exportSearch(c *gin.Context) {
	result, ok := s.runScan(c)
	if !ok {
		return
	}

	workbook, err := export.Workbook(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", `attachment; filename="snapscout.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	if err := workbook.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to stream workbook")
	}
}

func (s *Server) runScan(c *gin.Context) (*scout.Result, bool) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	params, err := scanParams(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return s.scanner.Scan(c.Request.Context(), params), true
}

func scanParams(req searchRequest) (scout.Params, error) {
	mode := ebay.ModeActive
	switch req.Mode {
	case "", string(ebay.ModeActive):
	case string(ebay.ModeSold):
		mode = ebay.ModeSold
	default:
		return scout.Params{}, fmt.Errorf("unknown mode %q", req.Mode)
	}

	countries := scout.DefaultCountries
	if len(req.Marketplaces) > 0 {
		countries = scout.CountriesByID(req.Marketplaces)
		if len(countries) == 0 {
			return scout.Params{}, fmt.Errorf("no known marketplaces selected")
		}
	}

	return scout.Params{
		Keyword:      req.Keyword,
		Countries:    countries,
		Mode:         mode,
		LookbackDays: req.LookbackDays,
		Limit:        req.Limit,
		Progress: func(done, total int) {
			log.Info().
				Str("keyword", req.Keyword).
				Float64("progress", float64(done)/float64(total)).
				Msg("scan progress")
		},
	}, nil
}
