// Package v1 serves the catalog service over HTTP
package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/orchestrators/dex"
)

// HandlerConfig holds dependencies for the HTTP handler
type HandlerConfig struct {
	DexService dex.Service
	Logger     *slog.Logger
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.DexService == nil {
		return errors.InvalidArgument("dex service is required")
	}
	return nil
}

// Handler exposes dex.Service as JSON routes
type Handler struct {
	dexService dex.Service
	logger     *slog.Logger
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{dexService: cfg.DexService, logger: logger}, nil
}

// RegisterRoutes mounts the routes under rg, normally /v1
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resolve", h.resolve)
	rg.GET("/suggest", h.suggest)
	rg.GET("/suggest/popular", h.popular)
	rg.GET("/pokemon/:id", h.getPokemon)
	rg.GET("/evolution/:id", h.getEvolution)
	rg.GET("/forms/:id", h.getForms)
	rg.GET("/images/:id", h.getImages)
	rg.POST("/images/health", h.checkImages)
	rg.POST("/cache/reset", h.resetCaches)
	rg.POST("/tokens", h.newToken)
}

// ResolveResponse is the body of GET /resolve
type ResolveResponse struct {
	Results      []*catalog.Pokemon `json:"results"`
	RequestToken string             `json:"request_token,omitempty"`
	Stale        bool               `json:"stale"`
	Offline      bool               `json:"offline"`
}

// StageResponse is one evolution stage with its display requirement
type StageResponse struct {
	catalog.EvolutionStage
	Requirement string `json:"requirement"`
}

// ImageCheckRequest is the body of POST /images/health
type ImageCheckRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Form string `json:"form"`
}

// ErrorResponse is written for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) resolve(c *gin.Context) {
	evolutions, err := boolQuery(c, "evolutions")
	if err != nil {
		h.writeError(c, err)
		return
	}
	max, err := intQuery(c, "max")
	if err != nil {
		h.writeError(c, err)
		return
	}

	out, err := h.dexService.ResolveByQuery(c.Request.Context(), &dex.ResolveByQueryInput{
		Query:             c.Query("q"),
		IncludeEvolutions: evolutions,
		MaxResults:        max,
		RequestToken:      c.Query("token"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{
		Results:      out.Results,
		RequestToken: out.RequestToken,
		Stale:        out.Stale,
		Offline:      out.Offline,
	})
}

func (h *Handler) suggest(c *gin.Context) {
	h.writeSuggestions(c, &dex.SuggestInput{Query: c.Query("q")})
}

func (h *Handler) popular(c *gin.Context) {
	h.writeSuggestions(c, &dex.SuggestInput{Popular: true})
}

func (h *Handler) writeSuggestions(c *gin.Context, input *dex.SuggestInput) {
	max, err := intQuery(c, "max")
	if err != nil {
		h.writeError(c, err)
		return
	}
	input.MaxCount = max

	out, err := h.dexService.Suggest(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": out.Suggestions})
}

func (h *Handler) getPokemon(c *gin.Context) {
	out, err := h.dexService.FetchPokemon(c.Request.Context(), &dex.FetchPokemonInput{IDOrName: c.Param("id")})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Pokemon)
}

func (h *Handler) getEvolution(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out, err := h.dexService.FetchEvolutionChain(c.Request.Context(), &dex.FetchEvolutionChainInput{ID: id})
	if err != nil {
		h.writeError(c, err)
		return
	}

	stages := make([]StageResponse, 0, len(out.Stages))
	for _, s := range out.Stages {
		stages = append(stages, StageResponse{EvolutionStage: s, Requirement: catalog.RequirementText(s)})
	}
	c.JSON(http.StatusOK, gin.H{"stages": stages})
}

func (h *Handler) getForms(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out, err := h.dexService.SearchForms(c.Request.Context(), &dex.SearchFormsInput{ID: id})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out.Results})
}

func (h *Handler) getImages(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out, err := h.dexService.ImagesFor(c.Request.Context(), &dex.ImagesForInput{
		ID:   id,
		Name: c.Query("name"),
		Form: c.Query("form"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Images)
}

func (h *Handler) checkImages(c *gin.Context) {
	var req ImageCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body"))
		return
	}

	out, err := h.dexService.CheckImages(c.Request.Context(), &dex.ImagesForInput{
		ID:   req.ID,
		Name: req.Name,
		Form: req.Form,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": out.Images, "results": out.Results})
}

func (h *Handler) resetCaches(c *gin.Context) {
	out, err := h.dexService.ResetCaches(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": out.Cleared})
}

func (h *Handler) newToken(c *gin.Context) {
	out, err := h.dexService.NewRequestToken(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request_token": out.RequestToken})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code.String()})
}

func idParam(c *gin.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("id must be numeric, got %q", raw)
	}
	return id, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

func boolQuery(c *gin.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.InvalidArgumentf("%s must be a boolean, got %q", name, raw)
	}
	return b, nil
}
