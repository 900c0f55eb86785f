package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/problemgen"
)

func (h *handlers) listProblems(c *gin.Context) {
	f := catalog.Filter{Topic: c.Query("topic")}
	if raw := c.Query("difficulty"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < catalog.MinDifficulty || d > catalog.MaxDifficulty {
			respondError(c, validationError("invalid difficulty", "difficulty must be an integer between 1 and 5"))
			return
		}
		f.Difficulty = d
	}

	problems, err := h.Catalog.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	if problems == nil {
		problems = []catalog.Problem{}
	}
	c.JSON(http.StatusOK, problems)
}

func (h *handlers) getProblem(c *gin.Context) {
	p, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) createProblem(c *gin.Context) {
	var p catalog.Problem
	if !bindBody(c, createProblemSchema, &p) {
		return
	}

	if err := h.Catalog.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) updateProblem(c *gin.Context) {
	var p catalog.Problem
	if !bindBody(c, updateProblemSchema, &p) {
		return
	}

	id := c.Param("id")
	if err := h.Catalog.Update(c.Request.Context(), id, p); err != nil {
		respondError(c, err)
		return
	}
	if p.ID == "" {
		p.ID = id
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) deleteProblem(c *gin.Context) {
	if err := h.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type generateProblemRequest struct {
	Topic      string `json:"topic"`
	Difficulty int    `json:"difficulty"`
}

func (h *handlers) generateProblem(c *gin.Context) {
	if h.Generator == nil {
		respondError(c, unavailable(CodeLLMUnavailable, "problem generation is disabled", "no LLM provider configured"))
		return
	}

	var req generateProblemRequest
	if !bindBody(c, generateProblemSchema, &req) {
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Catalog.List(ctx, catalog.Filter{Topic: req.Topic})
	if err != nil {
		respondError(c, err)
		return
	}
	texts := make([]string, len(existing))
	for i, p := range existing {
		texts[i] = p.Text
	}

	p, err := h.Generator.Generate(ctx, problemgen.Input{
		Topic:         req.Topic,
		Difficulty:    req.Difficulty,
		ExistingTexts: texts,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Catalog.Create(ctx, p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// bindBody reads, validates and decodes the request body. On failure the
// error response is already written.
func bindBody(c *gin.Context, schema *jsonschema.Schema, dst any) bool {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, validationError("unreadable request body", err.Error()))
		return false
	}
	if err := decodeBody(schema, raw, dst); err != nil {
		respondError(c, err)
		return false
	}
	return true
}
