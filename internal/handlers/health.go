package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"creatorhub/internal/storage"
)

type healthResponse struct {
	Status      string `json:"status"`
	Store       string `json:"store"`
	Environment string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// A missing probe key is a healthy answer; only transport errors count.
	storeStatus := "ok"
	if _, err := h.store.Get(ctx, "healthz"); err != nil && !errors.Is(err, storage.ErrNotFound) {
		storeStatus = "error"
		h.log.Error().Err(err).Msg("store probe failed")
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Store:       storeStatus,
		Environment: h.cfg.Environment,
	})
}
