package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"creatorhub/internal/models"
	"creatorhub/internal/storage"
)

// AgeVerified reports whether the interstitial has been confirmed. The
// flag is set once and never cleared by normal operation.
func (h HandlerSet) AgeVerified(c *gin.Context) {
	raw, err := h.store.Get(c.Request.Context(), models.KeyAgeVerified)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.log.Warn().Err(err).Msg("read age flag failed")
		}
		c.JSON(http.StatusOK, gin.H{"verified": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": string(raw) == "true"})
}

func (h HandlerSet) ConfirmAge(c *gin.Context) {
	if err := h.store.Set(c.Request.Context(), models.KeyAgeVerified, []byte("true")); err != nil {
		h.log.Warn().Err(err).Msg("persist age flag failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "persist_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}
