package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapleridge/teller_app/internal/core/domain"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/dto"
	"github.com/mapleridge/teller_app/internal/middleware"
)

// vaultHandler handles HTTP requests related to the branch cash vault.
type vaultHandler struct {
	vaultService portssvc.VaultSvcFacade
}

func newVaultHandler(vs portssvc.VaultSvcFacade) *vaultHandler {
	return &vaultHandler{vaultService: vs}
}

// registerVaultRoutes registers routes related to the vault.
func registerVaultRoutes(rg *gin.RouterGroup, vaultService portssvc.VaultSvcFacade) {
	h := newVaultHandler(vaultService)

	vault := rg.Group("/vault")
	{
		vault.GET("", h.getVault)
		vault.POST("/restock", h.restock)
		vault.POST("/deposit-bills", h.depositBills)
	}
}

// getVault godoc
// @Summary Get the vault state
// @Description Retrieves bill counts, total value and any low denominations
// @Tags vault
// @Produce json
// @Success 200 {object} dto.VaultResponse
// @Router /vault [get]
func (h *vaultHandler) getVault(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	inv, err := h.vaultService.GetInventory(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "getVault")
		return
	}
	c.JSON(http.StatusOK, dto.ToVaultResponse(inv))
}

// restock godoc
// @Summary Restock a denomination
// @Description Sets one denomination's bill count outright
// @Tags vault
// @Accept json
// @Produce json
// @Param restock body dto.RestockRequest true "Denomination and new count"
// @Success 200 {object} dto.VaultResponse
// @Router /vault/restock [post]
func (h *vaultHandler) restock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Restock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.vaultService.Restock(c.Request.Context(), domain.Denomination(req.Denomination), req.Count)
	if err != nil {
		respondError(c, logger, err, "restock")
		return
	}

	logger.Info("Vault restocked", slog.Int64("denomination", req.Denomination), slog.Int64("count", req.Count))
	c.JSON(http.StatusOK, dto.ToVaultResponse(inv))
}

// depositBills godoc
// @Summary Deposit bills
// @Description Adds bills of one denomination to the vault
// @Tags vault
// @Accept json
// @Produce json
// @Param deposit body dto.DepositBillsRequest true "Denomination and bill count"
// @Success 200 {object} dto.VaultResponse
// @Router /vault/deposit-bills [post]
func (h *vaultHandler) depositBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DepositBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.vaultService.DepositBills(c.Request.Context(), domain.Denomination(req.Denomination), req.Count)
	if err != nil {
		respondError(c, logger, err, "depositBills")
		return
	}

	logger.Info("Bills deposited to vault", slog.Int64("denomination", req.Denomination), slog.Int64("count", req.Count))
	c.JSON(http.StatusOK, dto.ToVaultResponse(inv))
}
