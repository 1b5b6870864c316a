package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/dto"
	"github.com/mapleridge/teller_app/internal/middleware"
)

// userHandler handles HTTP requests related to branch customers.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, as portssvc.AccountSvcFacade) *userHandler {
	return &userHandler{
		userService:    us,
		accountService: as,
	}
}

// registerUserRoutes registers routes related to users.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newUserHandler(userService, accountService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("/:userID", h.getUser)
		users.GET("/:userID/accounts", h.listAccounts)
		users.POST("/:userID/accounts", h.createAccount)
		users.POST("/:userID/deposit", h.depositToPrimary)
	}
}

// createUser godoc
// @Summary Register a customer
// @Description Registers a new branch customer
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Customer details"
// @Success 201 {object} dto.UserResponse
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "createUser")
		return
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user, nil))
}

// getUser godoc
// @Summary Get a customer
// @Description Retrieves a customer together with their accounts and net total
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	user, accounts, err := h.userService.GetUserAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "getUser")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user, accounts))
}

// listAccounts godoc
// @Summary List a customer's accounts
// @Description Retrieves every account the customer owns
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} dto.AccountResponse
// @Router /users/{userID}/accounts [get]
func (h *userHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	_, accounts, err := h.userService.GetUserAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "listAccounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// createAccount godoc
// @Summary Open an account
// @Description Opens a new account of the requested category for the customer
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param account body dto.CreateAccountRequest true "Account category"
// @Success 201 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{userID}/accounts [post]
func (h *userHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "createAccount")
		return
	}

	logger.Info("Account created",
		slog.String("user_id", userID),
		slog.Int64("account_number", account.AccountNumber),
		slog.String("category", string(account.Category)))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// depositToPrimary godoc
// @Summary Deposit to the primary account
// @Description Credits the customer's primary chequing account
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param amount body dto.AmountRequest true "Amount to deposit"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "User has no primary chequing account"
// @Router /users/{userID}/deposit [post]
func (h *userHandler) depositToPrimary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DepositToPrimary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.DepositToPrimary(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, logger, err, "depositToPrimary")
		return
	}

	logger.Info("Deposit routed to primary account",
		slog.String("user_id", userID),
		slog.Int64("account_number", account.AccountNumber),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
