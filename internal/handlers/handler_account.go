package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/dto"
	"github.com/mapleridge/teller_app/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts and their ledgers.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	undoService    portssvc.UndoSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, us portssvc.UndoSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		undoService:    us,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, undoService portssvc.UndoSvcFacade) {
	h := newAccountHandler(accountService, undoService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.POST("/:accountNumber/owners", h.addOwner)
		accounts.POST("/:accountNumber/deposit", h.deposit)
		accounts.POST("/:accountNumber/withdraw", h.withdraw)
		accounts.POST("/:accountNumber/transfer-in", h.transferIn)
		accounts.POST("/:accountNumber/transfer-out", h.transferOut)
		accounts.POST("/:accountNumber/pay-bill", h.payBill)
		accounts.POST("/:accountNumber/interest", h.applyInterest)
		accounts.GET("/:accountNumber/transactions", h.listTransactions)
		accounts.GET("/:accountNumber/transactions/last", h.getLastTransaction)
		accounts.POST("/:accountNumber/undo", h.undo)
	}
}

// accountNumberParam parses the :accountNumber path segment.
func accountNumberParam(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("accountNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account number"})
		return 0, false
	}
	return number, true
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves one account with its balance, category and owners
// @Tags accounts
// @Produce json
// @Param accountNumber path int true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountNumber} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountNumber)
	if err != nil {
		respondError(c, logger, err, "getAccount")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// addOwner godoc
// @Summary Add a second owner
// @Description Attaches another owner to the account, making it joint
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path int true "Account number"
// @Param owner body dto.AddOwnerRequest true "Owner to attach"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Owner limit reached"
// @Router /accounts/{accountNumber}/owners [post]
func (h *accountHandler) addOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var req dto.AddOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddOwner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.AddOwner(c.Request.Context(), accountNumber, req.UserID)
	if err != nil {
		respondError(c, logger, err, "addOwner")
		return
	}

	logger.Info("Owner added to account", slog.Int64("account_number", accountNumber), slog.String("user_id", req.UserID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits the account; deposits are not undoable and leave no ledger entry
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path int true "Account number"
// @Param amount body dto.AmountRequest true "Amount to deposit"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountNumber}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.Deposit(c.Request.Context(), accountNumber, req.Amount)
	if err != nil {
		respondError(c, logger, err, "deposit")
		return
	}

	logger.Info("Deposit applied", slog.Int64("account_number", accountNumber), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// withdraw godoc
// @Summary Withdraw cash
// @Description Debits the account and dispenses bills from the branch vault
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path int true "Account number"
// @Param amount body dto.WithdrawRequest true "Amount to withdraw, a positive multiple of 5"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 409 {object} map[string]string "Insufficient funds or cash, or amount not dispensable"
// @Router /accounts/{accountNumber}/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, bills, err := h.accountService.Withdraw(c.Request.Context(), accountNumber, req.Amount)
	if err != nil {
		respondError(c, logger, err, "withdraw")
		return
	}

	logger.Info("Withdrawal dispensed", slog.Int64("account_number", accountNumber), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.WithdrawalResponse{
		Account: dto.ToAccountResponse(account),
		Bills:   dto.ToBillsMap(bills),
	})
}

// transferIn godoc
// @Summary Transfer into an account
// @Description Pulls money from another account into this one
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path int true "Destination account number"
// @Param transfer body dto.TransferRequest true "Amount and source account"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountNumber}/transfer-in [post]
func (h *accountHandler) transferIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.TransferIn(c.Request.Context(), accountNumber, req.CounterpartyAccountNumber, req.Amount)
	if err != nil {
		respondError(c, logger, err, "transferIn")
		return
	}

	logger.Info("Transfer in applied",
		slog.Int64("account_number", accountNumber),
		slog.Int64("from_account_number", req.CounterpartyAccountNumber),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// transferOut godoc
// @Summary Transfer out of an account
// @Description Pushes money from this account into another
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path int true "Source account number"
// @Param transfer body dto.TransferRequest true "Amount and destination account"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Credit cards cannot transfer out"
// @Router /accounts/{accountNumber}/transfer-out [post]
func (h *accountHandler) transferOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransferOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.TransferOut(c.Request.Context(), accountNumber, req.CounterpartyAccountNumber, req.Amount)
	if err != nil {
		respondError(c, logger, err, "transferOut")
		return
	}

	logger.Info("Transfer out applied",
		slog.Int64("account_number", accountNumber),
		slog.Int64("to_account_number", req.CounterpartyAccountNumber),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// payBill godoc
// @Summary Pay a bill
// @Description Debits the account in favour of an external payee
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountNumber path int true "Account number"
// @Param bill body dto.PayBillRequest true "Amount and payee"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account category cannot pay bills"
// @Router /accounts/{accountNumber}/pay-bill [post]
func (h *accountHandler) payBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var req dto.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.PayBill(c.Request.Context(), accountNumber, req.Amount, req.Payee)
	if err != nil {
		respondError(c, logger, err, "payBill")
		return
	}

	logger.Info("Bill paid",
		slog.Int64("account_number", accountNumber),
		slog.String("payee", req.Payee),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// applyInterest godoc
// @Summary Apply monthly interest
// @Description Applies the monthly interest rate to a savings account
// @Tags accounts
// @Produce json
// @Param accountNumber path int true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Only savings accounts accrue interest"
// @Router /accounts/{accountNumber}/interest [post]
func (h *accountHandler) applyInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.ApplyMonthlyInterest(c.Request.Context(), accountNumber)
	if err != nil {
		respondError(c, logger, err, "applyInterest")
		return
	}

	logger.Info("Monthly interest applied", slog.Int64("account_number", accountNumber))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions godoc
// @Summary List an account's ledger
// @Description Retrieves the account's reversible ledger entries in commit order
// @Tags transactions
// @Produce json
// @Param accountNumber path int true "Account number"
// @Success 200 {array} dto.TransactionResponse
// @Router /accounts/{accountNumber}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	txns, err := h.accountService.ListTransactions(c.Request.Context(), accountNumber)
	if err != nil {
		respondError(c, logger, err, "listTransactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// getLastTransaction godoc
// @Summary Get the last ledger entry
// @Description Retrieves the tip of the account's ledger, the entry undo would reverse
// @Tags transactions
// @Produce json
// @Param accountNumber path int true "Account number"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Ledger is empty"
// @Router /accounts/{accountNumber}/transactions/last [get]
func (h *accountHandler) getLastTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	txn, err := h.accountService.GetLastTransaction(c.Request.Context(), accountNumber)
	if err != nil {
		respondError(c, logger, err, "getLastTransaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// undo godoc
// @Summary Undo the last transaction
// @Description Reverses the most recent ledger entry on the account
// @Tags transactions
// @Accept json
// @Produce json
// @Param accountNumber path int true "Account number"
// @Param request body dto.UndoRequest true "Requesting owner"
// @Success 200 {object} dto.UndoResponse
// @Failure 403 {object} map[string]string "Requester does not own the account"
// @Failure 409 {object} map[string]string "Nothing to undo"
// @Router /accounts/{accountNumber}/undo [post]
func (h *accountHandler) undo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := accountNumberParam(c)
	if !ok {
		return
	}

	var req dto.UndoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Undo", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, account, err := h.undoService.Undo(c.Request.Context(), req.UserID, accountNumber)
	if err != nil {
		respondError(c, logger, err, "undo")
		return
	}

	logger.Info("Transaction reversed",
		slog.Int64("account_number", accountNumber),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)))
	c.JSON(http.StatusOK, dto.UndoResponse{
		UndoneTransaction: dto.ToTransactionResponse(txn),
		Account:           dto.ToAccountResponse(account),
	})
}
