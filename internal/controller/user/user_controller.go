package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nazhanhafiz/psikometrik/config"
	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/service"
	"github.com/rs/zerolog/log"
)

// UserController is the candidate-facing API: browse quizzes, run timed
// sessions, submit attempts, pay for plans and raise support tickets.
type UserController struct {
	quizSvc    service.QuizService
	sessionSvc service.SessionService
	subSvc     service.SubmissionService
	paySvc     service.SubscriptionService
	ticketSvc  service.TicketService
	cfg        *config.Config
}

func NewUserController(
	quizSvc service.QuizService,
	sessionSvc service.SessionService,
	subSvc service.SubmissionService,
	paySvc service.SubscriptionService,
	ticketSvc service.TicketService,
	cfg *config.Config,
) *UserController {
	return &UserController{
		quizSvc:    quizSvc,
		sessionSvc: sessionSvc,
		subSvc:     subSvc,
		paySvc:     paySvc,
		ticketSvc:  ticketSvc,
		cfg:        cfg,
	}
}

// GetQuizzes godoc
// @Summary List active quizzes
// @Description Lists quizzes available to candidates, with question counts but without answers.
// @Tags Quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (c *UserController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizSvc.GetActiveQuizzes()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve quizzes"})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuizDetails godoc
// @Summary Get a quiz with its questions
// @Description Returns the quiz's questions and options. Best answers, points and explanations are never included.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found or inactive"
// @Router /quizzes/{quiz_id} [get]
func (c *UserController) GetQuizDetails(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	quizResp, err := c.quizSvc.GetQuizDetails(quizID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Quiz not found or inactive"})
		return
	}
	ctx.JSON(http.StatusOK, quizResp)
}

// StartSession godoc
// @Summary Start a timed quiz session
// @Description Opens a session with a deadline derived from the quiz's time limit.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param session body dto.SessionStartDTO true "User starting the session"
// @Success 201 {object} dto.SessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found or inactive"
// @Router /quizzes/{quiz_id}/sessions [post]
func (c *UserController) StartSession(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.SessionStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	sessionResp, err := c.sessionSvc.Start(ctx.Request.Context(), quizID, req.UserID)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("StartSession failed")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, sessionResp)
}

// GetSession godoc
// @Summary Get an in-progress session
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *UserController) GetSession(ctx *gin.Context) {
	sessionResp, err := c.sessionSvc.Get(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Session not found"})
		return
	}
	ctx.JSON(http.StatusOK, sessionResp)
}

// RecordAnswers godoc
// @Summary Record answers in a session
// @Description Saves (or overwrites) answers keyed by question number. Answers can be recorded after the deadline; the late flag is applied at submission.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answers body dto.SessionAnswersDTO true "Answer map"
// @Success 200 {object} dto.SessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id}/answers [put]
func (c *UserController) RecordAnswers(ctx *gin.Context) {
	var req dto.SessionAnswersDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	sessionResp, err := c.sessionSvc.RecordAnswers(ctx.Request.Context(), ctx.Param("session_id"), req.Answers)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Session not found"})
		return
	}
	ctx.JSON(http.StatusOK, sessionResp)
}

// SubmitAttempt godoc
// @Summary Submit answers for scoring
// @Description Scores the answer map immediately and queues AI feedback generation. Check the attempt later for the feedback text.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.AttemptSubmitDTO true "Answer map, optionally with the session ID"
// @Success 201 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *UserController) SubmitAttempt(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	attemptResp, err := c.subSvc.SubmitAttempt(quizID, req)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("SubmitAttempt: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to submit attempt: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, attemptResp)
}

// GetAttempt godoc
// @Summary Get a scored attempt
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *UserController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	attemptResp, err := c.subSvc.GetAttemptDetails(attemptID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Attempt not found"})
		return
	}
	ctx.JSON(http.StatusOK, attemptResp)
}

// GetMyAttempts godoc
// @Summary Get a user's attempt history
// @Tags Attempts
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts [get]
func (c *UserController) GetMyAttempts(ctx *gin.Context) {
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	attempts, err := c.subSvc.GetUserAttempts(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve attempts"})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetMyQuizAttempts godoc
// @Summary Get a user's attempts for one quiz
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/my-attempts [get]
func (c *UserController) GetMyQuizAttempts(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	attempts, err := c.subSvc.GetUserAttemptsForQuiz(quizID, userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve attempts"})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// ClearMyAttempts godoc
// @Summary Clear a user's attempt history
// @Tags Attempts
// @Param user_id query int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts [delete]
func (c *UserController) ClearMyAttempts(ctx *gin.Context) {
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	if err := c.subSvc.ClearUserAttempts(userID); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to clear attempts"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Start a plan checkout
// @Description Creates a payment bill and returns the gateway URL the candidate should be sent to.
// @Tags Payments
// @Accept json
// @Produce json
// @Param checkout body dto.CheckoutDTO true "User and plan code"
// @Success 201 {object} dto.CheckoutResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or unknown plan"
// @Failure 500 {object} dto.ErrorResponse "Payment gateway error"
// @Router /payments/checkout [post]
func (c *UserController) Checkout(ctx *gin.Context) {
	var req dto.CheckoutDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	checkoutResp, err := c.paySvc.Checkout(ctx.Request.Context(), req, c.cfg.Billplz.RedirectURL, c.cfg.Billplz.CallbackURL)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("Checkout failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to start checkout: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, checkoutResp)
}

// PaymentRedirect godoc
// @Summary Payment gateway redirect target
// @Description The gateway redirects the candidate's browser here after payment. The signed parameters decide whether the transaction is marked paid or failed.
// @Tags Payments
// @Produce json
// @Success 200 {object} dto.TransactionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid or unsigned redirect"
// @Router /payments/redirect [get]
func (c *UserController) PaymentRedirect(ctx *gin.Context) {
	params := make(map[string]string)
	for key, values := range ctx.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	signature := params["billplz[x_signature]"]

	txnResp, err := c.paySvc.HandleRedirect(params, signature)
	if err != nil {
		log.Warn().Err(err).Msg("PaymentRedirect rejected")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, txnResp)
}

// GetMyTransactions godoc
// @Summary Get a user's payment history
// @Tags Payments
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.TransactionDTO
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid user_id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/transactions [get]
func (c *UserController) GetMyTransactions(ctx *gin.Context) {
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	txns, err := c.paySvc.ListUserTransactions(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve transactions"})
		return
	}
	ctx.JSON(http.StatusOK, txns)
}

// OpenTicket godoc
// @Summary Open a support ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param ticket body dto.TicketCreateDTO true "Subject and body"
// @Success 201 {object} dto.TicketDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets [post]
func (c *UserController) OpenTicket(ctx *gin.Context) {
	var req dto.TicketCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ticketResp, err := c.ticketSvc.Open(req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to open ticket: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, ticketResp)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

func queryUserID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Query("user_id")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user_id query parameter is required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user_id format"})
		return 0, false
	}
	return uint(id), true
}
