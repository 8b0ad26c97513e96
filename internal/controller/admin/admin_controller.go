package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/parser"
	"github.com/nazhanhafiz/psikometrik/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminController exposes quiz-bank maintenance, user administration,
// transaction review and support-ticket handling.
type AdminController struct {
	quizSvc    service.AdminQuizService
	accountSvc service.AccountService
	subSvc     service.SubscriptionService
	ticketSvc  service.TicketService
}

func NewAdminController(
	quizSvc service.AdminQuizService,
	accountSvc service.AccountService,
	subSvc service.SubscriptionService,
	ticketSvc service.TicketService,
) *AdminController {
	return &AdminController{quizSvc: quizSvc, accountSvc: accountSvc, subSvc: subSvc, ticketSvc: ticketSvc}
}

// UploadQuizDocument godoc
// @Summary (Admin) Create a quiz from a free-text document
// @Description Runs the question-bank parser over an uploaded text blob and stores the detected questions as a new quiz.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param upload body dto.QuizUploadDTO true "Quiz title and raw document text"
// @Success 201 {object} dto.QuizAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 422 {object} dto.ErrorResponse "No questions detected in the document"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes/upload [post]
func (c *AdminController) UploadQuizDocument(ctx *gin.Context) {
	var req dto.QuizUploadDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UploadQuizDocument: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	quizResp, err := c.quizSvc.CreateFromDocument(req)
	if err != nil {
		var noQuestions *parser.NoQuestionsError
		if errors.As(err, &noQuestions) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
				Error:   "no questions detected in the uploaded document",
				Excerpt: noQuestions.Excerpt,
			})
			return
		}
		log.Error().Err(err).Str("title", req.Title).Msg("UploadQuizDocument: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create quiz: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, quizResp)
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz from structured JSON
// @Description Creates a quiz with pre-structured questions, bypassing the document parser.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param quiz body dto.QuizCreateDTO true "Quiz with questions"
// @Success 201 {object} dto.QuizAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes [post]
func (c *AdminController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuiz: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	quizResp, err := c.quizSvc.CreateQuiz(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create quiz: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, quizResp)
}

// ListQuizzes godoc
// @Summary (Admin) List all quizzes
// @Description Lists every quiz including inactive ones, with question counts.
// @Tags Admin - Quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes [get]
func (c *AdminController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizSvc.ListQuizzes()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve quizzes"})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary (Admin) Get a quiz with answers and points
// @Tags Admin - Quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id} [get]
func (c *AdminController) GetQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	quizResp, err := c.quizSvc.GetQuiz(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Quiz not found"})
		return
	}
	ctx.JSON(http.StatusOK, quizResp)
}

// UpdateQuiz godoc
// @Summary (Admin) Update quiz metadata
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param quiz body dto.QuizUpdateDTO true "Fields to update"
// @Success 200 {object} dto.QuizAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id} [put]
func (c *AdminController) UpdateQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuizUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	quizResp, err := c.quizSvc.UpdateQuiz(id, req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, quizResp)
}

// SetQuizActive godoc
// @Summary (Admin) Activate or deactivate a quiz
// @Description Inactive quizzes are hidden from candidates but keep their attempt history.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param active body dto.QuizActiveDTO true "Desired active state"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id}/active [patch]
func (c *AdminController) SetQuizActive(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuizActiveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := c.quizSvc.SetActive(id, *req.Active); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "quiz updated"})
}

// DeleteQuiz godoc
// @Summary (Admin) Delete a quiz
// @Description Deletes the quiz with its questions, options and attempt history.
// @Tags Admin - Quizzes
// @Param id path int true "Quiz ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id} [delete]
func (c *AdminController) DeleteQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.quizSvc.DeleteQuiz(id); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Updates prompt, Teras, options or best answer. Changing the best answer re-derives the option points.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Fields to update"
// @Success 200 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	questionResp, err := c.quizSvc.UpdateQuestion(id, req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, questionResp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Param id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.quizSvc.DeleteQuestion(id); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListUsers godoc
// @Summary (Admin) List users
// @Tags Admin - Users
// @Produce json
// @Success 200 {array} dto.UserDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.accountSvc.ListUsers()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve users"})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary (Admin) Update a user's role or plan
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UserUpdateDTO true "Fields to update"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UserUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	userResp, err := c.accountSvc.UpdateUser(id, req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, userResp)
}

// ListTransactions godoc
// @Summary (Admin) List payment transactions
// @Tags Admin - Payments
// @Produce json
// @Success 200 {array} dto.TransactionDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/transactions [get]
func (c *AdminController) ListTransactions(ctx *gin.Context) {
	txns, err := c.subSvc.ListTransactions()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve transactions"})
		return
	}
	ctx.JSON(http.StatusOK, txns)
}

// ListTickets godoc
// @Summary (Admin) List support tickets
// @Tags Admin - Tickets
// @Produce json
// @Param status query string false "Filter by status (open, replied, closed)"
// @Success 200 {array} dto.TicketDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tickets [get]
func (c *AdminController) ListTickets(ctx *gin.Context) {
	tickets, err := c.ticketSvc.List(ctx.Query("status"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve tickets"})
		return
	}
	ctx.JSON(http.StatusOK, tickets)
}

// ReplyTicket godoc
// @Summary (Admin) Reply to a support ticket
// @Tags Admin - Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param reply body dto.TicketReplyDTO true "Reply text"
// @Success 200 {object} dto.TicketDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Router /admin/tickets/{id}/reply [post]
func (c *AdminController) ReplyTicket(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.TicketReplyDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ticketResp, err := c.ticketSvc.Reply(id, req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, ticketResp)
}

// CloseTicket godoc
// @Summary (Admin) Close a support ticket
// @Tags Admin - Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.TicketDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Router /admin/tickets/{id}/close [post]
func (c *AdminController) CloseTicket(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	ticketResp, err := c.ticketSvc.Close(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, ticketResp)
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
