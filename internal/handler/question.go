package handler

import (
	"net/http"

	"github.com/askbox/askbox/internal/ctxkeys"
	"github.com/askbox/askbox/internal/service"
)

type QuestionHandler struct {
	questionService *service.QuestionService
	userService     *service.UserService
}

func NewQuestionHandler(questionService *service.QuestionService, userService *service.UserService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		userService:     userService,
	}
}

type createQuestionRequest struct {
	Content             string `json:"content" validate:"required,max=4000"`
	IsAnonymous         bool   `json:"isAnonymous"`
	AnonymousAvatarSeed string `json:"anonymousAvatarSeed" validate:"omitempty,max=64"`
}

// Create submits a question to the user named in the path. Signed-out
// visitors may ask too, subject to the recipient's security level.
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	recipient, err := h.userService.ByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	sender := ctxkeys.ClerkID(r.Context())
	question, err := h.questionService.Create(r.Context(), service.CreateQuestionInput{
		RecipientClerkID:    recipient.ClerkID,
		SenderClerkID:       sender,
		Content:             req.Content,
		IsAnonymous:         req.IsAnonymous,
		AnonymousAvatarSeed: req.AnonymousAvatarSeed,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}

	view := question.ViewFor(sender)
	WriteJSON(w, http.StatusCreated, &view)
}

func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	question, err := h.questionService.ByID(r.Context(), r.PathValue("id"), ctxkeys.ClerkID(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, ok := pageFromQuery(r)
	if !ok {
		writeInvalidPage(w)
		return
	}

	items, err := h.questionService.Feed(r.Context(), ctxkeys.ClerkID(r.Context()), page)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *QuestionHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	page, ok := pageFromQuery(r)
	if !ok {
		writeInvalidPage(w)
		return
	}

	questions, err := h.questionService.Inbox(r.Context(), ctxkeys.ClerkID(r.Context()), page)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) Declined(w http.ResponseWriter, r *http.Request) {
	page, ok := pageFromQuery(r)
	if !ok {
		writeInvalidPage(w)
		return
	}

	questions, err := h.questionService.Declined(r.Context(), ctxkeys.ClerkID(r.Context()), page)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	question, err := h.questionService.SoftDelete(r.Context(), r.PathValue("id"), ctxkeys.ClerkID(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	question, err := h.questionService.Restore(r.Context(), r.PathValue("id"), ctxkeys.ClerkID(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, question)
}
