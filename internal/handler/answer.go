package handler

import (
	"net/http"

	"github.com/askbox/askbox/internal/ctxkeys"
	"github.com/askbox/askbox/internal/service"
)

type AnswerHandler struct {
	answerService *service.AnswerService
}

func NewAnswerHandler(answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
	}
}

type createAnswerRequest struct {
	Content string `json:"content" validate:"required,max=12000"`
}

func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answer, err := h.answerService.Create(r.Context(), ctxkeys.ClerkID(r.Context()), r.PathValue("id"), req.Content)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, answer)
}

func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	answer, err := h.answerService.SoftDelete(r.Context(), r.PathValue("id"), ctxkeys.ClerkID(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, answer)
}

func (h *AnswerHandler) Restore(w http.ResponseWriter, r *http.Request) {
	answer, err := h.answerService.Restore(r.Context(), r.PathValue("id"), ctxkeys.ClerkID(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, answer)
}
