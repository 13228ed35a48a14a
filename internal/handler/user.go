package handler

import (
	"net/http"

	"github.com/askbox/askbox/internal/ctxkeys"
	"github.com/askbox/askbox/internal/model"
	"github.com/askbox/askbox/internal/service"
	"github.com/askbox/askbox/internal/social"
)

type UserHandler struct {
	userService     *service.UserService
	questionService *service.QuestionService
}

func NewUserHandler(userService *service.UserService, questionService *service.QuestionService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		questionService: questionService,
	}
}

type socialLinkView struct {
	Platform social.Platform `json:"platform"`
	Handle   string          `json:"handle"`
	Label    string          `json:"label"`
	URL      string          `json:"url"`
}

type profileResponse struct {
	User    *model.User               `json:"user"`
	Links   []socialLinkView          `json:"links"`
	Answers []*model.AnsweredQuestion `json:"answers"`
}

func linkViews(links social.Links) []socialLinkView {
	views := make([]socialLinkView, 0, len(links))
	for _, entry := range links {
		views = append(views, socialLinkView{
			Platform: entry.Platform,
			Handle:   entry.Handle,
			Label:    entry.DisplayLabel(),
			URL:      entry.URL(),
		})
	}
	return views
}

// Profile is the public profile page data: the user, resolved social links
// and the answered feed.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	page, ok := pageFromQuery(r)
	if !ok {
		writeInvalidPage(w)
		return
	}

	user, err := h.userService.ByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	answers, err := h.questionService.ProfileFeed(r.Context(), user.ClerkID, ctxkeys.ClerkID(r.Context()), page)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	public := *user
	public.ReferredBy = nil

	WriteJSON(w, http.StatusOK, profileResponse{
		User:    &public,
		Links:   linkViews(user.SocialLinks),
		Answers: answers,
	})
}

// meResponse adds the account holder's private fields to the user.
type meResponse struct {
	*model.User
	Email              *string          `json:"email"`
	NotifyNewQuestions bool             `json:"notifyNewQuestions"`
	SocialLinksForm    social.FormState `json:"socialLinksForm"`
}

func newMeResponse(user *model.User) meResponse {
	return meResponse{
		User:               user,
		Email:              user.Email,
		NotifyNewQuestions: user.NotifyNewQuestions,
		SocialLinksForm:    social.ParseInitial(user.SocialLinks),
	}
}

// currentUser loads the caller's row, creating it on first contact.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, err := h.userService.GetOrCreate(r.Context(), ctxkeys.ClerkID(r.Context()), r.Header.Get("Accept-Language"))
	if err != nil {
		WriteError(w, r, err)
		return nil, false
	}
	return user, true
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, newMeResponse(user))
}

type updateMeRequest struct {
	Username           *string           `json:"username" validate:"omitempty,max=30"`
	DisplayName        *string           `json:"displayName" validate:"omitempty,max=200"`
	Bio                *string           `json:"bio" validate:"omitempty,max=2000"`
	Locale             *string           `json:"locale" validate:"omitempty,max=35"`
	SignatureColor     *string           `json:"signatureColor" validate:"omitempty,max=7"`
	SocialLinks        *social.FormState `json:"socialLinks"`
	NotifyNewQuestions *bool             `json:"notifyNewQuestions"`
}

// UpdateMe applies a partial profile update. Rune limits and formats are
// checked by the service; tags here only bound the request size.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), current.ClerkID, service.ProfileUpdate{
		Username:           req.Username,
		DisplayName:        req.DisplayName,
		Bio:                req.Bio,
		Locale:             req.Locale,
		SignatureColor:     req.SignatureColor,
		SocialLinks:        req.SocialLinks,
		NotifyNewQuestions: req.NotifyNewQuestions,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, newMeResponse(user))
}

type securityLevelRequest struct {
	Level string `json:"level" validate:"required"`
}

func (h *UserHandler) UpdateSecurityLevel(w http.ResponseWriter, r *http.Request) {
	var req securityLevelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.userService.UpdateSecurityLevel(r.Context(), current.ClerkID, req.Level)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, newMeResponse(user))
}

type referrerRequest struct {
	Username string `json:"username" validate:"required,max=31"`
}

func (h *UserHandler) SetReferrer(w http.ResponseWriter, r *http.Request) {
	var req referrerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	err := h.userService.SetReferrer(r.Context(), current.ClerkID, req.Username)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"referrer": req.Username})
}
