package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmkoval/kinoteka/internal/platform/middleware"
	requestutil "github.com/dmkoval/kinoteka/internal/platform/request"
	"github.com/dmkoval/kinoteka/internal/platform/respond"
	"github.com/dmkoval/kinoteka/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment routes. The router is expected to be
// nested under /titles/{titleID}/reviews/{reviewID}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listComments)
	router.Get("/{commentID}", handler.getComment)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createComment)
		authRoute.Patch("/{commentID}", handler.updateComment)
		authRoute.Delete("/{commentID}", handler.deleteComment)
	})
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), reviewID, claims.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), reviewID, commentID, requestutil.Claims(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), reviewID, commentID, requestutil.Claims(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
