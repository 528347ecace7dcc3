package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmkoval/kinoteka/internal/platform/middleware"
	requestutil "github.com/dmkoval/kinoteka/internal/platform/request"
	"github.com/dmkoval/kinoteka/internal/platform/respond"
	"github.com/dmkoval/kinoteka/internal/platform/sec"
	"github.com/dmkoval/kinoteka/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listGenres)
	router.Get("/{slug}", handler.getGenre)

	// Admin/Mod Only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleModerator))

		adminRoute.Post("/", handler.createGenre)
		adminRoute.Patch("/{slug}", handler.updateGenre)

		// Admin strict only
		adminRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{slug}", handler.deleteGenre)
	})
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	genres, total, err := handler.service.ListGenres(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genreSlug := requestutil.Param(request, "slug")

	genre, err := handler.service.GetGenre(request.Context(), genreSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	genreSlug := requestutil.Param(request, "slug")

	var input Genre
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateGenre(request.Context(), genreSlug, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	genreSlug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteGenre(request.Context(), genreSlug); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
