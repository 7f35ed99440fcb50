package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rrgdev/url-shortener/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type urlUseCase interface {
	CreateShortURL(ctx context.Context, fullURL string) (*entity.URL, error)
	ProcessRedirection(ctx context.Context, shortURLID string) (*url.URL, error)
	GetURLByShortURLID(ctx context.Context, shortURLID string) (*entity.URL, error)
	GetURLsByFullURL(ctx context.Context, fullURL string) ([]*entity.URL, error)
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
	baseURL  string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, baseURL string) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &urlHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (h *urlHandler) createShortURL(w http.ResponseWriter, r *http.Request) {
	var req createURLRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	rec, err := h.useCase.CreateShortURL(r.Context(), req.FullURL)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.toURLResponse(rec))
}

func (h *urlHandler) getURLByShortURLID(w http.ResponseWriter, r *http.Request) {
	shortURLID := chi.URLParam(r, "shortURLID")

	rec, err := h.useCase.GetURLByShortURLID(r.Context(), shortURLID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.toURLResponse(rec))
}

func (h *urlHandler) getURLsByFullURL(w http.ResponseWriter, r *http.Request) {
	fullURL := r.URL.Query().Get("full_url")

	recs, err := h.useCase.GetURLsByFullURL(r.Context(), fullURL)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	resp := make([]urlResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, h.toURLResponse(rec))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortURLID := chi.URLParam(r, "shortURLID")

	location, err := h.useCase.ProcessRedirection(r.Context(), shortURLID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, location.String(), http.StatusFound)
}

func (h *urlHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponseFor(err)
	if status >= http.StatusInternalServerError {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

func errorResponseFor(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, entity.ErrMissingField):
		return http.StatusBadRequest, missingFieldResponse
	case errors.Is(err, entity.ErrInvalidFormat):
		return http.StatusBadRequest, invalidFormatResponse
	case errors.Is(err, entity.ErrURLNotFound):
		return http.StatusNotFound, urlNotFoundResponse
	case errors.Is(err, entity.ErrIDGenerationExhausted):
		return http.StatusServiceUnavailable, idGenerationExhaustedResponse
	default:
		return http.StatusInternalServerError, serverErrorResponse
	}
}
