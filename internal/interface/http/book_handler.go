package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookbuddy/bookbuddy-api/internal/application"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/internal/interface/middleware"
	"github.com/bookbuddy/bookbuddy-api/pkg/response"
	"github.com/bookbuddy/bookbuddy-api/pkg/validation"
)

// BookHandler serves the catalogue and the owner listing operations.
type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

// List is the browse page: ?q= searches title/author/genre, ?location=
// filters by place, ?include_unavailable=true shows everything.
func (h *BookHandler) List(c *gin.Context) {
	includeUnavailable, _ := strconv.ParseBool(c.Query("include_unavailable"))
	books, err := h.Svc.List(application.ListFilter{
		Query:              c.Query("q"),
		Location:           c.Query("location"),
		IncludeUnavailable: includeUnavailable,
	})
	if err != nil {
		h.Logger.WithError(err).Error("list books failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list books", nil)
		return
	}
	response.Success(c, http.StatusOK, books, "books", gin.H{"count": len(books)})
}

func (h *BookHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "book not found", nil)
		return
	}
	response.Success(c, http.StatusOK, b, "book", nil)
}

// Mine is the dashboard data: every listing of the logged-in owner.
func (h *BookHandler) Mine(c *gin.Context) {
	books, err := h.Svc.ListByOwner(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.Logger.WithError(err).Error("list own books failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list books", nil)
		return
	}
	response.Success(c, http.StatusOK, books, "your books", gin.H{"count": len(books)})
}

type createBookRequest struct {
	Title    string `json:"title" form:"title" binding:"required"`
	Author   string `json:"author" form:"author" binding:"required"`
	Genre    string `json:"genre" form:"genre"`
	Location string `json:"location" form:"location" binding:"required"`
	Contact  string `json:"contact" form:"contact" binding:"required"`
	ImageURL string `json:"imageUrl" form:"imageUrl" binding:"omitempty,url"`
}

// Create lists a new book for the logged-in owner. The request is either
// JSON, or multipart form data with an optional cover file that is
// uploaded to GCS before the record is written.
func (h *BookHandler) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	owner := &entity.User{
		ID:   c.GetString(middleware.CtxUserIDKey),
		Name: c.GetString(middleware.CtxUserNameKey),
	}

	if file, err := c.FormFile("cover"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "unreadable cover file", nil)
			return
		}
		defer func() { _ = f.Close() }()
		url, err := h.Svc.UploadCover(c.Request.Context(), owner.ID, f, file.Filename, file.Header.Get("Content-Type"))
		if err != nil {
			h.Logger.WithError(err).Error("cover upload failed")
			response.Error[any](c, http.StatusBadGateway, "failed to upload cover", nil)
			return
		}
		req.ImageURL = url
	}

	b, err := h.Svc.Create(owner, application.CreateBookInput{
		Title:    req.Title,
		Author:   req.Author,
		Genre:    req.Genre,
		Location: req.Location,
		Contact:  req.Contact,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create book failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create book", nil)
		return
	}
	response.Success(c, http.StatusCreated, b, "book listed", nil)
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

func (h *BookHandler) SetAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.SetAvailability(c.Param("id"), c.GetString(middleware.CtxUserIDKey), *req.IsAvailable)
	if err != nil {
		h.writeBookError(c, err, "failed to update availability")
		return
	}
	response.Success(c, http.StatusOK, b, "availability updated", nil)
}

func (h *BookHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.writeBookError(c, err, "failed to delete book")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "book deleted", nil)
}

func (h *BookHandler) writeBookError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "book not found", nil)
	case errors.Is(err, application.ErrNotListingOwner):
		response.Error[any](c, http.StatusForbidden, "not your listing", nil)
	default:
		h.Logger.WithError(err).Error(fallback)
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}
