package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cinelog/internal/auth"
	"cinelog/internal/errors"
	"cinelog/internal/service"
)

// MovieHandler handles the owner-scoped movie endpoints.
type MovieHandler struct {
	movieService service.MovieService
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(movieService service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// MovieRequest is the body of create (POST) and replace (PUT) requests.
type MovieRequest struct {
	Title    string   `json:"title" validate:"required"`
	Director *string  `json:"director"`
	Genre    *string  `json:"genre"`
	Year     *int     `json:"year"`
	Rating   *float64 `json:"rating"`
	Watched  *bool    `json:"watched"`
}

// MoviePatchRequest is the body of partial update (PATCH) requests. Absent
// fields stay untouched.
type MoviePatchRequest struct {
	Title    *string  `json:"title"`
	Director *string  `json:"director"`
	Genre    *string  `json:"genre"`
	Year     *int     `json:"year"`
	Rating   *float64 `json:"rating"`
	Watched  *bool    `json:"watched"`
}

func (r *MovieRequest) toInput() service.MovieInput {
	return service.MovieInput{
		Title:    r.Title,
		Director: r.Director,
		Genre:    r.Genre,
		Year:     r.Year,
		Rating:   r.Rating,
		Watched:  r.Watched,
	}
}

func (r *MoviePatchRequest) toPatch() service.MoviePatch {
	return service.MoviePatch{
		Title:    r.Title,
		Director: r.Director,
		Genre:    r.Genre,
		Year:     r.Year,
		Rating:   r.Rating,
		Watched:  r.Watched,
	}
}

func callerID(c echo.Context) (uint, error) {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid or expired token",
			Code:  "INVALID_TOKEN",
		})
	}
	return caller.ID, nil
}

func movieID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid movie id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// Create godoc
// @Summary Add a movie to the caller's collection
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MovieRequest true "Movie payload"
// @Success 201 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	movie, err := h.movieService.Create(c.Request().Context(), req.toInput(), ownerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("create movie: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, movie)
}

// List godoc
// @Summary List the caller's movies
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param genre query string false "Case-insensitive genre substring"
// @Param watched query string false "Filter by watched flag (true/false)"
// @Param rating query number false "Minimum rating"
// @Success 200 {array} model.Movie
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	filter := service.ParseMovieFilter(
		c.QueryParam("genre"),
		c.QueryParam("watched"),
		c.QueryParam("rating"),
	)

	movies, err := h.movieService.List(c.Request().Context(), ownerID, filter)
	if err != nil {
		c.Logger().Errorf("list movies: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, movies)
}

// GetByID godoc
// @Summary Get one of the caller's movies
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetByID(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	movie, err := h.movieService.GetByID(c.Request().Context(), id, ownerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("get movie: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, movie)
}

// Replace godoc
// @Summary Replace one of the caller's movies
// @Description Full overwrite: optional fields absent from the body are reset.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param request body MovieRequest true "Full movie payload"
// @Success 200 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [put]
func (h *MovieHandler) Replace(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "a replace request must include the full object, including title",
			Code:  "VALIDATION_FAILED",
		})
	}

	movie, err := h.movieService.Replace(c.Request().Context(), id, req.toInput(), ownerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("replace movie: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, movie)
}

// PartialUpdate godoc
// @Summary Update fields of one of the caller's movies
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param request body MoviePatchRequest true "Fields to change"
// @Success 200 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [patch]
func (h *MovieHandler) PartialUpdate(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req MoviePatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	movie, err := h.movieService.PartialUpdate(c.Request().Context(), id, req.toPatch(), ownerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Errorf("patch movie: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, movie)
}

// Delete godoc
// @Summary Delete one of the caller's movies
// @Tags movies
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	deleted, err := h.movieService.Delete(c.Request().Context(), id, ownerID)
	if err != nil {
		c.Logger().Errorf("delete movie: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "movie not found",
			Code:  "MOVIE_NOT_FOUND",
		})
	}
	return c.NoContent(http.StatusNoContent)
}
