package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// sendError logs the failure of an action then sends the matching error response.
// The message names the failed action, the cause comes from err.
func (api *APIHandler) sendError(w http.ResponseWriter, r *http.Request, err error, action string, fields ...zap.Field) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	status, code := ErrorStatus(err)
	fields = append(fields, zap.String("request.id", requestID), zap.Error(err))
	api.logger.Error("failed to "+action, fields...)

	message := "failed to " + action
	if status < http.StatusInternalServerError {
		message += ": " + err.Error()
	}
	errResp := NewAPIError(requestID, status, code, message)
	if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// sendBadRequest answers a request whose body could not be decoded.
func (api *APIHandler) sendBadRequest(w http.ResponseWriter, r *http.Request, err error, action string) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	api.logger.Error("failed to "+action, zap.String("request.id", requestID), zap.Error(err))
	errResp := NewAPIError(requestID, http.StatusBadRequest, CodeInvalidBody, "failed to "+action+": "+err.Error())
	if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
	}
}

func (api *APIHandler) sendResponse(w http.ResponseWriter, r *http.Request, data interface{}) {
	if err := WriteResponse(r.Context(), w, http.StatusOK, data); err != nil {
		api.logger.Error("failed to send response",
			zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
			zap.Error(err),
		)
	}
}

// ListMovies returns the whole catalog or the movies matching the `search` query value.
func (api *APIHandler) ListMovies(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	search := r.URL.Query().Get("search")
	movies, err := api.movieService.List(r.Context(), search)
	if err != nil {
		api.sendError(w, r, err, "fetch movies", zap.String("movie.search", search))
		return
	}
	api.logger.Info("success to get movies",
		zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
		zap.String("movie.search", search),
		zap.Int("movie.total", len(movies)),
	)
	api.sendResponse(w, r, movies)
}

func (api *APIHandler) GetOneMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	movie, err := api.movieService.GetOne(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err, "fetch the movie", zap.String("movie.id", id))
		return
	}
	api.sendResponse(w, r, movie)
}

// CreateMovie adds a new available movie with a server generated id.
func (api *APIHandler) CreateMovie(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateMovieRequest
	if err := DecodeRequestBody(w, r, &req); err != nil {
		api.sendBadRequest(w, r, err, "create the movie")
		return
	}

	if err := ValidateCreateMovieRequestBody(&req); err != nil {
		api.sendError(w, r, err, "create the movie")
		return
	}

	movie, err := api.movieService.Add(r.Context(), Movie{
		ID:        api.idsHandler.Generate(""),
		Title:     req.Title,
		Director:  req.Director,
		Year:      req.Year,
		Available: true,
	})
	if err != nil {
		api.sendError(w, r, err, "create the movie")
		return
	}
	api.logger.Info("success to create movie",
		zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
		zap.String("movie.id", movie.ID),
	)
	api.sendResponse(w, r, movie)
}

// UpdateMovie applies a partial update. Omitted or null fields are left untouched
// and an empty body leaves the movie as it is.
func (api *APIHandler) UpdateMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	var update MovieUpdate
	if r.ContentLength != 0 {
		if err := DecodeRequestBody(w, r, &update); err != nil {
			api.sendBadRequest(w, r, err, "update the movie")
			return
		}
	}

	movie, err := api.movieService.Update(r.Context(), id, update)
	if err != nil {
		api.sendError(w, r, err, "update the movie", zap.String("movie.id", id))
		return
	}
	api.logger.Info("success to update movie",
		zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
		zap.String("movie.id", id),
	)
	api.sendResponse(w, r, movie)
}

func (api *APIHandler) DeleteMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	movie, err := api.movieService.Delete(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err, "delete the movie", zap.String("movie.id", id))
		return
	}
	api.logger.Info("success to delete movie",
		zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
		zap.String("movie.id", id),
	)
	api.sendResponse(w, r, movie)
}

func (api *APIHandler) RentMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	movie, err := api.movieService.Rent(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err, "rent the movie", zap.String("movie.id", id))
		return
	}
	api.logger.Info("success to rent movie",
		zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
		zap.String("movie.id", id),
	)
	api.sendResponse(w, r, movie)
}

func (api *APIHandler) ReturnMovie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	movie, err := api.movieService.Return(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err, "return the movie", zap.String("movie.id", id))
		return
	}
	api.logger.Info("success to return movie",
		zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
		zap.String("movie.id", id),
	)
	api.sendResponse(w, r, movie)
}
