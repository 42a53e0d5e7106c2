package app

import (
	"net/http"

	"cinebook/api"
	"cinebook/internal/domain"
)

func (app *Application) GetMoviesHandler(w http.ResponseWriter, r *http.Request) {
	pagination := domain.Pagination{
		Page:     app.readIntQuery(r, "page", DefaultPage),
		PageSize: app.readIntQuery(r, "pageSize", DefaultPageSize),
	}

	if pagination.Page < 1 {
		pagination.Page = DefaultPage
	}
	if pagination.PageSize < 1 || pagination.PageSize > MaxPageSize {
		pagination.PageSize = DefaultPageSize
	}

	term := r.URL.Query().Get("term")

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), term, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   make([]api.MovieResponse, len(movies)),
		Metadata: toApiMetadata(metadata),
	}

	for i := range movies {
		resp.Movies[i] = toMovieResponse(&movies[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := &domain.Movie{
		Title:           input.Title,
		DurationMinutes: input.DurationMinutes,
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("movie created", "movie_id", movie.ID, "title", movie.Title)

	resp := toMovieResponse(movie)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:              movie.ID,
		Title:           movie.Title,
		DurationMinutes: movie.DurationMinutes,
		CreatedAt:       movie.CreatedAt,
	}
}
