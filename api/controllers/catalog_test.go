package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/vidly-backend/internal/customers"
	"github.com/angelmondragon/vidly-backend/internal/genres"
	"github.com/angelmondragon/vidly-backend/internal/movies"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
)

type stubGenreService struct {
	genres.Service
	created genres.GenreInput
	deleted uuid.UUID
	err     error
}

func (s *stubGenreService) List(ctx context.Context) ([]genres.GenreDTO, error) {
	return []genres.GenreDTO{{ID: uuid.New(), Name: "Action"}, {ID: uuid.New(), Name: "Comedy"}}, s.err
}

func (s *stubGenreService) Create(ctx context.Context, input genres.GenreInput) (*genres.GenreDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &genres.GenreDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (s *stubGenreService) Delete(ctx context.Context, id uuid.UUID) (*genres.GenreDTO, error) {
	s.deleted = id
	if s.err != nil {
		return nil, s.err
	}
	return &genres.GenreDTO{ID: id, Name: "Thriller"}, nil
}

func TestGenreListAndCreate(t *testing.T) {
	svc := &stubGenreService{}

	rec := httptest.NewRecorder()
	GenreList(svc, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/genres", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeData[[]genres.GenreDTO](t, rec), 2)

	rec = httptest.NewRecorder()
	GenreCreate(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/genres", `{"name":"Thriller"}`, nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Thriller", svc.created.Name)
}

func TestGenreCreateRejectsShortName(t *testing.T) {
	svc := &stubGenreService{}

	rec := httptest.NewRecorder()
	GenreCreate(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/genres", `{"name":"War"}`, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, svc.created.Name)
}

func TestGenreDeleteNotFound(t *testing.T) {
	id := uuid.New()
	svc := &stubGenreService{err: pkgerrors.NotFound("genre", id)}

	rec := httptest.NewRecorder()
	GenreDelete(svc, nil).ServeHTTP(rec, newRequest(http.MethodDelete, "/", "", map[string]string{"id": id.String()}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, id, svc.deleted)
}

type stubCustomerService struct {
	customers.Service
	updatedID uuid.UUID
	updated   customers.CustomerInput
}

func (s *stubCustomerService) Update(ctx context.Context, id uuid.UUID, input customers.CustomerInput) (*customers.CustomerDTO, error) {
	s.updatedID, s.updated = id, input
	return &customers.CustomerDTO{ID: id, Name: input.Name, Phone: input.Phone, IsGold: input.IsGold}, nil
}

func TestCustomerUpdate(t *testing.T) {
	svc := &stubCustomerService{}
	id := uuid.New()

	rec := httptest.NewRecorder()
	req := newRequest(http.MethodPut, "/", `{"name":"Jane Doe","phone":"5551234","is_gold":true}`, map[string]string{"id": id.String()})
	CustomerUpdate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, svc.updatedID)
	dto := decodeData[customers.CustomerDTO](t, rec)
	require.True(t, dto.IsGold)
}

func TestCustomerUpdateRejectsShortPhone(t *testing.T) {
	svc := &stubCustomerService{}

	rec := httptest.NewRecorder()
	req := newRequest(http.MethodPut, "/", `{"name":"Jane Doe","phone":"12"}`, map[string]string{"id": uuid.NewString()})
	CustomerUpdate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := decodeAPIError(t, rec).Details.(map[string]any)
	require.Equal(t, "must be at least 7", details["phone"])
}

type stubMovieService struct {
	movies.Service
	movie   *movies.MovieDTO
	err     error
	toggled uuid.UUID
	created movies.MovieInput
}

func (s *stubMovieService) Get(ctx context.Context, id uuid.UUID) (*movies.MovieDTO, error) {
	return s.movie, s.err
}

func (s *stubMovieService) ToggleLiked(ctx context.Context, id uuid.UUID) (*movies.MovieDTO, error) {
	s.toggled = id
	if s.err != nil {
		return nil, s.err
	}
	toggled := *s.movie
	toggled.Liked = !toggled.Liked
	return &toggled, nil
}

func (s *stubMovieService) Create(ctx context.Context, input movies.MovieInput) (*movies.MovieDTO, error) {
	s.created = input
	return s.movie, s.err
}

func TestMovieToggleLiked(t *testing.T) {
	movie := &movies.MovieDTO{ID: uuid.New(), Title: "Airplane", NumberInStock: 2, DailyRentalRate: decimal.NewFromInt(2)}
	svc := &stubMovieService{movie: movie}

	rec := httptest.NewRecorder()
	MovieToggleLiked(svc, nil).ServeHTTP(rec, newRequest(http.MethodPatch, "/", "", map[string]string{"id": movie.ID.String()}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, movie.ID, svc.toggled)
	require.True(t, decodeData[movies.MovieDTO](t, rec).Liked)
}

func TestMovieCreateUnknownGenre(t *testing.T) {
	svc := &stubMovieService{err: pkgerrors.New(pkgerrors.CodeValidation, "genre not found")}
	genreID := uuid.New()

	body := `{"title":"Airplane","genre_id":"` + genreID.String() + `","daily_rental_rate":"2.5","number_in_stock":3}`
	rec := httptest.NewRecorder()
	MovieCreate(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/movies", body, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, genreID, svc.created.GenreID)
	require.True(t, decimal.RequireFromString("2.5").Equal(svc.created.DailyRentalRate))
	require.Equal(t, "genre not found", decodeAPIError(t, rec).Message)
}

func TestMovieGetWithoutService(t *testing.T) {
	rec := httptest.NewRecorder()
	MovieGet(nil, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/", "", map[string]string{"id": uuid.NewString()}))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
