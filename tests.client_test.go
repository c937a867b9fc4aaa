package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestServer starts an api server backed by an in-memory storage.
func newTestServer(t *testing.T, movies ...Movie) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newTestRouter(nil, NewMemoryMovieStorage(movies...)))
	t.Cleanup(srv.Close)
	return srv
}

func newTestMoviesClient(baseURL string) *MoviesClient {
	return NewMoviesClient(zap.NewNop(), &ClientConfig{BaseURL: baseURL + "/", Timeout: 5 * time.Second})
}

// TestMoviesClient ensures the http client covers every endpoint.
func TestMoviesClient(t *testing.T) {
	srv := newTestServer(t, testMovies...)
	mc := newTestMoviesClient(srv.URL)
	ctx := context.Background()

	movies, err := mc.List(ctx, "denis villeneuve")
	require.NoError(t, err)
	assert.Equal(t, testMovies[:2], movies)

	created, err := mc.Add(ctx, CreateMovieRequest{Title: "Alien", Director: "Ridley Scott", Year: 1979})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Available)

	got, err := mc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	title := "Alien: Director's Cut"
	updated, err := mc.Update(ctx, created.ID, MovieUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, created.Year, updated.Year)

	rented, err := mc.Rent(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, rented.Available)

	_, err = mc.Rent(ctx, created.ID)
	var apiErr *APIClientError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, CodeMovieAlreadyRented, apiErr.Code)

	returned, err := mc.Return(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, returned.Available)

	deleted, err := mc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = mc.Get(ctx, created.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, CodeMovieNotFound, apiErr.Code)
}

// TestMoviesClient_Unreachable ensures transport failures are reported.
func TestMoviesClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := newTestMoviesClient(url).List(context.Background(), "")
	assert.Error(t, err)
	var apiErr *APIClientError
	assert.False(t, errors.As(err, &apiErr))
}

// newTestCatalog returns a catalog over mocked api whose list returns movies.
func newTestCatalog(api *MockMoviesAPI, ui *MockUI, searches *[]string) *Catalog {
	api.ListFunc = func(ctx context.Context, search string) ([]Movie, error) {
		*searches = append(*searches, search)
		return testMovies, nil
	}
	return NewCatalog(zap.NewNop(), api, ui)
}

// TestCatalog_Search ensures the search term drives the fetches.
func TestCatalog_Search(t *testing.T) {
	var searches []string
	c := newTestCatalog(&MockMoviesAPI{}, &MockUI{}, &searches)

	require.NoError(t, c.Mount(context.Background()))
	require.NoError(t, c.SetSearch(context.Background(), "dune"))
	require.NoError(t, c.SetSearch(context.Background(), "dune"))
	assert.Equal(t, []string{"", "dune"}, searches)
	assert.Equal(t, testMovies, c.Movies)
	assert.False(t, c.Loading)
}

// TestCatalog_Submit ensures the add form is checked, sent then reset.
func TestCatalog_Submit(t *testing.T) {
	t.Run("incomplete form", func(t *testing.T) {
		var searches []string
		ui := &MockUI{}
		api := &MockMoviesAPI{AddFunc: func(ctx context.Context, req CreateMovieRequest) (Movie, error) {
			t.Fatal("add must not be called")
			return Movie{}, nil
		}}
		c := newTestCatalog(api, ui, &searches)
		c.Form.Title = "Dune"
		assert.Error(t, c.Submit(context.Background()))
		assert.Equal(t, []string{"Fill in all the fields correctly."}, ui.Alerts)
		assert.Empty(t, searches)
	})

	t.Run("complete form", func(t *testing.T) {
		var searches []string
		var sent CreateMovieRequest
		ui := &MockUI{}
		api := &MockMoviesAPI{AddFunc: func(ctx context.Context, req CreateMovieRequest) (Movie, error) {
			sent = req
			return Movie{ID: "m-9", Title: req.Title, Director: req.Director, Year: req.Year, Available: true}, nil
		}}
		c := newTestCatalog(api, ui, &searches)
		c.Search = "heat"
		c.Form = MovieForm{Title: "Dune", Director: "Denis Villeneuve", Year: 2021}

		require.NoError(t, c.Submit(context.Background()))
		assert.Equal(t, CreateMovieRequest{Title: "Dune", Director: "Denis Villeneuve", Year: 2021}, sent)
		assert.Equal(t, []string{"Movie added successfully!"}, ui.Alerts)
		assert.Equal(t, []string{""}, searches, "mutations fetch the full collection")
		assert.Equal(t, MovieForm{Year: DefaultFormYear}, c.Form)
	})

	t.Run("api failure", func(t *testing.T) {
		var searches []string
		ui := &MockUI{}
		api := &MockMoviesAPI{AddFunc: func(ctx context.Context, req CreateMovieRequest) (Movie, error) {
			return Movie{}, errors.New("connection refused")
		}}
		c := newTestCatalog(api, ui, &searches)
		c.Form = MovieForm{Title: "Dune", Director: "Denis Villeneuve", Year: 2021}
		assert.Error(t, c.Submit(context.Background()))
		assert.Equal(t, []string{"Failed to add movie. Check that the server is running."}, ui.Alerts)
		assert.Equal(t, "Dune", c.Form.Title, "form is kept on failure")
		assert.Empty(t, searches)
	})
}

// TestCatalog_Edit ensures only a non empty answer triggers an update.
func TestCatalog_Edit(t *testing.T) {
	var updates []MovieUpdate
	api := &MockMoviesAPI{UpdateFunc: func(ctx context.Context, id string, update MovieUpdate) (Movie, error) {
		updates = append(updates, update)
		return Movie{}, nil
	}}

	t.Run("cancelled prompt", func(t *testing.T) {
		var searches []string
		ui := &MockUI{PromptOK: false}
		c := newTestCatalog(api, ui, &searches)
		require.NoError(t, c.Mount(context.Background()))
		require.NoError(t, c.Edit(context.Background(), "m-1"))
		assert.Equal(t, "Arrival", ui.PromptDefault)
		assert.Empty(t, updates)
	})

	t.Run("new title", func(t *testing.T) {
		var searches []string
		ui := &MockUI{PromptOK: true, PromptAnswer: "Arrival (2016)"}
		c := newTestCatalog(api, ui, &searches)
		require.NoError(t, c.Mount(context.Background()))
		require.NoError(t, c.Edit(context.Background(), "m-1"))
		require.Len(t, updates, 1)
		assert.Equal(t, "Arrival (2016)", *updates[0].Title)
		assert.Nil(t, updates[0].Director)
		assert.Nil(t, updates[0].Year)
		assert.Nil(t, updates[0].Available)
		assert.Equal(t, []string{"Movie edited successfully!"}, ui.Alerts)
		assert.Equal(t, []string{"", ""}, searches)
	})

	t.Run("unknown movie", func(t *testing.T) {
		var searches []string
		ui := &MockUI{PromptOK: true, PromptAnswer: "x"}
		c := newTestCatalog(api, ui, &searches)
		assert.ErrorIs(t, c.Edit(context.Background(), "nope"), ErrMovieNotFound)
	})
}

// TestCatalog_Delete ensures deletion requires a confirmation.
func TestCatalog_Delete(t *testing.T) {
	var deleted []string
	api := &MockMoviesAPI{DeleteFunc: func(ctx context.Context, id string) (Movie, error) {
		deleted = append(deleted, id)
		return Movie{ID: id}, nil
	}}

	var searches []string
	ui := &MockUI{ConfirmAnswer: false}
	c := newTestCatalog(api, ui, &searches)
	require.NoError(t, c.Delete(context.Background(), "m-0"))
	assert.Empty(t, deleted)
	assert.Empty(t, ui.Alerts)

	ui.ConfirmAnswer = true
	require.NoError(t, c.Delete(context.Background(), "m-0"))
	assert.Equal(t, []string{"m-0"}, deleted)
	assert.Equal(t, []string{"Movie deleted successfully!"}, ui.Alerts)
	assert.Equal(t, []string{""}, searches)
}

// TestCatalog_RentAndReturn ensures availability actions alert their outcome.
func TestCatalog_RentAndReturn(t *testing.T) {
	var searches []string
	ui := &MockUI{}
	api := &MockMoviesAPI{
		RentFunc: func(ctx context.Context, id string) (Movie, error) {
			return Movie{}, &APIClientError{Status: 400, Code: CodeMovieAlreadyRented, Message: "movie is already rented"}
		},
		ReturnFunc: func(ctx context.Context, id string) (Movie, error) {
			return Movie{ID: id, Available: true}, nil
		},
	}
	c := newTestCatalog(api, ui, &searches)

	assert.Error(t, c.Rent(context.Background(), "m-1"))
	require.NoError(t, c.Return(context.Background(), "m-1"))
	assert.Equal(t, []string{"Failed to rent movie.", "Movie returned successfully!"}, ui.Alerts)
	assert.Equal(t, []string{""}, searches, "failed actions do not fetch")
}

// TestCatalog_Render ensures the table shows each movie status.
func TestCatalog_Render(t *testing.T) {
	c := NewCatalog(zap.NewNop(), &MockMoviesAPI{}, &MockUI{})
	var buf bytes.Buffer

	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "No movies found.\n", buf.String())

	c.Loading = true
	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "Loading movies...\n", buf.String())

	c.Loading = false
	c.Movies = testMovies
	buf.Reset()
	require.NoError(t, c.Render(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "Dune")
	assert.Contains(t, lines[1], "Available")
	assert.Contains(t, lines[2], "Arrival")
	assert.Contains(t, lines[2], "Rented")
}

// TestShell runs an interactive session against a live api.
func TestShell(t *testing.T) {
	srv := newTestServer(t)
	input := strings.Join([]string{
		"help",
		"add",
		"Dune",
		"Denis Villeneuve",
		"2021",
		"search villeneuve",
		"rent",
		"bogus",
		"quit",
	}, "\n") + "\n"

	var out bytes.Buffer
	ui := NewTerminalUI(strings.NewReader(input), &out, false)
	catalog := NewCatalog(zap.NewNop(), newTestMoviesClient(srv.URL), ui)
	require.NoError(t, NewShell(catalog, ui, &out).Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "No movies found.")
	assert.Contains(t, output, "edit <id>")
	assert.Contains(t, output, "Movie added successfully!")
	assert.Contains(t, output, "Denis Villeneuve")
	assert.Contains(t, output, "Available")
	assert.Contains(t, output, "A movie id is required.")
	assert.Contains(t, output, `Unknown command "bogus"`)
	require.Len(t, catalog.Movies, 1)
	assert.Equal(t, "villeneuve", catalog.Search)
}
