package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"
)

// DefaultFormYear is the release year the add form starts with.
const DefaultFormYear = 2025

var errIncompleteForm = errors.New("incomplete movie form")

// UI is the set of blocking interactions the catalog needs from its user.
type UI interface {
	Alert(message string)
	Confirm(message string) bool
	// Prompt asks for a value pre-filled with def. ok is false when cancelled.
	Prompt(message, def string) (value string, ok bool)
}

// MovieForm holds the fields of the add form.
type MovieForm struct {
	Title    string
	Director string
	Year     int
}

func defaultMovieForm() MovieForm {
	return MovieForm{Year: DefaultFormYear}
}

// Catalog keeps the local view of the movies collection and drives
// every user action through the api. After any mutation the full
// collection is fetched again, nothing is updated locally.
type Catalog struct {
	logger  *zap.Logger
	api     MoviesAPI
	ui      UI
	Movies  []Movie
	Loading bool
	Search  string
	Form    MovieForm
}

// NewCatalog provides an instance of Catalog.
func NewCatalog(logger *zap.Logger, api MoviesAPI, ui UI) *Catalog {
	return &Catalog{
		logger: logger,
		api:    api,
		ui:     ui,
		Movies: []Movie{},
		Form:   defaultMovieForm(),
	}
}

// Mount loads the collection filtered by the current search term.
func (c *Catalog) Mount(ctx context.Context) error {
	return c.fetch(ctx, c.Search)
}

// SetSearch stores a new search term and loads the matching movies.
// Nothing happens when the term did not change.
func (c *Catalog) SetSearch(ctx context.Context, term string) error {
	if term == c.Search {
		return nil
	}
	c.Search = term
	return c.fetch(ctx, term)
}

func (c *Catalog) fetch(ctx context.Context, term string) error {
	c.Loading = true
	defer func() { c.Loading = false }()
	movies, err := c.api.List(ctx, term)
	if err != nil {
		c.logger.Error("failed to fetch movies", zap.String("search", term), zap.Error(err))
		c.ui.Alert("Failed to load movies. Check that the server is running.")
		return err
	}
	c.Movies = movies
	return nil
}

// Submit sends the add form to the api then resets it.
func (c *Catalog) Submit(ctx context.Context) error {
	if c.Form.Title == "" || c.Form.Director == "" || c.Form.Year == 0 {
		c.ui.Alert("Fill in all the fields correctly.")
		return errIncompleteForm
	}

	movie, err := c.api.Add(ctx, CreateMovieRequest{
		Title:    c.Form.Title,
		Director: c.Form.Director,
		Year:     c.Form.Year,
	})
	if err != nil {
		c.logger.Error("failed to add movie", zap.Error(err))
		c.ui.Alert("Failed to add movie. Check that the server is running.")
		return err
	}
	c.logger.Debug("movie added", zap.String("movie.id", movie.ID))
	c.ui.Alert("Movie added successfully!")
	c.Form = defaultMovieForm()
	return c.fetch(ctx, "")
}

// Edit asks for a new title of a movie from the local collection.
// An empty or cancelled answer leaves the movie untouched.
func (c *Catalog) Edit(ctx context.Context, id string) error {
	i := indexOfMovie(c.Movies, id)
	if i < 0 {
		c.ui.Alert("Movie not found.")
		return ErrMovieNotFound
	}

	title, ok := c.ui.Prompt("Enter the new movie title:", c.Movies[i].Title)
	if !ok || title == "" {
		return nil
	}

	if _, err := c.api.Update(ctx, id, MovieUpdate{Title: &title}); err != nil {
		c.logger.Error("failed to edit movie", zap.String("movie.id", id), zap.Error(err))
		c.ui.Alert("Failed to edit movie.")
		return err
	}
	c.ui.Alert("Movie edited successfully!")
	return c.fetch(ctx, "")
}

// Delete removes a movie once the user confirmed it.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if !c.ui.Confirm("Are you sure you want to delete this movie?") {
		return nil
	}
	if _, err := c.api.Delete(ctx, id); err != nil {
		c.logger.Error("failed to delete movie", zap.String("movie.id", id), zap.Error(err))
		c.ui.Alert("Failed to delete movie.")
		return err
	}
	c.ui.Alert("Movie deleted successfully!")
	return c.fetch(ctx, "")
}

// Rent marks a movie as rented.
func (c *Catalog) Rent(ctx context.Context, id string) error {
	if _, err := c.api.Rent(ctx, id); err != nil {
		c.logger.Error("failed to rent movie", zap.String("movie.id", id), zap.Error(err))
		c.ui.Alert("Failed to rent movie.")
		return err
	}
	c.ui.Alert("Movie rented successfully!")
	return c.fetch(ctx, "")
}

// Return marks a movie as available again.
func (c *Catalog) Return(ctx context.Context, id string) error {
	if _, err := c.api.Return(ctx, id); err != nil {
		c.logger.Error("failed to return movie", zap.String("movie.id", id), zap.Error(err))
		c.ui.Alert("Failed to return movie.")
		return err
	}
	c.ui.Alert("Movie returned successfully!")
	return c.fetch(ctx, "")
}

// Render writes the current collection as a table.
func (c *Catalog) Render(w io.Writer) error {
	if c.Loading {
		_, err := fmt.Fprintln(w, "Loading movies...")
		return err
	}
	if len(c.Movies) == 0 {
		_, err := fmt.Fprintln(w, "No movies found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDIRECTOR\tYEAR\tSTATUS")
	for _, m := range c.Movies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", m.ID, m.Title, m.Director, m.Year, movieStatus(m))
	}
	return tw.Flush()
}

func movieStatus(m Movie) string {
	if m.Available {
		return "Available"
	}
	return "Rented"
}
