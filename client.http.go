package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// APIClientError is returned by MoviesClient when the api answers
// with a non-2xx status code.
type APIClientError struct {
	Status  int
	Code    ErrorCode
	Message string
}

func (e *APIClientError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%d %s): %s", e.Status, e.Code, e.Message)
}

// MoviesAPI is the set of remote operations the catalog relies on.
type MoviesAPI interface {
	List(ctx context.Context, search string) ([]Movie, error)
	Get(ctx context.Context, id string) (Movie, error)
	Add(ctx context.Context, req CreateMovieRequest) (Movie, error)
	Update(ctx context.Context, id string, update MovieUpdate) (Movie, error)
	Delete(ctx context.Context, id string) (Movie, error)
	Rent(ctx context.Context, id string) (Movie, error)
	Return(ctx context.Context, id string) (Movie, error)
}

// MoviesClient talks to the movies rental api over http.
type MoviesClient struct {
	logger  *zap.Logger
	baseURL string
	client  *http.Client
}

// NewMoviesClient provides an instance of MoviesClient.
func NewMoviesClient(logger *zap.Logger, config *ClientConfig) *MoviesClient {
	return &MoviesClient{
		logger:  logger,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		client:  &http.Client{Timeout: config.Timeout},
	}
}

// List retrieves movies whose title or director contains search.
func (mc *MoviesClient) List(ctx context.Context, search string) ([]Movie, error) {
	path := "/filmes"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	movies := []Movie{}
	if err := mc.do(ctx, http.MethodGet, path, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (mc *MoviesClient) Get(ctx context.Context, id string) (Movie, error) {
	var movie Movie
	err := mc.do(ctx, http.MethodGet, "/filmes/"+url.PathEscape(id), nil, &movie)
	return movie, err
}

func (mc *MoviesClient) Add(ctx context.Context, req CreateMovieRequest) (Movie, error) {
	var movie Movie
	err := mc.do(ctx, http.MethodPost, "/filmes", req, &movie)
	return movie, err
}

func (mc *MoviesClient) Update(ctx context.Context, id string, update MovieUpdate) (Movie, error) {
	var movie Movie
	err := mc.do(ctx, http.MethodPut, "/filmes/"+url.PathEscape(id), update, &movie)
	return movie, err
}

func (mc *MoviesClient) Delete(ctx context.Context, id string) (Movie, error) {
	var movie Movie
	err := mc.do(ctx, http.MethodDelete, "/filmes/"+url.PathEscape(id), nil, &movie)
	return movie, err
}

func (mc *MoviesClient) Rent(ctx context.Context, id string) (Movie, error) {
	var movie Movie
	err := mc.do(ctx, http.MethodPut, "/filmes/alugar/"+url.PathEscape(id), nil, &movie)
	return movie, err
}

func (mc *MoviesClient) Return(ctx context.Context, id string) (Movie, error) {
	var movie Movie
	err := mc.do(ctx, http.MethodPut, "/filmes/devolver/"+url.PathEscape(id), nil, &movie)
	return movie, err
}

// do sends the request and decodes a successful response body into out.
func (mc *MoviesClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, mc.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	mc.logger.Debug("sending request", zap.String("request.method", method), zap.String("request.path", path))
	resp, err := mc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach the api: %w", err)
	}
	defer resp.Body.Close()

	mc.logger.Debug("received response",
		zap.String("request.method", method),
		zap.String("request.path", path),
		zap.Int("request.status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIClientError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func decodeAPIClientError(resp *http.Response) error {
	apiErr := &APIClientError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}
	var envelope APIError
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Message != "" {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
