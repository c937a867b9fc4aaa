package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockMovieStorage struct {
	LoadFunc  func(ctx context.Context) ([]Movie, error)
	SaveFunc  func(ctx context.Context, movies []Movie) error
	CloseFunc func() error
}

// Load mocks the behavior of reading the collection by the repository.
func (m *MockMovieStorage) Load(ctx context.Context) ([]Movie, error) {
	return m.LoadFunc(ctx)
}

// Save mocks the behavior of writing the collection by the repository.
func (m *MockMovieStorage) Save(ctx context.Context, movies []Movie) error {
	return m.SaveFunc(ctx, movies)
}

// Close mocks the behavior of releasing the repository.
func (m *MockMovieStorage) Close() error {
	if m.CloseFunc == nil {
		return nil
	}
	return m.CloseFunc()
}

// MockLockingMovieStorage is a MockMovieStorage which also implements Locker.
type MockLockingMovieStorage struct {
	MockMovieStorage
	LockFunc func(ctx context.Context) (func() error, error)
}

// Lock mocks the behavior of acquiring the repository lock.
func (m *MockLockingMovieStorage) Lock(ctx context.Context) (func() error, error) {
	return m.LockFunc(ctx)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	if prefix == "" {
		return muid.MockedUID
	}
	return prefix + ":" + muid.MockedUID
}

// MockMoviesAPI implements a fake MoviesAPI for the catalog.
type MockMoviesAPI struct {
	ListFunc   func(ctx context.Context, search string) ([]Movie, error)
	GetFunc    func(ctx context.Context, id string) (Movie, error)
	AddFunc    func(ctx context.Context, req CreateMovieRequest) (Movie, error)
	UpdateFunc func(ctx context.Context, id string, update MovieUpdate) (Movie, error)
	DeleteFunc func(ctx context.Context, id string) (Movie, error)
	RentFunc   func(ctx context.Context, id string) (Movie, error)
	ReturnFunc func(ctx context.Context, id string) (Movie, error)
}

func (m *MockMoviesAPI) List(ctx context.Context, search string) ([]Movie, error) {
	return m.ListFunc(ctx, search)
}

func (m *MockMoviesAPI) Get(ctx context.Context, id string) (Movie, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockMoviesAPI) Add(ctx context.Context, req CreateMovieRequest) (Movie, error) {
	return m.AddFunc(ctx, req)
}

func (m *MockMoviesAPI) Update(ctx context.Context, id string, update MovieUpdate) (Movie, error) {
	return m.UpdateFunc(ctx, id, update)
}

func (m *MockMoviesAPI) Delete(ctx context.Context, id string) (Movie, error) {
	return m.DeleteFunc(ctx, id)
}

func (m *MockMoviesAPI) Rent(ctx context.Context, id string) (Movie, error) {
	return m.RentFunc(ctx, id)
}

func (m *MockMoviesAPI) Return(ctx context.Context, id string) (Movie, error) {
	return m.ReturnFunc(ctx, id)
}

// MockUI records alerts and answers confirmations and prompts with preset values.
type MockUI struct {
	Alerts        []string
	ConfirmAnswer bool
	PromptAnswer  string
	PromptOK      bool
	PromptDefault string
}

func (m *MockUI) Alert(message string) {
	m.Alerts = append(m.Alerts, message)
}

func (m *MockUI) Confirm(_ string) bool {
	return m.ConfirmAnswer
}

func (m *MockUI) Prompt(_, def string) (string, bool) {
	m.PromptDefault = def
	return m.PromptAnswer, m.PromptOK
}
