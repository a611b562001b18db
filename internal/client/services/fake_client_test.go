package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
)

// fakeClient implements client.Client for the services tests.
type fakeClient struct {
	mu sync.Mutex

	LoadRet *models.Credits
	LoadErr error
	// LoadStarted receives once per LoadUser call when set;
	// LoadRelease must then be closed or sent to before LoadUser returns.
	LoadStarted chan struct{}
	LoadRelease chan struct{}
	LoadCalls   int

	ListRet   []models.MockupSummary
	ListErr   error
	ListCalls int

	GenResp  *models.MockupResponse
	GenErr   error
	GenCalls int
	LastGen  models.GenerateRequest

	EditResp  *models.MockupResponse
	EditErr   error
	EditCalls int
	LastEdit  models.EditRequest

	GetResp  *models.MockupResponse
	GetErr   error
	GetCalls int
	LastGet  string
}

func (f *fakeClient) LoadUser(ctx context.Context) (*models.Credits, error) {
	f.mu.Lock()
	f.LoadCalls++
	ret, err := f.LoadRet, f.LoadErr
	started, release := f.LoadStarted, f.LoadRelease
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	c := *ret
	return &c, nil
}

func (f *fakeClient) ListMockups(ctx context.Context) ([]models.MockupSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GenerateMockup(ctx context.Context, req models.GenerateRequest) (*models.MockupResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GenCalls++
	f.LastGen = req
	return f.GenResp, f.GenErr
}

func (f *fakeClient) EditMockup(ctx context.Context, req models.EditRequest) (*models.MockupResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EditCalls++
	f.LastEdit = req
	return f.EditResp, f.EditErr
}

func (f *fakeClient) GetMockup(ctx context.Context, screenID string) (*models.MockupResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	f.LastGet = screenID
	return f.GetResp, f.GetErr
}

func (f *fakeClient) loadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoadCalls
}

func intPtr(n int) *int { return &n }
