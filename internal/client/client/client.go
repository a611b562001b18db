package client

import (
	"context"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
)

// Client is the generation service contract used by the services layer.
type Client interface {
	LoadUser(ctx context.Context) (*models.Credits, error)
	ListMockups(ctx context.Context) ([]models.MockupSummary, error)
	GenerateMockup(ctx context.Context, req models.GenerateRequest) (*models.MockupResponse, error)
	EditMockup(ctx context.Context, req models.EditRequest) (*models.MockupResponse, error)
	GetMockup(ctx context.Context, screenID string) (*models.MockupResponse, error)
}

// TokenSource hands out a bearer token right before each call.
// Implementations return ErrAuthTokenMissing when the user is signed out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }
