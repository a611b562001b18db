// Package services contains the application services of the screenmock
// client: the credit ledger cache and the generation session controller.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/screenmock/internal/client/client"
	"github.com/dmitrijs2005/screenmock/internal/client/handoff"
	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/client/repositories/history"
	"github.com/dmitrijs2005/screenmock/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/screenmock/internal/logging"
)

type State string

const (
	StateIdle           State = "idle"
	StateGenerating     State = "generating"
	StateReadyToPreview State = "ready_to_preview"
	StateEditing        State = "editing"
	StateErrored        State = "errored"
)

const (
	opGenerate = "generate"
	opEdit     = "edit"
	opLoad     = "load"
)

var errMissingScreenID = errors.New("response carries no screen id")

// SessionService drives the generate → preview → edit loop.
//
// Contract:
//   - Generate: enrich the prompt with device metadata and request a new
//     artifact. Blank prompts fail with ErrEmptyPrompt before any call.
//   - Edit: revise an artifact by id (blank id means the active one).
//   - LoadExisting: fetch a previously generated artifact by id.
//   - ListMine: the user's mockups in one call.
//   - Snapshot: state, active artifact and ledger as one consistent view.
//   - Leave: return to Idle when the user navigates away.
//
// On success the handoff slot and the credit ledger are updated together;
// on failure neither is touched.
type SessionService interface {
	Generate(ctx context.Context, prompt string, device models.DeviceContext) (*models.Artifact, error)
	Edit(ctx context.Context, screenID, prompt string) (*models.Artifact, error)
	LoadExisting(ctx context.Context, screenID string) (*models.Artifact, error)
	ListMine(ctx context.Context) ([]models.MockupSummary, error)
	LastScreenID(ctx context.Context) (string, bool)
	Snapshot() Snapshot
	Leave()
}

// Snapshot is a consistent view of the controller and the ledger.
type Snapshot struct {
	State   State
	Active  *models.Artifact
	Credits *models.Credits
	Err     error
}

type SessionOptions struct {
	ChatID string
	// HistoryKeep caps the local history table; <= 0 keeps everything.
	HistoryKeep int
	// History and Metadata are optional.
	History  history.Repository
	Metadata metadata.Repository
}

type sessionService struct {
	client  client.Client
	credits CreditService
	slots   *handoff.Store
	opts    SessionOptions
	logger  logging.Logger

	mu      sync.Mutex
	state   State
	active  *models.Artifact
	lastErr error
}

func NewSessionService(c client.Client, credits CreditService, slots *handoff.Store, opts SessionOptions, logger logging.Logger) SessionService {
	if opts.ChatID == "" {
		opts.ChatID = DefaultChatID
	}
	return &sessionService{
		client:  c,
		credits: credits,
		slots:   slots,
		opts:    opts,
		logger:  logger.With("module", "session"),
		state:   StateIdle,
	}
}

func (s *sessionService) Generate(ctx context.Context, prompt string, device models.DeviceContext) (*models.Artifact, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	s.begin(StateGenerating)
	req := BuildGenerateRequest(s.opts.ChatID, prompt, device)
	s.logger.Info(ctx, "generating mockup", "platform", req.DeviceInfo.Platform, "model", req.DeviceInfo.Model)

	resp, err := s.client.GenerateMockup(ctx, req)
	return s.finish(ctx, opGenerate, models.OriginGenerated, resp, err)
}

func (s *sessionService) Edit(ctx context.Context, screenID, prompt string) (*models.Artifact, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	screenID = strings.TrimSpace(screenID)
	if screenID == "" {
		s.mu.Lock()
		if s.active != nil {
			screenID = s.active.ScreenID
		}
		s.mu.Unlock()
		if screenID == "" {
			return nil, ErrNoActiveArtifact
		}
	}

	s.begin(StateEditing)
	s.logger.Info(ctx, "editing mockup", "screen_id", screenID)

	resp, err := s.client.EditMockup(ctx, models.EditRequest{ScreenID: screenID, UserPrompt: prompt})
	return s.finish(ctx, opEdit, models.OriginEdited, resp, err)
}

func (s *sessionService) LoadExisting(ctx context.Context, screenID string) (*models.Artifact, error) {
	screenID = strings.TrimSpace(screenID)
	if screenID == "" {
		return nil, ErrNoActiveArtifact
	}

	resp, err := s.client.GetMockup(ctx, screenID)
	if err == nil && resp.ScreenID == "" {
		// get-mockup may echo only the markup
		resp.ScreenID = screenID
	}
	return s.finish(ctx, opLoad, models.OriginEdited, resp, err)
}

func (s *sessionService) ListMine(ctx context.Context) ([]models.MockupSummary, error) {
	return s.client.ListMockups(ctx)
}

func (s *sessionService) LastScreenID(ctx context.Context) (string, bool) {
	if s.opts.Metadata == nil {
		return "", false
	}
	id, ok, err := s.opts.Metadata.Get(ctx, metadata.KeyLastScreenID)
	if err != nil {
		s.logger.Warn(ctx, "failed to read last screen id", "error", err)
		return "", false
	}
	return id, ok && id != ""
}

func (s *sessionService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active *models.Artifact
	if s.active != nil {
		a := *s.active
		active = &a
	}
	return Snapshot{
		State:   s.state,
		Active:  active,
		Credits: s.credits.Read(),
		Err:     s.lastErr,
	}
}

func (s *sessionService) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.active = nil
	s.lastErr = nil
}

func (s *sessionService) begin(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.lastErr = nil
}

// finish applies the outcome of a generate, edit or load call.
func (s *sessionService) finish(ctx context.Context, op string, origin models.Origin, resp *models.MockupResponse, err error) (*models.Artifact, error) {
	if err == nil && (resp == nil || resp.ScreenID == "") {
		err = errMissingScreenID
	}
	if err != nil {
		err = classify(op, err)
		s.mu.Lock()
		s.state = StateErrored
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Warn(ctx, "mockup request failed", "op", op, "error", err)
		return nil, err
	}

	art := &models.Artifact{ScreenID: resp.ScreenID, Markup: resp.HTML, Origin: origin}

	s.mu.Lock()
	s.slots.Write(origin, art.Markup)
	if resp.HasCredits() {
		s.credits.ApplyRemaining(*resp.RemainingScreenCredits, *resp.RemainingRevisionCredits)
	}
	active := *art
	s.active = &active
	s.state = StateReadyToPreview
	s.mu.Unlock()

	s.logger.Info(ctx, "mockup ready", "op", op, "screen_id", art.ScreenID, "bytes", len(art.Markup))
	s.remember(ctx, art)
	return art, nil
}

// remember persists the artifact locally. Failures are logged only.
func (s *sessionService) remember(ctx context.Context, art *models.Artifact) {
	if s.opts.Metadata != nil {
		if err := s.opts.Metadata.Set(ctx, metadata.KeyLastScreenID, art.ScreenID); err != nil {
			s.logger.Warn(ctx, "failed to save last screen id", "error", err)
		}
	}
	if s.opts.History != nil {
		rec := &models.HistoryRecord{ScreenID: art.ScreenID, Origin: art.Origin, Markup: art.Markup}
		if err := s.opts.History.Record(ctx, rec, s.opts.HistoryKeep); err != nil {
			s.logger.Warn(ctx, "failed to record history", "error", fmt.Errorf("screen %s: %w", art.ScreenID, err))
		}
	}
}
