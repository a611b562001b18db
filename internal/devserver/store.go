package devserver

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/google/uuid"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrMockupNotFound      = errors.New("mockup not found")
)

type mockup struct {
	id             string
	title          string
	html           string
	deviceInfo     models.DeviceInfo
	renderingHints []string
}

type account struct {
	credits models.Credits
	mockups map[string]*mockup
	order   []string
}

// Store keeps accounts and mockups in memory. New users start with the
// configured allowance.
type Store struct {
	mu             sync.Mutex
	accounts       map[string]*account
	startScreens   int
	startRevisions int
	newID          func() string
}

func NewStore(startScreens, startRevisions int) *Store {
	return &Store{
		accounts:       make(map[string]*account),
		startScreens:   startScreens,
		startRevisions: startRevisions,
		newID:          uuid.NewString,
	}
}

func (s *Store) accountLocked(userID string) *account {
	a, ok := s.accounts[userID]
	if !ok {
		a = &account{
			credits: models.Credits{
				ScreenCredits:            s.startScreens,
				RevisionCredits:          s.startRevisions,
				RemainingScreenCredits:   s.startScreens,
				RemainingRevisionCredits: s.startRevisions,
			},
			mockups: make(map[string]*mockup),
		}
		s.accounts[userID] = a
	}
	return a
}

func (s *Store) Credits(userID string) models.Credits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountLocked(userID).credits
}

// Grant credits a purchase to both lifetime and remaining counters.
func (s *Store) Grant(userID string, screens, revisions int) (models.Credits, error) {
	if screens < 0 || revisions < 0 {
		return models.Credits{}, errors.New("grant must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accountLocked(userID)
	a.credits.ScreenCredits += screens
	a.credits.RemainingScreenCredits += screens
	a.credits.RevisionCredits += revisions
	a.credits.RemainingRevisionCredits += revisions
	return a.credits, nil
}

func (s *Store) List(userID string) []models.MockupSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accountLocked(userID)

	out := make([]models.MockupSummary, 0, len(a.order))
	for i := len(a.order) - 1; i >= 0; i-- {
		m := a.mockups[a.order[i]]
		out = append(out, models.MockupSummary{
			ID:             m.id,
			ScreenTitle:    m.title,
			UserID:         userID,
			DeviceInfo:     m.deviceInfo,
			RenderingHints: m.renderingHints,
		})
	}
	return out
}

func (s *Store) Generate(userID string, req models.GenerateRequest) (*models.MockupResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accountLocked(userID)

	if a.credits.RemainingScreenCredits <= 0 {
		return nil, ErrInsufficientCredits
	}
	a.credits.RemainingScreenCredits--

	m := &mockup{
		id:             s.newID(),
		title:          screenTitle(req.UserPrompt),
		deviceInfo:     req.DeviceInfo,
		renderingHints: req.RenderingHints,
	}
	m.html = renderMarkup(m.title, req.UserPrompt, nil, req.DeviceInfo)
	s.addLocked(a, m)
	return s.responseLocked(a, m), nil
}

// Edit derives a new mockup from an existing one. The parent stays listed.
func (s *Store) Edit(userID string, req models.EditRequest) (*models.MockupResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accountLocked(userID)

	parent, ok := a.mockups[req.ScreenID]
	if !ok {
		return nil, ErrMockupNotFound
	}
	if a.credits.RemainingRevisionCredits <= 0 {
		return nil, ErrInsufficientCredits
	}
	a.credits.RemainingRevisionCredits--

	m := &mockup{
		id:             s.newID(),
		title:          parent.title,
		deviceInfo:     parent.deviceInfo,
		renderingHints: parent.renderingHints,
	}
	m.html = renderMarkup(m.title, req.UserPrompt, parent, parent.deviceInfo)
	s.addLocked(a, m)
	return s.responseLocked(a, m), nil
}

func (s *Store) Get(userID, screenID string) (*models.MockupResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accountLocked(userID)

	m, ok := a.mockups[screenID]
	if !ok {
		return nil, ErrMockupNotFound
	}
	return s.responseLocked(a, m), nil
}

func (s *Store) addLocked(a *account, m *mockup) {
	a.mockups[m.id] = m
	a.order = append(a.order, m.id)
}

func (s *Store) responseLocked(a *account, m *mockup) *models.MockupResponse {
	screens, revisions := a.credits.RemainingScreenCredits, a.credits.RemainingRevisionCredits
	return &models.MockupResponse{
		HTML:                     m.html,
		ScreenID:                 m.id,
		RemainingScreenCredits:   &screens,
		RemainingRevisionCredits: &revisions,
	}
}

func screenTitle(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 6 {
		words = words[:6]
	}
	title := strings.Join(words, " ")
	if title == "" {
		return "Untitled"
	}
	r, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(r)) + title[size:]
}

// renderMarkup produces placeholder markup that records what was asked for.
func renderMarkup(title, prompt string, parent *mockup, d models.DeviceInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="screen" data-platform="%s" style="width:%dpx;min-height:%dpx;padding:%dpx 16px %dpx">`,
		html.EscapeString(d.Platform), d.Dimensions.Width, d.Dimensions.Height, d.SafeArea.Top, d.SafeArea.Bottom)
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(title))
	if parent != nil {
		fmt.Fprintf(&b, `<p class="revision-of">%s</p>`, html.EscapeString(parent.id))
	}
	fmt.Fprintf(&b, "<p>%s</p></div>", html.EscapeString(prompt))
	return b.String()
}
