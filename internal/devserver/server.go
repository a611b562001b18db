// Package devserver is a local stand-in for the mockup generation service.
// It speaks the same HTTP/JSON contract, authenticates HS256 bearer tokens
// and keeps accounts and mockups in memory.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/client/client"
	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/logging"
	"github.com/gorilla/mux"
)

const (
	PathGrant = "/dev/grant"
	PathToken = "/dev/token"

	msgInsufficientCredits = "Insufficient credits for this operation"
)

type ctxKey string

const userIDKey ctxKey = "userID"

type Server struct {
	store         *Store
	secret        []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

func NewServer(store *Store, secret []byte, tokenValidity time.Duration, logger logging.Logger) *Server {
	return &Server{
		store:         store,
		secret:        secret,
		tokenValidity: tokenValidity,
		logger:        logger.With("module", "devserver"),
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc(PathToken, s.handleToken).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(s.authMiddleware)
	api.HandleFunc(client.PathLoadUser, s.handleLoadUser).Methods(http.MethodGet)
	api.HandleFunc(client.PathUserMockups, s.handleList).Methods(http.MethodGet)
	api.HandleFunc(client.PathGenerate, s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc(client.PathEdit, s.handleEdit).Methods(http.MethodPut, http.MethodPost)
	api.HandleFunc(client.PathGetMockup, s.handleGet).Methods(http.MethodGet)
	api.HandleFunc(PathGrant, s.handleGrant).Methods(http.MethodPost)
	return r
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		userID, err := GetUserIDFromToken(token, s.secret)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	token, err := GenerateToken(req.UserID, s.secret, s.tokenValidity)
	if err != nil {
		s.logger.Error(r.Context(), "token signing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "token signing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLoadUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Credits(userID(r)))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List(userID(r)))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		writeError(w, http.StatusBadRequest, "userPrompt is required")
		return
	}

	resp, err := s.store.Generate(userID(r), req)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "mockup generated", "user", userID(r), "screen_id", resp.ScreenID)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req models.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	if req.ScreenID == "" || strings.TrimSpace(req.UserPrompt) == "" {
		writeError(w, http.StatusBadRequest, "screenId and userPrompt are required")
		return
	}

	resp, err := s.store.Edit(userID(r), req)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "mockup edited", "user", userID(r), "from", req.ScreenID, "screen_id", resp.ScreenID)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	screenID := r.URL.Query().Get("screenId")
	if screenID == "" {
		writeError(w, http.StatusBadRequest, "screenId is required")
		return
	}
	resp, err := s.store.Get(userID(r), screenID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Screens   int `json:"screens"`
		Revisions int `json:"revisions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	credits, err := s.store.Grant(userID(r), req.Screens, req.Revisions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInsufficientCredits):
		writeError(w, http.StatusPaymentRequired, msgInsufficientCredits)
	case errors.Is(err, ErrMockupNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
