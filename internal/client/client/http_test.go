package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(tok string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) { return tok, nil })
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource) (*HTTPClient, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", tokens, srv.Client(), logging.Discard()), &calls
}

func TestLoadUser_SendsBearerAndDecodes(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathLoadUser, r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`{"screenCredits":10,"revisionCredits":20,"remainingScreenCredits":7,"remainingRevisionCredits":19}`))
	}, staticToken("tok-1"))

	got, err := c.LoadUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Credits{ScreenCredits: 10, RevisionCredits: 20, RemainingScreenCredits: 7, RemainingRevisionCredits: 19}, got)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestGenerateMockup_PostsEnrichedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathGenerate, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.GenerateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a login screen", body.UserPrompt)
		assert.Equal(t, "ios", body.DeviceInfo.Platform)

		_, _ = w.Write([]byte(`{"html":"<div/>","screenId":"s1","remainingScreenCredits":4,"remainingRevisionCredits":9}`))
	}, staticToken("t"))

	resp, err := c.GenerateMockup(context.Background(), models.GenerateRequest{
		UserPrompt: "a login screen",
		DeviceInfo: models.DeviceInfo{Platform: "ios"},
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.ScreenID)
	assert.Equal(t, "<div/>", resp.HTML)
	require.True(t, resp.HasCredits())
	assert.Equal(t, 4, *resp.RemainingScreenCredits)
	assert.Equal(t, 9, *resp.RemainingRevisionCredits)
}

func TestEditMockup_UsesPut(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, PathEdit, r.URL.Path)
		var body models.EditRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.EditRequest{ScreenID: "abc123", UserPrompt: "make background blue"}, body)
		_, _ = w.Write([]byte(`{"html":"<p/>","screenId":"abc124","remainingScreenCredits":4,"remainingRevisionCredits":9}`))
	}, staticToken("t"))

	resp, err := c.EditMockup(context.Background(), models.EditRequest{ScreenID: "abc123", UserPrompt: "make background blue"})
	require.NoError(t, err)
	assert.Equal(t, "abc124", resp.ScreenID)
}

func TestGetMockup_EscapesScreenID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathGetMockup, r.URL.Path)
		assert.Equal(t, "a b&c", r.URL.Query().Get("screenId"))
		_, _ = w.Write([]byte(`{"html":"<p/>","screenId":"a b&c"}`))
	}, staticToken("t"))

	resp, err := c.GetMockup(context.Background(), "a b&c")
	require.NoError(t, err)
	assert.False(t, resp.HasCredits())
}

func TestGetMockup_MarkupOnlyResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"html":"<p>saved</p>"}`))
	}, staticToken("t"))

	resp, err := c.GetMockup(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "<p>saved</p>", resp.HTML)
	assert.Empty(t, resp.ScreenID)
}

func TestListMockups_EmptyArrayNotNil(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}, staticToken("t"))

	list, err := c.ListMockups(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDo_ErrorMessageFromBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"message":"Insufficient credits for this operation"}`))
	}, staticToken("t"))

	_, err := c.GenerateMockup(context.Background(), models.GenerateRequest{UserPrompt: "x"})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusPaymentRequired, reqErr.Status)
	assert.Equal(t, "Insufficient credits for this operation", reqErr.Message)
	assert.Contains(t, err.Error(), "Insufficient credits")
}

func TestDo_ErrorMessageFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "no message field", body: `{"error":"x"}`},
		{name: "empty body", body: ""},
		{name: "blank message", body: `{"message":"  "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(tt.body))
			}, staticToken("t"))

			_, err := c.LoadUser(context.Background())
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, "request failed with status 500", reqErr.Message)
		})
	}
}

func TestDo_UnauthorizedMatchesSentinel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, staticToken("t"))

	_, err := c.LoadUser(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_MissingTokenMakesNoCall(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server must not be called")
	}, staticToken(""))

	_, err := c.LoadUser(context.Background())
	require.ErrorIs(t, err, ErrAuthTokenMissing)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestDo_TokenSourceErrorPropagates(t *testing.T) {
	boom := errors.New("keychain locked")
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, TokenFunc(func(context.Context) (string, error) {
		return "", boom
	}))

	_, err := c.ListMockups(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestDo_TokenFetchedPerCall(t *testing.T) {
	var n int32
	tokens := TokenFunc(func(context.Context) (string, error) {
		atomic.AddInt32(&n, 1)
		return "t", nil
	})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, tokens)

	for i := 0; i < 3; i++ {
		_, err := c.ListMockups(context.Background())
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(&n))
}

func TestDo_ServerDownIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, staticToken("t"), nil, logging.Discard())
	_, err := c.LoadUser(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestMockupCall_MissingScreenID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"html":"<p/>"}`))
	}, staticToken("t"))

	_, err := c.GenerateMockup(context.Background(), models.GenerateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing screenId")

	_, err = c.EditMockup(context.Background(), models.EditRequest{ScreenID: "a", UserPrompt: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing screenId")
}
