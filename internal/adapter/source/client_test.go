package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserAgent = "rankings-test/1.0"

var testEvent = catalog.Event{Code: "m_100", Name: "100 metres (men)", Path: "m_100ok.htm"}

const testPage = `<html><body><pre>
    1       9.58     +0.9   Usain Bolt                     JAM     21.08.86    1     Berlin                  16.08.2009
</pre></body></html>`

func testClient(baseURL string) *Client {
	return NewClient(baseURL, testUserAgent, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/m_100ok.htm", r.URL.Path)
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = io.WriteString(w, testPage)
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.NoError(t, err)
	assert.Equal(t, testPage, body)

	rk, err := domain.ParseRankings(body)
	require.NoError(t, err)
	require.Len(t, rk.Records, 1)
	assert.Equal(t, "Usain Bolt", rk.Records[0].Athlete)
}

func TestClient_Fetch_TrailingSlashBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/m_100ok.htm", r.URL.Path)
		_, _ = io.WriteString(w, testPage)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL+"/").Fetch(context.Background(), testEvent)
	require.NoError(t, err)
}

func TestClient_Fetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Fetch_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request")
}

func TestClient_Fetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, testPage)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Fetch(ctx, testEvent)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Extract_DelegatesToFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, testPage)
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Extract(context.Background(), testEvent)
	require.NoError(t, err)
	assert.Equal(t, testPage, body)
}

// latin1Page is a ranking page encoded as ISO-8859-1 ("Athína" with í = 0xED).
const latin1Page = "<html><body><pre>\n" +
	"    1      19.32     +0.4   Michael Johnson                USA     13.09.67    1     Ath\xedna                  01.08.1996\n" +
	"</pre></body></html>"

func TestClient_Fetch_DecodesLatin1FromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = io.WriteString(w, latin1Page)
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(body))
	assert.Contains(t, body, "Athína")

	rk, err := domain.ParseRankings(body)
	require.NoError(t, err)
	require.Len(t, rk.Records, 1)
	assert.Equal(t, "Athína", rk.Records[0].Location)
	assert.Equal(t, "Michael Johnson", rk.Records[0].Athlete)
}

func TestClient_Fetch_DecodesLatin1FromMetaTag(t *testing.T) {
	page := `<html><head><meta http-equiv="Content-Type" content="text/html; charset=iso-8859-1"></head>` +
		strings.TrimPrefix(latin1Page, "<html>")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.NoError(t, err)

	rk, err := domain.ParseRankings(body)
	require.NoError(t, err)
	require.Len(t, rk.Records, 1)
	assert.Equal(t, "Athína", rk.Records[0].Location)
}

func TestClient_Fetch_UndeclaredLatin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, latin1Page)
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.NoError(t, err)
	assert.Contains(t, body, "Athína")
}

func TestClient_Fetch_UTF8PassesThrough(t *testing.T) {
	page := strings.Replace(latin1Page, "Ath\xedna", "Athína", 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.NoError(t, err)
	assert.Equal(t, page, body)
}

func TestClient_Fetch_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Fetch(context.Background(), testEvent)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestDecode(t *testing.T) {
	got, err := Decode([]byte("Sj\xf6berg"), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "Sjöberg", got)

	got, err = Decode([]byte("Sjöberg"), "text/html")
	require.NoError(t, err)
	assert.Equal(t, "Sjöberg", got, "undeclared UTF-8 is kept")
}
