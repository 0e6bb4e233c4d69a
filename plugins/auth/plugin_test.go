package auth

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
)

type recordingTransport struct {
	mu        sync.Mutex
	connected bool
	sent      []core.Message
}

func (t *recordingTransport) Send(msg core.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, msg)
	return nil
}

func (t *recordingTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = false
	return nil
}

func (t *recordingTransport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func TestNew_RejectsOffsitePaths(t *testing.T) {
	for _, path := range []string{"", "sign-in", "//evil.example", "https://evil.example"} {
		_, err := New(Config{SignInPath: path})
		assert.ErrorIs(t, err, ErrInvalidPath, path)
	}

	_, err := New(Config{SignInPath: "/sign-in", Aliases: []string{"//x"}})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestRedirect_PushesToLiveSocket(t *testing.T) {
	p, err := New(DefaultConfig())
	require.NoError(t, err)

	tr := &recordingTransport{connected: true}
	socket := core.NewSocket("s1", tr)

	to, err := p.Redirect(socket)
	require.NoError(t, err)
	assert.Equal(t, "/sign-in", to)

	require.Len(t, tr.sent, 1)
	assert.Equal(t, EventRedirect, tr.sent[0].Event)
	assert.Equal(t, map[string]any{"to": "/sign-in"}, tr.sent[0].Payload)
}

func TestRedirect_WithoutSocket(t *testing.T) {
	p, err := New(DefaultConfig())
	require.NoError(t, err)

	to, err := p.Redirect(nil)
	require.NoError(t, err)
	assert.Equal(t, "/sign-in", to)
}

func TestHandler(t *testing.T) {
	p, err := New(DefaultConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login?next=%2F", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in?next=%2F", rec.Header().Get("Location"))
}

func TestAliases_ReturnsCopy(t *testing.T) {
	p, err := New(DefaultConfig())
	require.NoError(t, err)

	aliases := p.Aliases()
	aliases[0] = "/changed"
	assert.Equal(t, "/login", p.Aliases()[0])
}
