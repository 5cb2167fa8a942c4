package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const pairBody = `{"data": [
	{"name": "Pikachu", "hp": "60", "images": {"small": "a.png"}},
	{"name": "Charmander", "hp": "50"}
]}`

func TestClientPairSuccess(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pairBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-api-key", testLogger())
	pair, err := client.Pair(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "/cards", gotPath)
	assert.Equal(t, "test-api-key", gotKey)
	assert.Equal(t, "Pikachu", pair[0].Name)
	assert.Equal(t, 60, pair[0].HP)
	assert.Equal(t, "Charmander", pair[1].Name)
	assert.Equal(t, 50, pair[1].HP)
}

func TestClientPairOmitsHeaderWithoutKey(t *testing.T) {
	var sawKey bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawKey = r.Header["X-Api-Key"]
		w.Write([]byte(pairBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.Pair(context.Background())

	assert.NoError(t, err)
	assert.False(t, sawKey)
}

func TestClientPairNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.Pair(context.Background())

	assert.Error(t, err)
}

func TestClientPairMalformedBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.Pair(context.Background())

	assert.Error(t, err)
}

func TestClientPairInsufficientCardsIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"name": "Mew", "hp": "50"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.Pair(context.Background())

	assert.Error(t, err)
}

func TestClientPairConnectionRefusedIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.Pair(context.Background())

	assert.Error(t, err)
}
