package anilist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(serverURL string) *Client {
	c := NewClient()
	c.baseURL = serverURL
	c.retryDelay = time.Millisecond
	c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestSearchAnime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Sousou no Frieren", req.Variables["search"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Media":{"id":154587,
			"title":{"romaji":"Sousou no Frieren","english":"Frieren: Beyond Journey's End"},
			"genres":["Adventure","Fantasy"],
			"tags":[{"name":"Elf","rank":92},{"name":"Magic","rank":60}]}}}`))
	}))
	defer srv.Close()

	media, err := testClient(srv.URL).SearchAnime(context.Background(), "Sousou no Frieren")
	require.NoError(t, err)

	assert.Equal(t, 154587, media.ID)
	assert.Equal(t, "Frieren: Beyond Journey's End", media.Title.English)
	assert.Equal(t, []string{"Adventure", "Fantasy"}, media.Genres)
	assert.Equal(t, []string{"Elf"}, media.HighRankTags(75))
}

func TestSearchAnimeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"Not Found.","status":404}],"data":{"Media":null}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SearchAnime(context.Background(), "definitely not an anime")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchAnimeRetriesThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"errors":[{"message":"Internal Server Error","status":500}]}`))
			return
		}
		w.Write([]byte(`{"data":{"Media":{"id":1,"title":{"romaji":"Cowboy Bebop"}}}}`))
	}))
	defer srv.Close()

	media, err := testClient(srv.URL).SearchAnime(context.Background(), "Cowboy Bebop")
	require.NoError(t, err)
	assert.Equal(t, 1, media.ID)
	assert.Equal(t, 3, calls)
}

func TestSearchAnimeGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errors":[{"message":"Internal Server Error","status":500}]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SearchAnime(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
