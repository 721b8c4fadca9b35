package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maresia/maresia/internal/shared"
)

type guest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, nil)
}

func TestGetSendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"g1","name":"Ana"}`))
	})

	ctx := WithToken(context.Background(), "tok-123")
	var out guest
	require.NoError(t, client.Get(ctx, "/hospedes/g1", nil, &out))
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, "Ana", out.Name)
}

func TestGetWithoutTokenOmitsHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	var out guest
	require.NoError(t, client.Get(context.Background(), "/x", nil, &out))
	require.Empty(t, gotAuth)
}

func TestGetEncodesQuery(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	})

	values := url.Values{}
	values.Set("search", "ana maria")
	var out []guest
	require.NoError(t, client.Get(context.Background(), "/hospedes", values, &out))
	require.Equal(t, "ana maria", gotQuery.Get("search"))
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var out guest
	err := client.Get(context.Background(), "/hospedes/missing", nil, &out)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBackendMessageSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"CPF já cadastrado"}`))
	})

	err := client.Post(context.Background(), "/hospedes", guest{Name: "Ana"}, nil)
	require.Error(t, err)
	require.Equal(t, "CPF já cadastrado", UserMessage(err, "falha ao salvar"))
}

func TestUserMessageFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	})

	err := client.Delete(context.Background(), "/hospedes/g1")
	require.Error(t, err)
	require.Equal(t, "falha ao salvar", UserMessage(err, "falha ao salvar"))
}

func TestGetListBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"g1","name":"Ana"},{"id":"g2","name":"Bia"}]`))
	})

	items, err := GetList[guest](context.Background(), client, "/hospedes", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Bia", items[1].Name)
}

func TestGetListDataEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"g1","name":"Ana"}],"total":1}`))
	})

	items, err := GetList[guest](context.Background(), client, "/hospedes", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Ana", items[0].Name)
}

func TestDecodeListNull(t *testing.T) {
	items, err := DecodeList[guest]([]byte(`null`))
	require.NoError(t, err)
	require.Nil(t, items)
}

func TestPostSetsJSONContentType(t *testing.T) {
	var gotType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Post(context.Background(), "/hospedes", guest{Name: "Ana"}, nil))
	require.Equal(t, "application/json", gotType)
}
