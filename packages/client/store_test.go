package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageStore_InitialStateIsEmpty(t *testing.T) {
	store := NewMessageStore()
	assert.Equal(t, "", store.SuccessMessage())
	assert.Equal(t, "", store.ErrorMessage())
}

func TestMessageStore_SuccessLeavesErrorUntouched(t *testing.T) {
	store := NewMessageStore()
	store.Report("k1", ProgressEvent{Type: ProgressError, Message: "boom"})
	store.Report("k2", ProgressEvent{Type: ProgressSuccess, Message: "saved"})

	assert.Equal(t, "saved", store.SuccessMessage())
	assert.Equal(t, "boom", store.ErrorMessage(), "stale error message persists until overwritten")
}

func TestMessageStore_IgnoresProcessing(t *testing.T) {
	store := NewMessageStore()
	store.Report("k", ProgressEvent{Type: ProgressProcessing, Message: "loading"})

	assert.Equal(t, "", store.SuccessMessage())
	assert.Equal(t, "", store.ErrorMessage())
}

func TestMessageStore_Subscribe(t *testing.T) {
	store := NewMessageStore()

	var got []MessageState
	cancel := store.Subscribe(func(s MessageState) {
		got = append(got, s)
	})

	store.Report("k", ProgressEvent{Type: ProgressSuccess, Message: "one"})
	store.Report("k", ProgressEvent{Type: ProgressError, Message: "two"})
	cancel()
	store.Report("k", ProgressEvent{Type: ProgressSuccess, Message: "after cancel"})

	require.Len(t, got, 2)
	assert.Equal(t, MessageState{SuccessMessage: "one"}, got[0])
	assert.Equal(t, MessageState{SuccessMessage: "one", ErrorMessage: "two"}, got[1])
}

func TestMessageStore_AsClientReporter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	store := NewMessageStore()
	c := New(server.URL, WithProgressReporter(store))

	_, err := c.Get(context.Background(), "/ok", nil, &Options{SuccessMsg: Msg("all good")})
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/bad", nil, &Options{ErrorMsg: Msg("rejected")})
	require.NoError(t, err)

	assert.Equal(t, "all good", store.SuccessMessage())
	assert.Equal(t, "rejected", store.ErrorMessage())
}
