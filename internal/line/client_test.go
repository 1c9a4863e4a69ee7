package line

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Reply(t *testing.T) {
	var got replyRequest
	var path, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient("access-token", server.URL+"/")
	require.NoError(t, c.Reply(t.Context(), "rt-1", "🚗 Toyota Camry 2020年｜售價：65萬"))

	assert.Equal(t, "/v2/bot/message/reply", path)
	assert.Equal(t, "Bearer access-token", auth)
	assert.Equal(t, "rt-1", got.ReplyToken)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "text", got.Messages[0].Type)
	assert.Equal(t, "🚗 Toyota Camry 2020年｜售價：65萬", got.Messages[0].Text)
}

func TestClient_Reply_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid reply token"}`))
	}))
	defer server.Close()

	err := NewClient("t", server.URL).Reply(t.Context(), "expired", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "Invalid reply token")
}
