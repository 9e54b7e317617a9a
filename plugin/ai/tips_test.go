package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeOpenAI(t *testing.T, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewTipsServiceRequiresAPIKey(t *testing.T) {
	_, err := NewTipsService(&Config{})
	assert.Error(t, err)
}

func TestTravelTips(t *testing.T) {
	server := newFakeOpenAI(t, "- Take the subway\n- Try tonkotsu ramen")

	service, err := NewTipsService(&Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
	require.NoError(t, err)

	tips, err := service.TravelTips(context.Background(), "Fukuoka", []string{"Fukuoka Tower", "Ohori Park"})
	require.NoError(t, err)
	assert.Contains(t, tips, "ramen")
}

func TestTravelTipsRequiresDestination(t *testing.T) {
	server := newFakeOpenAI(t, "unused")

	service, err := NewTipsService(&Config{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	_, err = service.TravelTips(context.Background(), "   ", nil)
	assert.Error(t, err)
}
