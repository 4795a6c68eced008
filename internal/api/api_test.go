package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prompt-architect-server/internal/ai"
	"prompt-architect-server/internal/deconstruct"
	"prompt-architect-server/internal/gallery"
	"prompt-architect-server/internal/mocks"
	"prompt-architect-server/internal/models"
	"prompt-architect-server/internal/prompt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer(t *testing.T, client ai.CompletionClient) (*Server, *gin.Engine) {
	t.Helper()
	logger := zap.NewNop()
	persist := gallery.NewMemoryPersistence()

	server := NewServer(
		prompt.NewService(client, logger),
		deconstruct.NewService(client, logger),
		gallery.NewStore(persist, logger),
		gallery.NewHistoryLog(persist, logger),
		nil,
		logger,
	)
	return server, server.Router([]string{"http://localhost:5173"})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sceneBody() map[string]interface{} {
	scene := models.DefaultScene()
	scene.SceneDescription = "A lone detective in neon rain"
	return map[string]interface{}{"scene": scene, "language": "en"}
}

func TestHandleGenerate(t *testing.T) {
	client := mocks.NewMockCompletionClient(t)
	client.On("Complete", mock.Anything, mock.Anything).Return("a vivid paragraph", ai.Usage{}, nil)

	_, router := testServer(t, client)
	w := doJSON(t, router, http.MethodPost, "/api/prompts/generate", sceneBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"prompt":"a vivid paragraph"}`, w.Body.String())
}

func TestHandleGenerateConsentGate(t *testing.T) {
	_, router := testServer(t, mocks.NewMockCompletionClient(t))

	body := sceneBody()
	scene := models.DefaultScene()
	scene.SceneDescription = "desc"
	scene.Cameos = "Marlowe"
	body["scene"] = scene

	w := doJSON(t, router, http.MethodPost, "/api/prompts/generate", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "consent")
}

func TestHandleDeconstruct(t *testing.T) {
	response := `{"sceneDescription":"desc","shots":[{"description":"one","constraints":"","parameters":{}}],"cameos":"","aspectRatio":"16:9"}`
	client := mocks.NewMockCompletionClient(t)
	client.On("Complete", mock.Anything, mock.Anything).Return(response, ai.Usage{}, nil)

	server, router := testServer(t, client)
	w := doJSON(t, router, http.MethodPost, "/api/prompts/deconstruct", map[string]string{"text": "a detective"})

	require.Equal(t, http.StatusOK, w.Code)

	var scene models.SceneData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scene))
	assert.Equal(t, "desc", scene.SceneDescription)
	require.Len(t, scene.Shots, 1)

	// query recorded in history
	records := server.history.List()
	require.Len(t, records, 1)
	assert.Equal(t, "a detective", records[0].Text)
}

func TestHandleDeconstructMissingText(t *testing.T) {
	_, router := testServer(t, mocks.NewMockCompletionClient(t))

	w := doJSON(t, router, http.MethodPost, "/api/prompts/deconstruct", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryEndpoints(t *testing.T) {
	_, router := testServer(t, mocks.NewMockCompletionClient(t))

	scene := models.DefaultScene()
	scene.SceneDescription = "desc"

	// save
	w := doJSON(t, router, http.MethodPost, "/api/gallery", map[string]interface{}{
		"scene": scene, "prompt": "generated", "versionNotes": "v1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var saved models.SavedPrompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, models.VisibilityPrivate, saved.Visibility)

	// list
	w = doJSON(t, router, http.MethodGet, "/api/gallery", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.SavedPrompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// toggle visibility
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/gallery/%s/visibility", saved.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"visibility":"public"}`, w.Body.String())

	// remix
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/gallery/%s/remix", saved.ID), map[string]int{"versionIndex": 0})
	require.Equal(t, http.StatusOK, w.Code)
	var remixed models.SceneData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &remixed))
	assert.Equal(t, "desc", remixed.SceneDescription)

	// delete
	w = doJSON(t, router, http.MethodDelete, "/api/gallery/"+saved.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/gallery/"+saved.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveWithoutPromptIsRejected(t *testing.T) {
	_, router := testServer(t, mocks.NewMockCompletionClient(t))

	w := doJSON(t, router, http.MethodPost, "/api/gallery", map[string]interface{}{
		"scene": models.DefaultScene(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVideoEndpointsWithoutManager(t *testing.T) {
	_, router := testServer(t, mocks.NewMockCompletionClient(t))

	w := doJSON(t, router, http.MethodPost, "/api/videos", map[string]string{"prompt": "p", "aspectRatio": "16:9"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/videos/some-id", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	_, router := testServer(t, mocks.NewMockCompletionClient(t))

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
