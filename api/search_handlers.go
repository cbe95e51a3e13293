package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/faq-assistant/internal/assistant"
	internalErrors "github.com/gcbaptista/faq-assistant/internal/errors"
	"github.com/gcbaptista/faq-assistant/services"
)

// SearchRequest defines the structure for relevance search queries.
type SearchRequest struct {
	Query   string `json:"query"`
	Explain bool   `json:"explain,omitempty"` // include per-signal score breakdowns
}

// ChatRequest is one message typed into the chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// SearchHandler ranks the FAQ corpus against a free-text query.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateSearchRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	results, err := api.manager.Search(c.Request.Context(), services.SearchQuery{
		Query:   req.Query,
		Explain: req.Explain,
		Source:  "search",
	})
	if err != nil {
		api.logger.Error("Search request failed", zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
		SendSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ChatHandler answers one chat message with the best FAQ and related questions.
// Request Body: ChatRequest
func (api *API) ChatHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateChatRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	reply, err := api.assistant.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidInput) {
			SendManagerError(c, "chat", "", err)
			return
		}
		api.logger.Error("Chat request failed", zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
		SendSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// ChatSuggestionsHandler returns the greeting and quick questions shown before the first message.
func (api *API) ChatSuggestionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"greeting":  assistant.Greeting,
		"questions": assistant.QuickQuestions(),
	})
}
