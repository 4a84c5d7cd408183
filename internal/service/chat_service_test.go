package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/menu-assistant/internal/config"
	"github.com/spec-kit/menu-assistant/internal/domain"
	"github.com/spec-kit/menu-assistant/internal/integrations/openrouter"
)

type fakeMenuProvider struct {
	items []domain.MenuItem
}

func (f *fakeMenuProvider) Load() []domain.MenuItem {
	return f.items
}

type fakeCompletionClient struct {
	reply    string
	raw      json.RawMessage
	err      error
	gotModel string
	gotMsgs  []domain.ChatMessage
	gotTemp  float64
	gotMax   int
}

func (f *fakeCompletionClient) ChatCompletion(_ context.Context, model string, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, json.RawMessage, error) {
	f.gotModel = model
	f.gotMsgs = messages
	f.gotTemp = temperature
	f.gotMax = maxTokens
	return f.reply, f.raw, f.err
}

func testUpstreamConfig() config.UpstreamConfig {
	return config.UpstreamConfig{
		Model:       "openai/gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   600,
	}
}

func chatCatalogue() []domain.MenuItem {
	return []domain.MenuItem{
		{NameFR: "Margherita", NameEN: "Margherita", Price: "11dt", CategoryFR: "Pizzas", CategoryEN: "Pizzas"},
		{NameFR: "Ciabatta Thon", NameEN: "Tuna Ciabatta", Price: "9dt", CategoryFR: "Sandwichs", CategoryEN: "Sandwiches"},
	}
}

func newTestChatService(menu *fakeMenuProvider, client *fakeCompletionClient) *ChatService {
	return NewChatService(testUpstreamConfig(), ChatDependencies{
		Menu:   menu,
		Client: client,
		Logger: zap.NewNop(),
	})
}

func TestComplete_RejectsEmptyConversation(t *testing.T) {
	svc := newTestChatService(&fakeMenuProvider{}, &fakeCompletionClient{})

	_, err := svc.Complete(context.Background(), nil)
	requireDomainError(t, err, "invalid_input", 400)

	_, err = svc.Complete(context.Background(), []domain.ChatMessage{})
	requireDomainError(t, err, "invalid_input", 400)
}

func TestComplete_RejectsUnknownRole(t *testing.T) {
	svc := newTestChatService(&fakeMenuProvider{}, &fakeCompletionClient{})

	_, err := svc.Complete(context.Background(), []domain.ChatMessage{
		{Role: "operator", Content: "hello"},
	})
	requireDomainError(t, err, "invalid_input", 400)
}

func TestComplete_InjectsSystemPromptFirst(t *testing.T) {
	client := &fakeCompletionClient{reply: "Bonjour!"}
	svc := newTestChatService(&fakeMenuProvider{items: chatCatalogue()}, client)

	conversation := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "caller system message"},
		{Role: domain.RoleUser, Content: "une pizza margherita"},
	}

	result, err := svc.Complete(context.Background(), conversation)
	require.NoError(t, err)
	require.Equal(t, "Bonjour!", result.Reply)

	// assembled list is [injectedSystem, ...callerMessages]; the caller's own
	// system message is not deduplicated
	require.Len(t, client.gotMsgs, 3)
	require.Equal(t, domain.RoleSystem, client.gotMsgs[0].Role)
	require.Contains(t, client.gotMsgs[0].Content, "Margherita / Margherita — 11dt")
	require.Contains(t, client.gotMsgs[0].Content, "Pizzas / Pizzas:")
	require.Equal(t, "caller system message", client.gotMsgs[1].Content)
	require.Equal(t, "une pizza margherita", client.gotMsgs[2].Content)

	require.Equal(t, "openai/gpt-3.5-turbo", client.gotModel)
	require.Equal(t, 0.7, client.gotTemp)
	require.Equal(t, 600, client.gotMax)
}

func TestComplete_FallsBackToCatalogueWhenRetrievalEmpty(t *testing.T) {
	client := &fakeCompletionClient{reply: "ok"}
	svc := newTestChatService(&fakeMenuProvider{items: chatCatalogue()}, client)

	_, err := svc.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "zzqqxx"},
	})
	require.NoError(t, err)
	require.Contains(t, client.gotMsgs[0].Content, "Margherita", "full catalogue sent instead of nothing")
}

func TestComplete_FallbackCapsAtFirstTwoHundred(t *testing.T) {
	var items []domain.MenuItem
	for i := 0; i < 250; i++ {
		items = append(items, domain.MenuItem{
			NameFR: fmt.Sprintf("Plat %d", i),
			NameEN: fmt.Sprintf("Dish %d", i),
		})
	}
	client := &fakeCompletionClient{reply: "ok"}
	svc := newTestChatService(&fakeMenuProvider{items: items}, client)

	_, err := svc.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "zzqqxx"},
	})
	require.NoError(t, err)
	require.Contains(t, client.gotMsgs[0].Content, "Dish 199")
	require.NotContains(t, client.gotMsgs[0].Content, "Dish 249")
}

func TestComplete_EmptyCatalogueStillCompletes(t *testing.T) {
	client := &fakeCompletionClient{reply: "sorry, no menu"}
	svc := newTestChatService(&fakeMenuProvider{}, client)

	result, err := svc.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "bonjour"},
	})
	require.NoError(t, err)
	require.Equal(t, "sorry, no menu", result.Reply)
	require.Contains(t, client.gotMsgs[0].Content, "Menu not available.")
}

func TestComplete_UpstreamErrorSurfacesStatusAndBody(t *testing.T) {
	client := &fakeCompletionClient{err: &openrouter.HTTPStatusError{
		StatusCode: 502,
		URL:        "https://openrouter.ai/api/v1/chat/completions",
		Body:       `{"error":"bad gateway"}`,
	}}
	svc := newTestChatService(&fakeMenuProvider{items: chatCatalogue()}, client)

	_, err := svc.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "bonjour"},
	})
	domainErr := requireDomainError(t, err, "openrouter_error", 500)
	require.Equal(t, 502, domainErr.Details["status"])
	require.Equal(t, `{"error":"bad gateway"}`, domainErr.Details["body"])
}

func TestComplete_PassesRawUpstreamDocument(t *testing.T) {
	raw := json.RawMessage(`{"choices":[{"message":{"content":"hi"}}]}`)
	client := &fakeCompletionClient{reply: "hi", raw: raw}
	svc := newTestChatService(&fakeMenuProvider{items: chatCatalogue()}, client)

	result, err := svc.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "bonjour"},
	})
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(result.Raw))
}

func TestGuardReply_SubstitutesUnknownRecommendation(t *testing.T) {
	catalogue := chatCatalogue()

	reply := "I recommend Ciabatta The Wise as an alternative."
	got := guardReply(reply, catalogue)
	require.NotContains(t, got, "Ciabatta The Wise")
	require.Contains(t, got, "Ciabatta Thon / Tuna Ciabatta")
}

func TestGuardReply_KeepsKnownRecommendation(t *testing.T) {
	catalogue := chatCatalogue()

	reply := "I recommend Margherita, a classic choice."
	got := guardReply(reply, catalogue)
	require.Equal(t, reply, got)
}

func TestGuardReply_UntouchedWithoutRecommendation(t *testing.T) {
	reply := "La Margherita coûte 11dt."
	require.Equal(t, reply, guardReply(reply, chatCatalogue()))
}

func TestGuardReply_EmptyInputs(t *testing.T) {
	require.Equal(t, "", guardReply("", chatCatalogue()))
	require.Equal(t, "anything", guardReply("anything", nil))
}
