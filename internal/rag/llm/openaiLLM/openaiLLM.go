package openaiLLM

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/rag/llm"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

type llmClient struct {
	api       openai.Client
	modelName string
}

var logger *logx.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logx.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is missing")
			return
		}
		openaiClient = &llmClient{
			api:       openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *llmClient) Generate(ctx context.Context, question string, matches []chatModel.Match, history []chatModel.ConversationTurn) (string, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	userPrompt := llm.BuildPrompt(question, matches, history)

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		loggr.Error("OpenAI generation failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("openai returned an empty answer")
	}
	return completion.Choices[0].Message.Content, nil
}
