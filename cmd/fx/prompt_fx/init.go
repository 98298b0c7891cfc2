package prompt_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wayfarer/internal/config"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	ProvideAIClient)

// ProvideAIClient creates the text generation client selected by AI_PROVIDER.
func ProvideAIClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.AIClientInterface, error) {
	var (
		client utils.AIClientInterface
		err    error
	)

	switch cfg.AI.Provider {
	case "openai":
		logger.Info("initializing AI client", zap.String("provider", "openai"), zap.String("model", cfg.AI.OpenAIModel))
		client, err = utils.NewOpenAIClient(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel, cfg.AI.EmbeddingModel)
	case "gemini":
		logger.Info("initializing AI client", zap.String("provider", "gemini"), zap.String("model", cfg.AI.GeminiModel))
		client, err = utils.NewGeminiClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s. Use 'openai' or 'gemini'", cfg.AI.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.AI.Provider, err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
