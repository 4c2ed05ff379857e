package llm

type DeepSeek struct {
	*OpenAICompatible
}

func NewDeepSeek(apiKey, model string, opts GenerationOptions) *DeepSeek {
	return &DeepSeek{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "deepseek",
			BaseURL:    "https://api.deepseek.com",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			Options:    opts,
		}),
	}
}
