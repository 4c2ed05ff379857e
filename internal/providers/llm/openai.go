package llm

type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(apiKey, model string, opts GenerationOptions) *OpenAI {
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			Name:       "openai",
			BaseURL:    "https://api.openai.com",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			Options:    opts,
		}),
	}
}
