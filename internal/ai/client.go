package ai

import "context"

const defaultMaxTokens = 4096

// Message — одна реплика диалога в формате chat-completions.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client абстрагирует провайдера языковой модели для ассистента.
// Возвращает текст ответа и сырое тело ответа API для диагностики.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

func resolveMaxTokens(value int) int {
	if value <= 0 {
		return defaultMaxTokens
	}
	return value
}
