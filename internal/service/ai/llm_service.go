// Package ai generates NPC replies through an eino chat chain. The game
// engine consumes it via the game.Responder interface and survives without
// it; everything here is best-effort dialogue, not game state.
package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/turingmystery/backend/internal/config"
	"github.com/turingmystery/backend/internal/model/game"
	gameservice "github.com/turingmystery/backend/internal/service/game"
)

// Service runs persona-conditioned reply generation.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt+model chain once at startup.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// Reply implements game.Responder.
func (s *Service) Reply(ctx context.Context, req gameservice.ReplyRequest) (string, error) {
	input := map[string]any{
		"system":  buildSystemPrompt(req),
		"history": buildHistoryMessages(req.History),
		"query":   req.PlayerText,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated reply for npc=%s, stress=%d, length=%d", req.Character.ID, req.StressLevel, len(response.Content))
	return response.Content, nil
}

// buildHistoryMessages converts the stored transcript into chain input,
// keeping a bounded window so long interrogations stay inside the context.
func buildHistoryMessages(messages []game.Message) []*schema.Message {
	const historyLimit = 10

	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case game.RolePlayer:
			history = append(history, schema.UserMessage(msg.Content))
		case game.RoleNPC:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
