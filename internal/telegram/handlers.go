package telegram

import (
	"context"
	"fmt"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	greetingText     = "Hi! Describe the code you need and I will ask follow-up questions until I have enough detail to generate it.\n\nCommands:\n/new - start a fresh session\n/analyze - analyze the last generated code\n/status - show the current session step\n/cancel - drop the current session"
	noSessionText    = "No active session. Send /new or just describe what you need."
	genericErrorText = "Something went wrong, please try again."
)

// handleCommand handles bot commands
func (b *botImpl) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		b.send(chatID, greetingText)

	case "new":
		session, err := b.createSession(ctx, message)
		if err != nil {
			ctxzap.Error(ctx, "failed to create session", zap.Error(err), zap.Int64("chat_id", chatID))
			b.send(chatID, genericErrorText)
			return
		}
		b.send(chatID, "New session started. Describe the code you need.")
		ctxzap.Info(ctx, "session created for chat",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", session.ID),
		)

	case "analyze":
		sessionID, ok := b.stateManager.SessionID(chatID)
		if !ok {
			b.send(chatID, noSessionText)
			return
		}
		resp, err := b.agentUC.AnalyzeCode(ctx, sessionID, "")
		if err != nil {
			ctxzap.Error(ctx, "failed to analyze code", zap.Error(err), zap.Int64("chat_id", chatID))
			b.send(chatID, "Nothing to analyze yet. Generate some code first.")
			return
		}
		b.replyWithResponse(chatID, resp)

	case "status":
		sessionID, ok := b.stateManager.SessionID(chatID)
		if !ok {
			b.send(chatID, noSessionText)
			return
		}
		session, err := b.agentUC.GetSession(ctx, sessionID)
		if err != nil {
			b.stateManager.ClearSession(chatID)
			b.send(chatID, noSessionText)
			return
		}
		b.send(chatID, fmt.Sprintf("Current step: %s", session.CurrentStep))

	case "cancel":
		b.stateManager.ClearSession(chatID)
		b.send(chatID, "Session dropped. Send /new to start again.")

	default:
		b.send(chatID, "Unknown command. Send /start for help.")
	}
}

// handleText feeds a plain text message into the agent workflow. A chat
// without an active session gets one created transparently.
func (b *botImpl) handleText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	sessionID, ok := b.stateManager.SessionID(chatID)
	if !ok {
		session, err := b.createSession(ctx, message)
		if err != nil {
			ctxzap.Error(ctx, "failed to create session", zap.Error(err), zap.Int64("chat_id", chatID))
			b.send(chatID, genericErrorText)
			return
		}
		sessionID = session.ID
	}

	resp, err := b.agentUC.HandleMessage(ctx, sessionID, &entity.SessionMessageRequest{
		Text: message.Text,
	})
	if err != nil {
		if entity.IsNotFound(err) {
			// Session expired on the backend, start over with this message.
			b.stateManager.ClearSession(chatID)
			b.handleText(ctx, message)
			return
		}
		ctxzap.Error(ctx, "failed to handle message", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, genericErrorText)
		return
	}

	b.replyWithResponse(chatID, resp)
}

func (b *botImpl) createSession(ctx context.Context, message *tgbotapi.Message) (*entity.Session, error) {
	session, err := b.agentUC.CreateSession(ctx, &entity.CreateSessionRequest{
		UserID: fmt.Sprintf("tg:%d", message.From.ID),
		Metadata: map[string]string{
			"source":   "telegram",
			"username": message.From.UserName,
		},
	})
	if err != nil {
		return nil, err
	}

	b.stateManager.SetSessionID(message.Chat.ID, session.ID)
	return session, nil
}

// replyWithResponse renders an agent workflow response into chat messages
func (b *botImpl) replyWithResponse(chatID int64, resp *entity.AgentResponse) {
	if !resp.Success {
		text := resp.ErrorMessage
		if text == "" {
			text = genericErrorText
		}
		b.send(chatID, text)
		return
	}

	if resp.NextQuestion != "" {
		b.send(chatID, resp.NextQuestion)
		return
	}

	if resp.GeneratedCode != "" {
		b.sendMarkdown(chatID, fmt.Sprintf("```\n%s\n```", resp.GeneratedCode))
		if resp.Explanation != "" {
			b.send(chatID, resp.Explanation)
		}
		return
	}

	if resp.CodeAnalysis != "" {
		b.send(chatID, resp.CodeAnalysis)
		return
	}

	if resp.Message != "" {
		b.send(chatID, resp.Message)
	}
}
