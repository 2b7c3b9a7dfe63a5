package wordlehandlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	wordleservice "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/application"
	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordleevents "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain/events"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/puzzledate"
	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Handlers is the set of message handlers the wordle router registers.
type Handlers interface {
	HandleMessageReceived(msg *message.Message) ([]*message.Message, error)
}

// WordleHandlers turns inbound chat messages into reply messages.
type WordleHandlers struct {
	service   wordleservice.Service
	logger    *slog.Logger
	groupName string
}

// NewWordleHandlers creates handlers. A non-empty groupName drops messages from any other chat.
func NewWordleHandlers(service wordleservice.Service, logger *slog.Logger, groupName string) *WordleHandlers {
	return &WordleHandlers{service: service, logger: logger, groupName: groupName}
}

// HandleMessageReceived answers one chat message. It returns at most one reply message.
//
// Malformed payloads, foreign chats, unrecognized text, and failures caused by the
// message itself are acked without a reply. Only infrastructure failures are returned
// as errors so the router can retry them.
func (h *WordleHandlers) HandleMessageReceived(msg *message.Message) ([]*message.Message, error) {
	correlationID := middleware.MessageCorrelationID(msg)
	if correlationID == "" {
		correlationID = msg.UUID
	}
	ctx := observability.WithCorrelationID(msg.Context(), correlationID)

	var payload wordleevents.MessageReceivedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.logger.WarnContext(ctx, "Dropping malformed message",
			slog.String("message_id", msg.UUID),
			observability.CorrelationAttr(ctx),
			slog.Any("error", err),
		)
		return nil, nil
	}

	if h.groupName != "" && payload.Chat != h.groupName {
		h.logger.DebugContext(ctx, "Ignoring message from other chat",
			slog.String("chat", payload.Chat),
			observability.CorrelationAttr(ctx),
		)
		return nil, nil
	}

	reply, err := h.service.HandleMessage(ctx, wordledomain.Inbound{
		Sender: payload.Sender,
		Text:   payload.Text,
		Chat:   payload.Chat,
	})
	if err != nil {
		if errors.Is(err, puzzledate.ErrResolution) || errors.Is(err, wordleservice.ErrInvalidSubmission) {
			h.logger.WarnContext(ctx, "Submission rejected",
				slog.String("sender", payload.Sender),
				observability.CorrelationAttr(ctx),
				slog.Any("error", err),
			)
			return nil, nil
		}
		return nil, err
	}
	if reply.Empty() {
		return nil, nil
	}

	body, err := json.Marshal(wordleevents.ReplyReadyPayload{
		Sender:    payload.Sender,
		Chat:      payload.Chat,
		Kind:      reply.Kind.String(),
		Duplicate: reply.Duplicate,
		Reply:     reply.Text,
	})
	if err != nil {
		return nil, err
	}

	out := message.NewMessage(watermill.NewUUID(), body)
	middleware.SetCorrelationID(correlationID, out)
	return []*message.Message{out}, nil
}
