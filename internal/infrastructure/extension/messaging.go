// Package extension implements the background host of the browser extension:
// a local WebSocket endpoint carrying the extension messaging channel.
package extension

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/newtab/internal/logging"
)

// Message is a page -> host envelope. Fields beyond id and type are kept in
// Raw for the handler to decode.
type Message struct {
	ID   string          `json:"id,omitempty"`
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// Reply answers a message that carried an id.
type Reply struct {
	ID    string `json:"id"`
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// MessageHandler handles one message type.
type MessageHandler interface {
	Handle(ctx context.Context, msg Message) (any, error)
}

// MessageHandlerFunc adapts a function to the MessageHandler interface.
type MessageHandlerFunc func(ctx context.Context, msg Message) (any, error)

// Handle calls f(ctx, msg).
func (f MessageHandlerFunc) Handle(ctx context.Context, msg Message) (any, error) {
	return f(ctx, msg)
}

// ErrUnknownMessageType is returned for messages no handler is registered for.
var ErrUnknownMessageType = errors.New("unknown message type")

// MessageRouter dispatches messages to handlers by type.
type MessageRouter struct {
	mu       sync.RWMutex
	handlers map[string]MessageHandler
}

// NewMessageRouter creates a new message router.
func NewMessageRouter() *MessageRouter {
	return &MessageRouter{handlers: make(map[string]MessageHandler)}
}

// RegisterHandler registers a handler for a message type.
func (r *MessageRouter) RegisterHandler(msgType string, handler MessageHandler) error {
	if msgType == "" {
		return errors.New("message type cannot be empty")
	}
	if handler == nil {
		return errors.New("message handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[msgType] = handler
	return nil
}

// Types returns the registered message types.
func (r *MessageRouter) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	return types
}

// Dispatch decodes raw, runs the matching handler and encodes the answer.
// Messages with an id get a Reply envelope; messages without one get the
// bare handler result, or {"error": ...} on failure.
func (r *MessageRouter) Dispatch(ctx context.Context, raw []byte) []byte {
	log := logging.FromContext(ctx)

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Warn().Err(err).Msg("failed to decode extension message")
		return encode(ctx, map[string]string{"error": "invalid message"})
	}
	msg.Raw = raw

	r.mu.RLock()
	handler, ok := r.handlers[msg.Type]
	r.mu.RUnlock()

	var (
		data any
		err  error
	)
	if ok {
		data, err = handler.Handle(ctx, msg)
	} else {
		err = fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
	if err != nil {
		log.Warn().Err(err).Str("type", msg.Type).Msg("extension message failed")
	}

	if msg.ID != "" {
		reply := Reply{ID: msg.ID, Data: data}
		if err != nil {
			reply.Error = err.Error()
		}
		return encode(ctx, reply)
	}
	if err != nil {
		return encode(ctx, map[string]string{"error": err.Error()})
	}
	return encode(ctx, data)
}

// ParsePayload decodes the message fields into T.
func ParsePayload[T any](msg Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Raw, &v); err != nil {
		return v, fmt.Errorf("failed to parse %s message: %w", msg.Type, err)
	}
	return v, nil
}

func encode(ctx context.Context, v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to encode extension reply")
		return []byte(`{"error":"internal error"}`)
	}
	return data
}
