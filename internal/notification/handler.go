package notification

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Handler consumes ItemChange envelopes from the broker and feeds them to
// the notifier. Signature matches the kafka consumer's MessageHandler.
type Handler struct {
	notifier *Notifier
	log      zerolog.Logger
}

func NewHandler(notifier *Notifier, log zerolog.Logger) *Handler {
	return &Handler{notifier: notifier, log: log}
}

func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var change ItemChange
	if err := json.Unmarshal(value, &change); err != nil {
		h.log.Error().Err(err).Msg("failed to unmarshal item change")
		return err
	}

	if err := h.notifier.Notify(ctx, change.ItemID, change.Reason); err != nil {
		h.log.Error().Err(err).
			Str("item_id", change.ItemID).
			Str("reason", change.Reason).
			Msg("failed to deliver item update")
		return err
	}

	h.log.Debug().
		Str("item_id", change.ItemID).
		Str("reason", change.Reason).
		Msg("item update delivered")
	return nil
}
