package middleware

import (
	"context"

	"gif-translate-bot/internal/db"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// TrackUser records usage in the stats database off the hot path. With no
// database configured it is a no-op.
func TrackUser(stats *db.DB) func(b *gotgbot.Bot, ctx *ext.Context) error {
	return func(b *gotgbot.Bot, ctx *ext.Context) error {
		if stats == nil || ctx.EffectiveUser == nil {
			return nil
		}

		id := ctx.EffectiveUser.Id
		username := ctx.EffectiveUser.Username
		firstName := ctx.EffectiveUser.FirstName

		go func() {
			_ = stats.RecordQuery(context.Background(), id, username, firstName)
		}()
		return nil
	}
}
