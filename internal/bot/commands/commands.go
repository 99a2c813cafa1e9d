package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gif-translate-bot/internal/db"
	"gif-translate-bot/internal/whitelist"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

type CommandHandler struct {
	Stats     *db.DB
	Whitelist *whitelist.List
}

func NewCommandHandler(stats *db.DB, wl *whitelist.List) *CommandHandler {
	return &CommandHandler{
		Stats:     stats,
		Whitelist: wl,
	}
}

func (h *CommandHandler) Start(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := fmt.Sprintf(`<b>Welcome to the Translation GIF Bot!</b> 🌍

I turn your text into an animated GIF of its translation into a random language.

<b>Get Started:</b>
Type <code>@%s some text</code> in any chat and pick the GIF that appears.

Need help? Type /help for details.`, b.User.Username)
	_, err := ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}

func (h *CommandHandler) Help(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := fmt.Sprintf(`<b>How it works</b>

1. In any chat, type <code>@%s hello world</code>.
2. Wait a moment while the translation GIF is prepared.
3. Tap the GIF to send it.

Each query is translated into one of 20 random languages.

<b>Commands:</b>
/id - show your numeric Telegram ID (for the whitelist)
/stats - usage totals (whitelisted users only)`, b.User.Username)
	_, err := ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}

// ID replies with the sender's numeric ID, which is what the operator
// pastes into the whitelist file.
func (h *CommandHandler) ID(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := fmt.Sprintf("Your Telegram ID is <code>%d</code>.", ctx.EffectiveUser.Id)
	_, err := ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}

func (h *CommandHandler) StatsCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	if h.Whitelist.Enforced() && !h.Whitelist.Allowed(ctx.EffectiveUser.Id) {
		_, err := ctx.EffectiveMessage.Reply(b, "🔒 /stats is only available to whitelisted users.", nil)
		return err
	}

	if h.Stats == nil {
		_, err := ctx.EffectiveMessage.Reply(b, "Usage stats are not configured for this bot.", nil)
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totals, err := h.Stats.Totals(reqCtx)
	if err != nil {
		_, _ = ctx.EffectiveMessage.Reply(b, "Failed to fetch stats.", nil)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Usage</b>\nUsers: %d\nQueries: %d\n", totals.Users, totals.Queries)

	if top, err := h.Stats.TopUsers(reqCtx, 5); err == nil && len(top) > 0 {
		sb.WriteString("\n<b>Top users</b>\n")
		for _, u := range top {
			name := u.Username
			if name == "" {
				name = u.FirstName
			}
			fmt.Fprintf(&sb, "%s: %d\n", name, u.QueryCount)
		}
	}

	_, err = ctx.EffectiveMessage.Reply(b, sb.String(), &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	return err
}
