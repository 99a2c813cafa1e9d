package inline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gif-translate-bot/internal/gifgen"
	"gif-translate-bot/internal/translate"
	"gif-translate-bot/internal/upload"
	"gif-translate-bot/internal/utils"
	"gif-translate-bot/internal/whitelist"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

const (
	helpGifURL  = "https://media.giphy.com/media/l0HlBO7eyXzSZkJri/giphy.gif"
	errorGifURL = "https://media.giphy.com/media/l2JehQ2GitHGdVG9y/giphy.gif"

	// Telegram expires inline queries after roughly 30 seconds; leave a
	// buffer for the answer round-trip.
	pipelineTimeout = 25 * time.Second
)

type Handler struct {
	Translator *translate.Client
	Uploader   *upload.Client
	Whitelist  *whitelist.List
}

func NewHandler(translator *translate.Client, uploader *upload.Client, wl *whitelist.List) *Handler {
	return &Handler{
		Translator: translator,
		Uploader:   uploader,
		Whitelist:  wl,
	}
}

// HandleQuery answers inline queries. Pipeline failures turn into a fixed
// error GIF result rather than a handler error, so the user always gets an
// answer within Telegram's deadline.
func (h *Handler) HandleQuery(b *gotgbot.Bot, ctx *ext.Context) error {
	iq := ctx.InlineQuery
	query := strings.TrimSpace(iq.Query)

	if h.Whitelist.Enforced() && !h.Whitelist.Allowed(iq.From.Id) {
		log.Printf("inline: rejecting user %d (not whitelisted)", iq.From.Id)
		_, err := iq.Answer(b, notAuthorizedResult(), &gotgbot.AnswerInlineQueryOpts{
			CacheTime:  cacheTime(1),
			IsPersonal: true,
		})
		return err
	}

	if query == "" {
		_, err := iq.Answer(b, helpResult(), &gotgbot.AnswerInlineQueryOpts{CacheTime: cacheTime(1)})
		return err
	}

	tctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
	defer cancel()

	results, err := h.buildResults(tctx, query)
	if err != nil {
		log.Printf("inline: query %q failed: %v", query, err)
		msg := "an error occurred"
		if tctx.Err() != nil {
			msg = "processing timed out"
		}
		_, err := iq.Answer(b, errorResult(msg), &gotgbot.AnswerInlineQueryOpts{CacheTime: cacheTime(1)})
		return err
	}

	// An explicit zero pointer: nil would leave cache_time unset and let
	// Telegram apply its default instead of disabling caching.
	_, err = iq.Answer(b, results, &gotgbot.AnswerInlineQueryOpts{CacheTime: cacheTime(0)})
	return err
}

func cacheTime(seconds int64) *int64 {
	return &seconds
}

// buildResults runs the translate → render → upload pipeline.
func (h *Handler) buildResults(ctx context.Context, query string) ([]gotgbot.InlineQueryResult, error) {
	res, err := h.Translator.Translate(ctx, query)
	if err != nil {
		log.Printf("inline: translation failed, falling back: %v", err)
		res = translate.Fallback(query)
	}

	gifData, err := gifgen.Render(res.Text, res.LangName)
	if err != nil {
		return nil, fmt.Errorf("rendering GIF: %w", err)
	}

	gifURL, err := h.Uploader.Upload(ctx, gifgen.Filename(), gifData)
	if err != nil {
		return nil, fmt.Errorf("uploading GIF: %w", err)
	}

	return []gotgbot.InlineQueryResult{
		gotgbot.InlineQueryResultGif{
			Id:           utils.RandomHex(16),
			GifUrl:       gifURL,
			ThumbnailUrl: gifURL,
			Title:        "🌍 " + res.Text,
			Caption:      fmt.Sprintf("🔤 Original: %s\n🌍 %s: %s", query, res.LangName, res.Text),
		},
	}, nil
}

func helpResult() []gotgbot.InlineQueryResult {
	return []gotgbot.InlineQueryResult{
		gotgbot.InlineQueryResultGif{
			Id:           utils.RandomHex(16),
			GifUrl:       helpGifURL,
			ThumbnailUrl: helpGifURL,
			Title:        "💡 How to use",
			Caption:      "Type some text to translate and create a GIF!",
			InputMessageContent: gotgbot.InputTextMessageContent{
				MessageText: "💡 Type some text after the bot's username to translate it to a random language and create an animated GIF!",
			},
		},
	}
}

func errorResult(reason string) []gotgbot.InlineQueryResult {
	return []gotgbot.InlineQueryResult{
		gotgbot.InlineQueryResultGif{
			Id:           utils.RandomHex(16),
			GifUrl:       errorGifURL,
			ThumbnailUrl: errorGifURL,
			Title:        "❌ Translation failed",
			Caption:      fmt.Sprintf("Sorry, %s. Please try again.", reason),
		},
	}
}

func notAuthorizedResult() []gotgbot.InlineQueryResult {
	return []gotgbot.InlineQueryResult{
		gotgbot.InlineQueryResultGif{
			Id:           utils.RandomHex(16),
			GifUrl:       errorGifURL,
			ThumbnailUrl: errorGifURL,
			Title:        "🔒 Not authorized",
			Caption:      "You are not on this bot's whitelist. Ask the operator to add your user ID.",
		},
	}
}
