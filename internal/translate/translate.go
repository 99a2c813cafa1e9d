// Package translate talks to the free Google Translate endpoint and picks
// a random target language for each query.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"gif-translate-bot/internal/cache"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// languages maps target language codes to display names.
var languages = map[string]string{
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
	"tr": "Turkish",
	"pl": "Polish",
	"nl": "Dutch",
	"sv": "Swedish",
	"da": "Danish",
	"no": "Norwegian",
	"fi": "Finnish",
	"el": "Greek",
	"he": "Hebrew",
}

// Result is a finished translation.
type Result struct {
	Text     string
	LangName string
	LangCode string
}

type Client struct {
	HTTP     *http.Client
	Endpoint string

	codes    []string
	memoized *cache.Cache[string, Result]
}

func NewClient() *Client {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}

	return &Client{
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Endpoint: defaultEndpoint,
		codes:    codes,
		memoized: cache.New[string, Result](),
	}
}

// Translate translates text to a random target language. Repeated queries
// within a short window reuse the first result, so inline keystroke bursts
// do not flood the endpoint or flip languages mid-typing.
func (c *Client) Translate(ctx context.Context, text string) (Result, error) {
	return c.memoized.GetOrSet(text, 10*time.Minute, func() (Result, error) {
		code := c.codes[rand.Intn(len(c.codes))]
		return c.translateTo(ctx, text, code)
	})
}

func (c *Client) translateTo(ctx context.Context, text, code string) (Result, error) {
	params := url.Values{
		"client": {"gtx"},
		"sl":     {"auto"},
		"tl":     {code},
		"dt":     {"t"},
		"q":      {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	translated, err := parseResponse(body)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Text:     translated,
		LangName: languages[code],
		LangCode: code,
	}, nil
}

// parseResponse digs the translated string out of the endpoint's nested
// array payload: the first element of the first segment.
func parseResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("translate: decoding response: %w", err)
	}

	if len(payload) == 0 {
		return "", errors.New("translate: empty response")
	}

	segments, ok := payload[0].([]any)
	if !ok || len(segments) == 0 {
		return "", errors.New("translate: missing segments")
	}

	first, ok := segments[0].([]any)
	if !ok || len(first) == 0 {
		return "", errors.New("translate: malformed segment")
	}

	text, ok := first[0].(string)
	if !ok {
		return "", errors.New("translate: segment is not a string")
	}

	return text, nil
}

// Fallback is the result used when translation fails: the untranslated
// text labeled English.
func Fallback(text string) Result {
	return Result{Text: text, LangName: "English", LangCode: "en"}
}
