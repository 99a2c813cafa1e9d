// Package upload pushes rendered GIFs to a temporary file host (uguu.se by
// default) and returns the public URL Telegram fetches them from.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"regexp"
	"strings"
	"time"
)

type Client struct {
	HTTP *http.Client
	URL  string
}

func NewClient(uploadURL string) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: 30 * time.Second},
		URL:  uploadURL,
	}
}

// Upload posts data as a multipart form file and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[]"; filename=%q`, filename))
	hdr.Set("Content-Type", "image/gif")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	fileURL, err := parseResponse(body)
	if err != nil {
		return "", err
	}
	if !ValidURL(fileURL) {
		return "", fmt.Errorf("upload: host returned invalid URL %q", fileURL)
	}

	return fileURL, nil
}

// parseResponse handles the host's response shapes: an object carrying a
// "files" array, an object with a bare "url", an array of objects, or a
// plain-text URL body.
func parseResponse(body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		text := strings.TrimSpace(string(body))
		if strings.HasPrefix(text, "http") {
			return text, nil
		}
		return "", fmt.Errorf("upload: unexpected response: %s", text)
	}

	switch v := payload.(type) {
	case map[string]any:
		if files, ok := v["files"].([]any); ok && len(files) > 0 {
			if first, ok := files[0].(map[string]any); ok {
				if u, ok := first["url"].(string); ok {
					return u, nil
				}
			}
		}
		if u, ok := v["url"].(string); ok {
			return u, nil
		}
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				if u, ok := first["url"].(string); ok {
					return u, nil
				}
			}
		}
	}

	return "", errors.New("upload: no URL in response")
}

var urlPattern = regexp.MustCompile(`^https?://`)

// ValidURL reports whether s looks like a usable http(s) URL.
func ValidURL(s string) bool {
	return urlPattern.MatchString(s) && len(s) > 10
}
