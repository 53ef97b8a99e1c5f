package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/twapi/internal/auth"
	"github.com/fivetwenty-io/twapi/internal/constants"
	twhttp "github.com/fivetwenty-io/twapi/internal/http"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

const mediaRoute = "media/upload.json"

// MediaClient implements twapi.MediaClient over the upload API.
type MediaClient struct {
	client *Client
}

// NewMediaClient creates a new media client.
func NewMediaClient(c *Client) *MediaClient {
	return &MediaClient{client: c}
}

// Upload implements twapi.MediaClient.Upload.
func (m *MediaClient) Upload(ctx context.Context, base64Data string) (*twapi.MediaUpload, error) {
	if strings.TrimSpace(base64Data) == "" {
		return nil, &twapi.ValidationError{Field: constants.MediaDataField, Err: twapi.ErrEmptyMedia}
	}

	authorizer, err := auth.Select(twapi.AuthOAuth1, m.client.credentials, m.client.signerOpts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := m.client.uploadClient.Do(ctx, &twhttp.Request{
		Method: http.MethodPost,
		Path:   constants.MediaUploadPath,
		Form:   map[string]string{constants.MediaDataField: base64Data},
		Auth:   authorizer,
	})
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}

		m.client.observe(http.MethodPost, mediaRoute, status, start, err)

		return nil, err
	}

	var upload twapi.MediaUpload

	err = json.Unmarshal(resp.Body, &upload)
	if err != nil {
		decodeErr := &twapi.DecodeError{StatusCode: resp.StatusCode, Err: err}
		m.client.observe(http.MethodPost, mediaRoute, resp.StatusCode, start, decodeErr)

		return nil, decodeErr
	}

	m.client.observe(http.MethodPost, mediaRoute, resp.StatusCode, start, nil)

	return &upload, nil
}
