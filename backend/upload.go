package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/designmatch/web-client/internal/obs"
)

// UploadLogo uploads a vendor logo as a multipart form with a single
// "logo" file field. This is the secondary, independent request after a
// successful onboarding submission.
func (c *Client) UploadLogo(ctx context.Context, token, filename string, content io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("logo", filename)
	if err != nil {
		return fmt.Errorf("[backend upload_logo] failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("[backend upload_logo] failed to buffer logo: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("[backend upload_logo] failed to finalise form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image-upload/logo", &body)
	if err != nil {
		return fmt.Errorf("[backend upload_logo] failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		obs.ObserveBackendRequest("upload_logo", 0)
		return fmt.Errorf("[backend upload_logo] request failed: %w", err)
	}
	defer resp.Body.Close()

	obs.ObserveBackendRequest("upload_logo", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromResponse(resp)
	}
	return nil
}
