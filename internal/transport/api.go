package transport

import (
	"context"
	"io"

	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

// Template test-panel endpoints.
const (
	TitlesPath    = "/api/v1/prompt-templates/test/titles"
	InterviewPath = "/api/v1/prompt-templates/test/interview"
	ContentPath   = "/api/v1/prompt-templates/test/content"
)

// GenerateTitles runs the title-generation phase: one request, one response,
// no streaming.
func (c *Client) GenerateTitles(ctx context.Context, req types.TitleRequest) (*types.TitleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp types.TitleResponse
	if err := c.PostJSON(ctx, TitlesPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateInterview runs the interview-generation phase for the given title.
func (c *Client) GenerateInterview(ctx context.Context, req types.InterviewRequest) (*types.InterviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp types.InterviewResponse
	if err := c.PostJSON(ctx, InterviewPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OpenContentStream starts the content-generation phase and returns the live
// event stream for the caller to decode.
func (c *Client) OpenContentStream(ctx context.Context, req types.ContentRequest) (io.ReadCloser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.OpenStream(ctx, ContentPath, req)
}
