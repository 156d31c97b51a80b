package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/crmclient/internal/client/models"
)

func (c *HTTPClient) LeadScore(ctx context.Context, contactID int64) (int, error) {
	var resp models.LeadScoreResponse
	path := fmt.Sprintf("/api/contacts/%d/lead_score/", contactID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	if resp.LeadScore < 0 || resp.LeadScore > 100 {
		return 0, fmt.Errorf("%w: lead score %d out of range", ErrMalformedResponse, resp.LeadScore)
	}
	return resp.LeadScore, nil
}

func (c *HTTPClient) FollowUpSuggestions(ctx context.Context, contactID int64) ([]models.Suggestion, error) {
	var resp models.SuggestionsResponse
	path := fmt.Sprintf("/api/contacts/%d/follow_up_suggestions/", contactID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []models.Suggestion{}
	}
	return resp.Suggestions, nil
}
