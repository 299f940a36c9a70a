package analysis

import (
	"fmt"
	"strings"

	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/pkg/errors"
)

// ValidateRequest applies the same checks as the link input screen before any
// request is sent.
func ValidateRequest(req domain.AnalysisRequest) error {
	url := strings.TrimSpace(req.VideoURL)
	if url == "" {
		return errors.NewValidationError("Please enter a YouTube URL", "video_url", req.VideoURL)
	}
	if !strings.Contains(url, "youtube.com/watch?v=") && !strings.Contains(url, "youtu.be/") {
		return errors.NewValidationError("Please enter a valid YouTube URL", "video_url", req.VideoURL)
	}

	limits := constants.InputLimits
	if req.CommentCount < limits.MinCommentCount || req.CommentCount > limits.MaxCommentCount {
		return errors.NewValidationError(
			fmt.Sprintf("Comment count must be between %d and %d", limits.MinCommentCount, limits.MaxCommentCount),
			"comment_count", req.CommentCount,
		)
	}
	return nil
}
