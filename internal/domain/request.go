package domain

import (
	"net/url"
	"strings"
)

// AnalysisRequest is what the user submits: a video link and how many comments to analyze.
type AnalysisRequest struct {
	VideoURL     string `json:"video_url"`
	CommentCount int    `json:"comment_count"`
}

// VideoID extracts the video id from a watch or short link, "" when none is found.
func (r AnalysisRequest) VideoID() string {
	raw := strings.TrimSpace(r.VideoURL)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtu.be":
		return firstPathSegment(u.Path)
	case "youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return firstPathSegment(strings.TrimPrefix(u.Path, prefix))
			}
		}
	}
	return ""
}

func firstPathSegment(path string) string {
	path = strings.Trim(path, "/")
	if idx := strings.Index(path, "/"); idx >= 0 {
		path = path[:idx]
	}
	return path
}
