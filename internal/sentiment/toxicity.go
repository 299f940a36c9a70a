package sentiment

import (
	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/payload"
	"github.com/tidwall/gjson"
)

// ToxicComments reads toxicity.bert as [text, score] pairs. Entries without a
// string text are skipped and scores are clamped to [0, 1]. The result is never nil.
func ToxicComments(raw any) []domain.ToxicComment {
	return toxicComments(payload.Parse(raw))
}

// Emojis reads the emojis list as [emoji, count] pairs in payload order.
func Emojis(raw any) []domain.EmojiCount {
	return emojis(payload.Parse(raw))
}

func toxicComments(root gjson.Result) []domain.ToxicComment {
	comments := make([]domain.ToxicComment, 0)
	for _, entry := range array(payload.Field(payload.Field(root, "toxicity"), "bert")) {
		pair := array(entry)
		if len(pair) == 0 || pair[0].Type != gjson.String {
			continue
		}
		var score float64
		if len(pair) > 1 {
			score = clamp(number(pair[1]), 0, 1)
		}
		comments = append(comments, domain.ToxicComment{Text: pair[0].String(), Score: score})
	}
	return comments
}

func emojis(root gjson.Result) []domain.EmojiCount {
	counts := make([]domain.EmojiCount, 0)
	for _, entry := range array(payload.Field(root, "emojis")) {
		pair := array(entry)
		if len(pair) == 0 || pair[0].Type != gjson.String || pair[0].String() == "" {
			continue
		}
		var n float64
		if len(pair) > 1 {
			n = count(pair[1])
		}
		counts = append(counts, domain.EmojiCount{Emoji: pair[0].String(), Count: int(n)})
	}
	return counts
}

// array returns the elements of r when it is a JSON array, nil otherwise.
func array(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}
