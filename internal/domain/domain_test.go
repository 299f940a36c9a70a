package domain

import "testing"

func TestBreakdownBucketsKeepDisplayOrder(t *testing.T) {
	b := Breakdown{SPositive: 1, Neutral: 4, SNegative: 7}
	buckets := b.Buckets()
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "Strong Positive" || buckets[0].Value != 1 {
		t.Fatalf("unexpected first bucket %+v", buckets[0])
	}
	if buckets[3].Key != BucketNeutral || buckets[3].Value != 4 {
		t.Fatalf("unexpected neutral bucket %+v", buckets[3])
	}
	if buckets[6].Color != "#b91c1c" {
		t.Fatalf("unexpected strong negative color %s", buckets[6].Color)
	}
	if b.Total() != 12 {
		t.Fatalf("expected total 12, got %v", b.Total())
	}
}

func TestBreakdownSetIgnoresUnknownKey(t *testing.T) {
	var b Breakdown
	b.Set(BucketWeakNegative, 3)
	b.Set(BucketKey("bogus"), 9)
	if b.WNegative != 3 || b.Total() != 3 {
		t.Fatalf("unexpected breakdown %+v", b)
	}
	if b.Get(BucketKey("bogus")) != 0 {
		t.Fatalf("expected unknown key to read as 0")
	}
}

func TestMoodThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Mood
	}{
		{0.51, MoodPositive},
		{0.5, MoodNeutral},
		{-0.5, MoodNeutral},
		{-0.51, MoodNegative},
	}
	for _, tc := range cases {
		if got := MoodFor(tc.score); got != tc.want {
			t.Fatalf("MoodFor(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestToxicityLevels(t *testing.T) {
	if LevelFor(0.29) != ToxicityLow || LevelFor(0.3) != ToxicityMedium || LevelFor(0.7) != ToxicityHigh {
		t.Fatalf("unexpected toxicity thresholds")
	}
	if (ToxicComment{Score: 0.876}).Percent() != 88 {
		t.Fatalf("expected rounded percent")
	}
}

func TestVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=abc123":         "abc123",
		"youtube.com/watch?v=abc123&t=42":                "abc123",
		"https://youtu.be/xyz789?si=share":               "xyz789",
		"https://m.youtube.com/shorts/short1":            "short1",
		"https://example.com/watch?v=abc123":             "",
		"":                                               "",
		"https://www.youtube.com/embed/emb42/extra/path": "emb42",
	}
	for in, want := range cases {
		if got := (AnalysisRequest{VideoURL: in}).VideoID(); got != want {
			t.Fatalf("VideoID(%q) = %q, want %q", in, got, want)
		}
	}
}
