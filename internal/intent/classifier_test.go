package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stazcp/macroTrackerTelegramBot/internal/llm"
)

type fakeClient struct {
	reply string
	err   error
	calls int
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestClassifyCachesResults(t *testing.T) {
	client := &fakeClient{reply: `{"intent":"log_food","confidence":0.85}`}
	c := NewClassifier(client)

	first := c.Classify(context.Background(), "I had a salad", "")
	second := c.Classify(context.Background(), "I had a salad", "")

	if first.Intent != llm.IntentLogFood || first.Confidence != 0.85 {
		t.Errorf("got %+v", first)
	}
	if second != first {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
	if client.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", client.calls)
	}
}

func TestClassifyContextChangesCacheKey(t *testing.T) {
	client := &fakeClient{reply: `{"intent":"log_food","confidence":0.85}`}
	c := NewClassifier(client)

	c.Classify(context.Background(), "I had a salad", "")
	c.Classify(context.Background(), "I had a salad", "User: hello (Intent: other)")

	if client.calls != 2 {
		t.Errorf("expected 2 upstream calls for distinct contexts, got %d", client.calls)
	}
}

func TestClassifyFallbackNotCached(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	c := NewClassifier(client)

	res := c.Classify(context.Background(), "and some chips", "")
	if res.Intent != llm.IntentModifyFood || res.Confidence != 0.9 {
		t.Errorf("got %+v", res)
	}

	// A second call must retry upstream instead of serving the fallback.
	c.Classify(context.Background(), "and some chips", "")
	if client.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", client.calls)
	}
}

func TestClassifyMalformedReplyFallsBack(t *testing.T) {
	client := &fakeClient{reply: "I think this is about food."}
	c := NewClassifier(client)

	res := c.Classify(context.Background(), "i ate an apple", "")
	if res.Intent != llm.IntentLogFood || res.Confidence != 0.6 {
		t.Errorf("got %+v", res)
	}
}

func TestFallbackIntentRules(t *testing.T) {
	cases := []struct {
		message    string
		intent     string
		confidence float64
	}{
		{"and some chips", llm.IntentModifyFood, 0.9},
		{"with extra cheese", llm.IntentModifyFood, 0.9},
		{"actually it was two", llm.IntentModifyFood, 0.8},
		{"oops, scratch that", llm.IntentModifyFood, 0.8},
		{"what should i eat for lunch", llm.IntentFoodQuestion, 0.7},
		{"is coffee ok before bed?", llm.IntentFoodQuestion, 0.7},
		{"i ate an apple", llm.IntentLogFood, 0.6},
		{"finished my oatmeal", llm.IntentLogFood, 0.6},
		{"hello there", llm.IntentOther, 0.5},
	}

	for _, c := range cases {
		got := FallbackIntent(c.message)
		if got.Intent != c.intent || got.Confidence != c.confidence {
			t.Errorf("%q: got %s/%v, want %s/%v",
				c.message, got.Intent, got.Confidence, c.intent, c.confidence)
		}
	}
}

func TestIsAboutFood(t *testing.T) {
	if !IsAboutFood("what's a good breakfast") {
		t.Error("expected food mention to be detected")
	}
	if IsAboutFood("the stock market dipped") {
		t.Error("expected non-food message to be rejected")
	}
}
