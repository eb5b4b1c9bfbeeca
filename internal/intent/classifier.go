package intent

import (
	"context"
	"log"
	"strings"

	"github.com/stazcp/macroTrackerTelegramBot/internal/cache"
	"github.com/stazcp/macroTrackerTelegramBot/internal/llm"
)

const cacheLimit = 500

// Keyword sets for the deterministic fallback classifier.
var (
	continuationPrefixes = []string{"and ", "with ", "plus "}

	modificationWords = []string{
		"actually", "instead", "also", "forgot", "i meant",
		"make that", "change", "correction", "scratch that", "oops",
	}

	questionWords = []string{"what", "how", "should", "need", "can", "which", "?"}
	adviceWords   = []string{"recommend", "suggest", "advice", "help", "should eat"}

	consumptionWords = []string{"ate", "had", "consumed", "finished", "just", "eating"}

	foodKeywords = []string{
		"ate", "eat", "eating", "had", "consumed", "food", "meal",
		"breakfast", "lunch", "dinner", "snack", "calories", "protein",
		"what should i eat", "nutrition", "healthy",
	}
)

// Classifier determines message intent via the language service, memoizing
// results and degrading to keyword scoring when the service fails.
type Classifier struct {
	client llm.Client
	cache  *cache.Cache[llm.IntentResult]
}

func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{
		client: client,
		cache:  cache.New[llm.IntentResult](cacheLimit),
	}
}

// Classify never fails: upstream errors route to FallbackIntent. The cache
// is consulted before any external call; fallback results are not cached so
// a recovered service gets asked again.
func (c *Classifier) Classify(ctx context.Context, message, recentContext string) llm.IntentResult {
	key := strings.ToLower(strings.TrimSpace(recentContext + message))
	if cached, ok := c.cache.Get(key); ok {
		return cached
	}

	raw, err := c.client.Complete(ctx, llm.BuildIntentPrompt(message, recentContext))
	var result *llm.IntentResult
	if err == nil {
		result, err = llm.DecodeIntent(raw)
	}
	if err != nil {
		log.Printf("INTENT_FALLBACK err=%v", err)
		return FallbackIntent(message)
	}

	c.cache.Put(key, *result)
	return *result
}

// FallbackIntent scores a message with fixed keyword heuristics. Rules are
// checked in order; the first hit decides.
func FallbackIntent(message string) llm.IntentResult {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, prefix := range continuationPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return llm.IntentResult{Intent: llm.IntentModifyFood, Confidence: 0.9}
		}
	}

	if len(lower) < 50 && containsAny(lower, modificationWords) {
		return llm.IntentResult{Intent: llm.IntentModifyFood, Confidence: 0.8}
	}

	if containsAny(lower, questionWords) || containsAny(lower, adviceWords) {
		return llm.IntentResult{Intent: llm.IntentFoodQuestion, Confidence: 0.7}
	}

	if containsAny(lower, consumptionWords) {
		return llm.IntentResult{Intent: llm.IntentLogFood, Confidence: 0.6}
	}

	return llm.IntentResult{Intent: llm.IntentOther, Confidence: 0.5}
}

// IsAboutFood is a loose keyword check used when intent confidence is too
// low to act on.
func IsAboutFood(message string) bool {
	lower := strings.ToLower(message)
	return containsAny(lower, foodKeywords)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
