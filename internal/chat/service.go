package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/stazcp/macroTrackerTelegramBot/internal/cache"
	"github.com/stazcp/macroTrackerTelegramBot/internal/conversation"
	"github.com/stazcp/macroTrackerTelegramBot/internal/food"
	"github.com/stazcp/macroTrackerTelegramBot/internal/foodlog"
	"github.com/stazcp/macroTrackerTelegramBot/internal/intent"
	"github.com/stazcp/macroTrackerTelegramBot/internal/llm"
	"github.com/stazcp/macroTrackerTelegramBot/internal/users"
)

const (
	parseCacheLimit     = 1000
	intentThreshold     = 0.5
	apologyReply        = "Sorry, I had trouble understanding that. Try /log [food item] or check /help for commands!"
	cannedQuestionReply = "I'd be happy to help with your nutrition question! You can also use /status to see your current intake and /goals to check your targets."
)

// Incoming is one user message arriving over the transport seam.
type Incoming struct {
	TelegramID int64  `json:"user_id" binding:"required"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Text       string `json:"text" binding:"required"`
}

// Reply is what goes back to the transport for rendering.
type Reply struct {
	Text       string          `json:"reply"`
	Intent     string          `json:"intent,omitempty"`
	Confidence float64         `json:"confidence,omitempty"`
	Logged     []food.Estimate `json:"logged,omitempty"`
}

// Service runs the full message pipeline: confirmation short-circuit,
// intent classification, then logging, modification or question answering.
type Service struct {
	client        llm.Client
	classifier    *intent.Classifier
	conversations *conversation.Store
	confirmations *confirmationStore
	users         *users.Service
	logs          *foodlog.Service
	parseCache    *cache.Cache[llm.FoodParseResult]
}

func NewService(client llm.Client, userService *users.Service, logService *foodlog.Service) *Service {
	return &Service{
		client:        client,
		classifier:    intent.NewClassifier(client),
		conversations: conversation.NewStore(),
		confirmations: newConfirmationStore(),
		users:         userService,
		logs:          logService,
		parseCache:    cache.New[llm.FoodParseResult](parseCacheLimit),
	}
}

// Start launches the background sweepers; Stop shuts them down.
func (s *Service) Start() {
	s.conversations.StartSweeper()
	s.confirmations.StartSweeper()
}

func (s *Service) Stop() {
	s.conversations.Stop()
	s.confirmations.Stop()
}

// HandleMessage processes one message to completion. It never returns an
// error to the transport: every internal failure degrades to a lower tier,
// and only a total failure yields the generic apology.
func (s *Service) HandleMessage(ctx context.Context, in Incoming) Reply {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Reply{Text: apologyReply}
	}

	if strings.HasPrefix(text, "/") {
		return s.handleCommand(ctx, in, text)
	}

	if pending, ok := s.confirmations.Get(in.TelegramID); ok && isConfirmationResponse(text) {
		return s.handleConfirmation(ctx, in, pending, text)
	}

	recentContext := s.conversations.RecentContext(in.TelegramID)
	result := s.classifier.Classify(ctx, text, recentContext)
	log.Printf("INTENT_DETECTED user=%d intent=%s confidence=%.2f", in.TelegramID, result.Intent, result.Confidence)

	var reply Reply
	switch {
	case result.Intent == llm.IntentLogFood && result.Confidence > intentThreshold:
		reply = s.handleLogFood(ctx, in, text)
	case result.Intent == llm.IntentModifyFood && result.Confidence > intentThreshold:
		reply = s.handleModifyFood(ctx, in, text, recentContext)
	case result.Intent == llm.IntentFoodQuestion && result.Confidence > intentThreshold:
		reply = s.handleFoodQuestion(ctx, in, text, recentContext)
	case intent.IsAboutFood(text):
		reply = Reply{Text: "I can see you're talking about food! 🍽️\n\n" +
			"📝 To log food: tell me what you ate (e.g. \"I had 2 eggs\")\n" +
			"❓ To ask questions: ask me anything about nutrition\n" +
			"📊 To check status: use /status for your daily totals"}
		s.conversations.Record(in.TelegramID, text, "food_unclear")
	default:
		reply = Reply{Text: "Hey! I'm here to track your food and answer nutrition questions. Try:\n\n" +
			"📝 \"Just had a chicken breast with rice\"\n" +
			"❓ \"What should I eat more of today?\"\n" +
			"📊 /status to see your progress\n\n" +
			"Or check /help for all commands!"}
		s.conversations.Record(in.TelegramID, text, result.Intent)
	}

	reply.Intent = result.Intent
	reply.Confidence = result.Confidence
	return reply
}

func (s *Service) handleLogFood(ctx context.Context, in Incoming, text string) Reply {
	estimates := s.parseFoods(ctx, text)
	if len(estimates) == 0 {
		return Reply{Text: apologyReply}
	}

	user, err := s.users.GetOrCreate(ctx, in.TelegramID, in.Username, in.FirstName, in.LastName)
	if err != nil {
		log.Printf("USER_LOOKUP_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: apologyReply}
	}

	var b strings.Builder
	b.WriteString("Got it! I logged:\n\n")
	total := 0
	for _, est := range estimates {
		if _, err := s.logs.LogEstimate(ctx, user, est); err != nil {
			log.Printf("LOG_INSERT_FAILED user=%d food=%q err=%v", in.TelegramID, est.Name, err)
			continue
		}
		writeEstimateLine(&b, est)
		total += est.Calories
	}
	fmt.Fprintf(&b, "Total: %d calories added to today's log! 📈", total)

	s.conversations.Record(in.TelegramID, text, llm.IntentLogFood)
	s.conversations.RecordEstimates(in.TelegramID, estimates)

	return Reply{Text: b.String(), Logged: estimates}
}

func (s *Service) handleModifyFood(ctx context.Context, in Incoming, text, recentContext string) Reply {
	recent, err := s.logs.MostRecentLog(ctx, in.TelegramID)
	if err != nil {
		s.conversations.Record(in.TelegramID, text, llm.IntentModifyFood)
		return Reply{Text: "I don't see any recent food entries to modify. Could you be more specific about what you'd like to log?"}
	}

	action, combined := s.resolveModification(ctx, text, recent, recentContext)

	if action == llm.ActionUpdate {
		if err := s.logs.ApplyEstimate(ctx, recent, combined); err != nil {
			log.Printf("LOG_UPDATE_FAILED user=%d err=%v", in.TelegramID, err)
			return Reply{Text: apologyReply}
		}
		s.conversations.Record(in.TelegramID, text, llm.IntentModifyFood)
		s.conversations.RecordEstimates(in.TelegramID, []food.Estimate{combined})

		reply := fmt.Sprintf("✅ Updated your entry!\n\n🍽️ %s\n📊 %d cal | %gg protein | %gg carbs | %gg fat",
			combined.Name, combined.Calories, combined.Protein, combined.Carbs, combined.Fat)
		if combined.Note != "" {
			reply += "\n\n" + combined.Note
		}
		return Reply{Text: reply, Logged: []food.Estimate{combined}}
	}

	// add_separate: the combined item stands on its own.
	user, err := s.users.GetOrCreate(ctx, in.TelegramID, in.Username, in.FirstName, in.LastName)
	if err != nil {
		log.Printf("USER_LOOKUP_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: apologyReply}
	}
	if _, err := s.logs.LogEstimate(ctx, user, combined); err != nil {
		log.Printf("LOG_INSERT_FAILED user=%d food=%q err=%v", in.TelegramID, combined.Name, err)
		return Reply{Text: apologyReply}
	}

	s.conversations.Record(in.TelegramID, text, llm.IntentModifyFood)
	s.conversations.RecordEstimates(in.TelegramID, []food.Estimate{combined})

	var b strings.Builder
	b.WriteString("Got it! I also logged:\n\n")
	writeEstimateLine(&b, combined)
	fmt.Fprintf(&b, "Additional %d calories logged! 📈", combined.Calories)
	return Reply{Text: b.String(), Logged: []food.Estimate{combined}}
}

func (s *Service) handleFoodQuestion(ctx context.Context, in Incoming, text, recentContext string) Reply {
	userContext := s.buildUserContext(ctx, in.TelegramID)

	answer, err := s.client.Complete(ctx, llm.BuildQuestionPrompt(text, userContext, recentContext))
	if err != nil || strings.TrimSpace(answer) == "" {
		log.Printf("QUESTION_FALLBACK user=%d err=%v", in.TelegramID, err)
		answer = cannedQuestionReply
	}

	s.conversations.Record(in.TelegramID, text, llm.IntentFoodQuestion)
	return Reply{Text: answer}
}

// parseFoods resolves a log_food message to estimates: cache, then the
// language service, then the deterministic multi-item segmenter.
func (s *Service) parseFoods(ctx context.Context, text string) []food.Estimate {
	key := strings.ToLower(strings.TrimSpace(text))
	if cached, ok := s.parseCache.Get(key); ok {
		return estimatesFromParse(cached)
	}

	raw, err := s.client.Complete(ctx, llm.BuildFoodParsePrompt(text))
	var parsed *llm.FoodParseResult
	if err == nil {
		parsed, err = llm.DecodeFoodParse(raw)
	}
	if err != nil {
		log.Printf("FOOD_PARSE_FALLBACK err=%v", err)
		return food.Segment(text)
	}

	s.parseCache.Put(key, *parsed)
	return estimatesFromParse(*parsed)
}

func estimatesFromParse(parsed llm.FoodParseResult) []food.Estimate {
	estimates := make([]food.Estimate, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		qty, unit := food.ParseQuantity(f.Quantity)
		if unit == "" {
			unit = "serving"
		}

		source := f.Source
		switch source {
		case food.SourceWeightCalculated, food.SourceDatabase, food.SourceEnhancedFallback, food.SourceEstimated:
		default:
			source = food.SourceDatabase
		}
		accuracy := f.Accuracy
		switch accuracy {
		case food.AccuracyHigh, food.AccuracyMedium, food.AccuracyLow:
		default:
			accuracy = food.AccuracyMedium
		}

		note := parsed.ParsingNotes
		if f.NeedsClarification && parsed.FollowUpQuestion != "" {
			note = parsed.FollowUpQuestion
		}

		estimates = append(estimates, food.Estimate{
			Name:     f.Item,
			Quantity: qty,
			Unit:     unit,
			Calories: f.EstimatedCalories,
			Protein:  f.Protein,
			Carbs:    f.Carbs,
			Fat:      f.Fat,
			Source:   source,
			Accuracy: accuracy,
			Note:     note,
		})
	}
	return estimates
}

func (s *Service) buildUserContext(ctx context.Context, telegramID int64) string {
	user, err := s.users.Get(ctx, telegramID)
	if err != nil {
		return ""
	}
	logs, err := s.logs.TodayLogs(ctx, telegramID)
	if err != nil {
		return ""
	}
	totals := foodlog.CalculateTotals(logs)

	return fmt.Sprintf(
		"Goals: %d kcal, %dg protein, %dg carbs, %dg fat\n"+
			"Today: %d kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n"+
			"Remaining: %d kcal, %.1fg protein, %.1fg carbs, %.1fg fat",
		user.CalorieGoal, user.ProteinGoal, user.CarbsGoal, user.FatGoal,
		totals.Calories, totals.Protein, totals.Carbs, totals.Fat,
		maxInt(0, user.CalorieGoal-totals.Calories),
		maxFloat(0, float64(user.ProteinGoal)-totals.Protein),
		maxFloat(0, float64(user.CarbsGoal)-totals.Carbs),
		maxFloat(0, float64(user.FatGoal)-totals.Fat),
	)
}

func writeEstimateLine(b *strings.Builder, est food.Estimate) {
	fmt.Fprintf(b, "🍽️ %s (%g %s)\n", est.Name, est.Quantity, est.Unit)
	fmt.Fprintf(b, "   📊 %d cal | %gg protein | %gg carbs | %gg fat\n\n",
		est.Calories, est.Protein, est.Carbs, est.Fat)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
