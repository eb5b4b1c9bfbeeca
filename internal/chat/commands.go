package chat

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/stazcp/macroTrackerTelegramBot/internal/foodlog"
	"github.com/stazcp/macroTrackerTelegramBot/internal/users"
)

const helpText = `Here's what I can do:

/log [food] - log a food item
/status - today's totals vs your goals
/goals [calories] [protein] [carbs] [fat] - view or set goals
/history [days] - recent food log (default 7 days)
/clear - clear today's entries
/help - this message

You can also just tell me what you ate, like "2 eggs and toast".`

func (s *Service) handleCommand(ctx context.Context, in Incoming, text string) Reply {
	fields := strings.Fields(text)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "/start":
		return s.commandStart(ctx, in)
	case "/help":
		return Reply{Text: helpText}
	case "/log":
		return s.commandLog(ctx, in, strings.TrimSpace(strings.TrimPrefix(text, fields[0])))
	case "/status":
		return s.commandStatus(ctx, in)
	case "/goals":
		return s.commandGoals(ctx, in, args)
	case "/history":
		return s.commandHistory(ctx, in, args)
	case "/clear":
		return s.commandClear(ctx, in)
	default:
		return Reply{Text: "Unknown command. Check /help for what I understand."}
	}
}

func (s *Service) commandStart(ctx context.Context, in Incoming) Reply {
	user, err := s.users.GetOrCreate(ctx, in.TelegramID, in.Username, in.FirstName, in.LastName)
	if err != nil {
		log.Printf("USER_CREATE_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: apologyReply}
	}

	name := user.FirstName
	if name == "" {
		name = "there"
	}
	return Reply{Text: fmt.Sprintf(
		"Hi %s! 👋 I'm your macro tracking assistant.\n\n"+
			"Tell me what you eat and I'll estimate the calories and macros. "+
			"Your current goals: %d kcal, %dg protein, %dg carbs, %dg fat.\n\n"+
			"Check /help to see everything I can do.",
		name, user.CalorieGoal, user.ProteinGoal, user.CarbsGoal, user.FatGoal)}
}

func (s *Service) commandLog(ctx context.Context, in Incoming, foodText string) Reply {
	if foodText == "" {
		return Reply{Text: "Tell me what to log, e.g. /log 2 eggs"}
	}
	return s.handleLogFood(ctx, in, foodText)
}

func (s *Service) commandStatus(ctx context.Context, in Incoming) Reply {
	user, err := s.users.Get(ctx, in.TelegramID)
	if err != nil {
		return Reply{Text: "You need to start the bot first. Use the /start command."}
	}

	logs, err := s.logs.TodayLogs(ctx, in.TelegramID)
	if err != nil {
		log.Printf("STATUS_QUERY_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: apologyReply}
	}
	if len(logs) == 0 {
		return Reply{Text: "You haven't logged any food today. Use /log [food] to log something!"}
	}

	totals := foodlog.CalculateTotals(logs)
	remaining := maxInt(0, user.CalorieGoal-totals.Calories)

	var b strings.Builder
	b.WriteString("📊 Today's Nutrition Summary\n\n")
	writeGoalLine(&b, "Calories", float64(totals.Calories), float64(user.CalorieGoal), "kcal")
	writeGoalLine(&b, "Protein", totals.Protein, float64(user.ProteinGoal), "g")
	writeGoalLine(&b, "Carbs", totals.Carbs, float64(user.CarbsGoal), "g")
	writeGoalLine(&b, "Fat", totals.Fat, float64(user.FatGoal), "g")
	fmt.Fprintf(&b, "Remaining Calories: %d kcal\n\n", remaining)
	fmt.Fprintf(&b, "Today's food log (%d items):\n", len(logs))
	for _, l := range logs {
		fmt.Fprintf(&b, "- %s: %d kcal\n", l.Food, l.Calories)
	}
	return Reply{Text: b.String()}
}

func (s *Service) commandGoals(ctx context.Context, in Incoming, args []string) Reply {
	user, err := s.users.Get(ctx, in.TelegramID)
	if err != nil {
		return Reply{Text: "You need to start the bot first. Use the /start command."}
	}

	if len(args) == 0 {
		return Reply{Text: fmt.Sprintf(
			"🎯 Your Nutritional Goals\n\n"+
				"Calories: %d kcal\nProtein: %dg\nCarbs: %dg\nFat: %dg\n\n"+
				"To update: /goals [calories] [protein] [carbs] [fat]\n"+
				"Example: /goals 2000 150 200 65",
			user.CalorieGoal, user.ProteinGoal, user.CarbsGoal, user.FatGoal)}
	}

	var goals users.Goals
	values := []*int{nil, nil, nil, nil}
	for i := 0; i < len(args) && i < 4; i++ {
		n, err := strconv.Atoi(args[i])
		if err != nil || n <= 0 {
			return Reply{Text: "Goals must be positive numbers. Example: /goals 2000 150 200 65"}
		}
		v := n
		values[i] = &v
	}
	goals.Calories, goals.Protein, goals.Carbs, goals.Fat = values[0], values[1], values[2], values[3]

	updated, err := s.users.UpdateGoals(ctx, in.TelegramID, goals)
	if err != nil {
		log.Printf("GOALS_UPDATE_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: apologyReply}
	}
	return Reply{Text: fmt.Sprintf(
		"✅ Goals updated!\n\nCalories: %d kcal\nProtein: %dg\nCarbs: %dg\nFat: %dg",
		updated.CalorieGoal, updated.ProteinGoal, updated.CarbsGoal, updated.FatGoal)}
}

func (s *Service) commandHistory(ctx context.Context, in Incoming, args []string) Reply {
	if _, err := s.users.Get(ctx, in.TelegramID); err != nil {
		return Reply{Text: "You need to start the bot first. Use the /start command."}
	}

	days := 7
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			days = n
		}
	}

	logs, err := s.logs.History(ctx, in.TelegramID, days)
	if err != nil {
		log.Printf("HISTORY_QUERY_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: apologyReply}
	}
	if len(logs) == 0 {
		return Reply{Text: fmt.Sprintf("No food logged in the last %d days.", days)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📖 Food log, last %d days:\n", days)
	currentDay := ""
	for _, l := range logs {
		day := l.LoggedAt.Format("Mon Jan 2")
		if day != currentDay {
			fmt.Fprintf(&b, "\n%s\n", day)
			currentDay = day
		}
		fmt.Fprintf(&b, "- %s: %d kcal\n", l.Food, l.Calories)
	}
	return Reply{Text: b.String()}
}

func (s *Service) commandClear(ctx context.Context, in Incoming) Reply {
	if _, err := s.users.Get(ctx, in.TelegramID); err != nil {
		return Reply{Text: "You need to start the bot first. Use the /start command."}
	}

	logs, err := s.logs.TodayLogs(ctx, in.TelegramID)
	if err != nil {
		log.Printf("CLEAR_QUERY_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: apologyReply}
	}
	if len(logs) == 0 {
		return Reply{Text: "You don't have any food entries for today to clear!"}
	}

	totals := foodlog.CalculateTotals(logs)
	s.confirmations.Set(in.TelegramID, confirmationKindClear)

	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ You are about to clear %d food entries from today:\n\n", len(logs))
	for _, l := range logs {
		fmt.Fprintf(&b, "• %s: %d kcal\n", l.Food, l.Calories)
	}
	fmt.Fprintf(&b, "\nTotal to be cleared: %d kcal | %gg protein | %gg carbs | %gg fat\n\n",
		totals.Calories, totals.Protein, totals.Carbs, totals.Fat)
	fmt.Fprintf(&b, "This cannot be undone! Reply with %q to proceed, or any other message to cancel.",
		strings.Join(confirmationWords, `", "`))
	return Reply{Text: b.String()}
}

func (s *Service) handleConfirmation(ctx context.Context, in Incoming, pending pendingConfirmation, text string) Reply {
	defer s.confirmations.Clear(in.TelegramID)

	if pending.Kind != confirmationKindClear {
		return Reply{Text: apologyReply}
	}

	if !isPositiveConfirmation(text) {
		return Reply{Text: "❌ Clear operation cancelled. Your food log remains unchanged."}
	}

	deleted, err := s.logs.ClearToday(ctx, in.TelegramID)
	if err != nil {
		log.Printf("CLEAR_FAILED user=%d err=%v", in.TelegramID, err)
		return Reply{Text: "Sorry, I had trouble clearing your food log. Please try again later."}
	}
	if deleted == 0 {
		return Reply{Text: "No entries were found to clear. They may have already been removed."}
	}
	return Reply{Text: fmt.Sprintf(
		"✅ Cleared %d food entries from today! Your daily log has been reset. 🔄", deleted)}
}

// writeGoalLine renders one "current / goal" line with a ten-segment
// progress bar. Percentages over 100 keep a full bar plus a flame marker.
func writeGoalLine(b *strings.Builder, label string, current, goal float64, unit string) {
	percent := 0
	if goal > 0 {
		percent = int(current / goal * 100)
	}

	clamped := percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}
	filled := clamped / 10
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	if percent > 100 {
		bar += " 🔥"
	}

	if unit == "kcal" {
		fmt.Fprintf(b, "%s: %.0f / %.0f %s (%d%%)\n%s\n\n", label, current, goal, unit, percent, bar)
		return
	}
	fmt.Fprintf(b, "%s: %.1f%s / %.0f%s (%d%%)\n%s\n\n", label, current, unit, goal, unit, percent, bar)
}
