package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stazcp/macroTrackerTelegramBot/internal/food"
	"github.com/stazcp/macroTrackerTelegramBot/internal/foodlog"
	"github.com/stazcp/macroTrackerTelegramBot/internal/llm"
	"github.com/stazcp/macroTrackerTelegramBot/internal/users"
)

// scriptedClient feeds canned replies in order, or a fixed error.
type scriptedClient struct {
	replies []string
	err     error
	calls   int
}

func (c *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", errors.New("script exhausted")
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return reply, nil
}

type fixture struct {
	svc  *Service
	logs *foodlog.Service
	user *users.Service
}

func newFixture(client llm.Client) fixture {
	userSvc := users.NewService(users.NewInMemoryRepository())
	logSvc := foodlog.NewService(foodlog.NewInMemoryRepository())
	return fixture{
		svc:  NewService(client, userSvc, logSvc),
		logs: logSvc,
		user: userSvc,
	}
}

func incoming(text string) Incoming {
	return Incoming{TelegramID: 42, Username: "jdoe", FirstName: "Jane", Text: text}
}

func TestHandleMessageEmptyText(t *testing.T) {
	f := newFixture(&scriptedClient{err: errors.New("down")})

	reply := f.svc.HandleMessage(context.Background(), incoming("   "))
	if reply.Text != apologyReply {
		t.Errorf("got %q", reply.Text)
	}
}

func TestHandleMessageLogsViaUpstream(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"intent":"log_food","confidence":0.95}`,
		`{"foods":[{"item":"grilled chicken","quantity":"1 serving","estimatedCalories":165,"protein":31,"carbs":0,"fat":3.6,"source":"database","accuracy":"high"}]}`,
	}}
	f := newFixture(client)

	reply := f.svc.HandleMessage(context.Background(), incoming("I had grilled chicken"))

	if reply.Intent != llm.IntentLogFood || reply.Confidence != 0.95 {
		t.Errorf("got intent %s/%v", reply.Intent, reply.Confidence)
	}
	if len(reply.Logged) != 1 || reply.Logged[0].Name != "grilled chicken" {
		t.Fatalf("got %+v", reply.Logged)
	}
	if !strings.Contains(reply.Text, "165") {
		t.Errorf("reply should mention calories: %q", reply.Text)
	}

	logs, err := f.logs.TodayLogs(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Calories != 165 {
		t.Errorf("got %+v", logs)
	}
}

func TestHandleMessageUpstreamDownUsesSegmenter(t *testing.T) {
	f := newFixture(&scriptedClient{err: errors.New("service down")})

	reply := f.svc.HandleMessage(context.Background(), incoming("I ate 2 eggs and a banana"))

	if reply.Intent != llm.IntentLogFood {
		t.Fatalf("got intent %s", reply.Intent)
	}
	if len(reply.Logged) != 2 {
		t.Fatalf("expected 2 items, got %+v", reply.Logged)
	}
	if reply.Logged[0].Name != "egg" || reply.Logged[0].Quantity != 2 {
		t.Errorf("first item: %+v", reply.Logged[0])
	}
	if reply.Logged[1].Name != "banana" {
		t.Errorf("second item: %+v", reply.Logged[1])
	}
	if !strings.Contains(reply.Text, "Total: 249 calories") {
		t.Errorf("got %q", reply.Text)
	}

	logs, err := f.logs.TodayLogs(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Errorf("expected both items persisted, got %+v", logs)
	}
}

func TestHandleMessageParseCacheSkipsSecondParse(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"intent":"log_food","confidence":0.95}`,
		`{"foods":[{"item":"banana","quantity":"1","estimatedCalories":105,"protein":1.3,"carbs":27,"fat":0.4}]}`,
		`{"intent":"log_food","confidence":0.95}`,
	}}
	f := newFixture(client)

	f.svc.HandleMessage(context.Background(), incoming("a banana"))
	reply := f.svc.HandleMessage(context.Background(), incoming("a banana"))

	// Two intent calls (conversation context changes the key) but only one
	// food parse call.
	if client.calls != 3 {
		t.Errorf("expected 3 upstream calls, got %d", client.calls)
	}
	if len(reply.Logged) != 1 || reply.Logged[0].Calories != 105 {
		t.Errorf("got %+v", reply.Logged)
	}
}

func TestHandleMessageModifyUpdatesRecentEntry(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"intent":"modify_food","confidence":0.9,"modification_type":"addition"}`,
		`{"action":"update","combined_food":{"item":"coffee with milk","quantity":"1 cup","estimatedCalories":50,"protein":2,"carbs":4,"fat":2,"explanation":"added milk"}}`,
	}}
	f := newFixture(client)
	ctx := context.Background()

	user, err := f.user.GetOrCreate(ctx, 42, "jdoe", "Jane", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.logs.LogEstimate(ctx, user, food.Estimate{Name: "coffee", Quantity: 1, Unit: "cup", Calories: 5}); err != nil {
		t.Fatal(err)
	}

	reply := f.svc.HandleMessage(ctx, incoming("with a splash of milk"))

	if !strings.Contains(reply.Text, "Updated") {
		t.Errorf("got %q", reply.Text)
	}

	logs, err := f.logs.TodayLogs(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Food != "coffee with milk" || logs[0].Calories != 50 {
		t.Errorf("got %+v", logs)
	}
}

func TestHandleMessageModifyFallbackAddsSeparate(t *testing.T) {
	f := newFixture(&scriptedClient{err: errors.New("service down")})
	ctx := context.Background()

	user, err := f.user.GetOrCreate(ctx, 42, "jdoe", "Jane", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.logs.LogEstimate(ctx, user, food.Estimate{Name: "toast", Quantity: 1, Unit: "serving", Calories: 150}); err != nil {
		t.Fatal(err)
	}

	reply := f.svc.HandleMessage(ctx, incoming("and some sauce"))

	if !strings.Contains(reply.Text, "also logged") {
		t.Errorf("got %q", reply.Text)
	}
	if len(reply.Logged) != 1 || reply.Logged[0].Source != food.SourceEnhancedFallback {
		t.Errorf("got %+v", reply.Logged)
	}
	if reply.Logged[0].Calories != fallbackCalories {
		t.Errorf("expected conservative fallback calories, got %d", reply.Logged[0].Calories)
	}

	logs, err := f.logs.TodayLogs(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Errorf("the original entry must remain untouched: %+v", logs)
	}
}

func TestHandleMessageModifyWithoutRecentEntry(t *testing.T) {
	f := newFixture(&scriptedClient{err: errors.New("service down")})

	reply := f.svc.HandleMessage(context.Background(), incoming("and some sauce"))

	if !strings.Contains(reply.Text, "recent food entries") {
		t.Errorf("got %q", reply.Text)
	}
}

func TestHandleMessageFoodQuestion(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"intent":"food_question","confidence":0.9}`,
		"Lean protein like chicken or fish would fit your remaining macros.",
	}}
	f := newFixture(client)

	reply := f.svc.HandleMessage(context.Background(), incoming("what should I eat tonight?"))

	if reply.Intent != llm.IntentFoodQuestion {
		t.Errorf("got %s", reply.Intent)
	}
	if !strings.Contains(reply.Text, "Lean protein") {
		t.Errorf("got %q", reply.Text)
	}
}

func TestHandleMessageFoodQuestionFallback(t *testing.T) {
	f := newFixture(&scriptedClient{err: errors.New("service down")})

	reply := f.svc.HandleMessage(context.Background(), incoming("should i eat more protein?"))

	if reply.Intent != llm.IntentFoodQuestion {
		t.Fatalf("got %s", reply.Intent)
	}
	if reply.Text != cannedQuestionReply {
		t.Errorf("got %q", reply.Text)
	}
}

func TestHandleMessageLowConfidenceFoodMention(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"intent":"log_food","confidence":0.3}`,
	}}
	f := newFixture(client)

	reply := f.svc.HandleMessage(context.Background(), incoming("food stuff"))

	if !strings.Contains(reply.Text, "talking about food") {
		t.Errorf("got %q", reply.Text)
	}
	if len(reply.Logged) != 0 {
		t.Errorf("nothing should be logged at low confidence: %+v", reply.Logged)
	}
}
