package llm

import "fmt"

func BuildIntentPrompt(message, conversationContext string) string {
	contextBlock := ""
	if conversationContext != "" {
		contextBlock = "Recent conversation context:\n" + conversationContext + "\n\n"
	}

	return fmt.Sprintf(`Analyze this message and determine the user's intent.

- Output MUST be valid JSON.
- Output MUST contain ONLY JSON, no explanations, no markdown.

%sCurrent message: "%s"

Intent categories:
- "log_food": user reports food they ate (e.g. "I ate an apple", "had 2 eggs")
- "modify_food": user corrects or extends their previous food entry (e.g. "and a coffee", "actually it was two")
- "food_question": user asks about food, nutrition, or what to eat
- "other": not food-related

Required JSON schema:
{
  "intent": "log_food" | "modify_food" | "food_question" | "other",
  "confidence": 0.0-1.0,
  "modification_type": "addition" | "correction" | "clarification"
}

Include "modification_type" only when intent is "modify_food".`, contextBlock, message)
}

func BuildFoodParsePrompt(message string) string {
	return fmt.Sprintf(`Extract food items from this message.

- Output MUST be valid JSON.
- Output MUST contain ONLY JSON, no explanations, no markdown.
- Use standard nutrition estimates.
- If no quantity is specified, assume 1 serving.

Message: "%s"

Required JSON schema:
{
  "foods": [
    {
      "item": "food name",
      "quantity": "amount with unit",
      "estimatedCalories": number,
      "protein": number,
      "carbs": number,
      "fat": number
    }
  ],
  "total_calories": number
}`, message)
}

func BuildQuestionPrompt(message, userContext, conversationContext string) string {
	contextBlock := ""
	if conversationContext != "" {
		contextBlock = "Recent conversation context:\n" + conversationContext + "\n\n"
	}
	statusBlock := ""
	if userContext != "" {
		statusBlock = "User's current status:\n" + userContext + "\n\n"
	}

	return fmt.Sprintf(`You are a helpful nutrition assistant for a food tracking bot. Answer the user's question concisely.

%s%sCurrent question: "%s"

Guidelines:
- Use the user's intake and goals for personalized advice.
- Suggest specific foods when possible.
- Keep the answer under 200 words.
- End with a reminder to log their food when they eat.`, contextBlock, statusBlock, message)
}

func BuildModificationPrompt(message, priorFood, conversationContext string) string {
	contextBlock := ""
	if conversationContext != "" {
		contextBlock = "Recent conversation context:\n" + conversationContext + "\n\n"
	}

	return fmt.Sprintf(`The user is modifying their most recent food log entry.

- Output MUST be valid JSON.
- Output MUST contain ONLY JSON, no explanations, no markdown.

%sMost recent entry:
%s

User's new message: "%s"

Decide whether the message updates the existing entry (changed quantity,
correction, clarification of the same food) or describes a separate item
eaten alongside it.

Required JSON schema:
{
  "action": "update" | "add_separate",
  "combined_food": {
    "item": "food name",
    "quantity": "amount with unit",
    "estimatedCalories": number,
    "protein": number,
    "carbs": number,
    "fat": number,
    "explanation": "one short sentence on what changed"
  }
}`, contextBlock, priorFood, message)
}
