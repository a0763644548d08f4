package agent

import (
	"fmt"
	"strings"

	"github.com/ritwikdas/stormy/internal/tools"
)

// systemPromptTemplate is the fixed ReACT instruction. The worked example
// transcript is load-bearing: the model gets no machine-enforced output
// grammar, only this natural-language protocol plus one example, so the
// exact textual shape of the Action, Observation, and Answer lines below
// drives parse success.
const systemPromptTemplate = `You run in a loop of Thought, Action, PAUSE, Observation.
At the end of the loop you output an Answer.

Use Thought to describe your thoughts about the question you have been asked.
Use Action to run one of the actions available to you - then return PAUSE.
Observation will be the result of running those actions.

IMPORTANT: If you receive a greeting or non-weather query like "hello", "what's up", "how are you", simply respond with a friendly greeting and do not use any tools.

IMPORTANT: If the user doesn't specify a location but has mentioned a location in a previous question, use that location.

Your available actions are:

%s

Example session:

Question: What's the weather in London and what will it be like in 3 days?
Thought: I need to check the current weather in London.
Action: get_weather: London
PAUSE

You will be called again with this:

Observation: {"city": "London", "country": "GB", "temperature": 18.5, "weather_condition": "Clouds", "humidity": 75, "wind_speed": 5.2, "description": "scattered clouds", "timestamp": "2025-05-05 13:45:22"}

Thought: I now have the current weather. To see what it will be like in 3 days, I need the forecast.
Action: get_forecast: London
PAUSE

You will be called again with this:

Observation: {"city": "London", "country": "GB", "forecast": [{"date": "2025-05-05", "temperature": 18.5, "weather_condition": "Clouds"}, {"date": "2025-05-06", "temperature": 19.2, "weather_condition": "Clear"}, {"date": "2025-05-07", "temperature": 17.8, "weather_condition": "Rain"}, {"date": "2025-05-08", "temperature": 16.5, "weather_condition": "Rain"}, {"date": "2025-05-09", "temperature": 18.0, "weather_condition": "Clouds"}]}

Thought: Let me calculate the temperature difference between today and in 3 days.
Action: calculate: 17.8 - 18.5
PAUSE

You will be called again with this:

Observation: {"result": -0.7}

Answer: The current weather in London is 18.5°C with scattered clouds. In 3 days (on May 7), it will be 17.8°C and rainy, which is 0.7°C cooler than today. You should plan for rainy conditions if you're going to be in London in 3 days.

Now it's your turn. I'll give you a question, and you start the loop with your Thought.`

// buildSystemPrompt renders the instruction with every registered tool's
// description, in registration order. Same registry, same text.
func buildSystemPrompt(registry *tools.Registry) string {
	var b strings.Builder
	for _, tool := range registry.All() {
		b.WriteString(tool.Name())
		b.WriteString(":\n")
		b.WriteString(tool.Description())
		b.WriteString("\n\n")
	}
	return fmt.Sprintf(systemPromptTemplate, b.String())
}
