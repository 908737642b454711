package chat

import "fmt"

// SystemPrompt builds the full system prompt for a mode: its base prompt,
// the user's task list and the mode name.
func SystemPrompt(base, tasksContext, modeName string) string {
	return fmt.Sprintf(`%s

IMPORTANT: The user has a task management system. Here are their current tasks:

%s

When the user asks about their tasks, what they need to do, their to-do list, or anything related to their tasks, refer to the above task information. Be helpful in organizing, prioritizing, or discussing their tasks.

Current Mode: %s
Focus on providing responses that align with the current mode's specialization.`, base, tasksContext, modeName)
}
