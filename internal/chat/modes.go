package chat

// Mode IDs.
const (
	ModeChatbot   = "chatbot"
	ModeTasks     = "task-analyzer"
	ModeResearch  = "market-researcher"
	ModeStrategy  = "strategy-assistant"
	DefaultModeID = ModeChatbot
)

// Mode is one of the assistant's specialisations.
type Mode struct {
	ID           string   `json:"id"`
	Icon         string   `json:"icon"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Welcome      string   `json:"welcome"`
	Features     []string `json:"features"`
	SystemPrompt string   `json:"systemPrompt"`
}

var modes = []Mode{
	{
		ID:          ModeChatbot,
		Icon:        "💬",
		Name:        "ChatBot",
		Description: "General AI Assistant",
		Welcome:     "Your intelligent Strategic Sourcing assistant, ready to help with general procurement questions and tasks.",
		Features: []string{
			"General AI assistance and chat",
			"Task management and organization",
			"Procurement guidance and tips",
			"Best practices and knowledge sharing",
		},
		SystemPrompt: "You are a helpful AI assistant for Strategic Sourcing professionals. " +
			"Provide clear, accurate, and helpful responses to procurement and sourcing questions.",
	},
	{
		ID:          ModeTasks,
		Icon:        "📊",
		Name:        "Task Analyzer",
		Description: "Analyze & Prioritize Tasks",
		Welcome:     "Analyze and prioritize your procurement tasks using proven frameworks and methodologies.",
		Features: []string{
			"Task prioritization using proven frameworks",
			"Time management optimization",
			"Efficiency improvement recommendations",
			"Performance tracking and analysis",
		},
		SystemPrompt: "You are a Task Analysis expert for Strategic Sourcing. " +
			"Help analyze, prioritize, and optimize procurement tasks using frameworks like Eisenhower Matrix, ABC analysis, and risk assessment.",
	},
	{
		ID:          ModeResearch,
		Icon:        "🔍",
		Name:        "Market Researcher",
		Description: "Supplier & Market Data",
		Welcome:     "Research suppliers, market trends, and competitive intelligence to support your sourcing decisions.",
		Features: []string{
			"Supplier discovery and research",
			"Market trend analysis",
			"Pricing and cost intelligence",
			"Global market insights",
		},
		SystemPrompt: "You are a Market Research specialist for Strategic Sourcing. " +
			"Help research suppliers, market trends, pricing, and competitive intelligence. " +
			"When users ask for market research, offer to gather data from various sources.",
	},
	{
		ID:          ModeStrategy,
		Icon:        "🎯",
		Name:        "Strategy Assistant",
		Description: "Category Strategy Development",
		Welcome:     "Develop comprehensive category strategies using strategic frameworks and best practices.",
		Features: []string{
			"Category strategy development",
			"Kraljic Matrix analysis",
			"SWOT and risk assessment",
			"TCO modeling and optimization",
		},
		SystemPrompt: "You are a Category Strategy expert for Strategic Sourcing. " +
			"Help develop category strategies using frameworks like Kraljic Matrix, SWOT analysis, TCO modeling, and supplier relationship management strategies.",
	},
}

// Modes returns the mode catalogue in display order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// LookupMode finds a mode by ID. An empty ID selects the default mode.
func LookupMode(id string) (Mode, bool) {
	if id == "" {
		id = DefaultModeID
	}
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}
