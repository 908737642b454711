package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMarketResearch(t *testing.T) {
	assert.True(t, IsMarketResearch("Find Suppliers for PCBs"))
	assert.True(t, IsMarketResearch("what are the pricing trends?"))
	assert.False(t, IsMarketResearch("summarise my tasks"))
}

func TestIsStrategy(t *testing.T) {
	assert.True(t, IsStrategy("Build a Kraljic matrix for packaging"))
	assert.True(t, IsStrategy("TCO of leasing vs buying"))
	assert.False(t, IsStrategy("hello"))
}

func TestExtractCategory(t *testing.T) {
	cases := map[string]string{
		"research electronics suppliers":      "electronics",
		"Software vendors in Europe":          "software",
		"find IT services suppliers":          "IT",
		"suppliers with good ratings":         "general products",
		"hardware and software market trends": "software",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractCategory(in), in)
	}
}

func TestExtractRegion(t *testing.T) {
	cases := map[string]string{
		"electronics suppliers in asia":   "Asia",
		"EUROPE steel market":             "Europe",
		"suppliers in China and India":    "China",
		"who makes the best fasteners?":   "global",
		"usa and germany contract makers": "USA",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractRegion(in), in)
	}
}

func TestStrategyPrompt(t *testing.T) {
	p := StrategyPrompt("category strategy for MRO")
	assert.True(t, strings.HasPrefix(p, "category strategy for MRO\n\n"))
	assert.Contains(t, p, "4. Success metrics and KPIs")
}

func TestSystemPrompt(t *testing.T) {
	p := SystemPrompt("BASE", "TASKS", "Task Analyzer")
	assert.True(t, strings.HasPrefix(p, "BASE\n\nIMPORTANT: The user has a task management system."))
	assert.Contains(t, p, "\n\nTASKS\n\n")
	assert.Contains(t, p, "Current Mode: Task Analyzer\n")
}

func TestLookupMode(t *testing.T) {
	m, ok := LookupMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeChatbot, m.ID)

	m, ok = LookupMode(ModeStrategy)
	assert.True(t, ok)
	assert.Equal(t, "Strategy Assistant", m.Name)

	_, ok = LookupMode("poet")
	assert.False(t, ok)

	assert.Len(t, Modes(), 4)
}
