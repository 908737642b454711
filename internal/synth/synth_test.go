package synth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

func fixedClock(ts string) func() time.Time {
	tm, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return tm }
}

func TestGenerate_suppliersAsia(t *testing.T) {
	s := NewWithClock(fixedClock("2026-10-17T09:30:00Z"))
	res := s.Generate(models.KindSuppliers, "electronics", "Asia")

	assert.True(t, res.Synthetic())
	require.Len(t, res.Suppliers, 3)
	for _, sup := range res.Suppliers {
		assert.Contains(t, sup.Specialization, "electronics")
		assert.Contains(t, sup.Location, "Singapore")
		assert.NotEmpty(t, sup.Name)
	}
	assert.Len(t, res.Trends, 3)
	require.Len(t, res.News, 3)
	assert.Equal(t, "2026-10-17", res.News[0].Date)
	assert.Equal(t, "2026-10-16", res.News[1].Date)
	assert.Equal(t, "2026-10-15", res.News[2].Date)
}

func TestGenerate_regionHeuristic(t *testing.T) {
	s := New()

	eu := s.Generate(models.KindSuppliers, "valves", "Europe")
	assert.Equal(t, "Munich, Germany", eu.Suppliers[2].Location)

	global := s.Generate(models.KindSuppliers, "valves", "global")
	assert.Equal(t, "Multiple Locations", global.Suppliers[0].Location)
	assert.Equal(t, "California, USA", global.Suppliers[1].Location)
	assert.Equal(t, "Shanghai, China", global.Suppliers[2].Location)

	india := s.Generate(models.KindSuppliers, "valves", "India")
	assert.Equal(t, "India", india.Suppliers[0].Location)
}

func TestGenerate_regionMatchIsExact(t *testing.T) {
	s := New()

	asia := s.Generate(models.KindSuppliers, "valves", "asia")
	assert.Equal(t, [3]string{"asia", "California, USA", "Shanghai, China"}, [3]string{
		asia.Suppliers[0].Location, asia.Suppliers[1].Location, asia.Suppliers[2].Location,
	})

	eu := s.Generate(models.KindSuppliers, "valves", "EUROPE")
	assert.Equal(t, "Shanghai, China", eu.Suppliers[2].Location)
}

func TestGenerate_defaults(t *testing.T) {
	res := New().Generate(models.KindSuppliers, "", "")
	require.Len(t, res.Suppliers, 3)
	assert.Equal(t, "global technology Solutions Inc.", res.Suppliers[0].Name)
	assert.Equal(t, []string{"global"}, res.Trends[0].Regions)
}

func TestGenerate_contactDomainSanitised(t *testing.T) {
	res := New().Generate(models.KindSuppliers, "General Products", "global")
	assert.Equal(t, "contact@generalproductssolutions.com", res.Suppliers[0].Contact)
	assert.False(t, strings.Contains(res.Suppliers[1].Contact, " "))
}

func TestGenerate_trendsAndNewsOnly(t *testing.T) {
	s := NewWithClock(fixedClock("2026-03-01T00:00:01Z"))

	trends := s.Generate(models.KindTrends, "software", "USA")
	assert.Len(t, trends.Trends, 2)
	assert.Empty(t, trends.Suppliers)
	assert.Empty(t, trends.News)
	assert.Equal(t, "software Market Evolution", trends.Trends[0].Title)

	news := s.Generate(models.KindNews, "software", "USA")
	require.Len(t, news.News, 2)
	assert.Equal(t, "2026-03-01", news.News[0].Date)
	assert.Equal(t, "2026-02-28", news.News[1].Date)
	assert.Empty(t, news.Trends)
}

func TestGenerate_notSupported(t *testing.T) {
	for _, k := range []models.Kind{models.KindTrade, models.KindEconomic, models.Kind("bogus")} {
		res := New().Generate(k, "x", "y")
		assert.Equal(t, NotSupportedMessage, res.Message)
		assert.Equal(t, 0, res.Len())
		assert.False(t, Supported(k))
	}
}

func TestGenerate_deterministicWithinDay(t *testing.T) {
	morning := NewWithClock(fixedClock("2026-10-17T01:00:00Z")).Generate(models.KindSuppliers, "telecom", "Europe")
	evening := NewWithClock(fixedClock("2026-10-17T23:59:00Z")).Generate(models.KindSuppliers, "telecom", "Europe")
	assert.Equal(t, morning, evening)

	nextDay := NewWithClock(fixedClock("2026-10-18T01:00:00Z")).Generate(models.KindSuppliers, "telecom", "Europe")
	assert.Equal(t, morning.Suppliers, nextDay.Suppliers)
	assert.Equal(t, morning.Trends, nextDay.Trends)
	assert.NotEqual(t, morning.News[0].Date, nextDay.News[0].Date)
}
