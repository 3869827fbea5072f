package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#2563eb")
	colorSuccess = lipgloss.Color("#16a34a")
	colorWarning = lipgloss.Color("#ea580c")
	colorMuted   = lipgloss.Color("#64748b")
	colorBorder  = lipgloss.Color("#94a3b8")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorPrimary).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(36)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(colorPrimary).
			PaddingLeft(1).
			Width(76)
)

const disclaimer = "This calculator is for educational purposes only. Past performance does not " +
	"guarantee future results. Consider consulting a financial advisor before making investment decisions."

// RenderBanner renders the application title
func RenderBanner() string {
	return bannerStyle.Render("🐕 Simple Path Calculator") + "\n" +
		mutedStyle.Render("Augie's Investment Advice: Because your dog knows what's really important!")
}

// RenderResult renders the projection cards, the dog's suggestion and the quote
func RenderResult(result CalculationResult) string {
	var b strings.Builder
	sum := result.Summary

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("📊 Your Investment Projection"))
	fmt.Fprintf(&b, "If you invested %s in the index fund for %d years:\n\n",
		valueStyle.Render(sum.Amount), result.Projection.Years)

	conservative := scenarioCard("Conservative", result.ConservativeRate, sum.Conservative,
		sum.ConservativeGain, sum.ConservativeMultiplier, sum.ConservativeAnnual)
	optimistic := scenarioCard("Optimistic", result.OptimisticRate, sum.Optimistic,
		sum.OptimisticGain, sum.OptimisticMultiplier, sum.OptimisticAnnual)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, conservative, " ", optimistic))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("💡 Key Insights"))
	fmt.Fprintf(&b, "  • Your money could grow to %s to %s\n", sum.Conservative, sum.Optimistic)
	fmt.Fprintf(&b, "  • That's a potential gain of %s to %s\n", sum.ConservativeGain, sum.OptimisticGain)
	fmt.Fprintf(&b, "  • Your investment could multiply by %s to %s\n\n", sum.ConservativeMultiplier, sum.OptimisticMultiplier)

	b.WriteString(RenderSuggestion(result.Suggestion))
	b.WriteString("\n")
	b.WriteString(RenderQuote(result.Quote))
	b.WriteString("\n")
	b.WriteString(RenderMarketData(result.MarketData))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("⚠️  " + disclaimer))
	b.WriteString("\n")
	return b.String()
}

func scenarioCard(label string, rate float64, value, gain, mult, annual string) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s (%s)", label, FormatRate(rate))),
		valueStyle.Render(value),
		fmt.Sprintf("Gain:       +%s", gain),
		fmt.Sprintf("Multiplier: %s", mult),
		mutedStyle.Render(fmt.Sprintf("(%s annually)", annual)),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// RenderSuggestion renders the dog's message and, when something is affordable, the product
func RenderSuggestion(s PetSuggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.Emoji, s.Message)
	if s.TooSmall() {
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("🐾 Augie's Suggestion:"))
	fmt.Fprintf(&b, "  %s by %s, %s\n", s.Item.Name, s.Item.Brand, s.PriceText)
	fmt.Fprintf(&b, "  You could buy %s of these!\n", valueStyle.Render(fmt.Sprint(s.Quantity)))
	fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(s.ShopURL))
	return b.String()
}

// RenderQuote renders a quote with its attribution
func RenderQuote(quote string) string {
	return quoteStyle.Render(fmt.Sprintf("%q\n— %s", quote, QuoteAuthor))
}

// RenderMarketData renders the data-source footer line
func RenderMarketData(m MarketRate) string {
	line := fmt.Sprintf("📊 Market data source: %s (Last updated: %s) at %s",
		m.Source, m.LastUpdated.Format("2006-01-02"), FormatRate(m.TenYearReturn))
	if m.IsFallback() {
		return warnStyle.Render(line)
	}
	return mutedStyle.Render(line)
}

// RenderCatalog renders a catalog listing as a table
func RenderCatalog(items []CatalogItem) string {
	if len(items) == 0 {
		return mutedStyle.Render("No products found.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("%-4s %-40s %-14s %-12s %10s", "ID", "Name", "Category", "Brand", "Price")))
	for _, it := range items {
		fmt.Fprintf(&b, "%-4s %-40s %-14s %-12s %10s\n",
			it.ID, truncateString(it.Name, 40), it.Category, it.Brand, FormatPrice(it.Price))
	}
	return b.String()
}

// RenderIndices renders the fund table used by the index market data source
func RenderIndices(indices []StockIndex) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Broad-market funds (market_data.source: index)"))
	periods := make([]string, 0, 4)
	for _, y := range GetAllReturnPeriods() {
		periods = append(periods, fmt.Sprintf("%dy", y))
	}
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render("period_years available: "+strings.Join(periods, ", ")))
	for _, idx := range indices {
		fmt.Fprintf(&b, "  %-6s %s\n", idx.ID, idx.String())
		fmt.Fprintf(&b, "         %s\n", mutedStyle.Render(idx.Description))
	}
	return b.String()
}

// truncateString shortens s to maxLen runes, ending with "..."
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
