package main

import (
	"math"
	"math/rand"
	"time"
)

// investingQuotes are curated lines from "The Simple Path to Wealth".
// The order is part of the selection contract: seeds map onto indices.
var investingQuotes = [...]string{
	"Take out your sharpest knife and cut up your credit cards.",
	"The stock market is a giant distraction to the business of investing.",
	"The only reason to own bonds is to dampen volatility, not to increase returns.",
	"The market is going to do what it's going to do. Your job is to stay invested and let it work for you.",
	"The most important thing about an investment philosophy is that you have one.",
	"The goal of investing is not to outperform the market. It's to outperform inflation.",
	"When you own the entire stock market through an index fund, you own everything.",
	"The stock market is the greatest wealth-building tool ever invented.",
	"The market doesn't care what you think. It's going to do what it's going to do.",
	"The best time to plant a tree was 20 years ago. The second best time is now.",
	"You don't need to beat the market. You just need to be in the market.",
	"The market is a voting machine in the short term, but a weighing machine in the long term.",
	"The enemy of a good plan is the dream of a perfect plan.",
	"The stock market is a device for transferring money from the impatient to the patient.",
	"Investing is simple, but not easy.",
	"The market will fluctuate, but over time it will go up.",
	"You can't time the market, but you can be in the market.",
	"The best investment you can make is in yourself.",
	"The market is a servant, not a master.",
	"Your money should work for you, not the other way around.",
	"The most powerful force in the universe is compound interest.",
	"Time in the market beats timing the market.",
	"The market doesn't know you exist, and it doesn't care.",
	"Your biggest enemy as an investor is yourself.",
	"The market is efficient, but it's not perfect.",
	"The best investment strategy is the one you can stick with.",
	"The market is a discounting mechanism.",
	"Your investment returns will be determined by your behavior, not your knowledge.",
	"The market is a place where patience is rewarded and impatience is punished.",
	"The best time to start investing was yesterday. The second best time is today.",
}

// QuoteAuthor is shown under every quote
const QuoteAuthor = `JL Collins, author of "The Simple Path to Wealth"`

// QuoteCount returns the number of available quotes
func QuoteCount() int {
	return len(investingQuotes)
}

// QuoteBySeed picks the quote at |seed| mod QuoteCount()
func QuoteBySeed(seed int64) string {
	idx := seed % int64(len(investingQuotes))
	if idx < 0 {
		idx = -idx
	}
	return investingQuotes[idx]
}

// QuoteForAmount mixes the amount (in hundreds) with the millisecond component of now.
// The same amount at the same instant always yields the same quote; a later instant may not.
func QuoteForAmount(amount float64, now time.Time) string {
	return QuoteBySeed(amountSeed(amount) + now.UnixMilli()%1000)
}

// AnotherQuote backs the "show another quote" interaction by jittering the amount
// by up to 1000 before selecting.
func AnotherQuote(amount float64, now time.Time, r *rand.Rand) string {
	return QuoteForAmount(amount+r.Float64()*1000, now)
}

// DailyQuote changes once per calendar day (seeded by the day of the year)
func DailyQuote(now time.Time) string {
	return QuoteBySeed(int64(now.YearDay()))
}

// RandomQuote picks uniformly from all quotes
func RandomQuote(r *rand.Rand) string {
	return investingQuotes[r.Intn(len(investingQuotes))]
}

func amountSeed(amount float64) int64 {
	hundreds := math.Floor(amount / 100)
	if math.IsNaN(hundreds) || math.IsInf(hundreds, 0) {
		return 0
	}
	return int64(hundreds)
}
