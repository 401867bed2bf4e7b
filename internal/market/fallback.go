package market

import "github.com/shopspring/decimal"

var (
	fallbackReturn1Y = decimal.RequireFromString("15.5")
	fallbackReturn3Y = decimal.RequireFromString("18.2")
	fallbackReturn5Y = decimal.RequireFromString("20.5")
	fallbackNAV      = decimal.RequireFromString("100")
)

type fundInfo struct {
	symbol, name, category string
	minSIP                 int64
	expenseRatio           string
}

var fallbackFundInfo = []fundInfo{
	{"0P0000XVQB.BO", "SBI Bluechip Fund", "Large Cap", 500, "0.68"},
	{"0P0000XVQC.BO", "HDFC Top 100 Fund", "Large Cap", 500, "0.72"},
	{"0P0000XVQD.BO", "ICICI Prudential Value Discovery Fund", "Value", 100, "0.82"},
	{"0P0000XVQE.BO", "Axis Midcap Fund", "Mid Cap", 500, "0.75"},
	{"0P0000XVQF.BO", "Mirae Asset Large Cap Fund", "Large Cap", 100, "0.52"},
	{"0P0000XVQG.BO", "Parag Parikh Flexi Cap Fund", "Flexi Cap", 500, "0.82"},
	{"0P0000XVQH.BO", "Nippon India Small Cap Fund", "Small Cap", 100, "0.65"},
	{"0P0000XVQI.BO", "Quant Small Cap Fund", "Small Cap", 1000, "0.66"},
}

// FallbackFunds is the static fund list served when the data service is
// unavailable.
func FallbackFunds() []Fund {
	funds := make([]Fund, len(fallbackFundInfo))
	for i, f := range fallbackFundInfo {
		funds[i] = Fund{
			Symbol:       f.symbol,
			Name:         f.name,
			Category:     f.category,
			MinSIP:       decimal.NewFromInt(f.minSIP),
			ExpenseRatio: decimal.RequireFromString(f.expenseRatio),
			Return1Y:     fallbackReturn1Y,
			Return3Y:     fallbackReturn3Y,
			Return5Y:     fallbackReturn5Y,
			CurrentNAV:   fallbackNAV,
		}
	}
	return funds
}

// FallbackLeaderboard is the demo board served when the data service is
// unavailable. Ranks are assigned after the local player is merged in.
func FallbackLeaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{Username: "Alex Chen", XP: 8500, Level: 9, Avatar: "🧑‍💼"},
		{Username: "Sam Patel", XP: 7200, Level: 8, Avatar: "👨‍🎓"},
		{Username: "Jordan Kim", XP: 6800, Level: 8, Avatar: "👩‍💻"},
		{Username: "Taylor Smith", XP: 5500, Level: 7, Avatar: "🧑‍🔬"},
		{Username: "Casey Brown", XP: 4800, Level: 6, Avatar: "👨‍🎨"},
		{Username: "Morgan Lee", XP: 4200, Level: 6, Avatar: "👩‍⚕️"},
		{Username: "Riley Davis", XP: 3800, Level: 5, Avatar: "🧑‍🏫"},
		{Username: "Quinn Wilson", XP: 3200, Level: 5, Avatar: "👨‍🚀"},
		{Username: "Avery Martinez", XP: 2800, Level: 4, Avatar: "👩‍🎤"},
	}
}

var avatars = []string{"👤", "🧑‍💼", "👨‍🎓", "👩‍💻", "🧑‍🔬", "👨‍🎨", "👩‍⚕️", "🧑‍🏫", "👨‍🚀", "👩‍🎤"}
