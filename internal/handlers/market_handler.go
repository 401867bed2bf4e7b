package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finlearn/internal/market"
	"finlearn/internal/services"
)

// MarketHandler serves fund and leaderboard data.
type MarketHandler struct {
	market   services.MarketServicer
	progress services.ProgressServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(market services.MarketServicer, progress services.ProgressServicer) *MarketHandler {
	return &MarketHandler{market: market, progress: progress}
}

// LeaderboardQuery holds the leaderboard query parameters.
type LeaderboardQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetFunds lists mutual funds.
// @Summary     Get funds
// @Description List mutual funds from the data service, the cache, or the built-in list
// @Tags        market
// @Produce     json
// @Success     200 {object} market.FundList "Funds"
// @Router      /market/funds [get]
func (h *MarketHandler) GetFunds(c *gin.Context) {
	list := h.market.Funds(c.Request.Context())
	c.JSON(http.StatusOK, list)
}

// GetLeaderboard returns the ranked board with the local player included.
// @Summary     Get leaderboard
// @Tags        market
// @Produce     json
// @Param       limit query int false "Board size (default 20, max 100)"
// @Success     200 {object} market.Board "Leaderboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /leaderboard [get]
func (h *MarketHandler) GetLeaderboard(c *gin.Context) {
	var q LeaderboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	p := h.progress.Profile()
	board := h.market.Leaderboard(c.Request.Context(), q.Limit, market.Player{
		XP:           p.Experience,
		Level:        p.Level,
		Achievements: p.AchievementsUnlocked,
	})
	c.JSON(http.StatusOK, board)
}
