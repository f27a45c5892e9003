package webapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crossmarket/internal/analysis"
	"crossmarket/internal/domain"
	"crossmarket/internal/util"
)

// topCoinCount is how many coins the browser page features.
const topCoinCount = 3

func (s *Server) handleTopCoins(c *gin.Context) {
	ctx := c.Request.Context()
	coins, err := s.reader.Coins(ctx)
	if err != nil {
		s.renderError(c, err)
		return
	}

	ids, err := analysis.TopByLatestPrice(coins, topCoinCount)
	warning := ""
	if err != nil {
		var insufficient *domain.InsufficientDataError
		if !errors.As(err, &insufficient) {
			s.renderError(c, err)
			return
		}
		// Fewer coins than the page wants: show what exists.
		warning = err.Error()
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, TopCoinsResponse{Coins: []TopCoin{}, Warning: warning})
		return
	}

	names, err := s.reader.CoinDisplayNames(ctx, ids)
	if err != nil {
		s.renderError(c, err)
		return
	}
	byID := make(map[string]domain.Coin, len(coins))
	for _, coin := range coins {
		byID[coin.ID] = coin
	}

	out := make([]TopCoin, 0, len(ids))
	for _, id := range ids {
		coin := byID[id]
		label := names[id]
		if label == "" {
			label = id
		}
		out = append(out, TopCoin{
			ID:            id,
			Label:         label,
			CurrentPrice:  coin.CurrentPrice,
			PriceDisplay:  money(coin.CurrentPrice),
			MarketCap:     coin.MarketCap,
			MarketCapRank: coin.MarketCapRank,
		})
	}
	c.JSON(http.StatusOK, TopCoinsResponse{Coins: out, Warning: warning})
}

func (s *Server) handleCoinHistory(c *gin.Context) {
	id := c.Param("id")
	start := c.Query("start")
	end := c.Query("end")
	if err := util.ValidateRange(start, end); err != nil {
		s.badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	series, err := s.reader.CryptoPrices(ctx, id, domain.DateRange{Start: start, End: end})
	if err != nil {
		s.renderError(c, err)
		return
	}

	// Metadata is optional: price rows alone are enough for the chart.
	meta, err := s.reader.Coin(ctx, id)
	if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			s.renderError(c, err)
			return
		}
		meta = nil
	}
	if len(series) == 0 && meta == nil {
		s.renderError(c, &domain.NotFoundError{Kind: "coin", Name: id})
		return
	}

	label := id
	if names, err := s.reader.CoinDisplayNames(ctx, []string{id}); err == nil && names[id] != "" {
		label = names[id]
	}

	resp := CoinHistoryResponse{
		ID:     id,
		Label:  label,
		Start:  start,
		End:    end,
		Series: series,
		Stats:  toCoinStats(analysis.Summarize(series)),
		Meta:   toCoinMeta(meta),
	}
	if resp.Series == nil {
		resp.Series = []domain.PricePoint{}
	}
	if len(series) == 0 {
		resp.Warning = "no price rows in the selected range"
	}
	c.JSON(http.StatusOK, resp)
}
