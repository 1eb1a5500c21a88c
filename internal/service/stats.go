package service

import (
	"context"
	"math"

	"github.com/sakif/game-shelf/internal/apperror"
	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/query"
)

// Stats is the derived summary over one user's full game and review sets.
type Stats struct {
	TotalGames       int     `json:"totalGames"`
	CompletedGames   int     `json:"completedGames"`
	TotalHours       float64 `json:"totalHours"`
	AverageRating    float64 `json:"averageRating"`
	FavoriteGenre    string  `json:"favoriteGenre"`
	FavoritePlatform string  `json:"favoritePlatform"`
	TotalReviews     int     `json:"totalReviews"`
}

// ComputeStats derives the summary from the two input slices. Pure
// function: no side effects, recomputed from scratch every call, nothing
// cached.
//
// averageRating is the mean game rating rounded to one decimal place,
// 0 when there are no games. favoriteGenre/favoritePlatform pick the most
// frequent value; ties go to whichever value appeared FIRST in input
// order, and an empty library yields "N/A".
func ComputeStats(games []model.Game, reviews []model.Review) Stats {
	stats := Stats{
		TotalGames:   len(games),
		TotalReviews: len(reviews),
	}

	var ratingSum float64
	genres := make([]string, 0, len(games))
	platforms := make([]string, 0, len(games))
	for _, g := range games {
		if g.Completed {
			stats.CompletedGames++
		}
		stats.TotalHours += g.HoursPlayed
		ratingSum += g.Rating
		genres = append(genres, g.Genre)
		platforms = append(platforms, g.Platform)
	}

	if len(games) > 0 {
		stats.AverageRating = math.Round(ratingSum/float64(len(games))*10) / 10
	}
	stats.FavoriteGenre = mostFrequent(genres)
	stats.FavoritePlatform = mostFrequent(platforms)

	return stats
}

// mostFrequent returns the value with the highest occurrence count,
// breaking ties on first appearance. "N/A" for an empty input.
func mostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best, bestCount := "N/A", 0
	for _, v := range order {
		// Strict > keeps the earliest value on equal counts.
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// StatsService fetches a user's full game and review sets through the
// resource services and aggregates them. Nothing is persisted.
type StatsService struct {
	games   *GameService
	reviews *ReviewService
}

// NewStatsService creates a new StatsService.
func NewStatsService(games *GameService, reviews *ReviewService) *StatsService {
	return &StatsService{games: games, reviews: reviews}
}

// Summary computes the statistics for one user.
func (s *StatsService) Summary(ctx context.Context, ownerID string) (Stats, error) {
	if ownerID == "" {
		return Stats{}, apperror.ValidationFailed("userId", "userId is required")
	}

	games, err := s.games.List(ctx, query.GameCriteria{OwnerID: ownerID})
	if err != nil {
		return Stats{}, err
	}
	reviews, err := s.reviews.List(ctx, query.ReviewCriteria{OwnerID: ownerID})
	if err != nil {
		return Stats{}, err
	}

	return ComputeStats(games, reviews), nil
}
