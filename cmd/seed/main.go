// Package main loads a demo library into the database: fifteen games for
// a demo user plus a pair of reviews per game. Useful for exercising the
// frontend against realistic data without typing it in by hand.
//
// Run with: go run ./cmd/seed   (respects DB_PATH like the server)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sakif/game-shelf/internal/model"
	"github.com/sakif/game-shelf/internal/query"
	sqliteRepo "github.com/sakif/game-shelf/internal/repository/sqlite"
	"github.com/sakif/game-shelf/internal/service"
)

const demoUser = "user123"

func seedGames() []model.Game {
	return []model.Game{
		{Title: "Baldur's Gate 3", Platform: "PC", Genre: "RPG", ReleaseYear: 2023, Developer: "Larian Studios", Publisher: "Larian Studios", HoursPlayed: 20, Rating: 5},
		{Title: "Elden Ring", Platform: "PC", Genre: "RPG", ReleaseYear: 2022, Developer: "FromSoftware", Publisher: "Bandai Namco", HoursPlayed: 25, Rating: 5},
		{Title: "Helldivers 2", Platform: "PC", Genre: "Shooter", ReleaseYear: 2024, Developer: "Arrowhead Game Studios", Publisher: "PlayStation", HoursPlayed: 15, Rating: 4},
		{Title: "Fortnite", Platform: "PC", Genre: "Battle Royale", ReleaseYear: 2017, Developer: "Epic Games", Publisher: "Epic Games", HoursPlayed: 10, Rating: 4},
		{Title: "Minecraft", Platform: "PC", Genre: "Sandbox", ReleaseYear: 2011, Developer: "Mojang Studios", Publisher: "Mojang Studios", HoursPlayed: 50, Rating: 5},
		{Title: "Cyberpunk 2077: Phantom Liberty", Platform: "PC", Genre: "RPG", ReleaseYear: 2023, Developer: "CD Projekt Red", Publisher: "CD Projekt", HoursPlayed: 15, Rating: 4},
		{Title: "Call of Duty: Warzone", Platform: "PC", Genre: "Battle Royale", ReleaseYear: 2020, Developer: "Infinity Ward", Publisher: "Activision", HoursPlayed: 25, Rating: 4},
		{Title: "Apex Legends", Platform: "PC", Genre: "Battle Royale", ReleaseYear: 2019, Developer: "Respawn Entertainment", Publisher: "Electronic Arts", HoursPlayed: 30, Rating: 4},
		{Title: "Grand Theft Auto V", Platform: "PC", Genre: "Action", ReleaseYear: 2013, Developer: "Rockstar North", Publisher: "Rockstar Games", HoursPlayed: 40, Rating: 5},
		{Title: "Starfield", Platform: "PC", Genre: "RPG", ReleaseYear: 2023, Developer: "Bethesda Game Studios", Publisher: "Bethesda Softworks", HoursPlayed: 12, Rating: 3},
		{Title: "Red Dead Redemption 2", Platform: "PC", Genre: "Action", ReleaseYear: 2018, Developer: "Rockstar Games", Publisher: "Rockstar Games", Rating: 5},
		{Title: "The Witcher 3: Wild Hunt", Platform: "PC", Genre: "RPG", ReleaseYear: 2015, Developer: "CD Projekt Red", Publisher: "CD Projekt", Rating: 5},
		{Title: "God of War", Platform: "PC", Genre: "Action", ReleaseYear: 2018, Developer: "Santa Monica Studio", Publisher: "PlayStation", Rating: 5},
		{Title: "Horizon Zero Dawn", Platform: "PC", Genre: "Action", ReleaseYear: 2017, Developer: "Guerrilla Games", Publisher: "PlayStation", Rating: 4},
		{Title: "The Legend of Zelda: Breath of the Wild", Platform: "Switch", Genre: "Adventure", ReleaseYear: 2017, Developer: "Nintendo", Publisher: "Nintendo", Rating: 5},
	}
}

func run() error {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dbPath := "data/gameshelf.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sqliteRepo.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	gameService := service.NewGameService(db.Games, db.Reviews, logger)
	reviewService := service.NewReviewService(db.Reviews, logger)
	ctx := context.Background()

	// Refuse to double-seed: if the demo user already owns games, this
	// has run before.
	existing, err := gameService.List(ctx, query.GameCriteria{OwnerID: demoUser})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("database already seeded, nothing to do",
			slog.Int("games", len(existing)))
		return nil
	}

	reviewPairs := []model.Review{
		{Title: "Excelente", Content: "Gran experiencia, muy recomendado.", Rating: 5},
		{Title: "Bueno", Content: "Divertido, con algunos detalles a mejorar.", Rating: 4},
	}

	var gameCount, reviewCount int
	for _, g := range seedGames() {
		g.OwnerID = demoUser
		created, err := gameService.Create(ctx, &g)
		if err != nil {
			return fmt.Errorf("seeding game %q: %w", g.Title, err)
		}
		gameCount++

		for _, r := range reviewPairs {
			r.Game = model.Reference(created.ID)
			r.OwnerID = demoUser
			if _, err := reviewService.Create(ctx, &r); err != nil {
				return fmt.Errorf("seeding review for %q: %w", created.Title, err)
			}
			reviewCount++
		}
	}

	logger.Info("seed complete",
		slog.Int("games", gameCount),
		slog.Int("reviews", reviewCount),
	)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed error:", err)
		os.Exit(1)
	}
}
