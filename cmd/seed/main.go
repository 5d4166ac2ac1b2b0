package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cinelog/internal/config"
	"cinelog/internal/db"
	"cinelog/internal/model"
	"cinelog/internal/repository"
)

const (
	demoEmail    = "demo@cinelog.local"
	demoPassword = "demo1234"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Movie{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err == gorm.ErrRecordNotFound {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if hashErr != nil {
			log.Fatalf("Failed to hash demo password: %v", hashErr)
		}
		user = &model.User{
			Name:         "Demo User",
			Email:        demoEmail,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (id=%d)", demoEmail, user.ID)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		log.Printf("Demo user %s already exists (id=%d), skipping", demoEmail, user.ID)
	}

	existing, err := movieRepo.FindByOwner(ctx, user.ID, repository.MovieFilter{})
	if err != nil {
		log.Fatalf("Failed to list demo movies: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d movies, nothing to do", len(existing))
		return
	}

	movies := []model.Movie{
		{Title: "Dune", Director: strPtr("Denis Villeneuve"), Genre: strPtr("Sci-Fi"), Year: intPtr(2021), Rating: floatPtr(8.5), Watched: true, UserID: user.ID},
		{Title: "The Godfather", Director: strPtr("Francis Ford Coppola"), Genre: strPtr("Crime"), Year: intPtr(1972), Rating: floatPtr(9.2), Watched: true, UserID: user.ID},
		{Title: "Oppenheimer", Director: strPtr("Christopher Nolan"), Genre: strPtr("Drama"), Year: intPtr(2023), UserID: user.ID},
	}

	for i := range movies {
		if err := movieRepo.Create(ctx, &movies[i]); err != nil {
			log.Fatalf("Failed to seed movie %q: %v", movies[i].Title, err)
		}
	}
	log.Printf("Seeded %d movies for %s", len(movies), demoEmail)
}
