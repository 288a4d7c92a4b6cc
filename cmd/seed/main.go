package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"albumify/internal/auth"
	"albumify/internal/config"
	"albumify/internal/db"
	"albumify/internal/model"
	"albumify/internal/repository"
)

// SeedUser describes one demo account with its albums.
type SeedUser struct {
	Name     string
	Username string
	Email    string
	Password string
	Albums   []string
}

var demoUsers = []SeedUser{
	{
		Name:     "Ana Torres",
		Username: "anatorres",
		Email:    "ana@example.com",
		Password: "password123",
		Albums:   []string{"Paraiso", "Vacaciones 2024"},
	},
	{
		Name:     "Luis Mendez",
		Username: "luismendez",
		Email:    "luis@example.com",
		Password: "password123",
		Albums:   []string{"Familia"},
	},
	{
		Name:     "Demo User",
		Username: "demo",
		Email:    "demo@example.com",
		Password: "password123",
		Albums:   nil,
	},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Album{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	albumRepo := repository.NewAlbumRepository(gormDB)
	hasher := auth.NewPasswordHasher()
	ctx := context.Background()

	log.Println("Seeding demo users and albums...")
	created, skipped, err := seedUsers(ctx, userRepo, albumRepo, hasher, demoUsers)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

// seedUsers inserts demo users that do not exist yet, each with their albums.
// Existing users are left untouched so the seeder is safe to re-run.
func seedUsers(
	ctx context.Context,
	userRepo repository.UserRepository,
	albumRepo repository.AlbumRepository,
	hasher *auth.PasswordHasher,
	seeds []SeedUser,
) (created int, skipped int, err error) {
	for _, seed := range seeds {
		existing, err := userRepo.FindByUsername(ctx, seed.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}

		hashed, err := hasher.Hash(seed.Password)
		if err != nil {
			return created, skipped, err
		}

		user := &model.User{
			Name:         seed.Name,
			Username:     seed.Username,
			Email:        seed.Email,
			PasswordHash: hashed,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return created, skipped, err
		}

		for _, albumName := range seed.Albums {
			album := &model.Album{Name: albumName, UserID: user.ID}
			if err := albumRepo.Create(ctx, album); err != nil {
				return created, skipped, err
			}
		}
		created++
	}
	return created, skipped, nil
}
