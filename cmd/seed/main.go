// seed registers a demo user in the local dev database and prints a token pair.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/authd/internal/domain"
	"github.com/ErlanBelekov/authd/internal/email"
	"github.com/ErlanBelekov/authd/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/authd/internal/password"
	"github.com/ErlanBelekov/authd/internal/token"
	"github.com/ErlanBelekov/authd/internal/usecase"
)

var seedUser = usecase.RegisterInput{
	Email:     "seed@test.local",
	Phone:     "+10000000000",
	FirstName: "Seed",
	BirthDay:  "2000-01-01",
	Password:  "seedpassword",
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set (run: direnv allow)")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	sqlDB := postgres.OpenSQL(pool)
	if err := postgres.Migrate(sqlDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	gormDB, err := postgres.NewGorm(sqlDB)
	if err != nil {
		log.Fatalf("gorm: %v", err)
	}

	hasher, err := password.NewArgon2(password.DefaultParams())
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}
	tokens, err := token.NewManager([]byte(secret), token.DefaultAccessTTL, token.DefaultRefreshTTL)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	logger := slog.Default()
	uc := usecase.NewAuthUsecase(postgres.NewUserRepository(gormDB), hasher, tokens,
		email.NewSender("local", "", "", logger), logger)

	res, err := uc.Register(ctx, seedUser)
	if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicatePhone) {
		res, err = uc.Login(ctx, usecase.LoginInput{Email: seedUser.Email, Password: seedUser.Password})
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Email:    %s\n", seedUser.Email)
	fmt.Printf("  Password: %s\n", seedUser.Password)
	fmt.Printf("  User ID:  %s\n", res.User.ID)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  curl -s -X POST http://localhost:4200/api/auth/login \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Printf("    -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedUser.Email, seedUser.Password)
	fmt.Println()
	fmt.Println("  curl -s -X POST http://localhost:4200/api/auth/login/access-token \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Printf("    -d '{\"refreshToken\":\"%s\"}'\n", res.Tokens.RefreshToken)
	fmt.Println()
	fmt.Println("  curl -s http://localhost:4200/api/auth/me \\")
	fmt.Printf("    -H \"Authorization: Bearer %s\"\n", res.Tokens.AccessToken)
}
