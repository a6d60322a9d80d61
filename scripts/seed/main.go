// Seed creates a demo user with a few todos and tasks. Run from
// project root: go run ./scripts/seed
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"taskdeck/internal/database"
	"taskdeck/internal/gateway"
	"taskdeck/internal/models"
	"taskdeck/internal/store"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	db := database.InitDB(ctx)
	if db == nil {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set or DB connection failed")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	gw := gateway.NewPostgres(db)
	authStore := store.NewAuthStore(gw)
	todoStore := store.NewTodoStore(gw, db)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Hash failed:", err)
		os.Exit(1)
	}
	user, err := authStore.CreateUser(ctx, models.SignupInput{
		Username: "demo",
		Email:    "demo@taskdeck.local",
		Password: string(hash),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Create user failed (already seeded?):", err)
		os.Exit(1)
	}

	todo, err := todoStore.CreateTodo(ctx, models.CreateTodoInput{
		Title:       "Groceries",
		Description: "Weekly shopping run",
		UserID:      user.ID,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Create todo failed:", err)
		os.Exit(1)
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	nextWeek := time.Now().AddDate(0, 0, 7)
	seeds := []models.CreateTaskInput{
		{TodoID: todo.ID, Title: "Buy milk", Priority: models.PriorityMedium, DueDate: &tomorrow},
		{TodoID: todo.ID, Title: "Buy coffee", Priority: models.PriorityHigh, DueDate: &tomorrow},
		{TodoID: todo.ID, Title: "Restock pantry", Priority: models.PriorityLow, DueDate: &nextWeek},
	}
	for _, s := range seeds {
		if _, err := todoStore.CreateTask(ctx, s); err != nil {
			fmt.Fprintln(os.Stderr, "Create task failed:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeded user %d (demo@taskdeck.local / demo-password) with todo %d and %d tasks\n",
		user.ID, todo.ID, len(seeds))
}

func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
