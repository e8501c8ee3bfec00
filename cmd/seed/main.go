package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ikkim/foodgram-backend/config"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	"github.com/ikkim/foodgram-backend/internal/db"
	"github.com/ikkim/foodgram-backend/internal/seed"
)

const usage = `Usage:
  go run cmd/seed/main.go ingredients <xlsx_file_path>
  go run cmd/seed/main.go demo <users> [recipes_per_user]
  go run cmd/seed/main.go reset all`

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 3 {
		log.Fatal(usage)
	}

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	switch os.Args[1] {
	case "ingredients":
		importIngredients(os.Args[2])
	case "demo":
		generateDemo(os.Args[2:])
	case "reset":
		if os.Args[2] != "all" {
			log.Fatal(usage)
		}
		resetData()
	default:
		log.Fatal(usage)
	}
}

func importIngredients(filePath string) {
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	ingredients, skipped, err := seed.ReadIngredientsXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Ingredients to import: %d (skipped rows: %d)\n", len(ingredients), skipped)

	ingredientService := service.NewIngredientService(repository.NewIngredientRepository(db.GetDB()))
	created, err := ingredientService.ImportIngredients(context.Background(), ingredients)
	if err != nil {
		log.Fatal("Failed to import ingredients:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("New ingredients: %d, already present: %d\n", created, len(ingredients)-created)
}

func generateDemo(args []string) {
	users, err := strconv.Atoi(args[0])
	if err != nil || users <= 0 {
		log.Fatal("users must be a positive number")
	}
	recipesPerUser := 3
	if len(args) > 1 {
		recipesPerUser, err = strconv.Atoi(args[1])
		if err != nil || recipesPerUser < 0 {
			log.Fatal("recipes_per_user must be a non-negative number")
		}
	}

	// 사용자 확인
	fmt.Printf("Generate %d users with %d recipes each? (yes/no): ", users, recipesPerUser)
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Seeding cancelled.")
		return
	}

	summary, err := seed.Demo(db.GetDB(), seed.Options{
		Users:          users,
		RecipesPerUser: recipesPerUser,
	})
	if err != nil {
		log.Fatal("Failed to generate demo data:", err)
	}

	fmt.Println("Demo data generated successfully!")
	fmt.Printf("Users: %d, recipes: %d, follows: %d, favorites: %d, cart items: %d\n",
		summary.Users, summary.Recipes, summary.Follows, summary.Favorites, summary.CartItems)
	fmt.Printf("Every demo user logs in with password %q\n", seed.DemoPassword)
}

func resetData() {
	// 사용자 확인
	fmt.Print("Delete ALL users, recipes and catalog data? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	if err := db.TruncateAllTables(db.GetDB()); err != nil {
		log.Fatal("Failed to clear tables:", err)
	}
	if err := db.SeedTags(db.GetDB()); err != nil {
		log.Fatal("Failed to seed tags:", err)
	}
	fmt.Println("All data removed, default tags restored.")
}
