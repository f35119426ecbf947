package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/config"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/database"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/services"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/validation"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	email := flag.String("email", "admin@receptek.hu", "Admin e-mail address")
	name := flag.String("name", "Admin", "Display name for a new account")
	password := flag.String("password", "", "Password for a new account (min. 6 characters)")
	flag.Parse()

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.InitDatabase(conf.Database())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	users := services.NewUserService(db, auth.NewBcryptHasher(conf.BcryptCost), services.UserServiceOptions{})

	// Promote an existing account
	user, err := users.GetUserByEmail(*email)
	if err == nil {
		if user.Role == models.RoleAdmin {
			fmt.Printf("User %s (ID: %d) is already an admin\n", user.Email, user.ID)
			return
		}
		if err := users.SetRole(user.ID, models.RoleAdmin); err != nil {
			log.Fatal("Failed to promote user:", err)
		}
		fmt.Printf("✓ Promoted %s (ID: %d) to admin\n", user.Email, user.ID)
		return
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		log.Fatal("Failed to look up user:", err)
	}

	// Create a new account
	form := validation.RegistrationForm{Name: *name, Email: *email, Password: *password, Confirm: *password}
	form.Normalize()
	if errs := validation.Check(&form); len(errs) > 0 {
		log.Fatalf("Invalid admin account: %v", errs)
	}
	user, err = users.Register(services.RegistrationInput{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		log.Fatal("Failed to create user:", err)
	}
	if err := users.SetRole(user.ID, models.RoleAdmin); err != nil {
		log.Fatal("Failed to promote user:", err)
	}
	fmt.Printf("✓ Created admin %s (ID: %d)\n", user.Email, user.ID)
}
