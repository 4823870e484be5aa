package main

import (
	"Recipe-App-API/cmd/config"
	"Recipe-App-API/domain"
	"Recipe-App-API/internal/utils"
	"Recipe-App-API/pkg/jwt"
	"Recipe-App-API/pkg/user"
	"context"
	"flag"
	"fmt"
	"log"
)

func main() {
	email := flag.String("email", "", "email address for the superuser")
	password := flag.String("password", "", "password for the superuser")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	utils.LoadConfig()
	utils.InitValidator()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	userRepository := user.NewUserRepository(db)
	userService := user.NewUserService(userRepository, jwt.NewJWTService(), utils.Validate)

	res, err := userService.CreateSuperuser(context.Background(), domain.CreateSuperuserRequest{
		Email:    *email,
		Password: *password,
		Name:     *name,
	})
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}

	fmt.Printf("superuser %s created\n", res.Email)
}
