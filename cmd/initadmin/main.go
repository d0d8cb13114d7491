// Command initadmin creates an administrator account interactively. Use it
// on a fresh installation, or to add another admin later.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"performanceEvaluation/internal/auth"
	"performanceEvaluation/internal/config"
	"performanceEvaluation/models"
	"performanceEvaluation/repository"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cols, err := repository.OpenCollections(cfg.Storage.DataDir, cfg.Storage.LockTimeout.Std())
	if err != nil {
		log.Fatalf("open collections: %v", err)
	}
	users := repository.NewUserRepository(cols.Users)
	mgr := auth.NewManager(users, cfg.Auth.BcryptCost)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Performance Evaluation System - Admin Initialization")

	admins, err := users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		log.Fatalf("list admins: %v", err)
	}
	in := bufio.NewReader(os.Stdin)
	if len(admins) > 0 {
		fmt.Println("Admin account(s) already exist:")
		for _, a := range admins {
			fmt.Printf("  - %s (%s)\n", a.Username, a.FullName)
		}
		fmt.Print("Create another admin account? (y/n): ")
		answer, _ := in.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Initialization cancelled.")
			return
		}
	}

	username := prompt(in, fmt.Sprintf("Username (default: %s): ", cfg.Auth.AdminUsername), cfg.Auth.AdminUsername)
	password := promptPassword(cfg.Auth.AdminPassword)
	fullName := prompt(in, fmt.Sprintf("Full Name (default: %s): ", cfg.Auth.AdminFullName), cfg.Auth.AdminFullName)
	email := prompt(in, fmt.Sprintf("Email (default: %s): ", cfg.Auth.AdminEmail), cfg.Auth.AdminEmail)

	u, err := mgr.CreateUser(ctx, auth.NewUser{
		Username: username,
		Password: password,
		Role:     models.RoleAdmin,
		FullName: fullName,
		Email:    email,
	})
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("Admin account created: %s (id %s)\n", u.Username, u.ID)
	fmt.Println("Please change the password after first login.")
}

func prompt(in *bufio.Reader, label, defaultVal string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	if line = strings.TrimSpace(line); line != "" {
		return line
	}
	return defaultVal
}

func promptPassword(defaultVal string) string {
	fmt.Print("Password (default: configured admin password): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil || len(raw) == 0 {
		return defaultVal
	}
	return string(raw)
}
