package main

import (
	"bufio"   // Line prompts
	"context" // Store calls
	"errors"  // Conflict detection
	"fmt"     // Prompt output
	"os"      // Standard streams
	"strings" // Input trimming

	"vet_clinic/internal/config" // Configuration
	"vet_clinic/internal/db"     // Database connection
	"vet_clinic/internal/domain" // Roles
	"vet_clinic/internal/store"  // Persistence gateway

	"github.com/sirupsen/logrus" // Structured logging
)

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Creates an admin account from interactive prompts
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatal(err)
	}

	in := bufio.NewReader(os.Stdin)
	fields := make(map[string]string, 3)
	for _, name := range []string{"username", "email", "password"} {
		v, err := prompt(in, "Admin "+name+": ")
		if err != nil {
			logrus.Fatalf("read %s: %v", name, err)
		}
		if v == "" {
			logrus.Fatalf("%s is required", name)
		}
		fields[name] = v
	}

	user, err := store.New(gdb).CreateUser(context.Background(), store.NewUser{
		Username: fields["username"],
		Email:    fields["email"],
		Role:     domain.RoleAdmin,
		Password: fields["password"],
	})
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		logrus.Fatalf("a user with that %s already exists", conflict.Field)
	}
	if err != nil {
		logrus.Fatalf("failed to create admin: %v", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("Admin user created")
}
