package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/stemsi/lms-backend/internal/config"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/service"
)

// issue-token mints a bearer token signed with JWT_SECRET for local testing.
func main() {
	var (
		userID int64
		role   string
	)
	flag.Int64Var(&userID, "user", 0, "User ID to embed in the token")
	flag.StringVar(&role, "role", string(model.RoleStudent), "Role: STUDENT, INSTRUCTOR or ADMIN")
	flag.Parse()

	if userID <= 0 {
		fmt.Fprintln(os.Stderr, "Usage: issue-token -user <id> [-role STUDENT|INSTRUCTOR|ADMIN]")
		os.Exit(2)
	}

	cfg := config.Load()
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)

	token, err := tokens.IssueToken(userID, model.Role(strings.ToUpper(role)))
	if err != nil {
		log.Fatalf("Issue token failed: %v", err)
	}
	fmt.Println(token)
}
