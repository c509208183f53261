package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"airline-ops/flightcore/internal/auth"
	"airline-ops/flightcore/internal/config"
)

// Issues a staff bearer token signed with STAFF_JWT_SECRET
func main() {
	subject := flag.String("sub", "", "staff member id")
	role := flag.String("role", string(auth.RoleScheduler), "SCHEDULER or ADMIN")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-sub is required")
	}

	cfg := config.Load()
	if cfg.StaffJWTSecret == "" {
		log.Fatal("STAFF_JWT_SECRET is not set")
	}

	token, expires, err := auth.IssueStaffToken(cfg.StaffJWTSecret, *subject, auth.StaffRole(*role), *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println("Staff token:", token)
	fmt.Println("Expires:", expires.Format(time.RFC3339))
}
