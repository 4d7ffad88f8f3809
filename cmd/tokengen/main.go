// tokengen mints a bearer token for a user id and role, signed with the
// same secret the API verifies against. The service itself never issues
// tokens; this is the out-of-band path for operators and test setups.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/domain/entity"
	"github.com/pmartins-dev/roster-api/internal/infrastructure/auth"
)

func main() {
	var (
		rawID   = flag.String("id", "", "user id (uuid) to embed in the token")
		rawRole = flag.String("role", "student", "role to embed: student or instructor")
		ttl     = flag.Duration("ttl", time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY must be set")
	}

	userID, err := uuid.Parse(*rawID)
	if err != nil {
		log.Fatalf("invalid -id: %v", err)
	}

	role, err := entity.ParseRole(*rawRole)
	if err != nil {
		log.Fatalf("invalid -role: %v", err)
	}

	jwtSvc := auth.NewJWTService(secret, *ttl)
	token, expiresAt, err := jwtSvc.GenerateToken(userID, role)
	if err != nil {
		log.Fatalf("generating token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}
