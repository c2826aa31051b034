// Command seal encrypts a correct answer under the shared ANSWER_KEY, the
// same way the answer-authoring system does, and can mint a bearer token for
// the rating endpoints. Handy for curl-level testing:
//
//	ANSWER_KEY=... go run ./cmd/tools/seal "Paris"
//	JWT_SECRET=... go run ./cmd/tools/seal -token quiz-frontend
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/quizrate/backend/internal/auth"
	"github.com/quizrate/backend/internal/crypt"
)

func main() {
	tokenFor := flag.String("token", "", "issue a bearer token for the given client ID instead of sealing")
	ttl := flag.Duration("ttl", 72*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	if *tokenFor != "" {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Fatal("JWT_SECRET is required")
		}
		token, err := auth.GenerateToken([]byte(secret), *tokenFor, *ttl)
		if err != nil {
			log.Fatalf("Failed to generate token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if flag.NArg() != 1 {
		log.Fatal("usage: seal <plaintext answer> | seal -token <client-id>")
	}

	key, err := base64.StdEncoding.DecodeString(os.Getenv("ANSWER_KEY"))
	if err != nil {
		log.Fatalf("ANSWER_KEY is not valid base64: %v", err)
	}
	box, err := crypt.New(key)
	if err != nil {
		log.Fatalf("Failed to initialize sealing: %v", err)
	}

	sealed, err := box.Seal(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to seal answer: %v", err)
	}
	fmt.Println(sealed)
}
