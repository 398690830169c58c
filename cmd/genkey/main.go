package main

import (
	"fmt"
	"log"

	"fbbackend/crypto"
)

// Prints a fresh token encryption key for TOKEN_ENCRYPTION_KEY
func main() {
	key, err := crypto.GenerateKey()
	if err != nil {
		log.Fatalf("❌ Failed to generate key: %v", err)
	}
	fmt.Println(key)
}
