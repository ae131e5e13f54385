// Package main checks a revealed key and move against a published commitment.
//
// Usage:
//
//	verify -key <hex> -move <name> -hmac <hex>
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/cory-johannsen/rps/internal/game/commitment"
)

func main() {
	keyHex := flag.String("key", "", "revealed HMAC key as hex (required)")
	move := flag.String("move", "", "computer move name as shown after the round (required)")
	hmacHex := flag.String("hmac", "", "commitment published before the round (required)")
	flag.Parse()

	if *keyHex == "" || *move == "" || *hmacHex == "" {
		flag.Usage()
		os.Exit(2)
	}

	key, err := hex.DecodeString(*keyHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid key: %v\n", err)
		os.Exit(2)
	}

	if !commitment.Verify(key, *move, *hmacHex) {
		fmt.Fprintf(os.Stdout, "MISMATCH: HMAC(key, %q) = %s\n", *move, commitment.Compute(key, *move))
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, "OK")
}
