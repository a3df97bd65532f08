// Command tokengen mints capability JWTs for local development and manual API
// testing. Production tokens come from the company identity system; this tool
// only signs with the locally configured secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/obrasoft/obra-backoffice/internal/platform/config"
	"github.com/obrasoft/obra-backoffice/internal/utils"
)

func main() {
	actorID := flag.String("actor", "", "actor ID placed in the token subject (required)")
	canApprove := flag.Bool("approve", false, "grant the approve capability")
	canSettle := flag.Bool("settle", false, "grant the settle capability")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	flag.Parse()

	if *actorID == "" {
		fmt.Fprintln(os.Stderr, "tokengen: -actor is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: failed to load config: %v\n", err)
		os.Exit(1)
	}

	expiry := cfg.JWTExpiryDuration
	if *ttl > time.Duration(0) {
		expiry = *ttl
	}

	token, err := utils.GenerateCapabilityToken(*actorID, *canApprove, *canSettle, cfg.JWTSecret, expiry, cfg.JWTIssuer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
