package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/radicacion/internal/flagx"
	"github.com/dmitrijs2005/radicacion/internal/server"
	"github.com/dmitrijs2005/radicacion/internal/server/auth"
	"github.com/dmitrijs2005/radicacion/internal/server/config"
)

// issueTokenFor returns the user named by -issue-token, if any.
func issueTokenFor(args []string) string {
	var userID string
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&userID, "issue-token", "", "print an access token for this user and exit")
	_ = flagx.ParseKnown(fs, args)
	return userID
}

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if userID := issueTokenFor(os.Args[1:]); userID != "" {
		token, err := auth.GenerateToken(userID, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
