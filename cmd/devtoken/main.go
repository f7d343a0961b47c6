// Command devtoken prints a bearer token signed with the server's configured
// key. It stands in for the external sign-in service during local runs.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"frontier/internal/platform/authtoken"
	"frontier/internal/platform/config"
)

func main() {
	uid := flag.String("uid", "dev-user", "subject of the token")
	email := flag.String("email", "dev@frontier.local", "email claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	token, err := authtoken.New(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience).Issue(*uid, *email, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
