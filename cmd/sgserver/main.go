/*
Sgserver starts the grammar-approx benchmark HTTP API and begins listening
for connections.

Usage:

	sgserver [flags]

The flags are:

	-v, --version
		Give the current version and exit.

	-l, --listen ADDRESS
		Listen on the given address (host:port or :port). Defaults to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the given secret for signing JWT tokens. If not given, a random
		secret is generated; tokens issued become invalid at shutdown.

	-p, --password OPERATOR_PASSWORD
		The operator password required to obtain a bearer token via
		POST /api/v1/login. If not given, defaults to "password" and a
		warning is printed.

	--db PATH
		Path to the SQLite database file. Defaults to "bench.db" in the
		current directory.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/andrewwinslow/grammar-approx/internal/store"
	"github.com/andrewwinslow/grammar-approx/internal/version"
	"github.com/andrewwinslow/grammar-approx/server"
	"github.com/spf13/pflag"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version and exit.")
	flagListen   = pflag.StringP("listen", "l", "localhost:8080", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagPassword = pflag.StringP("password", "p", "", "The operator password.")
	flagDB       = pflag.String("db", "bench.db", "Path to the SQLite database file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var secret []byte
	if *flagSecret != "" {
		secret = []byte(*flagSecret)
	} else {
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "could not generate token secret: %s\n", err)
			os.Exit(1)
		}
		log.Printf("WARN  using generated token secret; tokens become invalid at shutdown")
	}

	password := *flagPassword
	if password == "" {
		password = "password"
		log.Printf("WARN  using default operator password %q; set --password in production", password)
	}
	passwordHash, err := server.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not hash operator password: %s\n", err)
		os.Exit(1)
	}

	db, err := store.Open(*flagDB)
	if err != nil {
		log.Fatalf("FATAL could not open store: %s", err)
	}
	defer db.Close()

	srv := &server.Server{
		DB:                   db,
		Secret:               secret,
		OperatorPasswordHash: passwordHash,
		UnauthDelay:          250 * time.Millisecond,
	}

	log.Printf("INFO  Starting grammar-approx server on %s...", *flagListen)
	if err := http.ListenAndServe(*flagListen, srv.Router()); err != nil {
		log.Fatalf("FATAL server exited: %s", err)
	}
}
