// tokengen mints a signed access token for local development, so the
// dashboard can be exercised against a stub API without a real login
// flow.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"tutorboard/internal/pkg/token"
)

func main() {
	var (
		id     = flag.Int64("id", 1, "user id claim")
		role   = flag.String("role", "admin", "role claim: teacher|admin|superAdmin")
		secret = flag.String("secret", "dev-secret", "signing secret")
		ttl    = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	t, err := token.Sign(*secret, *id, *role, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(t)
}
