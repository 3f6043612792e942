// Command register seeds a running course API from a YAML file: it signs up
// every listed user, then logs in each instructor and creates their courses.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	api := flag.String("api", "http://localhost:3000", "base URL of the course API")
	path := flag.String("file", "seed.yml", "YAML seed file")
	timeout := flag.Duration("timeout", 15*time.Second, "per-request timeout")
	flag.Parse()

	seed, err := loadSeed(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *path, err)
		os.Exit(1)
	}
	if len(seed.Users) == 0 && len(seed.Courses) == 0 {
		fmt.Println("Nothing to seed.")
		return
	}

	s := &seeder{api: *api, cli: &http.Client{Timeout: *timeout}, out: os.Stdout, errOut: os.Stderr}
	if failed := s.run(context.Background(), seed); failed > 0 {
		fmt.Fprintf(os.Stderr, "%d step(s) failed\n", failed)
		os.Exit(2)
	}
}
