package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type SeedUser struct {
	Email    string `yaml:"email" json:"email"`
	Password string `yaml:"password" json:"password"`
	Role     string `yaml:"role" json:"role"`
}

type SeedCourse struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	// Instructor is the email of a user listed under users.
	Instructor string `yaml:"instructor" json:"-"`
}

type Seed struct {
	Users   []SeedUser   `yaml:"users"`
	Courses []SeedCourse `yaml:"courses"`
}

func loadSeed(path string) (Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, err
	}
	return s, nil
}

type seeder struct {
	api    string
	cli    *http.Client
	out    io.Writer
	errOut io.Writer
}

// run returns the number of failed steps. An existing user is not a failure.
func (s *seeder) run(ctx context.Context, seed Seed) int {
	failed := 0
	passwords := make(map[string]string, len(seed.Users))
	for _, u := range seed.Users {
		if u.Email == "" || u.Password == "" || u.Role == "" {
			fmt.Fprintf(s.errOut, "Skipping incomplete user: %q\n", u.Email)
			continue
		}
		passwords[u.Email] = u.Password
		status, body, err := s.post(ctx, "/signup", "", u)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(s.errOut, "Failed to sign up %s: %v\n", u.Email, err)
		case status == http.StatusCreated:
			fmt.Fprintf(s.out, "Signed up %s (%s)\n", u.Email, u.Role)
		case status == http.StatusBadRequest && strings.Contains(body, "already exists"):
			fmt.Fprintf(s.out, "Exists %s\n", u.Email)
		default:
			failed++
			fmt.Fprintf(s.errOut, "Failed to sign up %s: status=%d body=%s\n", u.Email, status, body)
		}
	}

	tokens := make(map[string]string)
	for _, c := range seed.Courses {
		token, ok := tokens[c.Instructor]
		if !ok {
			pw, known := passwords[c.Instructor]
			if !known {
				failed++
				fmt.Fprintf(s.errOut, "Course %q: instructor %s is not in users\n", c.Title, c.Instructor)
				continue
			}
			var err error
			if token, err = s.login(ctx, c.Instructor, pw); err != nil {
				failed++
				fmt.Fprintf(s.errOut, "Login failed for %s: %v\n", c.Instructor, err)
				continue
			}
			tokens[c.Instructor] = token
		}
		status, body, err := s.post(ctx, "/course", token, c)
		if err != nil || status != http.StatusCreated {
			failed++
			fmt.Fprintf(s.errOut, "Failed to add course %q: status=%d body=%s err=%v\n", c.Title, status, body, err)
			continue
		}
		fmt.Fprintf(s.out, "Added course %q\n", c.Title)
	}
	return failed
}

func (s *seeder) login(ctx context.Context, email, password string) (string, error) {
	status, body, err := s.post(ctx, "/login", "", map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("status=%d body=%s", status, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("no token in response")
	}
	return out.Token, nil
}

func (s *seeder) post(ctx context.Context, path, token string, in any) (int, string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return 0, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.api, "/")+path, bytes.NewReader(b))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		// raw token, no "Bearer " prefix
		req.Header.Set("Authorization", token)
	}
	resp, err := s.cli.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, strings.TrimSpace(string(body)), nil
}
