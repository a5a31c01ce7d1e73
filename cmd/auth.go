package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/pkg/token"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

var errNoToken = errors.New("no session token stored, run `store-console login <token>` first")

var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store a session token",
	Long:  `Stores the bearer token issued by the store API. Reads the token from stdin when no argument is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readTokenArg(args)
		if err != nil {
			return err
		}
		claims, ok := token.DecodeClaims(raw)
		if !ok {
			return errors.New("token is not a decodable JWT")
		}
		if _, hasExp := claims.ExpiresAt(); !hasExp {
			fmt.Fprintln(os.Stderr, "Warning: token has no exp claim and will be treated as expired")
		} else if token.IsExpired(raw) {
			fmt.Fprintln(os.Stderr, "Warning: token is already expired, requests will be rejected")
		}

		return withSession(func(ctx context.Context, s *session) error {
			if err := s.tokens.Set(ctx, raw); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Fprintf(stdout, "Logged in as %s\n", displaySubject(claims))
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			if err := s.tokens.Remove(ctx); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Fprintln(stdout, "Logged out")
			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show the claims of the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			raw, ok, err := s.tokens.Get(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return errNoToken
			}
			claims, ok := token.DecodeClaims(raw)
			if !ok {
				return errors.New("stored token is not a decodable JWT")
			}
			if jsonOutput() {
				return renderJSON(stdout, claims)
			}
			return renderPairs(stdout, claimPairs(claims, token.IsExpired(raw)))
		})
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			rec, err := s.svc.Me(ctx)
			if err != nil {
				return err
			}
			return renderRecord(stdout, rec)
		})
	},
}

var userCmd = &cobra.Command{
	Use:   "user <employee-id>",
	Short: "Show a user by employee ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			rec, err := s.svc.User(ctx, args[0])
			if err != nil {
				return err
			}
			return renderRecord(stdout, rec)
		})
	},
}

// readTokenArg returns the token argument or the first non-empty stdin line
func readTokenArg(args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errors.New("no token given")
}

// displaySubject prefers the name claim, then employee_id, then sub
func displaySubject(c token.Claims) string {
	for _, name := range []string{"name", "employee_id", "sub"} {
		if v := c.String(name); v != "" {
			return v
		}
	}
	return "unknown user"
}

// claimPairs lists the claims the console cares about
func claimPairs(c token.Claims, expired bool) [][2]string {
	pairs := [][2]string{
		{"Subject", c.Subject()},
		{"Employee ID", utils.ToString(c["employee_id"])},
		{"Name", c.String("name")},
		{"Role", c.String("role")},
	}
	expiry := "never"
	if exp, ok := c.ExpiresAt(); ok {
		expiry = exp.In(utils.GetLocation()).Format(time.RFC3339)
	}
	if expired {
		expiry += " (expired)"
	}
	return append(pairs, [2]string{"Expires", expiry})
}
