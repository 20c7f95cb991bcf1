package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sbilibin2017/gw-microblog/internal/facades"
	"github.com/sbilibin2017/gw-microblog/internal/migrations"
	"github.com/sbilibin2017/gw-microblog/internal/seed"
)

func newMigrateCmd(c *cli) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connectPostgres(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if statusOnly {
				if err := migrations.CheckStatus(db.DB); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "database schema is up to date")
				return nil
			}

			if err := migrations.MigrateUp(db.DB); err != nil {
				return err
			}
			latest, err := migrations.LatestVersion()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database migrated to version %d\n", latest)
			return nil
		},
	}
	cmd.Flags().BoolVar(&statusOnly, "status", false, "Only report whether the schema is current")
	return cmd
}

func newSeedCmd(c *cli) *cobra.Command {
	var opts seed.Options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users, posts and follows",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := connectPostgres(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			rdb, err := connectRedis(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer rdb.Close()

			index, err := newSearchIndex(c.cfg)
			if err != nil {
				return err
			}

			pipeline := newMailPipeline(c.cfg)
			defer pipeline.close()

			comps := buildComponents(c.cfg, db, rdb, index, pipeline.dispatcher, nil)

			res, err := seed.New(comps.auth, comps.posts, comps.graph, opts).Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d users, %d posts, %d follows\n", res.Users, res.Posts, res.Follows)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Users, "users", 20, "Number of users")
	cmd.Flags().IntVar(&opts.PostsPerUser, "posts", 10, "Posts per user")
	cmd.Flags().IntVar(&opts.FollowsPerUser, "follows", 5, "Follow attempts per user")
	cmd.Flags().StringVar(&opts.Password, "password", "password123", "Password of every seeded user")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed, 0 for a random data set")
	return cmd
}

func newUserCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-password <username>",
		Short: "Set a user's password, read from the terminal or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := connectPostgres(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			rdb, err := connectRedis(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer rdb.Close()

			pipeline := newMailPipeline(c.cfg)
			defer pipeline.close()

			comps := buildComponents(c.cfg, db, rdb, facades.NoopSearchIndex{}, pipeline.dispatcher, nil)
			if err := comps.auth.SetPassword(ctx, args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", args[0])
			return nil
		},
	})
	return cmd
}

var errPasswordMismatch = errors.New("passwords do not match")

// readPassword prompts twice without echo on a terminal and reads one line
// from stdin otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(cmd.InOrStdin())
	}

	out := cmd.ErrOrStderr()
	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	fmt.Fprint(out, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errPasswordMismatch
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(first), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password must not be empty")
	}
	return line, nil
}
