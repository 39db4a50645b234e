package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rdo34/todo/internal/app"
	"github.com/rdo34/todo/internal/config"
	"github.com/rdo34/todo/internal/model"
	"github.com/rdo34/todo/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "todo - a task list with favorites",
		Long: `todo keeps a task list and a list of favorite tasks.

Run without a subcommand to open the interactive UI.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/todo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "override data directory")
	rootCmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: file|sqlite|memory")

	rootCmd.AddCommand(uiCmd(opts))
	rootCmd.AddCommand(addCmd(opts))
	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(completeCmd(opts, "done", true))
	rootCmd.AddCommand(completeCmd(opts, "undone", false))
	rootCmd.AddCommand(priorityCmd(opts))
	rootCmd.AddCommand(removeCmd(opts))
	rootCmd.AddCommand(favoriteCmd(opts, "fav", true))
	rootCmd.AddCommand(favoriteCmd(opts, "unfav", false))
	rootCmd.AddCommand(favoritesCmd(opts))
	rootCmd.AddCommand(readdCmd(opts))
	rootCmd.AddCommand(removeFavoriteCmd(opts))
	rootCmd.AddCommand(configCmd(opts))

	return rootCmd
}

func runUI(opts *rootOptions) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return ui.New(s.state, s.cfg.UI).Run()
}

func uiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(opts)
		},
	}
}

// withSession opens the store, runs fn, and releases resources.
func withSession(opts *rootOptions, fn func(s *session) error) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func addCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				t, err := s.state.AddTask(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %q added\n", t.ID, t.Text)
				return nil
			})
		},
	}
}

func listCmd(opts *rootOptions) *cobra.Command {
	var activeOnly, jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				tasks := s.state.Tasks()
				if activeOnly {
					tasks = s.state.ActiveTasks()
				}
				out := cmd.OutOrStdout()
				if jsonOut {
					return writeJSON(out, tasks)
				}
				if len(s.state.ActiveTasks()) == 0 {
					fmt.Fprintln(out, "No pending tasks.")
				}
				for _, t := range tasks {
					fmt.Fprintf(out, "%d  %s\n", t.ID, formatTask(t))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only tasks that are not completed")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func completeCmd(opts *rootOptions, use string, completed bool) *cobra.Command {
	short := "Mark a task as completed"
	if !completed {
		short = "Mark a task as not completed"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				t, err := requireTask(s.state, id)
				if err != nil {
					return err
				}
				if err := s.state.SetCompleted(id, completed); err != nil {
					return err
				}
				if completed {
					fmt.Fprintf(cmd.OutOrStdout(), "%q marked as completed\n", t.Text)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%q marked as pending\n", t.Text)
				}
				return nil
			})
		},
	}
}

func priorityCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> none|medium|high",
		Short: "Set a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := model.ParsePriority(args[1])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				if _, err := requireTask(s.state, id); err != nil {
					return err
				}
				if err := s.state.SetPriority(id, p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Priority set to %s\n", p)
				return nil
			})
		},
	}
}

func removeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task (its favorite is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				t, err := requireTask(s.state, id)
				if err != nil {
					return err
				}
				if err := s.state.RemoveTask(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q deleted\n", t.Text)
				return nil
			})
		},
	}
}

func favoriteCmd(opts *rootOptions, use string, makeFavorite bool) *cobra.Command {
	short := "Add a task to favorites"
	if !makeFavorite {
		short = "Remove a task from favorites"
	}
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				if !makeFavorite {
					_, isTask := s.state.Task(id)
					_, isFavorite := s.state.Favorite(id)
					if !isTask && !isFavorite {
						return fmt.Errorf("%w: %d", app.ErrTaskNotFound, id)
					}
				}
				if err := s.state.ToggleFavorite(id, makeFavorite); err != nil {
					return err
				}
				if makeFavorite {
					t, _ := s.state.Task(id)
					fmt.Fprintf(cmd.OutOrStdout(), "%q added to favorites\n", t.Text)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%d removed from favorites\n", id)
				}
				return nil
			})
		},
	}
}

func favoritesCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List favorites in alphabetical order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				favs := s.state.Favorites()
				out := cmd.OutOrStdout()
				if jsonOut {
					return writeJSON(out, favs)
				}
				if len(favs) == 0 {
					fmt.Fprintln(out, "No favorite tasks.")
				}
				for _, f := range favs {
					fmt.Fprintf(out, "%d  ★ %s\n", f.ID, f.Text)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func readdCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "readd <favorite-id>",
		Short: "Add a favorite back to the task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				f, ok := s.state.Favorite(id)
				if !ok {
					return fmt.Errorf("favorite %d not found", id)
				}
				t, err := s.state.AddTaskFromFavorite(f.Text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %q added from favorites\n", t.ID, t.Text)
				return nil
			})
		},
	}
}

func removeFavoriteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fav-rm <favorite-id>",
		Short: "Delete a favorite (clears the star on its task)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				f, ok := s.state.Favorite(id)
				if !ok {
					return fmt.Errorf("favorite %d not found", id)
				}
				if err := s.state.RemoveFavorite(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q removed from favorites\n", f.Text)
				return nil
			})
		},
	}
}

func configCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage todo configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	})
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func requireTask(a *app.App, id int64) (model.Task, error) {
	t, ok := a.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %d", app.ErrTaskNotFound, id)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTask(t model.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	label := check + " " + t.Text
	switch t.Priority {
	case model.PriorityHigh:
		label += "  !!"
	case model.PriorityMedium:
		label += "  !"
	}
	if t.Favorite {
		label += "  ★"
	}
	return label
}
