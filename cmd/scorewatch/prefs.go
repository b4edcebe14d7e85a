package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/scoreboard-service/internal/client/storage"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/prefs"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage locally saved favorites",
	}

	load := func(cmd *cobra.Command) []prefs.Favorite {
		return prefs.FilterValid(storage.GetJSON[[]prefs.Favorite](cmd.Context(), a.store, storage.FavoritesKey, nil))
	}
	show := func(list []prefs.Favorite) {
		if len(list) == 0 {
			fmt.Fprintln(a.out, "No favorites saved.")
			return
		}
		for _, f := range list {
			fmt.Fprintf(a.out, "%s\t%s\t%s\n", f.ID, f.Label, f.Category)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorites",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				show(load(cmd))
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <id> <label> <team|league>",
			Short: "Save a favorite",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				fav := prefs.Favorite{ID: args[0], Label: args[1], Category: prefs.Category(args[2])}
				list, err := prefs.AddFavorite(load(cmd), fav)
				if err != nil {
					return err
				}
				if err := storage.SetJSON(cmd.Context(), a.store, storage.FavoritesKey, list); err != nil {
					return fmt.Errorf("save favorites: %w", err)
				}
				show(list)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a favorite",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := prefs.RemoveFavorite(load(cmd), args[0])
				if err != nil {
					return err
				}
				if err := storage.SetJSON(cmd.Context(), a.store, storage.FavoritesKey, list); err != nil {
					return fmt.Errorf("save favorites: %w", err)
				}
				show(list)
				return nil
			},
		},
	)
	return cmd
}

func newNotificationsCmd(a *app) *cobra.Command {
	var (
		gameStart    bool
		finalScore   bool
		breakingNews bool
		email        string
	)

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show or update locally saved notification preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := storage.GetJSON(cmd.Context(), a.store, storage.NotificationsKey, prefs.DefaultNotifications())

			flags := cmd.Flags()
			changed := flags.Changed("game-start") || flags.Changed("final-score") ||
				flags.Changed("breaking-news") || flags.Changed("email")
			if changed {
				var update prefs.NotificationUpdate
				update.GameStart = &current.GameStart
				update.FinalScore = &current.FinalScore
				update.BreakingNews = &current.BreakingNews
				update.Email = current.Email
				if flags.Changed("game-start") {
					update.GameStart = &gameStart
				}
				if flags.Changed("final-score") {
					update.FinalScore = &finalScore
				}
				if flags.Changed("breaking-news") {
					update.BreakingNews = &breakingNews
				}
				if flags.Changed("email") {
					update.Email = &email
				}
				current = update.ApplyDefaults()
				if err := storage.SetJSON(cmd.Context(), a.store, storage.NotificationsKey, current); err != nil {
					return fmt.Errorf("save preferences: %w", err)
				}
			}

			addr := "-"
			if current.Email != nil {
				addr = *current.Email
			}
			fmt.Fprintf(a.out, "game start:    %t\nfinal score:   %t\nbreaking news: %t\nemail:         %s\n",
				current.GameStart, current.FinalScore, current.BreakingNews, addr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&gameStart, "game-start", true, "alert when a followed game starts")
	cmd.Flags().BoolVar(&finalScore, "final-score", true, "alert with final scores")
	cmd.Flags().BoolVar(&breakingNews, "breaking-news", false, "alert on breaking news")
	cmd.Flags().StringVar(&email, "email", "", "address for email alerts (empty clears)")
	return cmd
}
