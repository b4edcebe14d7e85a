package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/scoreboard-service/internal/client/refresh"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
)

func newScoreboardCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "scoreboard [league]",
		Short: "Show a league scoreboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			league := leagues.Builtin().Default().Key
			if len(args) == 1 {
				league = strings.ToLower(strings.TrimSpace(args[0]))
			}
			ctrl := refresh.NewScoreboard(a.client, a.store, a.logger)
			defer ctrl.Close()

			render := func(st refresh.State[games.ScoreboardPayload]) {
				fmt.Fprintln(a.out, a.renderer.Scoreboard(leagueLabel(st), st))
			}
			if watch {
				return runWatch(cmd.Context(), ctrl, league, render)
			}

			_ = ctrl.Switch(cmd.Context(), league)
			st := ctrl.State()
			render(st)
			if st.Error != "" {
				return errors.New(st.Error)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling at the service-declared interval")
	return cmd
}

func leagueLabel(st refresh.State[games.ScoreboardPayload]) string {
	if st.Data != nil && st.Data.Label != "" {
		return st.Data.Label
	}
	if l, ok := leagues.Builtin().Lookup(st.Key); ok {
		return l.Label
	}
	return strings.ToUpper(st.Key)
}

// runWatch renders every settled state until ctx ends.
func runWatch[T any](ctx context.Context, ctrl *refresh.Controller[T], key string, render func(refresh.State[T])) error {
	unsubscribe := ctrl.Subscribe(func(st refresh.State[T]) {
		if st.Refreshing || (st.Loading && st.Data == nil) {
			return
		}
		render(st)
	})
	defer unsubscribe()

	if err := ctrl.Switch(ctx, key); errors.Is(err, refresh.ErrClosed) {
		return err
	}
	<-ctx.Done()
	return nil
}
