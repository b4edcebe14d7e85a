package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/scoreboard-service/internal/client/refresh"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/news"
)

func newNewsCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the latest headlines across leagues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := refresh.NewNews(a.client, a.store, a.logger)
			defer ctrl.Close()

			render := func(st refresh.State[news.Payload]) {
				fmt.Fprintln(a.out, a.renderer.News(st))
			}
			if watch {
				return runWatch(cmd.Context(), ctrl, "", render)
			}

			_ = ctrl.Switch(cmd.Context(), "")
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
