package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/appstore/pkg/i18n"
)

func localeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale",
		Short: "Read or change the persisted locale",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the persisted locale",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := setup(context.Background(), flags)
				if err != nil {
					return err
				}
				defer e.Close()

				fmt.Println(e.store.Locale().Get())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <locale>",
			Short: "Change and persist the locale",
			Long: `Change and persist the locale.

Supported locales:
  zh-CN  中文
  en     English`,
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(i18n.ZhCN), string(i18n.En)},
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				e, err := setup(ctx, flags)
				if err != nil {
					return err
				}
				defer e.Close()

				if err := e.store.ChangeLocale(ctx, i18n.Locale(args[0])); err != nil {
					return err
				}
				success("Locale set to %s", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List supported locales",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				for _, opt := range i18n.Options() {
					info("%-6s %s", opt.Key, opt.Label)
				}
			},
		},
	)

	return cmd
}
