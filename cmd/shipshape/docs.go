package main

import (
	"embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klaus-strele/shipshape/pkg/cobrax/topics"
	"github.com/klaus-strele/shipshape/pkg/errors"
)

//go:embed docs
var manualFS embed.FS

// loadManual loads the embedded manual pages.
func loadManual() (*topics.Manager, error) {
	return topics.Load(manualFS, "docs", topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
}

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			manual, err := loadManual()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return manual.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			manual, err := loadManual()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to load the built-in manual")
			}

			out := cmd.OutOrStdout()

			if len(args) == 0 {
				names := manual.Names()
				width := 0
				for _, name := range names {
					if len(name) > width {
						width = len(name)
					}
				}
				fmt.Fprintln(out, MsgAvailableTopics)
				fmt.Fprintln(out)
				for _, name := range names {
					topic, _ := manual.Get(name)
					fmt.Fprintf(out, "  %-*s  %s\n", width, name, topic.Title())
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, MsgDocsHint)
				return nil
			}

			rendered, ok := manual.Render(args[0])
			if !ok {
				return errors.Newf(errors.ErrInvalidInput,
					"unknown topic %q; run \"shipshape docs\" for the list", args[0]).
					WithDetail("topic", args[0])
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	return cmd
}
