package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cropper/config"
)

func newValidateCommand(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"scenario %s: %d containers, %d nodes, %d loose items\n",
				s.Name, len(s.Containers), len(s.Hoppers), len(s.Entities))

			return nil
		},
	}
}
