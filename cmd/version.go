package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version - set at build time
var Version = "dev"

// NewVersionCommand prints the build version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}
}
