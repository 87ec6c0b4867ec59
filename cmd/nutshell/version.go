package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/nutshell"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nutshell",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nutshell version %s\n", strings.TrimSpace(nutshell.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
