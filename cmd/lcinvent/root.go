package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lcinvent",
		Short: "Search a lambda-calculus corpus for reusable abstractions",
	}
	root.AddCommand(newCompressCmd())
	return root
}
