package main

import (
	"github.com/on-the-ground/teatui/examples/todo"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Run the todo list demo",
	Long:  `j/k move the selection, l or space toggles the selected item, h clears the selection, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgram(cmd, todo.Program(todo.DefaultItems()))
	},
}

func init() {
	rootCmd.AddCommand(todoCmd)
}
