package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/pwsafe/pkg/pwsafe"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [path]",
		Short: "Open a safe and print its groups and records",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSafePath(args)
			if err != nil {
				return err
			}
			pass, err := promptPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			db, err := pwsafe.Open(path, pass)
			if err != nil {
				return err
			}
			printTree(db)
			return nil
		},
	}
}

func printTree(db *pwsafe.Database) {
	for _, e := range db.Roots() {
		switch e.Kind {
		case pwsafe.EntryGroup:
			printGroup(db, e.Group, 0)
		case pwsafe.EntryRecord:
			printRecord(e.Record, 0)
		}
	}
}

func printGroup(db *pwsafe.Database, path string, depth int) {
	fmt.Printf("%s%s/\n", indent(depth), leafName(path))
	for _, r := range db.GroupRecords(path) {
		printRecord(r, depth+1)
	}
	for _, sub := range db.Subgroups(path) {
		printGroup(db, sub, depth+1)
	}
}

func printRecord(r *pwsafe.Record, depth int) {
	fmt.Printf("%s%s (%s)\n", indent(depth), r.Title(), r.Username())
}

func indent(depth int) string {
	out := ""
	for i := 0; i < depth; i++ {
		out += "  "
	}
	return out
}

func leafName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}
