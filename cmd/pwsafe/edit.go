package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/pwsafe/pkg/pwsafe"
)

func addCmd() *cobra.Command {
	var title, group string
	c := &cobra.Command{
		Use:   "add [path]",
		Short: "Add a record to a safe",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSafePath(args)
			if err != nil {
				return err
			}
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			pass, err := promptPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			db, err := pwsafe.Open(path, pass)
			if err != nil {
				return err
			}
			secret, err := promptPassphrase("Record password: ")
			if err != nil {
				return err
			}
			rec := db.CreateRecord(title, group)
			rec.SetPassword(string(secret))
			if err := db.Save(path); err != nil {
				return err
			}
			fmt.Printf("added record %s\n", hex.EncodeToString(uuidSlice(rec.UUID())))
			return nil
		},
	}
	c.Flags().StringVar(&title, "title", "", "record title")
	c.Flags().StringVar(&group, "group", "", "full dot-delimited group path")
	return c
}

func rmCmd() *cobra.Command {
	var uuidHex string
	c := &cobra.Command{
		Use:   "rm [path]",
		Short: "Remove a record by UUID",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSafePath(args)
			if err != nil {
				return err
			}
			id, err := parseUUIDHex(uuidHex)
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
			db.DeleteRecord(id)
			return db.Save(path)
		},
	}
	c.Flags().StringVar(&uuidHex, "uuid", "", "32-character hex UUID")
	return c
}

func rmGroupCmd() *cobra.Command {
	var groupPath string
	c := &cobra.Command{
		Use:   "rmgroup [path]",
		Short: "Remove a group and every record under it",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSafePath(args)
			if err != nil {
				return err
			}
			if groupPath == "" {
				return fmt.Errorf("--path is required")
			}
			pass, err := promptPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
			db, err := pwsafe.Open(path, pass)
			if err != nil {
				return err
			}
			db.DeleteGroup(groupPath)
			return db.Save(path)
		},
	}
	c.Flags().StringVar(&groupPath, "path", "", "full dot-delimited group path")
	return c
}

func rekeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rekey [path]",
		Short: "Change a safe's passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSafePath(args)
			if err != nil {
				return err
			}
			oldPass, err := promptPassphrase("Current passphrase: ")
			if err != nil {
				return err
			}
			db, err := pwsafe.Open(path, oldPass)
			if err != nil {
				return err
			}
			newPass, err := promptPassphrase("New passphrase: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassphrase("Confirm new passphrase: ")
			if err != nil {
				return err
			}
			if string(newPass) != string(confirm) {
				return fmt.Errorf("passphrases do not match")
			}
			return db.SaveWithNewKey(path, newPass)
		},
	}
}

func parseUUIDHex(s string) ([16]byte, error) {
	var out [16]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("invalid --uuid: %w", err)
	}
	if len(b) != 16 {
		return out, fmt.Errorf("--uuid must be 32 hex chars, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

func uuidSlice(id [16]byte) []byte {
	return id[:]
}
