/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/wowtools/dbckit/pkg/di"
	"github.com/wowtools/dbckit/pkg/schema"
	"github.com/wowtools/dbckit/pkg/store"

	"github.com/spf13/cobra"
)

var container *di.Container

// SetContainer injects the dependency container. Called by main before
// Execute.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dbckit",
	Short: "dbckit - DBC record database toolkit",
	Long: `dbckit reads, edits, and writes DBC files: fixed-layout binary
record databases with a trailing string block. Field layout comes from a
YAML schema file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		schemaFile, _ := cmd.Flags().GetString("schema")
		magic, _ := cmd.Flags().GetString("magic")

		s, err := schema.LoadFile(schemaFile)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		st, err := store.NewStore(store.Config{Path: file, Schema: s, Magic: magic})
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
		// A missing data file is fine: the store starts empty and the
		// file appears on the first save.
		if _, err := os.Stat(file); err == nil {
			if err := st.Read(); err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
		}
		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), "store", st))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "DBC data file")
	rootCmd.PersistentFlags().StringP("schema", "s", "", "YAML schema file describing the record layout")
	rootCmd.PersistentFlags().String("magic", "", "expected magic bytes, e.g. WDBC (empty skips the check)")
	_ = rootCmd.MarkPersistentFlagRequired("file")
	_ = rootCmd.MarkPersistentFlagRequired("schema")
}
