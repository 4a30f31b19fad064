package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"telegram-menu-bot/internal/domain/model"
)

var menuLang string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the menu trees and validate button identifiers",
	Long: `menu renders every menu for the chosen language and checks that
identifiers are unique, non-empty and fit the 64-byte callback limit.
It needs no token and makes no network calls.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, menus, err := loadMenus(menuLang)
		if err != nil {
			return err
		}
		for _, m := range menus.All() {
			printMenu(cmd.OutOrStdout(), m)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok: all menus valid")
		return nil
	},
}

func printMenu(w io.Writer, m *model.MenuDefinition) {
	fmt.Fprintf(w, "%s\n", m.Name)
	for i, row := range m.Rows {
		fmt.Fprintf(w, "  row %d\n", i+1)
		for _, b := range row {
			fmt.Fprintf(w, "    %-28s %s\n", b.Label, b.ID)
		}
	}
}

func init() {
	menuCmd.Flags().StringVar(&menuLang, "lang", "en", "catalog language (en|ru)")
	rootCmd.AddCommand(menuCmd)
}
