package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/palette"
)

func (a *App) colorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Manage the course colour palette",
		Long: `List the course palette and add or remove custom colours.

Custom colours are offered after the built-in ones wherever a colour is
picked. Removing a colour does not change courses already using it.`,
	}
	cmd.AddCommand(a.colorsListCmd(), a.colorsAddCmd(), a.colorsRemoveCmd())
	return cmd
}

func (a *App) colorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List palette colours",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context(), logging.ModeCLI)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			custom := palette.NewCustom(b.colors)
			for i, hex := range custom.Choices() {
				kind := ""
				if !palette.IsBuiltin(hex) {
					kind = formatMuted("custom")
				}
				fmt.Fprintf(w, "  %2d %s %s %s\n", i+1, formatSwatch(hex), hex, kind)
			}
			fmt.Fprintln(w, formatMuted(fmt.Sprintf("%d built-in, %d custom", len(palette.Default), custom.Len())))
			return nil
		},
	}
}

func (a *App) colorsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <#rrggbb>",
		Short: "Add a custom colour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			custom := palette.NewCustom(b.colors)
			added, err := custom.Add(args[0])
			if err != nil {
				return err
			}
			hex, _ := palette.Normalize(args[0])
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already in the palette\n", formatSwatch(hex), hex)
				return nil
			}
			if err := b.saveColors(ctx, custom.Colors()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", formatSwatch(hex), hex)
			return nil
		},
	}
}

func (a *App) colorsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <#rrggbb>",
		Aliases: []string{"remove"},
		Short:   "Remove a custom colour",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open(ctx, logging.ModeCLI)
			if err != nil {
				return err
			}
			if palette.IsBuiltin(args[0]) {
				return fmt.Errorf("%s is a built-in colour", args[0])
			}
			custom := palette.NewCustom(b.colors)
			if !custom.Remove(args[0]) {
				return fmt.Errorf("%s is not a custom colour", args[0])
			}
			if err := b.saveColors(ctx, custom.Colors()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
