package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/weatherapp/internal/store"
)

// favoritesCmd edits the state file directly; no provider calls are made.
func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favourites", "fav"},
		Short:   "Manage saved favourite locations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favourites in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Load(statePath())
			if err != nil {
				return err
			}
			for _, name := range st.Favorites {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a favourite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFavorites(func(f *store.Favorites) {
				if !f.Add(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already a favourite\n", args[0])
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a favourite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFavorites(func(f *store.Favorites) {
				if !f.Remove(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not a favourite\n", args[0])
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all favourites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFavorites(func(f *store.Favorites) {
				f.Clear()
			})
		},
	})

	return cmd
}

// editFavorites loads the state file, applies edit and writes it back. The
// saved location is kept as is.
func editFavorites(edit func(*store.Favorites)) error {
	path := statePath()

	st, err := store.Load(path)
	if err != nil {
		return err
	}

	favs := store.NewFavorites(st.Favorites...)
	edit(favs)
	st.Favorites = favs.List()

	return store.Save(path, st)
}
