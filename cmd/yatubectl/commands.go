package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/storage"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// opener is swapped in tests.
type opener func() (*gorm.DB, error)

func newRootCmd(cfg config.Config) *cobra.Command {
	return buildRootCmd(func() (*gorm.DB, error) {
		conn, err := db.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		return conn, db.Migrate(conn)
	})
}

func buildRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "yatubectl",
		Short:         "Yatube administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(open), groupsCmd(open))
	return root
}

func migrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := open(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func groupsCmd(open opener) *cobra.Command {
	groups := &cobra.Command{
		Use:   "groups",
		Short: "Manage post groups",
	}

	var title, slug, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := open()
			if err != nil {
				return err
			}
			g := models.Group{Title: title, Slug: slug, Description: description}
			if err := storage.NewGroupStorage(conn).Create(cmd.Context(), &g); err != nil {
				return fmt.Errorf("create group %q: %w", slug, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created group %d (%s)\n", g.ID, g.Slug)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "group title")
	create.Flags().StringVar(&slug, "slug", "", "unique URL slug")
	create.Flags().StringVar(&description, "description", "", "group description")
	_ = create.MarkFlagRequired("title")
	_ = create.MarkFlagRequired("slug")

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := open()
			if err != nil {
				return err
			}
			all, err := storage.NewGroupStorage(conn).List(cmd.Context())
			if err != nil {
				return err
			}
			return printGroups(cmd.OutOrStdout(), all)
		},
	}

	del := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group; its posts stay, ungrouped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := open()
			if err != nil {
				return err
			}
			if err := storage.NewGroupStorage(conn).DeleteBySlug(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete group %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", args[0])
			return nil
		},
	}

	groups.AddCommand(create, list, del)
	return groups
}

func printGroups(w io.Writer, groups []models.Group) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tTITLE")
	for _, g := range groups {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
	}
	return tw.Flush()
}
