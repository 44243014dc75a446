package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Manage stored learning paths",
}

var pathsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFor(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		paths, err := a.store.ListPaths(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tLANGUAGE\tNODES\tUPDATED")
		for _, p := range paths {
			updated := "-"
			if !p.UpdatedAt.IsZero() {
				updated = p.UpdatedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", p.ID, p.Metadata.Title, p.Metadata.Language, p.Nodes, updated)
		}
		return w.Flush()
	},
}

var pathsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store a demo path built from the sample catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFor(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		id, _ := cmd.Flags().GetInt64("id")
		if err := seedPath(cmd.Context(), a.store, demoPath(id)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded path %d\n", id)
		return nil
	},
}

// demoPath asks which kind of learning to explore and branches on the answer.
func demoPath(id int64) *domain.Path {
	b := dsl.New(domain.PathMetadata{
		Title:       "Intro to AI",
		Description: "A first look at machine learning",
		Language:    "en",
	})
	b.Add(1).Lesson("lo-what-is-ai", "What is artificial intelligence?").Go(2)
	b.Add(2).Question("mc-ai-kind", "Which kind of learning?", "supervised", "unsupervised").
		Branch(0, 3).
		Branch(1, 4)
	b.Add(3).Lesson("lo-supervised", "Supervised learning").Go(5)
	b.Add(4).Lesson("lo-unsupervised", "Unsupervised learning")
	b.Add(5).OpenQuestion("oq-reflect", "What did you learn?")
	return b.MustBuild(id)
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	pathsCmd.AddCommand(pathsListCmd, pathsSeedCmd)
	pathsSeedCmd.Flags().Int64("id", 1, "Id of the seeded path")
}
