package catalog

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/cmd/util"
	"github.com/mpapenbr/pitwall-go/pkg/render"
)

func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "shows or exports the market catalog",
	}
	cmd.AddCommand(newExportCmd(), newShowCmd())
	return cmd
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "writes the catalog as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := util.LoadCatalog()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return cat.Write(os.Stdout)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := cat.Write(f); err != nil {
				return err
			}
			log.Info("catalog exported", log.String("file", output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "prints the driver and engineer market",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := util.LoadCatalog()
			if err != nil {
				return err
			}
			team := cat.NewTeam(0, "", "")
			render.Market(os.Stdout, cat, &team)
			render.Sponsors(os.Stdout, cat, &team)
			return nil
		},
	}
}
