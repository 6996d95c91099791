package commands

import (
	"github.com/spf13/cobra"

	"fhsslink/internal/node"
)

var (
	configPath string
	cfg        node.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:   "fhsslink",
		Short: "Frequency-hopping link tools",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				cfg = node.DefaultConfig()
				return nil
			}
			loaded, err := node.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "link config file (YAML)")

	root.AddCommand(keygenCmd(), deriveCmd(), simulateCmd())
	return root.Execute()
}
