package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"fhsslink/internal/crypto"
	"fhsslink/internal/domain"
	"fhsslink/internal/hop"
	"fhsslink/internal/keyexchange"
	"fhsslink/internal/rng"
)

func keygenCmd() *cobra.Command {
	var seed uint32

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a link secret and print it as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			var src domain.EntropySource = rng.NewHardware()
			if cmd.Flags().Changed("seed") {
				src = rng.NewDeterministic(seed)
			}

			m := keyexchange.NewMaster(src)
			if err := m.Generate(); err != nil {
				return err
			}
			key := m.Key()
			fmt.Printf("%s\n", hex.EncodeToString(key.Slice()))
			fmt.Printf("entropy:  %.2f bits/byte\n", crypto.Entropy(key.Slice()))
			fmt.Printf("schedule: %v\n", hop.DeriveN(key, cfg.ScheduleLength, cfg.ChannelCount))
			m.Reset()
			return nil
		},
	}

	cmd.Flags().Uint32Var(&seed, "seed", rng.DefaultSeed, "use a deterministic generator with this seed")
	return cmd
}
