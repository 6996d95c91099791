package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"fhsslink/internal/domain"
	"fhsslink/internal/hop"
)

func deriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive <hex-key>",
		Short: "Derive the hop schedule from a link secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("parse key: %w", err)
			}
			if len(raw) != domain.KeyLength {
				return fmt.Errorf("key must be %d bytes, got %d", domain.KeyLength, len(raw))
			}

			var secret domain.Secret
			copy(secret[:], raw)

			sched := hop.DeriveN(secret, cfg.ScheduleLength, cfg.ChannelCount)
			for i, ch := range sched {
				fmt.Printf("slot %2d: channel %d\n", i, ch)
			}
			return nil
		},
	}
}
