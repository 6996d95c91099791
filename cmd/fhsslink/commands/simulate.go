package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fhsslink/internal/domain"
	"fhsslink/internal/node"
	"fhsslink/internal/rng"
	"fhsslink/internal/timesync"
	"fhsslink/internal/transport"
)

func simulateCmd() *cobra.Command {
	var (
		seed    uint32
		hops    int
		payload string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run an in-process master/slave link simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			masterClock := &timesync.ManualClock{}
			slaveClock := &timesync.ManualClock{}
			bus := transport.NewBus()

			master := node.New(domain.RoleMaster, cfg, masterClock, rng.NewDeterministic(seed))
			slave := node.New(domain.RoleSlave, cfg, slaveClock, nil)

			if err := node.Pair(master, slave, bus); err != nil {
				return fmt.Errorf("pairing: %w", err)
			}
			log.Info("paired", "schedule", fmt.Sprint(master.Schedule()))

			raw, ok := master.EmitBeacon()
			if !ok {
				return fmt.Errorf("master produced no beacon")
			}
			if err := slave.HandleBeacon(raw); err != nil {
				return fmt.Errorf("beacon adoption: %w", err)
			}
			log.Info("synchronized", "status", slave.Status().String())

			for i := 0; i < hops; i++ {
				if raw, ok := master.EmitBeacon(); ok {
					if err := slave.HandleBeacon(raw); err != nil {
						return fmt.Errorf("beacon at hop %d: %w", i, err)
					}
					log.Debug("beacon adopted", "hop", i)
				}
				mc, err := master.CurrentChannel()
				if err != nil {
					return err
				}
				sc, err := slave.CurrentChannel()
				if err != nil {
					return err
				}
				if mc != sc {
					return fmt.Errorf("hop %d diverged: master on %d, slave on %d", i, mc, sc)
				}
				log.Debug("hop", "slot", i%cfg.ScheduleLength, "channel", mc)
				masterClock.Advance(cfg.HopInterval)
				slaveClock.Advance(cfg.HopInterval)
			}
			log.Info("hopping complete", "hops", hops)

			if err := master.Send(bus, []byte(payload)); err != nil {
				return fmt.Errorf("send: %w", err)
			}
			buf := make([]byte, len(payload)+256)
			n, err := slave.Receive(bus, buf)
			if err != nil {
				return fmt.Errorf("receive: %w", err)
			}
			if string(buf[:n]) != payload {
				return fmt.Errorf("payload mismatch after transfer")
			}
			log.Info("transfer verified", "bytes", n, "secure", cfg.SecurePayload)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&seed, "seed", rng.DefaultSeed, "deterministic key generator seed")
	cmd.Flags().IntVar(&hops, "hops", 20, "number of hop intervals to step through")
	cmd.Flags().StringVar(&payload, "payload", "The quick brown fox jumps over the lazy dog", "payload to transfer after hopping")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every hop")
	return cmd
}
