// Command xor runs the example XOR protocol between several parties of the same
// process, connected by an in-memory network.
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/protocol"
	"github.com/taurusgroup/round-driver/pkg/transport/local"
	"github.com/taurusgroup/round-driver/protocols/xor"
	"golang.org/x/sync/errgroup"
)

type flags struct {
	parties  int
	logLevel string
	session  string
	timeout  time.Duration
	metrics  bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "xor",
		Short:        "Agree on a common random value between local parties",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	cmd.Flags().IntVar(&f.parties, "parties", 3, "number of parties taking part in the protocol")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&f.session, "session", "", "optional session identifier")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, "maximum duration of the execution")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "print the collected metrics once all parties are done")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, f flags) error {
	level, err := zerolog.ParseLevel(f.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(level).With().Timestamp().Logger()

	if f.parties < 1 || f.parties > party.MaxParties {
		return fmt.Errorf("invalid number of parties %d", f.parties)
	}
	ids := make([]party.ID, f.parties)
	for i := range ids {
		ids[i] = party.ID(fmt.Sprintf("party-%05d", i))
	}
	parties, err := party.NewList(ids)
	if err != nil {
		return err
	}

	var sessionID []byte
	if f.session != "" {
		sessionID = []byte(f.session)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	registry := prometheus.NewRegistry()
	metrics := protocol.NewMetrics("xor", registry)

	network := local.NewNetwork[xor.Message](parties.Len())
	results := make([]xor.Result, network.N())

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < network.N(); i++ {
		d := network.Delivery(party.Position(i))
		g.Go(func() error {
			id, _ := parties.IDAt(d.Self())
			start, err := xor.Start(id, parties, sessionID)
			if err != nil {
				return err
			}
			results[d.Self()], err = protocol.Execute[xor.Message, xor.Result](ctx, d, start, d.Self(), parties,
				protocol.WithLogger(log),
				protocol.WithProtocolID(xor.ProtocolID),
				protocol.WithMetrics(metrics),
			)
			return err
		})
	}
	err = g.Wait()
	if f.metrics {
		if perr := printMetrics(cmd, registry); perr != nil {
			log.Warn().Err(perr).Msg("failed to print metrics")
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("execution failed")
		return err
	}

	for i, r := range results {
		if !bytes.Equal(r, results[0]) {
			log.Error().Str("party", string(ids[i])).Msg("different result")
			return errors.New("parties disagree on the result")
		}
	}
	log.Info().Str("xor", hex.EncodeToString(results[0])).Msg("XOR result")
	return nil
}

func printMetrics(cmd *cobra.Command, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
			return err
		}
	}
	return nil
}
