package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wanderlust/internal/config"
	"wanderlust/internal/models/request_models"
	"wanderlust/internal/models/response_models"
	"wanderlust/internal/models/trip_models"
	"wanderlust/internal/services"
	"wanderlust/pkg/utils"
)

var errConflicts = errors.New("trip has opening-hours conflicts")

type rootOptions struct {
	buffer    time.Duration
	maxPasses int
	out       string
	strict    bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "tripfix",
		Short:         "Check and repair itinerary timing against opening hours",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each repair step to stderr")

	root.AddCommand(newValidateCmd(opts), newFixCmd(opts), newTokenCmd())
	return root
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <trip.json>",
		Short: "Report activities scheduled outside their opening hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := readTrip(args[0])
			if err != nil {
				return err
			}
			svc := services.NewTimingService(services.DefaultRepairOptions(), newLogger(opts.verbose))

			validation := svc.ValidateTrip(trip)
			if err := writeJSON(cmd.OutOrStdout(), validation); err != nil {
				return err
			}
			if opts.strict && validation.HasConflicts {
				return fmt.Errorf("%w: %d found", errConflicts, len(validation.Conflicts))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when conflicts are found")
	return cmd
}

func newFixCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix <trip.json>",
		Short: "Shift, cascade or drop activities until the trip fits opening hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := readTrip(args[0])
			if err != nil {
				return err
			}
			svc := services.NewTimingService(services.RepairOptions{
				TravelBuffer: opts.buffer,
				MaxPasses:    opts.maxPasses,
			}, newLogger(opts.verbose))

			report := svc.AutoFixTrip(trip)

			w := cmd.OutOrStdout()
			if opts.out != "" {
				f, err := os.Create(opts.out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := writeJSON(w, response_models.AutoFixResponse{Trip: trip, Report: report}); err != nil {
				return err
			}
			if opts.strict && !report.Resolved {
				return fmt.Errorf("%w: %d left after %d passes", errConflicts, len(report.Remaining), report.Passes)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&opts.buffer, "buffer", services.DefaultTravelBuffer, "travel time inserted between cascaded activities")
	cmd.Flags().IntVar(&opts.maxPasses, "max-passes", services.DefaultMaxPasses, "upper bound on repair passes")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the result here instead of stdout")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when conflicts remain")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing, signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			id := uuid.New()
			if user != "" {
				parsed, err := uuid.Parse(user)
				if err != nil {
					return fmt.Errorf("--user: %w", err)
				}
				id = parsed
			}
			token, err := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL).CreateToken(id, "")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id (random when empty)")
	return cmd
}

func readTrip(path string) (*trip_models.Trip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req request_models.TripRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%s: %w: no days", path, utils.ErrInvalidInput)
	}
	return req.ToTrip()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
