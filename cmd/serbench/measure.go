package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/serbench/bench"
	"github.com/arloliu/serbench/format"
	"github.com/arloliu/serbench/generator"
	"github.com/arloliu/serbench/internal/observe"
)

func newMeasureCmd(a *app) *cobra.Command {
	var encodingName string

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Run the pipeline once and print a measurement table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			encodings, err := parseEncodings(encodingName)
			if err != nil {
				return err
			}

			return a.runMeasure(cmd.OutOrStdout(), cmd.ErrOrStderr(), encodings)
		},
	}

	cmd.Flags().StringVar(&encodingName, "encoding", "all", "encoding to measure (text, binary, all)")

	return cmd
}

func parseEncodings(name string) ([]format.EncodingType, error) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		return format.Encodings, nil
	}

	e, err := format.ParseEncoding(name)
	if err != nil {
		return nil, err
	}

	return []format.EncodingType{e}, nil
}

// runMeasure prints the table to out. Logs go to logOut so they never interleave
// with the table.
func (a *app) runMeasure(out, logOut io.Writer, encodings []format.EncodingType) error {
	cfg, logger, err := a.load(logOut)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	set, err := generator.Generate(generator.WithSeed(cfg.Generator.Seed))
	if err != nil {
		logger.Error("failed to generate catalog", zap.Error(err))
		return err
	}

	pipeline, err := newPipeline(cfg, set, observe.NewLogSink(logger))
	if err != nil {
		return err
	}

	samples := make([]bench.Sample, 0, len(encodings)*(len(pipeline.Suite())+1))
	for _, e := range encodings {
		result, err := pipeline.Run(e)
		samples = append(samples, result.Samples...)
		if err != nil {
			_ = writeTable(out, samples)
			return err
		}
	}

	return writeTable(out, samples)
}

// writeTable prints one row per sample.
func writeTable(out io.Writer, samples []bench.Sample) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tNAME\tRECORDS\tINPUT\tOUTPUT\tRATIO\tSAVINGS\tDURATION\tSTATUS")

	for _, s := range samples {
		records, input, ratio, savings := "-", "-", "-", "-"
		if s.Stage == bench.StageEncode {
			records = strconv.Itoa(s.Records)
		} else {
			input = strconv.Itoa(s.InputSize)
			if s.OK() {
				ratio = strconv.FormatFloat(s.Ratio(), 'f', 3, 64)
				savings = strconv.FormatFloat(s.SpaceSavings(), 'f', 1, 64) + "%"
			}
		}

		status := s.Status.String()
		if s.Err != nil {
			status += ": " + s.Err.Error()
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			s.Stage, s.Name(), records, input, s.OutputSize, ratio, savings, s.Duration, status)
	}

	return tw.Flush()
}
