package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/soltixdb/soltix-resample/internal/models"
)

// CommandLineOptions configures one resample run
type CommandLineOptions struct {
	Input  string `short:"i" long:"input" required:"true" description:"source CSV file (.sz for snappy framing)"`
	Output string `short:"o" long:"output" required:"true" description:"target CSV file (.sz for snappy framing)"`

	Divisor int64   `short:"d" long:"divisor" description:"source units per target slot"`
	Ratio   float64 `short:"r" long:"ratio" description:"target slots per source unit, in (0, 1]"`

	Aggregator string `short:"a" long:"aggregator" default:"sum" choice:"sum" choice:"avg" choice:"isum" choice:"p50" choice:"p90" choice:"p99" description:"slot aggregator"`
	LogLevel   string `long:"log-level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"log level"`
}

func readCommandLineOptions() CommandLineOptions {
	opts := CommandLineOptions{}
	_, err := flags.Parse(&opts)

	switch errt := err.(type) {
	case *flags.Error:
		if errt.Type == flags.ErrHelp {
			os.Exit(0)
		}
	}

	if err != nil {
		// go-flags has already printed the message
		os.Exit(2)
	}

	return opts
}

// transform builds the transform request selected by the options.
// Without --divisor or --ratio the series is rewritten slot for slot.
func (o CommandLineOptions) transform() (models.TransformRequest, error) {
	var t models.TransformRequest
	switch {
	case o.Divisor != 0 && o.Ratio != 0:
		return t, fmt.Errorf("--divisor and --ratio are mutually exclusive")
	case o.Divisor != 0:
		t = models.TransformRequest{Type: models.TransformDivide, Divisor: o.Divisor}
	case o.Ratio != 0:
		t = models.TransformRequest{Type: models.TransformRatio, Ratio: o.Ratio}
	default:
		t = models.TransformRequest{Type: models.TransformIdentity}
	}

	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}
