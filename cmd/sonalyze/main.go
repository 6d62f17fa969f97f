// Command sonalyze analyzes audio files and converts them to and from the
// sample-indexed CSV table layout.
//
// Usage:
//
//	sonalyze analyze -in recording.wav [-json] [-highpass 80]
//	sonalyze convert -in recording.wav -out recording.csv
//	sonalyze convert -in recording.csv -out restored.wav
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmvoss/sonalyze/convert"
	"github.com/jmvoss/sonalyze/features"
	"github.com/jmvoss/sonalyze/filters"
	"github.com/jmvoss/sonalyze/formats"
	"github.com/jmvoss/sonalyze/logging"
	"github.com/jmvoss/sonalyze/spectral"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "convert":
		err = runConvert(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logging.GetGlobalLogger().Error(err, os.Args[1]+" failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sonalyze <analyze|convert> [flags]")
	fmt.Fprintln(os.Stderr, "  analyze -in <file> [-json] [-highpass hz] [-no-normalize] [-verbose]")
	fmt.Fprintln(os.Stderr, "  convert -in <file> -out <file>")
}

// report is the JSON shape emitted by analyze. DominantFrequency is nil
// when the spectrum has no energy outside DC; a placeholder 0 Hz would
// read as a real measurement.
type report struct {
	File              string                    `json:"file"`
	Metadata          *formats.Metadata         `json:"metadata"`
	DominantFrequency *float64                  `json:"dominant_frequency_hz,omitempty"`
	Features          map[string]features.Value `json:"features"`
	Errors            map[string]string         `json:"errors,omitempty"`
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	in := fs.String("in", "", "input audio file (wav, aiff, mp3, ogg, csv)")
	asJSON := fs.Bool("json", false, "emit the report as JSON")
	highpass := fs.Float64("highpass", 0, "optional high-pass cutoff in Hz before analysis")
	noNormalize := fs.Bool("no-normalize", false, "skip peak normalization")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	fs.Parse(args)

	if *in == "" {
		fs.Usage()
		return fmt.Errorf("missing -in")
	}

	logger := logging.GetGlobalLogger()
	if *verbose {
		logger.SetLevel(logging.DebugLevel)
	}

	buf, meta, err := formats.LoadWithMetadata(*in)
	if err != nil {
		return err
	}

	if !*noNormalize {
		buf, err = filters.Normalize(buf)
		if err != nil {
			return err
		}
	}
	if *highpass > 0 {
		buf, err = filters.HighPass(buf, *highpass)
		if err != nil {
			return err
		}
	}

	extractor, err := features.NewExtractor(buf.SampleRate, features.DefaultParams(buf.SampleRate))
	if err != nil {
		return err
	}
	result := extractor.Analyze(buf)

	spec, err := spectral.TransformBuffer(buf)
	if err != nil {
		return err
	}

	rep := &report{
		File:     *in,
		Metadata: meta,
		Features: result.Values,
		Errors:   make(map[string]string),
	}
	if dominant, err := spec.DominantFrequency(); err != nil {
		logger.Warn("dominant frequency unavailable", logging.Fields{"error": err.Error()})
	} else {
		rep.DominantFrequency = &dominant
	}
	for name, ferr := range result.Errs {
		rep.Errors[name] = ferr.Error()
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	printReport(os.Stdout, rep)
	return nil
}

func printReport(w io.Writer, rep *report) {
	fmt.Fprintf(w, "file: %s (%s, %d Hz, %d channel(s), %s)\n",
		rep.File, rep.Metadata.Format, rep.Metadata.SampleRate,
		rep.Metadata.Channels, rep.Metadata.Duration)
	if rep.DominantFrequency != nil {
		fmt.Fprintf(w, "dominant frequency: %.2f Hz\n", *rep.DominantFrequency)
	} else {
		fmt.Fprintln(w, "dominant frequency: unavailable")
	}

	for _, name := range features.AllFeatures {
		if msg, failed := rep.Errors[name]; failed {
			fmt.Fprintf(w, "%-18s unavailable: %s\n", name+":", msg)
			continue
		}
		v := rep.Features[name]
		if v.IsVector() {
			fmt.Fprintf(w, "%-18s %v\n", name+":", v.Vector)
		} else {
			fmt.Fprintf(w, "%-18s %.4f\n", name+":", v.Scalar)
		}
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "", "input file")
	out := fs.String("out", "", "output file (.csv or .wav)")
	fs.Parse(args)

	if *in == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("missing -in or -out")
	}

	buf, err := formats.Load(*in)
	if err != nil {
		return err
	}

	dst, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer dst.Close()

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".csv":
		err = convert.WriteCSV(dst, buf)
	case ".wav":
		err = formats.WriteWAV(dst, buf)
	default:
		err = fmt.Errorf("unsupported output extension %q (want .csv or .wav)", filepath.Ext(*out))
	}
	if err != nil {
		return err
	}

	logging.GetGlobalLogger().Info("converted", logging.Fields{
		"in": *in, "out": *out, "samples": buf.Len(), "sample_rate": buf.SampleRate,
	})
	return nil
}
