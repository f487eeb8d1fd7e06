// Command normz prints normalized values of CSS z-indexes.
//
//	normz [flags] [--] z...
//
// Negative z-indexes must follow "--", otherwise they are parsed as flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/avdva/normz"
	"github.com/avdva/normz/config"
	"github.com/avdva/normz/internal/mathutil"
	"github.com/avdva/normz/internal/sweep"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

type options struct {
	config               string
	lower, middle, upper string
	wide                 bool
	exact                bool
	verify               bool
	workers              int
}

type layout struct {
	name   string
	calc   sweep.Calculator
	ranges []normz.Range
	total  int64
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var opts options
	fs := pflag.NewFlagSet("normz", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.config, "config", "c", "", "path to a YAML config file")
	fs.StringVar(&opts.lower, "lower", "", "lower range as start:end")
	fs.StringVar(&opts.middle, "middle", "", "middle range as start:end")
	fs.StringVar(&opts.upper, "upper", "", "upper range as start:end")
	fs.BoolVar(&opts.wide, "wide", false, "use the fixed wide layout")
	fs.BoolVarP(&opts.exact, "exact", "e", false, "print exact decimal values")
	fs.BoolVar(&opts.verify, "verify", false, "check the order of all supported z-indexes")
	fs.IntVarP(&opts.workers, "workers", "w", 0, "number of verification workers, 0 means GOMAXPROCS")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: normz [flags] [--] z...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	return opts, fs.Args(), nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if len(opts.config) > 0 {
		var err error
		if cfg, err = config.Load(opts.config); err != nil {
			return config.Config{}, err
		}
	}
	for _, it := range []struct {
		flag   string
		target **config.Bounds
	}{
		{opts.lower, &cfg.Lower},
		{opts.middle, &cfg.Middle},
		{opts.upper, &cfg.Upper},
	} {
		if len(it.flag) == 0 {
			continue
		}
		b, err := config.ParseBounds(it.flag)
		if err != nil {
			return config.Config{}, err
		}
		*it.target = &b
	}
	cfg.Wide = cfg.Wide || opts.wide
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLayout(cfg config.Config) (layout, error) {
	if cfg.Wide {
		return layout{
			name:   "wide",
			calc:   sweep.CalcFunc(normz.NormalizeWide),
			ranges: normz.WideRanges(),
			total:  normz.NumOfSupportedWideZ,
		}, nil
	}
	p, err := cfg.Partition()
	if err != nil {
		return layout{}, err
	}
	name := "custom"
	if p == normz.DefaultPartition() {
		name = "default"
	}
	return layout{
		name:   name,
		calc:   normz.New(p),
		ranges: p.Ranges(),
		total:  p.Len(),
	}, nil
}

func (l layout) String() string {
	var b strings.Builder
	b.WriteString(l.name)
	b.WriteString(":")
	for _, r := range l.ranges {
		b.WriteString(" ")
		b.WriteString(r.String())
	}
	fmt.Fprintf(&b, "; %s z-indexes", humanize.Comma(l.total))
	return b.String()
}

func formatValue(v float32, exact bool) string {
	if exact {
		return mathutil.ExactDecimal(v).String()
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, zs, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	l, err := newLayout(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "# %s\n", l)

	if opts.verify {
		report, err := sweep.Check(ctx, l.calc, l.ranges, opts.workers)
		if err != nil {
			return fmt.Errorf("verify after %s z-indexes: %w", humanize.Comma(report.Checked), err)
		}
		fmt.Fprintf(stdout, "# verified %s z-indexes\n", humanize.Comma(report.Checked))
	}

	for _, s := range zs {
		z, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fmt.Errorf("bad z-index %q: %w", s, err)
		}
		v, ok := l.calc.Calc(int32(z))
		if !ok {
			fmt.Fprintf(stdout, "%d\tunsupported\n", z)
			continue
		}
		fmt.Fprintf(stdout, "%d\t%s\t0x%08x\n", z, formatValue(v, opts.exact), math.Float32bits(v))
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
