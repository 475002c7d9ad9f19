package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/scale"
)

// scaleOpts holds the flags of the scale command.
type scaleOpts struct {
	ticks int
	zero  bool
	log   bool
	min   string
	max   string
}

// scaleCommand creates the scale command.
func (c *CLI) scaleCommand() *cobra.Command {
	opts := &scaleOpts{}

	cmd := &cobra.Command{
		Use:   "scale <min> <max>",
		Short: "Show the nice scale chosen for a data range",
		Long: `Show the axis range, tick interval and tick labels that a value axis
would use for data spanning [min, max].

Put "--" before the arguments when min is negative.`,
		Example: `  stackchart scale 3 97
  stackchart scale 0 1 --ticks 4
  stackchart scale 2 800 --log
  stackchart scale -- -40 15 --zero`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			sc, ticks := computeScale(lo, hi, opts)
			printScale(sc, ticks, opts.log)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.ticks, "ticks", 0, "desired tick count (0 picks 5-11 from the range)")
	cmd.Flags().BoolVar(&opts.zero, "zero", false, "force the range to include zero")
	cmd.Flags().BoolVar(&opts.log, "log", false, "use a base-10 logarithmic scale")
	cmd.Flags().StringVar(&opts.min, "declared-min", "", "pin the axis minimum")
	cmd.Flags().StringVar(&opts.max, "declared-max", "", "pin the axis maximum")
	cmd.MarkFlagsMutuallyExclusive("log", "zero")

	return cmd
}

func parseRange(a, b string) (lo, hi float64, err error) {
	if lo, err = strconv.ParseFloat(a, 64); err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid min %q", a)
	}
	if hi, err = strconv.ParseFloat(b, 64); err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid max %q", b)
	}
	return lo, hi, nil
}

// computeScale returns the scale and its tick values. Declared bounds that
// fail to parse are ignored.
func computeScale(lo, hi float64, opts *scaleOpts) (scale.Scale, []float64) {
	if opts.log {
		sc := scale.Log(lo, hi)
		return sc, scale.Decades(sc)
	}
	o := scale.Options{ForceZero: opts.zero}
	if v, err := strconv.ParseFloat(opts.min, 64); err == nil {
		o.DeclaredMin = &v
	}
	if v, err := strconv.ParseFloat(opts.max, 64); err == nil {
		o.DeclaredMax = &v
	}
	sc := scale.Nice(lo, hi, opts.ticks, o)
	return sc, sc.Ticks()
}

func printScale(sc scale.Scale, ticks []float64, logarithmic bool) {
	dec := sc.Decimals()
	if logarithmic {
		dec = -1
	}
	printKeyValue("min", formatTick(sc.Min, dec))
	printKeyValue("max", formatTick(sc.Max, dec))
	if logarithmic {
		printKeyValue("interval", "1 decade")
	} else {
		printKeyValue("interval", formatTick(sc.Interval, dec))
		printKeyValue("decimals", strconv.Itoa(dec))
	}

	t := newTable("#", "Tick")
	for i, v := range ticks {
		t.Row(strconv.Itoa(i), StyleNumber.Render(formatTick(v, dec)))
	}
	fmt.Println(t.Render())
}

// formatTick renders v with dec decimals; dec < 0 uses the shortest form.
func formatTick(v float64, dec int) string {
	if dec < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', dec, 64)
}
