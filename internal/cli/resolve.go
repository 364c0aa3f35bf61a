package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/offset"
	"github.com/matzehuels/floatplace/pkg/scenario"
	"github.com/matzehuels/floatplace/pkg/service"
)

// resolveOptions holds flag values that override scenario fields.
type resolveOptions struct {
	placement       string
	offset          float64
	mainAxis        float64
	crossAxis       float64
	alignmentOffset float64
	script          string
	rtl             bool
	reference       string
	floating        string
	json            bool
	noCache         bool
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve [scenario]",
		Short: "Compute the position of a floating element",
		Long: `Compute the position of a floating element from a scenario file (TOML, YAML, or JSON).

Flags override the corresponding scenario fields; without a file the scenario
is built from flags alone.`,
		Example: `  floatplace resolve tooltip.toml
  floatplace resolve --placement top-start --reference 100,100,80,32 --floating 160,48 --main-axis 8 --alignment-offset 4
  floatplace resolve menu.yaml --rtl --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, s); err != nil {
				return err
			}

			runner := c.newRunner(opts.noCache)
			defer runner.Close()

			res, err := runner.Resolve(cmd.Context(), s)
			if err != nil {
				return err
			}
			if opts.json {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			c.printResult(s, res)
			if len(args) == 1 {
				printNextStep(c.Out, "Tune it interactively", "floatplace explore "+args[0])
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.placement, "placement", "p", "", "placement such as top, right-start, bottom-end")
	f.Float64Var(&opts.offset, "offset", 0, "main-axis distance (number form)")
	f.Float64Var(&opts.mainAxis, "main-axis", 0, "main-axis distance")
	f.Float64Var(&opts.crossAxis, "cross-axis", 0, "cross-axis skid")
	f.Float64Var(&opts.alignmentOffset, "alignment-offset", 0, "cross-axis skid for aligned placements, negated for -end")
	f.StringVar(&opts.script, "script", "", "JavaScript function computing the offset from {floating, reference, placement}")
	f.BoolVar(&opts.rtl, "rtl", false, "resolve for right-to-left text direction")
	f.StringVar(&opts.reference, "reference", "", "reference rect as x,y,width,height")
	f.StringVar(&opts.floating, "floating", "", "floating rect as width,height or x,y,width,height")
	f.BoolVar(&opts.json, "json", false, "print the result as JSON")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	cmd.MarkFlagsMutuallyExclusive("offset", "main-axis")
	cmd.MarkFlagsMutuallyExclusive("offset", "script")
	cmd.MarkFlagsMutuallyExclusive("main-axis", "script")
	cmd.MarkFlagsMutuallyExclusive("offset", "cross-axis")
	cmd.MarkFlagsMutuallyExclusive("offset", "alignment-offset")
	cmd.MarkFlagsMutuallyExclusive("script", "cross-axis")
	cmd.MarkFlagsMutuallyExclusive("script", "alignment-offset")

	_ = cmd.RegisterFlagCompletionFunc("placement", completePlacements)

	return cmd
}

// loadScenario reads the scenario named by args, or returns an empty one.
func loadScenario(args []string) (*scenario.Scenario, error) {
	if len(args) == 0 {
		return &scenario.Scenario{Name: "flags"}, nil
	}
	return scenario.Load(args[0])
}

// apply overrides scenario fields with the flags the user set.
func (o *resolveOptions) apply(cmd *cobra.Command, s *scenario.Scenario) error {
	f := cmd.Flags()

	if f.Changed("placement") {
		s.Placement = geom.Placement(o.placement)
	}
	if f.Changed("rtl") {
		s.RTL = o.rtl
	}
	if f.Changed("reference") {
		r, err := parseRect(o.reference)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRect, err, "--reference")
		}
		s.Reference = r
	}
	if f.Changed("floating") {
		r, err := parseRect(o.floating)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRect, err, "--floating")
		}
		s.Floating = r
	}

	switch {
	case f.Changed("script"):
		s.Offset = scenario.ScriptOffset(o.script)
	case f.Changed("offset"):
		s.Offset = scenario.NumberOffset(o.offset)
	case f.Changed("main-axis") || f.Changed("cross-axis") || f.Changed("alignment-offset"):
		rec := currentRecord(s.Offset)
		if f.Changed("main-axis") {
			rec.MainAxis = o.mainAxis
		}
		if f.Changed("cross-axis") {
			rec.CrossAxis = o.crossAxis
		}
		if f.Changed("alignment-offset") {
			rec.AlignmentOffset = o.alignmentOffset
		}
		s.Offset = scenario.RecordOffset(rec)
	}

	return s.Validate()
}

// currentRecord returns the static record form of o so individual axis flags
// can amend it. Script offsets start from zero.
func currentRecord(o scenario.Offset) offset.Record {
	switch o.Kind {
	case scenario.KindRecord:
		return o.Record
	case scenario.KindNumber:
		return offset.Record{MainAxis: o.Number}
	default:
		return offset.Record{}
	}
}

// parseRect parses "x,y,width,height" or "width,height".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("invalid number %q", p)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 2:
		return geom.Rect{Width: vals[0], Height: vals[1]}, nil
	case 4:
		return geom.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
	default:
		return geom.Rect{}, fmt.Errorf("want 2 or 4 comma-separated numbers, got %d", len(vals))
	}
}

func (c *CLI) printResult(s *scenario.Scenario, res *service.Result) {
	fmt.Fprintln(c.Out, StyleTitle.Render(res.Name))
	printKeyValue(c.Out, "placement", string(res.Placement))
	printKeyValue(c.Out, "direction", direction(res.RTL))
	printKeyValue(c.Out, "offset", s.Offset.String())
	printKeyValue(c.Out, "initial", formatCoords(res.Initial.X, res.Initial.Y))
	printKeyValue(c.Out, "delta", formatCoords(res.Offset.X, res.Offset.Y))
	printKeyValue(c.Out, "position", formatCoords(res.X, res.Y))
	printStatus(c.Out, res.CacheHit, res.Stats.Duration.String())
}

func direction(rtl bool) string {
	if rtl {
		return "rtl"
	}
	return "ltr"
}

func completePlacements(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(geom.Placements))
	for i, p := range geom.Placements {
		names[i] = string(p)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
