package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/vitaminmoo/hexview/internal/commands"
	"github.com/vitaminmoo/hexview/internal/config"
	"github.com/vitaminmoo/hexview/internal/dump"
	"github.com/vitaminmoo/hexview/internal/tui"
)

// Version is printed by --version.
const Version = "hexview 1.0"

// CLI is the root command structure for hexview.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose debug output"`
	Version kong.VersionFlag `help:"Print version and exit"`

	DisplayFlags `embed:""`

	// Default command - plain dump
	Dump DumpCmd `cmd:"" default:"withargs" help:"Dump a file or stdin as hex (default)"`
	View ViewCmd `cmd:"" help:"Browse the dump in an interactive pager"`
}

// Streams are the process streams and what the terminal probe found for
// them. They are bound into every command's Run method.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer

	StdinIsTerminal bool
	// StdoutColor is true when stdout is a terminal that can show color.
	// It decides --color=auto.
	StdoutColor     bool
}

// StdStreams returns the real process streams.
func StdStreams() *Streams {
	color := isTerminal(os.Stdout) &&
		colorTerminal(os.Getenv("TERM"), termenv.NewOutput(os.Stdout).EnvNoColor())
	return &Streams{
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		StdinIsTerminal: isTerminal(os.Stdin),
		StdoutColor:     color,
	}
}

// colorTerminal reports whether a terminal of type term should get color.
// noColor is the NO_COLOR / CLICOLOR=0 convention.
func colorTerminal(term string, noColor bool) bool {
	return !noColor && term != "dumb"
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New builds the kong parser for c. Extra options are appended after the
// defaults, so tests can override Exit or the output writers.
func New(c *CLI, streams *Streams, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("hexview"),
		kong.Description("Hex dump a file or stdin as aligned offset, hex and ASCII columns.\n\nIf FILE is '-' read from stdin."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": Version},
		kong.Bind(streams),
	}
	return kong.New(c, append(opts, options...)...)
}

// --- Shared flags ---

// DisplayFlags are the rendering and range options common to every command.
// They are global so they may appear before or after the command name.
type DisplayFlags struct {
	BytesPerLine int         `short:"n" default:"16" placeholder:"N" help:"Bytes per line"`
	Group        int         `short:"g" default:"1" placeholder:"G" help:"Grouping of bytes for spacing"`
	OffsetWidth  int         `short:"o" default:"8" placeholder:"W" help:"Offset width in hex digits when using hex offsets"`
	Start        config.Size `short:"s" default:"0" placeholder:"OFFSET" help:"Start offset (decimal, 0x hex, or a size such as 4KiB)"`
	Length       config.Size `short:"l" default:"0" placeholder:"LENGTH" help:"Maximum number of bytes to read (0 = no limit)"`
	Uppercase    bool        `short:"u" help:"Use uppercase hex letters"`
	Color        string      `short:"c" enum:"on,off,auto" default:"auto" env:"HEXVIEW_COLOR" help:"Colorize output: on, off or auto (only when stdout is a TTY)"`
	NoColor      bool        `name:"no-color" help:"Same as --color=off"`
	ASCIIOnly    bool        `short:"A" name:"ascii-only" help:"Show ASCII only (no hex column)"`
	HexOnly      bool        `short:"H" name:"hex-only" help:"Show hex only (no ASCII column)"`
	SwapColumns  bool        `short:"S" name:"swap-columns" help:"Print ASCII column first, hex column second"`
	OffsetFormat string      `name:"offset-format" enum:"hex,dec" default:"hex" help:"Show offsets in hex or dec"`
	NoOffset     bool        `name:"no-offset" help:"Hide the offset/address column"`
	ShowEscapes  bool        `name:"show-escapes" help:"Show control escapes and hex escapes instead of dots for non-printable bytes"`
}

// Options converts the flags into a validated configuration. The color
// preference is resolved against stdoutColor here, once.
func (f *DisplayFlags) Options(stdoutColor bool) (config.Options, error) {
	base, err := config.ParseOffsetBase(f.OffsetFormat)
	if err != nil {
		return config.Options{}, err
	}

	pref := f.Color
	if f.NoColor {
		pref = "off"
	}

	o := config.Default()
	o.BytesPerLine = f.BytesPerLine
	o.Group = f.Group
	o.OffsetWidth = f.OffsetWidth
	o.OffsetBase = base
	o.Uppercase = f.Uppercase
	o.ASCIIOnly = f.ASCIIOnly
	o.HexOnly = f.HexOnly
	o.SwapColumns = f.SwapColumns
	o.HideOffset = f.NoOffset
	o.ShowEscapes = f.ShowEscapes
	o.Color = ColorEnabled(pref, stdoutColor)

	if err := o.Validate(); err != nil {
		return config.Options{}, err
	}
	return o, nil
}

// ColorEnabled combines the user's on/off/auto preference with the
// terminal probe.
func ColorEnabled(pref string, stdoutColor bool) bool {
	switch pref {
	case "on":
		return true
	case "off":
		return false
	default:
		return stdoutColor
	}
}

// resolveInput picks stdin when no file was named and stdin is redirected.
func resolveInput(file string, stdinIsTerminal bool) (string, error) {
	if file != "" {
		return file, nil
	}
	if !stdinIsTerminal {
		return dump.StdinName, nil
	}
	return "", fmt.Errorf("%w: no input file given; name a file or use '-' for stdin", config.ErrInvalid)
}

func (f *DisplayFlags) request(file string, streams *Streams) (commands.Request, error) {
	opts, err := f.Options(streams.StdoutColor)
	if err != nil {
		return commands.Request{}, err
	}
	source, err := resolveInput(file, streams.StdinIsTerminal)
	if err != nil {
		return commands.Request{}, err
	}
	return commands.Request{
		Source:  source,
		Start:   uint64(f.Start),
		Length:  uint64(f.Length),
		Options: opts,
	}, nil
}

// Validate rejects conflicting or out-of-range display flags at parse time.
func (c *CLI) Validate() error {
	_, err := c.Options(false)
	return err
}

// --- Dump Command ---

type DumpCmd struct {
	File string `arg:"" optional:"" help:"Input file ('-' for stdin)"`
}

func (c *DumpCmd) Run(globals *CLI, streams *Streams) error {
	config.SetVerbose(globals.Verbose)

	req, err := globals.request(c.File, streams)
	if err != nil {
		return err
	}
	config.Debugf("dumping %s from offset %d (limit %d) with %+v", req.Source, req.Start, req.Length, req.Options)
	return commands.Dump(req, streams.Stdin, streams.Stdout)
}

// --- View Command ---

type ViewCmd struct {
	MaxBytes config.Size `name:"max-bytes" default:"1MiB" help:"Bytes loaded into the pager when --length is 0"`

	File string `arg:"" optional:"" help:"Input file ('-' for stdin)"`
}

func (c *ViewCmd) Run(globals *CLI, streams *Streams) error {
	config.SetVerbose(globals.Verbose)

	req, err := globals.request(c.File, streams)
	if err != nil {
		return err
	}
	if req.Length == 0 {
		req.Length = uint64(c.MaxBytes)
	}

	lines, err := commands.Render(req, streams.Stdin)
	if err != nil {
		return err
	}

	doc := tui.Document{
		Title: req.Source,
		Subtitle: fmt.Sprintf("%s - %s, %d lines",
			humanize.IBytes(req.Start), humanize.IBytes(req.Start+req.Length), len(lines)),
		Lines: lines,
	}
	return tui.Run(tui.NewModel(doc))
}
