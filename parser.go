package sconf

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser is the CLI argument parser generated from a Config's bound
// settings. Every parsed value flows through the owning setting's
// validator before it is stored, so flag input obeys the same rules as
// Set.
type Parser struct {
	cfg        *Config
	fs         *flag.FlagSet
	version    bool
	positional []*Setting
	out        io.Writer
	exit       func(int)
}

// Parser builds the CLI parser for this Config: a --version flag plus
// one argument per bound setting, grouped by (section, declaration
// order) so the flag and help layout is reproducible.
func (c *Config) Parser() *Parser {
	p := &Parser{
		cfg:  c,
		fs:   flag.NewFlagSet(c.Description, flag.ContinueOnError),
		out:  os.Stdout,
		exit: os.Exit,
	}
	p.fs.BoolVar(&p.version, "version", false, "show program's version number and exit")
	for _, s := range byCLIOrder(c.settings) {
		p.add(s)
	}
	p.fs.Usage = p.usage
	return p
}

func (p *Parser) add(s *Setting) {
	if len(s.Flags) > 0 {
		v := &settingValue{s: s}
		for _, f := range s.Flags {
			p.fs.Var(v, strings.TrimLeft(f, "-"), flagHelp(s))
		}
		return
	}
	if s.Nargs != 0 && s.Name != "" {
		p.positional = append(p.positional, s)
	}
	// No flags and no arity: config-file-only, no CLI surface.
}

// SetOutput redirects version and usage output, mainly for tests.
func (p *Parser) SetOutput(w io.Writer) {
	p.out = w
	p.fs.SetOutput(w)
}

// Parse applies args to the bound settings. --version prints the
// runtime version string and terminates the process with exit code 0.
// Positional settings consume the arguments left after flag parsing.
func (p *Parser) Parse(args []string) error {
	if err := p.fs.Parse(args); err != nil {
		return err
	}
	if p.version {
		fmt.Fprintln(p.out, p.cfg.rt.Version)
		p.exit(0)
		return nil
	}

	rest := p.fs.Args()
	for _, s := range p.positional {
		switch {
		case s.Nargs == NargsRemainder:
			if err := s.Set(rest); err != nil {
				return err
			}
			rest = nil
		case len(rest) >= s.Nargs:
			var err error
			if s.Nargs == 1 {
				err = s.Set(rest[0])
			} else {
				err = s.Set(rest[:s.Nargs])
			}
			if err != nil {
				return err
			}
			rest = rest[s.Nargs:]
		default:
			return fmt.Errorf("missing argument: %s", s.Name)
		}
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	return nil
}

// usage prints help grouped by section in declaration order, one line
// per CLI-visible setting.
func (p *Parser) usage() {
	w := p.fs.Output()
	fmt.Fprintf(w, "usage: %s [options]\n", p.fs.Name())
	fmt.Fprintf(w, "\n  %-26s %s\n", "--version", "show program's version number and exit")

	section := ""
	for _, s := range byCLIOrder(p.cfg.settings) {
		if len(s.Flags) == 0 && s.Nargs == 0 {
			continue
		}
		if s.Section != section {
			section = s.Section
			fmt.Fprintf(w, "\n%s:\n", section)
		}
		left := strings.Join(s.Flags, ", ")
		if left == "" {
			left = s.Name
		}
		if s.Meta != "" {
			left += " " + s.Meta
		}
		fmt.Fprintf(w, "  %-26s %s\n", left, flagHelp(s))
	}
	if p.cfg.Epilog != "" {
		fmt.Fprintf(w, "\n%s\n", p.cfg.Epilog)
	}
}

// flagHelp renders the per-flag help as "<short description>
// [<default value>]".
func flagHelp(s *Setting) string {
	return fmt.Sprintf("%s [%v]", s.Short, s.Default)
}

// settingValue adapts a Setting to flag.Value so every alias of a flag
// writes through the same validated store.
type settingValue struct {
	s *Setting
}

func (v *settingValue) String() string {
	if v == nil || v.s == nil || v.s.Get() == nil {
		return ""
	}
	return fmt.Sprintf("%v", v.s.Get())
}

// Set routes the raw flag text through the setting's validator.
func (v *settingValue) Set(raw string) error {
	return v.s.Set(raw)
}

// IsBoolFlag makes bool settings act as no-value switches: presence
// implies true.
func (v *settingValue) IsBoolFlag() bool {
	return v.s.Kind == KindBool
}
