package plotscript

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

// configure a plotscript repl
type PlotscriptConfig struct {
	Flags *flag.FlagSet

	Command        string
	ConfigFile     string
	StartupFile    string
	LogLevel       string
	Prompt         string // default "plotscript> "
	HistoryFile    string
	TranscriptFile string
	Json           bool
	Quiet          bool

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool

	Stdin  io.Reader
	Stdout io.Writer
}

func NewPlotscriptConfig(cmdname string) *PlotscriptConfig {
	return &PlotscriptConfig{
		Flags:  flag.NewFlagSet(cmdname, flag.ExitOnError),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// call DefineFlags before myflags.Parse()
func (c *PlotscriptConfig) DefineFlags() {
	c.Flags.StringVar(&c.Command, "e", "", "evaluate this program, print the result, and exit")
	c.Flags.StringVar(&c.ConfigFile, "config", "", "YAML file with prompt/startup/loglevel/history/transcript/json/quiet settings")
	c.Flags.StringVar(&c.StartupFile, "startup", "", "program to evaluate in every fresh environment (default: built-in make-point/make-line/make-text)")
	c.Flags.StringVar(&c.LogLevel, "loglevel", "", "log level: debug, verbose, info, warning, error (default info)")
	c.Flags.StringVar(&c.Prompt, "prompt", "", "repl prompt")
	c.Flags.StringVar(&c.HistoryFile, "history", "", "repl history file (default ~/.plotscript_history)")
	c.Flags.StringVar(&c.TranscriptFile, "transcript", "", "append every kernel request and reply to this msgpack file")
	c.Flags.BoolVar(&c.Json, "json", false, "print results in JSON wire form")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the version banner")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read plain lines from stdin instead of using line editing")
}

// fileConfig is the YAML layout of -config.
type fileConfig struct {
	Prompt     string `yaml:"prompt"`
	Startup    string `yaml:"startup"`
	LogLevel   string `yaml:"loglevel"`
	History    string `yaml:"history"`
	Transcript string `yaml:"transcript"`
	Json       *bool  `yaml:"json"`
	Quiet      *bool  `yaml:"quiet"`
}

// LoadConfigFile merges path into c. Values already given on the
// command line win.
func (c *PlotscriptConfig) LoadConfigFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var fc fileConfig
	if err := decoder.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	set := make(map[string]bool)
	if c.Flags != nil {
		c.Flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	}
	mergeString := func(flagName string, dst *string, val string) {
		if !set[flagName] && val != "" {
			*dst = val
		}
	}
	mergeString("prompt", &c.Prompt, fc.Prompt)
	mergeString("startup", &c.StartupFile, fc.Startup)
	mergeString("loglevel", &c.LogLevel, fc.LogLevel)
	mergeString("history", &c.HistoryFile, fc.History)
	mergeString("transcript", &c.TranscriptFile, fc.Transcript)
	if fc.Json != nil && !set["json"] {
		c.Json = *fc.Json
	}
	if fc.Quiet != nil && !set["quiet"] {
		c.Quiet = *fc.Quiet
	}
	return nil
}

// call c.ValidateConfig() after myflags.Parse()
func (c *PlotscriptConfig) ValidateConfig() error {
	if c.ConfigFile != "" {
		if err := c.LoadConfigFile(c.ConfigFile); err != nil {
			return err
		}
	}
	if c.Prompt == "" {
		c.Prompt = "plotscript> "
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if err := log.SetLogLevelStr(c.LogLevel); err != nil {
		return fmt.Errorf("bad -loglevel '%s': %w", c.LogLevel, err)
	}
	if c.HistoryFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.HistoryFile = filepath.Join(home, ".plotscript_history")
		}
	}
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	return nil
}
