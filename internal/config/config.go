package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Dicklesworthstone/acctop/internal/errors"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ACCTOP_INTERVAL.
	EnvPrefix = "ACCTOP"
	// GlobalConfigDir is the config directory under $HOME.
	GlobalConfigDir = ".config/acctop"
	// GlobalConfigFile is the config file name inside GlobalConfigDir.
	GlobalConfigFile = "config.yaml"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyInterval        = "interval"
	KeyShowNetwork     = "show-network"
	KeyShowLoad        = "show-load"
	KeyShowSystem      = "show-system"
	KeyShowDiskIO      = "show-disk-io"
	KeyShowAll         = "show-all"
	KeyShowMost        = "show-most"
	KeyNoColor         = "no-color"
	KeyOnce            = "once"
	KeyTUI             = "tui"
	KeyDebug           = "debug"
	KeyConfig          = "config"
	KeyCPUBarLength    = "cpu-bar-length"
	KeyMemoryBarLength = "memory-bar-length"
	KeyDiskBarLength   = "disk-bar-length"
	KeyCPUMaxColumns   = "cpu-max-columns"
)

// BarLengths is the number of cells in each domain's usage bar.
type BarLengths struct {
	CPU    int
	Memory int
	Disk   int
}

// Config carries runtime options for acctop.
type Config struct {
	Interval time.Duration

	ShowNetwork bool
	ShowLoad    bool
	ShowSystem  bool
	ShowDiskIO  bool

	NoColor bool
	Once    bool
	TUI     bool
	Debug   bool

	Bars BarLengths
	// CPUMaxColumns caps the per-core grid; zero leaves it uncapped.
	CPUMaxColumns int
	// DiskIOSampleDelay separates the two disk counter reads of one frame.
	DiskIOSampleDelay time.Duration
}

func Default() Config {
	return Config{
		Interval:          5 * time.Second,
		Bars:              BarLengths{CPU: 10, Memory: 30, Disk: 30},
		CPUMaxColumns:     0,
		DiskIOSampleDelay: 10 * time.Millisecond,
	}
}

// BindFlags registers acctop's flags on fs and binds them into v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	def := Default()
	fs.Float64(KeyInterval, def.Interval.Seconds(), "update interval in seconds")
	fs.Bool(KeyShowNetwork, false, "display network usage")
	fs.Bool(KeyShowLoad, false, "display load average")
	fs.Bool(KeyShowSystem, false, "display system uptime and kernel version")
	fs.Bool(KeyShowDiskIO, false, "display disk I/O throughput")
	fs.Bool(KeyShowAll, false, "display all optional sections")
	fs.Bool(KeyShowMost, false, "display disk I/O in addition to the base sections")
	fs.Bool(KeyNoColor, false, "disable ANSI colors")
	fs.Bool(KeyOnce, false, "render a single frame and exit")
	fs.Bool(KeyTUI, false, "run as a full-screen terminal UI")
	fs.Bool(KeyDebug, false, "log debug diagnostics to stderr")
	fs.String(KeyConfig, "", "path to a YAML config file")

	if err := v.BindPFlags(fs); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to bind flags", "")
	}
	return nil
}

// NewViper returns a viper instance with defaults and ACCTOP_* environment
// overrides wired up.
func NewViper() *viper.Viper {
	def := Default()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyInterval, def.Interval.Seconds())
	v.SetDefault(KeyCPUBarLength, def.Bars.CPU)
	v.SetDefault(KeyMemoryBarLength, def.Bars.Memory)
	v.SetDefault(KeyDiskBarLength, def.Bars.Disk)
	v.SetDefault(KeyCPUMaxColumns, def.CPUMaxColumns)
	return v
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read "+path,
			"Check the file contains KEY=value lines")
	}
	return nil
}

// Load resolves the final Config from v. Precedence is flag, then
// environment, then config file, then default.
func Load(v *viper.Viper) (Config, error) {
	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Interval = time.Duration(v.GetFloat64(KeyInterval) * float64(time.Second))

	showAll := v.GetBool(KeyShowAll)
	cfg.ShowNetwork = showAll || v.GetBool(KeyShowNetwork)
	cfg.ShowLoad = showAll || v.GetBool(KeyShowLoad)
	cfg.ShowSystem = showAll || v.GetBool(KeyShowSystem)
	cfg.ShowDiskIO = showAll || v.GetBool(KeyShowMost) || v.GetBool(KeyShowDiskIO)

	cfg.NoColor = v.GetBool(KeyNoColor) || os.Getenv("NO_COLOR") != ""
	cfg.Once = v.GetBool(KeyOnce)
	cfg.TUI = v.GetBool(KeyTUI)
	cfg.Debug = v.GetBool(KeyDebug)

	cfg.Bars = BarLengths{
		CPU:    v.GetInt(KeyCPUBarLength),
		Memory: v.GetInt(KeyMemoryBarLength),
		Disk:   v.GetInt(KeyDiskBarLength),
	}
	cfg.CPUMaxColumns = v.GetInt(KeyCPUMaxColumns)
	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	path := v.GetString(KeyConfig)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Check the path passed to --config")
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}
	return nil
}
