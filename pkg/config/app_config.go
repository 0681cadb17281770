// Package config handles all the user-configuration. The fields here are
// all in PascalCase but in your actual config.yml they'll be in camelCase.
// You can view the default config with `lazyrng --config`.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/OpenPeeDeeP/xdg"
	yaml "github.com/jesseduffield/yaml"
	"github.com/spkg/bom"
)

// UserConfig holds all of the user-configurable options
type UserConfig struct {
	// Gui is for configuring visual things like colors
	Gui GuiConfig `yaml:"gui,omitempty"`

	// Observer configures how we find and probe the game process
	Observer ObserverConfig `yaml:"observer,omitempty"`

	// Stats determines what gets plotted on the history graph tab
	Stats StatsConfig `yaml:"stats,omitempty"`
}

// ThemeConfig is for setting the colors of panels and some text.
type ThemeConfig struct {
	ActiveBorderColor   []string `yaml:"activeBorderColor,omitempty"`
	InactiveBorderColor []string `yaml:"inactiveBorderColor,omitempty"`
	OnlineColor         []string `yaml:"onlineColor,omitempty"`
	OfflineColor        []string `yaml:"offlineColor,omitempty"`
	EditingColor        []string `yaml:"editingColor,omitempty"`
	MatchColor          []string `yaml:"matchColor,omitempty"`
}

// GuiConfig is for configuring visual things like colors and refresh rates
type GuiConfig struct {
	// Theme determines what colors and color attributes your panels use
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// IgnoreMouseEvents is for when you do not want to use your mouse to
	// interact with anything
	IgnoreMouseEvents bool `yaml:"mouseEvents,omitempty"`

	// RefreshInterval is the cadence at which the UI drains the message bus
	// and re-renders. It expects a valid duration like: 48ms, 1s
	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty"`

	// MessageBatchSize bounds how many bus messages the UI consumes per tick
	MessageBatchSize int `yaml:"messageBatchSize,omitempty"`
}

// ObserverConfig configures the memory worker: which process to attach to,
// how to find the generator inside it, and how often to probe.
type ObserverConfig struct {
	// ProcessName is the substring we look for in process short names
	ProcessName string `yaml:"processName,omitempty"`

	// Signature is the PEID-style byte pattern bracketing the instruction
	// that addresses the generator's index. It is tied to a specific binary
	// build; there is no fallback if the binary changes
	Signature string `yaml:"signature,omitempty"`

	// ObserveInterval is how often we re-read the generator state while
	// attached
	ObserveInterval time.Duration `yaml:"observeInterval,omitempty"`

	// DiscoverInterval is how often we re-scan the process table while no
	// target is running
	DiscoverInterval time.Duration `yaml:"discoverInterval,omitempty"`

	// PermissionBackoff is how long we wait before retrying after the
	// kernel refuses to let us read the target's memory
	PermissionBackoff time.Duration `yaml:"permissionBackoff,omitempty"`

	// Lookahead is how many upcoming percentages each probe projects
	Lookahead int `yaml:"lookahead,omitempty"`
}

// GraphConfig specifies how to plot recorded observer samples
type GraphConfig struct {
	// Min sets the minimum value that you want to display. If you want to
	// set this, you should also set MinType to "static"
	Min float64 `yaml:"min,omitempty"`

	// Max is just like Min but for the maximum
	Max float64 `yaml:"max,omitempty"`

	// Height sets the height of the graph in ascii characters
	Height int `yaml:"height,omitempty"`

	// Caption sets the caption of the graph
	Caption string `yaml:"caption,omitempty"`

	// StatPath is the path to the sample field to plot, based on the
	// RecordedSample struct in the gui package, e.g. "Percentage" or "Mti"
	StatPath string `yaml:"statPath,omitempty"`

	// Color of the graph. This can be any color attribute, e.g. 'blue'
	Color string `yaml:"color,omitempty"`

	// MinType and MaxType are each one of "", "static". Blank means the
	// min/max of the data set will be used
	MinType string `yaml:"minType,omitempty"`

	// MaxType is just like MinType but for the max value
	MaxType string `yaml:"maxType,omitempty"`
}

// StatsConfig contains the stuff relating to the history graph tab
type StatsConfig struct {
	// Graphs contains the configuration for the graphs we want to show
	Graphs []GraphConfig `yaml:"graphs,omitempty"`

	// MaxSamples bounds how many observed ticks we keep for plotting
	MaxSamples int `yaml:"maxSamples,omitempty"`
}

// DefaultSignature brackets the `mov mti, <imm32>` instruction of the
// generator's output routine in the supported binary build.
const DefaultSignature = "8B 15 ?? ?? ?? ?? 48 63 ?? 48 8D ?? ?? ?? ?? ?? FF C2 89 15 ?? ?? ?? ?? 8B 0C 81 8B C1 C1 E8 0B 33 C8 8B C1 25 ?? ?? ?? ?? C1 E0 07 33 C8 8B C1 25 ?? ?? ?? ?? C1 E0 0F 33 C8 8B C1 C1 E8 12 33 C1 48 83 C4 28"

// GetDefaultConfig returns the application default configuration NOTE (to
// contributors, not users): do not default a boolean to true, because false
// is the boolean zero value and this will be ignored when parsing the user's
// config
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Gui: GuiConfig{
			Theme: ThemeConfig{
				ActiveBorderColor:   []string{"green", "bold"},
				InactiveBorderColor: []string{"default"},
				OnlineColor:         []string{"green", "bold"},
				OfflineColor:        []string{"red", "bold"},
				EditingColor:        []string{"yellow"},
				MatchColor:          []string{"green"},
			},
			IgnoreMouseEvents: false,
			RefreshInterval:   time.Millisecond * 48,
			MessageBatchSize:  30,
		},
		Observer: ObserverConfig{
			ProcessName:       "FFXII_TZA",
			Signature:         DefaultSignature,
			ObserveInterval:   time.Millisecond * 100,
			DiscoverInterval:  time.Millisecond * 1000,
			PermissionBackoff: time.Second * 5,
			Lookahead:         1000,
		},
		Stats: StatsConfig{
			MaxSamples: 300,
			Graphs: []GraphConfig{
				{
					Caption:  "Next (%)",
					StatPath: "Percentage",
					Color:    "cyan",
					MinType:  "static",
					Min:      0,
					MaxType:  "static",
					Max:      99,
				},
				{
					Caption:  "mti",
					StatPath: "Mti",
					Color:    "green",
				},
			},
		},
	}
}

// AppConfig contains the base configuration fields required for lazyrng.
type AppConfig struct {
	Debug       bool   `long:"debug" env:"DEBUG" default:"false"`
	Version     string `long:"version" env:"VERSION" default:"unversioned"`
	Commit      string `long:"commit" env:"COMMIT"`
	BuildDate   string `long:"build-date" env:"BUILD_DATE"`
	Name        string `long:"name" env:"NAME" default:"lazyrng"`
	BuildSource string `long:"build-source" env:"BUILD_SOURCE" default:""`
	UserConfig  *UserConfig
	ConfigDir   string
	ProjectDir  string
}

// NewAppConfig makes a new app config
func NewAppConfig(name, version, commit, date string, buildSource string, debuggingFlag bool, projectDir string) (*AppConfig, error) {
	configDir, err := findOrCreateConfigDir(name)
	if err != nil {
		return nil, err
	}

	userConfig, err := loadUserConfigWithDefaults(configDir)
	if err != nil {
		return nil, err
	}

	appConfig := &AppConfig{
		Name:        name,
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		Debug:       debuggingFlag || os.Getenv("DEBUG") == "TRUE",
		BuildSource: buildSource,
		UserConfig:  userConfig,
		ConfigDir:   configDir,
		ProjectDir:  projectDir,
	}

	return appConfig, nil
}

func configDir(projectName string) string {
	envConfigDir := os.Getenv("CONFIG_DIR")
	if envConfigDir != "" {
		return envConfigDir
	}
	configDirs := xdg.New("", projectName)
	return configDirs.ConfigHome()
}

func findOrCreateConfigDir(projectName string) (string, error) {
	folder := configDir(projectName)

	err := os.MkdirAll(folder, 0o755)
	if err != nil {
		return "", err
	}

	return folder, nil
}

func loadUserConfigWithDefaults(configDir string) (*UserConfig, error) {
	config := GetDefaultConfig()

	return loadUserConfig(configDir, &config)
}

func loadUserConfig(configDir string, base *UserConfig) (*UserConfig, error) {
	fileName := filepath.Join(configDir, "config.yml")

	if _, err := os.Stat(fileName); err != nil {
		if os.IsNotExist(err) {
			file, err := os.Create(fileName)
			if err != nil {
				return nil, err
			}
			file.Close()
		} else {
			return nil, err
		}
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(bom.Clean(content), base); err != nil {
		return nil, err
	}

	return base, nil
}

// WriteToUserConfig allows you to set a value on the user config to be saved
// note that if you set a zero-value, it may be ignored e.g. a false or 0 or
// empty string this is because we are using the omitempty yaml directive so
// that we don't write a heap of zero values to the user's config.yml
func (c *AppConfig) WriteToUserConfig(updateConfig func(*UserConfig) error) error {
	userConfig, err := loadUserConfig(c.ConfigDir, &UserConfig{})
	if err != nil {
		return err
	}

	if err := updateConfig(userConfig); err != nil {
		return err
	}

	file, err := os.OpenFile(c.ConfigFilename(), os.O_WRONLY|os.O_CREATE, 0o666)
	if err != nil {
		return err
	}

	return yaml.NewEncoder(file).Encode(userConfig)
}

// ConfigFilename returns the filename of the current config file
func (c *AppConfig) ConfigFilename() string {
	return filepath.Join(c.ConfigDir, "config.yml")
}
