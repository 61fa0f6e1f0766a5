package tactile

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Default thresholds. Installations differ, so every value can be overridden
// through the config structs or a TOML file.
const (
	defaultTapMaxMove          = 20.0
	defaultTapStartThreshold   = 150 * time.Millisecond
	defaultDoubleTapMaxTime    = 500 * time.Millisecond
	defaultDoubleTapMaxDist    = 40.0
	defaultRefreshInterval     = time.Second / RefreshRate
	defaultMomentumWindow      = 100 * time.Millisecond
	defaultFrictionStep        = 0.04
	defaultPanMomentumMin      = 0.1
	defaultPinchMomentumMin    = 0.0005
	defaultRotationMomentumMin = 0.0005
	defaultQueueSize           = 1024
)

// TapConfig configures a [TapGesture]. Zero fields take the defaults.
type TapConfig struct {
	// Immediate reports a tap on touch down instead of waiting for the
	// touch to lift.
	Immediate bool `toml:"immediate"`
	// AllowMove keeps a tap alive after the touch moves beyond MaxMove;
	// further movement of that touch is no longer tracked. By default the
	// recognizer fails instead.
	AllowMove bool `toml:"allow_move"`
	// MaxMove is the distance a touch may travel and still be a tap.
	MaxMove float64 `toml:"max_move"`
	// StartThreshold is how long a delayed tap waits before reporting
	// StateRecognized for a touch that is still down.
	StartThreshold time.Duration `toml:"start_threshold"`
	// DoubleTapMaxTime and DoubleTapMaxDistance bound how close two taps
	// must be to count as a double tap.
	DoubleTapMaxTime     time.Duration `toml:"double_tap_max_time"`
	DoubleTapMaxDistance float64       `toml:"double_tap_max_distance"`
}

func (c TapConfig) withDefaults() TapConfig {
	if c.MaxMove <= 0 {
		c.MaxMove = defaultTapMaxMove
	}
	if c.StartThreshold <= 0 {
		c.StartThreshold = defaultTapStartThreshold
	}
	if c.DoubleTapMaxTime <= 0 {
		c.DoubleTapMaxTime = defaultDoubleTapMaxTime
	}
	if c.DoubleTapMaxDistance <= 0 {
		c.DoubleTapMaxDistance = defaultDoubleTapMaxDist
	}
	return c
}

// LongTapConfig configures a [LongTapGesture].
type LongTapConfig struct {
	// Immediate fires on touch down; otherwise the gesture fires when the
	// touch lifts.
	Immediate bool `toml:"immediate"`
	// MinDuration is how long a touch must be held before a delayed long
	// tap fires. Zero fires on every release.
	MinDuration time.Duration `toml:"min_duration"`
}

// PanConfig configures a [PanGesture]. Zero fields take the defaults.
type PanConfig struct {
	// MinTouches is the number of touches needed before the pan is
	// recognized.
	MinTouches int `toml:"min_touches"`
	// RefreshInterval rate-limits updates.
	RefreshInterval time.Duration `toml:"refresh_interval"`
	// NoMomentum disables the post-release continuation.
	NoMomentum bool `toml:"no_momentum"`
	// MomentumWindow is how recent the last update must be for a release
	// to start momentum.
	MomentumWindow time.Duration `toml:"momentum_window"`
	// FrictionStep is added to the friction divisor on every momentum
	// tick.
	FrictionStep float64 `toml:"friction_step"`
	// MomentumMin is the delta length below which momentum stops.
	MomentumMin float64 `toml:"momentum_min"`
}

func (c PanConfig) withDefaults() PanConfig {
	if c.MinTouches <= 0 {
		c.MinTouches = 1
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = defaultRefreshInterval
	}
	if c.MomentumWindow <= 0 {
		c.MomentumWindow = defaultMomentumWindow
	}
	if c.FrictionStep <= 0 {
		c.FrictionStep = defaultFrictionStep
	}
	if c.MomentumMin <= 0 {
		c.MomentumMin = defaultPanMomentumMin
	}
	return c
}

// PinchConfig configures a [PinchGesture]. Zero fields take the defaults.
type PinchConfig struct {
	RefreshInterval time.Duration `toml:"refresh_interval"`
	NoMomentum      bool          `toml:"no_momentum"`
	MomentumWindow  time.Duration `toml:"momentum_window"`
	FrictionStep    float64       `toml:"friction_step"`
	// ScaleMomentumMin and RotationMomentumMin are the residuals below
	// which momentum stops.
	ScaleMomentumMin    float64 `toml:"scale_momentum_min"`
	RotationMomentumMin float64 `toml:"rotation_momentum_min"`
}

func (c PinchConfig) withDefaults() PinchConfig {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = defaultRefreshInterval
	}
	if c.MomentumWindow <= 0 {
		c.MomentumWindow = defaultMomentumWindow
	}
	if c.FrictionStep <= 0 {
		c.FrictionStep = defaultFrictionStep
	}
	if c.ScaleMomentumMin <= 0 {
		c.ScaleMomentumMin = defaultPinchMomentumMin
	}
	if c.RotationMomentumMin <= 0 {
		c.RotationMomentumMin = defaultRotationMomentumMin
	}
	return c
}

// RelayConfig configures network touch ingestion.
type RelayConfig struct {
	// Addr is the listen address, e.g. ":7070". Empty disables the relay.
	Addr string `toml:"addr"`
	// Path is the WebSocket endpoint path.
	Path string `toml:"path"`
	// QueueSize bounds the hand-off queue between network goroutines and
	// the dispatch loop.
	QueueSize int `toml:"queue_size"`
}

// Config is the top-level configuration file layout.
type Config struct {
	Debug   bool          `toml:"debug"`
	Tap     TapConfig     `toml:"tap"`
	LongTap LongTapConfig `toml:"long_tap"`
	Pan     PanConfig     `toml:"pan"`
	Pinch   PinchConfig   `toml:"pinch"`
	Relay   RelayConfig   `toml:"relay"`
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Tap:   TapConfig{}.withDefaults(),
		Pan:   PanConfig{}.withDefaults(),
		Pinch: PinchConfig{}.withDefaults(),
		Relay: RelayConfig{Path: "/touches", QueueSize: defaultQueueSize},
	}
}

// ParseConfig decodes a TOML document. Keys missing from the document keep
// their defaults.
func ParseConfig(data []byte) (Config, error) {
	conf := DefaultConfig()
	md, err := toml.Decode(string(data), &conf)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
	}
	conf.Tap = conf.Tap.withDefaults()
	conf.Pan = conf.Pan.withDefaults()
	conf.Pinch = conf.Pinch.withDefaults()
	if conf.Relay.QueueSize <= 0 {
		conf.Relay.QueueSize = defaultQueueSize
	}
	if conf.Relay.Path == "" {
		conf.Relay.Path = "/touches"
	}
	return conf, nil
}

// LoadConfig reads and decodes a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// WriteConfig encodes conf as TOML to path.
func WriteConfig(path string, conf Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}
