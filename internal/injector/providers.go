package injector

import (
	"context"
	"net"

	"laserpuzzle/internal/assets"
	"laserpuzzle/internal/audio"
	"laserpuzzle/internal/config"
	"laserpuzzle/internal/feed"
	"laserpuzzle/internal/logging"
	"laserpuzzle/internal/world"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// ConfigPath is the YAML config file; empty means defaults.
type ConfigPath string

// SceneOverride replaces the configured scene when not empty.
type SceneOverride string

// LogFile replaces the configured log file when not empty.
type LogFile string

var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideWorld,
	ProvidePuzzle,
	ProvideAudio,
	ProvideFeed,
	NewApp,
)

// App is everything a host needs to run a puzzle scene.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	World  *world.World
	Puzzle *world.Puzzle
	Audio  *audio.Player
	Feed   *feed.Hub
}

func ProvideConfig(path ConfigPath, scene SceneOverride, logFile LogFile) (*config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return nil, err
	}
	if scene != "" {
		cfg.Scene.Path = string(scene)
	}
	if logFile != "" {
		cfg.Log.File = string(logFile)
	}
	return cfg, nil
}

// ProvideLogger installs the configured logger as the process logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	var outputs []string
	if cfg.Log.File != "" {
		outputs = append(outputs, cfg.Log.File)
	}
	l, err := logging.New(cfg.Log.Level, cfg.Log.Encoding, outputs...)
	if err != nil {
		return nil, nil, err
	}
	restore := logging.Replace(l)
	return l, func() {
		_ = l.Sync()
		restore()
	}, nil
}

// ProvideWorld loads the scene. The logger parameter orders it after ProvideLogger.
func ProvideWorld(cfg *config.Config, _ *zap.Logger) (*world.World, func(), error) {
	w, err := world.Load(assets.ScenePath(cfg.Scene.Path))
	if err != nil {
		return nil, nil, err
	}
	return w, w.Unload, nil
}

// ProvidePuzzle applies the config overrides to the scene's controllers.
func ProvidePuzzle(cfg *config.Config, w *world.World) *world.Puzzle {
	p := w.Puzzle
	if p == nil {
		p = w.Assemble()
	}
	for _, e := range p.Emitters {
		cfg.Laser.Apply(&e.Settings)
	}
	for _, tc := range p.Towers {
		cfg.Towers.Apply(&tc.Settings)
	}
	for _, d := range p.Dice {
		cfg.Dice.Apply(d)
	}
	return p
}

// ProvideAudio opens the speaker. Audio failures leave a silent player.
func ProvideAudio(cfg *config.Config, l *zap.Logger) (*audio.Player, func()) {
	p := audio.NewPlayer(cfg.Audio.Enabled, cfg.Audio.SampleRate, cfg.Audio.Volume)
	if err := p.Init(); err != nil {
		l.Warn("audio disabled", zap.Error(err))
	}
	return p, p.Close
}

func ProvideFeed(l *zap.Logger) *feed.Hub {
	return feed.NewHub(l)
}

// NewApp hooks puzzle events to sound.
func NewApp(cfg *config.Config, l *zap.Logger, w *world.World, p *world.Puzzle, player *audio.Player, hub *feed.Hub) *App {
	for _, r := range p.Receivers {
		r.OnSolved.AddListener(func(int) { player.PlaySolved() })
		r.OnPartial.AddListener(func(int) { player.PlayPartial() })
	}
	return &App{
		Config: cfg,
		Logger: l,
		World:  w,
		Puzzle: p,
		Audio:  player,
		Feed:   hub,
	}
}

// Start starts the world.
func (a *App) Start() {
	a.World.Start()
}

// ServeFeed streams status on the configured address until ctx ends. Without
// an address it returns nil at once.
func (a *App) ServeFeed(ctx context.Context) error {
	addr := a.Config.Feed.Addr
	if addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	a.Logger.Info("status feed listening", zap.String("addr", ln.Addr().String()))
	return feed.Serve(ctx, ln, a.Feed)
}
