package driver

import (
	"errors"
	"fmt"

	"github.com/entrhq/browserinit/pkg/config"
	"github.com/entrhq/browserinit/pkg/locale"
	"github.com/entrhq/browserinit/pkg/logging"
)

// Builder turns Options into a LaunchPlan and a LaunchPlan into a Session.
//
// A Builder is meant for sequential use by one process; the persisted user
// agent is the only state shared between the sessions it creates.
type Builder struct {
	cfg       Config
	installer Installer
	launcher  Launcher
	uaStore   UserAgentStore
	logger    *logging.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithInstaller sets the collaborator used when a fresh binary is needed.
func WithInstaller(installer Installer) BuilderOption {
	return func(b *Builder) {
		b.installer = installer
	}
}

// WithLauncher sets the collaborator that starts the browser.
func WithLauncher(launcher Launcher) BuilderOption {
	return func(b *Builder) {
		b.launcher = launcher
	}
}

// WithUserAgentStore replaces the default file store at config.DefaultUserAgentPath.
func WithUserAgentStore(store UserAgentStore) BuilderOption {
	return func(b *Builder) {
		b.uaStore = store
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *logging.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder with construction-time settings cfg.
func NewBuilder(cfg Config, opts ...BuilderOption) *Builder {
	if cfg.Locale == (locale.Pair{}) {
		cfg.Locale = locale.EnglishUSA
	}

	b := &Builder{
		cfg:     cfg,
		uaStore: config.NewUserAgentStore(""),
		logger:  logging.Discard(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build validates opts and assembles the launch plan.
//
// Option validation and user agent resolution happen before the installer is
// consulted, so a rejected option never triggers a download.
func (b *Builder) Build(opts Options) (*LaunchPlan, error) {
	b.logger.Infof("Building launch plan (window=%s, undetectable=%t)", opts.WindowSize, opts.Undetectable)

	window, err := opts.validate()
	if err != nil {
		b.logger.Errorf("Invalid options: %v", err)
		return nil, err
	}

	userAgent, err := b.resolveUserAgent()
	if err != nil {
		b.logger.Errorf("Failed to resolve user agent: %v", err)
		return nil, err
	}

	binaryPath, err := b.resolveBinary()
	if err != nil {
		return nil, err
	}

	plan := &LaunchPlan{
		BinaryPath:  binaryPath,
		Window:      window,
		Position:    opts.WindowPosition,
		Headless:    window.Mode == WindowHeadless,
		UserAgent:   userAgent,
		WaitTimeout: opts.WaitTime,
		InitialURL:  opts.InitialURL,
		Cookies:     append([]Cookie(nil), opts.Cookies...),
	}

	plan.Args = assembleArgs(opts, window, userAgent)

	if opts.Undetectable {
		plan.Strategy = StrategyEvasion
	} else {
		plan.Strategy = StrategyStandard
		plan.Preferences = Preferences{
			PrefNotifications:   int(opts.NotificationLevel),
			PrefAcceptLanguages: b.cfg.Locale.Languages(),
			PrefCredentials:     opts.SavePasswords,
		}
		plan.ExcludeSwitches = append([]string(nil), standardExcludeSwitches...)
	}

	plan.PostActions = postActions(plan, opts)

	b.logger.Debugf("Launch plan: strategy=%s binary=%q args=%v", plan.Strategy, plan.BinaryPath, plan.Args)
	return plan, nil
}

// Launch starts the browser described by plan and runs its post-launch actions in order.
//
// A launch failure is returned wrapping ErrLaunch and the original cause.
// When a post-launch action fails the partially initialized session is
// returned together with the error; closing it is the caller's job.
func (b *Builder) Launch(plan *LaunchPlan) (*Session, error) {
	if plan == nil {
		return nil, fmt.Errorf("%w: nil launch plan", ErrInvalidOption)
	}
	if b.launcher == nil {
		return nil, fmt.Errorf("%w: no launcher configured", ErrLaunch)
	}

	b.logger.Infof("Initializing browser with %s strategy", plan.Strategy)

	var (
		handle Handle
		err    error
	)
	switch plan.Strategy {
	case StrategyEvasion:
		handle, err = b.launcher.LaunchEvasion(plan.BinaryPath, EvasionConfig{
			Args:     append([]string(nil), plan.Args...),
			Headless: plan.Headless,
		})
	default:
		handle, err = b.launcher.LaunchStandard(Service{BinaryPath: plan.BinaryPath}, StandardConfig{
			Args:            append([]string(nil), plan.Args...),
			Preferences:     plan.Preferences,
			ExcludeSwitches: append([]string(nil), plan.ExcludeSwitches...),
			Headless:        plan.Headless,
		})
	}
	if err != nil {
		b.logger.Errorf("Failed to initialize browser: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	session := &Session{
		Handle:    handle,
		Wait:      NewWait(handle, plan.WaitTimeout),
		UserAgent: plan.UserAgent,
	}

	for _, action := range plan.PostActions {
		if err := b.runAction(plan, session, action); err != nil {
			b.logger.Errorf("Post-launch action %s failed: %v", action.Kind, err)
			return session, fmt.Errorf("post-launch %s: %w", action.Kind, err)
		}
	}

	b.logger.Infof("Browser initialized successfully")
	return session, nil
}

// Start builds a plan from opts and launches it.
func (b *Builder) Start(opts Options) (*Session, error) {
	plan, err := b.Build(opts)
	if err != nil {
		return nil, err
	}
	return b.Launch(plan)
}

// PersistUserAgent stores userAgent so a later Builder without an explicit user agent can reuse it.
func (b *Builder) PersistUserAgent(userAgent string) error {
	if err := b.uaStore.Save(userAgent); err != nil {
		b.logger.Errorf("Failed to persist user agent: %v", err)
		return err
	}
	b.logger.Debugf("Persisted user agent")
	return nil
}

func (b *Builder) resolveUserAgent() (string, error) {
	if b.cfg.UserAgent != "" {
		return b.cfg.UserAgent, nil
	}

	userAgent, err := b.uaStore.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingResource) {
			return "", fmt.Errorf("%w: none configured and %v", ErrMissingUserAgent, err)
		}
		return "", err
	}
	return userAgent, nil
}

func (b *Builder) resolveBinary() (string, error) {
	if !b.cfg.ForceInstall && b.cfg.DriverPath != "" {
		return b.cfg.DriverPath, nil
	}

	if b.installer == nil {
		err := fmt.Errorf("%w: no installer configured", ErrDriverInstall)
		b.logger.Errorf("%v", err)
		return "", err
	}

	b.logger.Infof("Installing browser driver...")
	path, err := b.installer.Install()
	if err != nil {
		b.logger.Errorf("Failed to install browser driver: %v", err)
		return "", fmt.Errorf("%w: %w", ErrDriverInstall, err)
	}

	b.logger.Infof("Browser driver installed successfully at: %s", path)
	return path, nil
}

func (b *Builder) runAction(plan *LaunchPlan, session *Session, action PostAction) error {
	switch action.Kind {
	case ActionResize:
		if err := session.Handle.SetWindowSize(plan.Window.Width, plan.Window.Height); err != nil {
			return err
		}
		return session.Handle.SetWindowPosition(plan.Position.X, plan.Position.Y)

	case ActionNavigate:
		b.logger.Infof("Navigating to initial URL: %s", plan.InitialURL)
		return session.Handle.Get(plan.InitialURL)

	case ActionInjectCookies:
		b.logger.Infof("Setting %d cookies", len(plan.Cookies))
		for _, cookie := range plan.Cookies {
			if err := session.Handle.AddCookie(cookie); err != nil {
				return fmt.Errorf("cookie %q: %w", cookie.Name, err)
			}
		}
		return nil

	case ActionPersistUserAgent:
		return b.PersistUserAgent(plan.UserAgent)

	default:
		return fmt.Errorf("unknown post-launch action %d", action.Kind)
	}
}

func assembleArgs(opts Options, window WindowSpec, userAgent string) []string {
	var args []string

	switch window.Mode {
	case WindowMaximize:
		args = append(args, ArgStartMaximized)
	case WindowHeadless:
		args = append(args, ArgHeadless)
	}

	args = append(args, ArgUserAgentPrefix+userAgent)

	if !opts.WebSecurity {
		args = append(args, ArgDisableWebSecurity)
	}
	if !opts.SandboxEnabled {
		args = append(args, ArgNoSandbox)
	}

	args = append(args, baselineArgs...)

	if opts.Camouflage {
		args = append(args, ArgHideAutomation)
	}

	return args
}

// postActions lists the actions for plan in their fixed execution order.
// Evasion-mode windows are never resized.
func postActions(plan *LaunchPlan, opts Options) []PostAction {
	var actions []PostAction

	if plan.Window.Mode == WindowExplicit && plan.Strategy == StrategyStandard {
		actions = append(actions, PostAction{Kind: ActionResize})
	}
	if plan.InitialURL != "" {
		actions = append(actions, PostAction{Kind: ActionNavigate})
	}
	if len(plan.Cookies) > 0 {
		actions = append(actions, PostAction{Kind: ActionInjectCookies})
	}
	if opts.PersistUserAgent {
		actions = append(actions, PostAction{Kind: ActionPersistUserAgent})
	}

	return actions
}
