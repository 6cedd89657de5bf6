// Package driver assembles and launches a configured browser session.
//
// A Builder turns a small set of high-level Options into a LaunchPlan: the
// browser command line, the preference map, the launch strategy and the
// ordered post-launch actions. Launch executes the plan against a Launcher and
// returns a Session holding the browser Handle and a bounded Wait helper.
//
// # Launch strategies
//
//   - StrategyStandard wraps the binary in a managed Service, passes flags and
//     preferences, and drops automation switches from the default command line.
//   - StrategyEvasion starts the binary directly with flags only. Windows are
//     never resized in this mode.
//
// # Post-launch actions
//
// Once the handle exists the following run strictly in order, each only when
// configured: resize and reposition an explicit-size window, navigate to the
// initial URL, inject cookies, persist the user agent.
//
// # Example Usage
//
//	builder := driver.NewBuilder(driver.Config{
//	    UserAgent: "Mozilla/5.0 ...",
//	    Locale:    locale.Spanish,
//	}, driver.WithInstaller(browser.NewInstaller(logger)), driver.WithLauncher(browser.NewLauncher(logger)))
//
//	opts := driver.DefaultOptions()
//	opts.WindowSize = "1024x768"
//	opts.InitialURL = "https://example.com"
//
//	session, err := builder.Start(opts)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	el, err := session.Wait.ForElement(ctx, "input[name=q]")
package driver
