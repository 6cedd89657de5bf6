package browser

import (
	"errors"
	"fmt"
	"os"

	"github.com/entrhq/browserinit/pkg/driver"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/playwright-community/playwright-go"
)

// playwrightHandle is a driver.Handle over a Playwright persistent context.
type playwrightHandle struct {
	pw         *playwright.Playwright
	context    playwright.BrowserContext
	page       playwright.Page
	profileDir string
}

func (h *playwrightHandle) Get(url string) error {
	if _, err := h.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (h *playwrightHandle) SetWindowSize(width, height int) error {
	return h.setWindowBounds(map[string]interface{}{
		"width":  width,
		"height": height,
	})
}

func (h *playwrightHandle) SetWindowPosition(x, y int) error {
	return h.setWindowBounds(map[string]interface{}{
		"left": x,
		"top":  y,
	})
}

// setWindowBounds changes the OS window through the DevTools Browser domain;
// Playwright itself only knows about viewports.
func (h *playwrightHandle) setWindowBounds(bounds map[string]interface{}) error {
	session, err := h.context.NewCDPSession(h.page)
	if err != nil {
		return fmt.Errorf("failed to open CDP session: %w", err)
	}
	defer session.Detach()

	result, err := session.Send("Browser.getWindowForTarget", nil)
	if err != nil {
		return fmt.Errorf("failed to get window: %w", err)
	}

	window, ok := result.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected getWindowForTarget result %T", result)
	}

	bounds["windowState"] = "normal"
	_, err = session.Send("Browser.setWindowBounds", map[string]interface{}{
		"windowId": window["windowId"],
		"bounds":   bounds,
	})
	if err != nil {
		return fmt.Errorf("failed to set window bounds: %w", err)
	}
	return nil
}

func (h *playwrightHandle) AddCookie(cookie driver.Cookie) error {
	c := playwright.OptionalCookie{
		Name:  cookie.Name,
		Value: cookie.Value,
	}
	if cookie.Domain != "" {
		c.Domain = playwright.String(cookie.Domain)
		c.Path = playwright.String(cookiePath(cookie))
	} else {
		c.URL = playwright.String(h.page.URL())
	}

	if err := h.context.AddCookies([]playwright.OptionalCookie{c}); err != nil {
		return fmt.Errorf("failed to add cookie: %w", err)
	}
	return nil
}

func (h *playwrightHandle) CurrentURL() (string, error) {
	return h.page.URL(), nil
}

func (h *playwrightHandle) FindElement(selector string) (driver.Element, error) {
	element, err := h.page.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if element == nil {
		return nil, fmt.Errorf("%w: %s", driver.ErrElementNotFound, selector)
	}
	return &playwrightElement{element: element}, nil
}

// Quit closes the browser, stops the Playwright driver and removes the temporary profile.
func (h *playwrightHandle) Quit() error {
	var errs []error
	if err := h.context.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := h.pw.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := os.RemoveAll(h.profileDir); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type playwrightElement struct {
	element playwright.ElementHandle
}

func (e *playwrightElement) Click() error {
	return e.element.Click()
}

func (e *playwrightElement) SendKeys(text string) error {
	return e.element.Type(text)
}

func (e *playwrightElement) Text() (string, error) {
	return e.element.TextContent()
}

// rodHandle is a driver.Handle over a directly launched browser.
type rodHandle struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func (h *rodHandle) Get(url string) error {
	if err := h.page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := h.page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for load failed: %w", err)
	}
	return nil
}

func (h *rodHandle) SetWindowSize(width, height int) error {
	return h.page.SetWindow(&proto.BrowserBounds{
		Width:       &width,
		Height:      &height,
		WindowState: proto.BrowserWindowStateNormal,
	})
}

func (h *rodHandle) SetWindowPosition(x, y int) error {
	return h.page.SetWindow(&proto.BrowserBounds{
		Left:        &x,
		Top:         &y,
		WindowState: proto.BrowserWindowStateNormal,
	})
}

func (h *rodHandle) AddCookie(cookie driver.Cookie) error {
	param := &proto.NetworkCookieParam{
		Name:  cookie.Name,
		Value: cookie.Value,
	}
	if cookie.Domain != "" {
		param.Domain = cookie.Domain
		param.Path = cookiePath(cookie)
	} else {
		current, err := h.CurrentURL()
		if err != nil {
			return err
		}
		param.URL = current
	}

	if err := h.page.SetCookies([]*proto.NetworkCookieParam{param}); err != nil {
		return fmt.Errorf("failed to add cookie: %w", err)
	}
	return nil
}

func (h *rodHandle) CurrentURL() (string, error) {
	info, err := h.page.Info()
	if err != nil {
		return "", fmt.Errorf("failed to read page info: %w", err)
	}
	return info.URL, nil
}

func (h *rodHandle) FindElement(selector string) (driver.Element, error) {
	has, element, err := h.page.Has(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if !has {
		return nil, fmt.Errorf("%w: %s", driver.ErrElementNotFound, selector)
	}
	return &rodElement{element: element}, nil
}

// Quit closes the browser and kills the process if it is still running.
func (h *rodHandle) Quit() error {
	err := h.browser.Close()
	h.launcher.Kill()
	return err
}

type rodElement struct {
	element *rod.Element
}

func (e *rodElement) Click() error {
	return e.element.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) SendKeys(text string) error {
	return e.element.Input(text)
}

func (e *rodElement) Text() (string, error) {
	return e.element.Text()
}

func cookiePath(cookie driver.Cookie) string {
	if cookie.Path == "" {
		return "/"
	}
	return cookie.Path
}
