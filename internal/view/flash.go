package view

import (
	"fmt"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeyError    = "error"
)

// FlashData holds the one-shot messages shown at the top of the next page.
type FlashData struct {
	Error []string
}

// SetFlashError queues an error message for the next page load, typically
// right before a redirect.
func SetFlashError(c echo.Context, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		c.Logger().Warnf("flash session unavailable: %v", err)
		return
	}
	sess.AddFlash(message, flashKeyError)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Errorf("failed to save flash session: %v", err)
	}
}

// GetFlashData retrieves and clears the flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	errs := sess.Flashes(flashKeyError)
	if len(errs) == 0 {
		return data
	}

	data.Error = make([]string, 0, len(errs))
	for _, v := range errs {
		data.Error = append(data.Error, fmt.Sprint(v))
	}
	// Persist the cleared flashes.
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Errorf("failed to clear flash session: %v", err)
	}
	return data
}
