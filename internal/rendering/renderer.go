package rendering

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// Renderer implements echo.Renderer for gomponents nodes. Handlers pass the
// node as data to c.Render; the template name is ignored. echo buffers the
// output, so a failed render still produces a clean error response.
type Renderer struct{}

// NewRenderer creates a new Renderer instance.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	node, ok := data.(g.Node)
	if !ok {
		return fmt.Errorf("unsupported component type: %T", data)
	}
	return node.Render(w)
}
