package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// localPath reports whether p is a same-origin absolute path. A
// protocol-relative "//host" value would leave the console origin and is
// rejected along with external URLs.
func localPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}

type entryResponse struct {
	LoginPath    string `json:"loginPath"`
	RegisterPath string `json:"registerPath"`
	ReturnURL    string `json:"returnUrl,omitempty"`
	Denied       string `json:"denied,omitempty"`
}

// Entry renders the console landing page for logged-out visitors.
// Guards redirect here with returnUrl and denied query parameters, which
// the page echoes back so the shell can resume navigation after login and
// surface an access-denied notice.
//
// @Summary      Landing page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  entryResponse
// @Router       / [get]
func (h *AuthHandler) Entry(c echo.Context) error {
	returnURL := c.QueryParam("returnUrl")
	if !localPath(returnURL) {
		returnURL = ""
	}
	return c.JSON(http.StatusOK, entryResponse{
		LoginPath:    "/auth/login",
		RegisterPath: "/auth/register",
		ReturnURL:    returnURL,
		Denied:       c.QueryParam("denied"),
	})
}
