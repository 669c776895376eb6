// Package gamedata embeds the built-in demonstration game so the
// binary runs out of the box without a game directory.
package gamedata

import (
	"embed"
	"io/fs"

	"github.com/jsredmond/lantern/loader"
)

//go:embed underground/*.lua
var underground embed.FS

// Default compiles the embedded game.
func Default() (*loader.Defs, error) {
	sub, err := fs.Sub(underground, "underground")
	if err != nil {
		return nil, err
	}
	return loader.LoadFS(sub)
}
