// Package loader compiles Lua world-definition files into immutable
// definitions the engine builds live worlds from. The Lua VM is
// sandboxed and discarded after loading; game content never executes
// at play time.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game    *lua.LTable
	rooms   []*lua.LTable
	objects []*lua.LTable
	actors  []*lua.LTable
}

// Load reads all .lua files from a directory and compiles them.
func Load(dir string) (*Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}
	var sources []source
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lua") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{name: e.Name(), code: string(raw)})
	}
	return compileSources(sources)
}

// LoadFS loads .lua files from an embedded filesystem, for games that
// ship inside the binary.
func LoadFS(fsys fs.FS) (*Defs, error) {
	var sources []source
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".lua") {
			return err
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		sources = append(sources, source{name: path, code: string(raw)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return compileSources(sources)
}

type source struct {
	name string
	code string
}

func compileSources(sources []source) (*Defs, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}
	// game.lua first, rest alphabetical, so metadata exists before
	// content files reference it.
	sort.Slice(sources, func(i, j int) bool {
		gi := filepath.Base(sources[i].name) == "game.lua"
		gj := filepath.Base(sources[j].name) == "game.lua"
		if gi != gj {
			return gi
		}
		return sources[i].name < sources[j].name
	})

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, src := range sources {
		if err := L.DoString(src.code); err != nil {
			return nil, fmt.Errorf("executing %s: %w", src.name, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}
	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that could touch the host or break
// determinism.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal", "collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("randomseed", lua.LNil)
		mathTbl.RawSetString("random", lua.LNil)
	}
}

// registerAPI exposes the definition functions to Lua.
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))
	L.SetGlobal("room", L.NewFunction(func(L *lua.LState) int {
		coll.rooms = append(coll.rooms, L.CheckTable(1))
		return 0
	}))
	L.SetGlobal("object", L.NewFunction(func(L *lua.LState) int {
		coll.objects = append(coll.objects, L.CheckTable(1))
		return 0
	}))
	L.SetGlobal("actor", L.NewFunction(func(L *lua.LState) int {
		coll.actors = append(coll.actors, L.CheckTable(1))
		return 0
	}))
}
