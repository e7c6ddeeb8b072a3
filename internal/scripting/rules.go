package scripting

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/l1jgo/tilecore/internal/tile"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const (
	edgeCaseFn = "edge_case"
	wallCaseFn = "wall_case"
)

type caseResult struct {
	sel     tile.Selection
	matched bool
}

// Rules classifies neighbor patterns with Lua functions edge_case and
// wall_case. Results are cached; patterns are only 8 bits, so every lookup
// is eventually served from the cache. A missing function or a script error
// falls back to tile.StaticRules.
type Rules struct {
	engine   *Engine
	cache    *ristretto.Cache[int, caseResult]
	fallback tile.StaticRules
	hasEdge  bool
	hasWall  bool
}

// NewRules loads every script in scriptsDir.
func NewRules(scriptsDir string, log *zap.Logger) (*Rules, error) {
	engine, err := NewEngine(scriptsDir, log)
	if err != nil {
		return nil, err
	}
	cache, err := ristretto.NewCache[int, caseResult](&ristretto.Config[int, caseResult]{
		NumCounters:        10 * 512,
		MaxCost:            512, // two kinds × 256 patterns, cost 1 each
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("create rule cache: %w", err)
	}
	r := &Rules{
		engine:  engine,
		cache:   cache,
		hasEdge: engine.HasFunction(edgeCaseFn),
		hasWall: engine.HasFunction(wallCaseFn),
	}
	if !r.hasEdge {
		log.Warn("lua function not found, using static rules", zap.String("function", edgeCaseFn))
	}
	if !r.hasWall {
		log.Warn("lua function not found, using static rules", zap.String("function", wallCaseFn))
	}
	return r, nil
}

func (r *Rules) EdgeCase(pattern uint8) (tile.Selection, bool) {
	if !r.hasEdge {
		return r.fallback.EdgeCase(pattern)
	}
	return r.lookup(edgeCaseFn, 0, pattern, r.fallback.EdgeCase)
}

func (r *Rules) WallCase(pattern uint8) (tile.Selection, bool) {
	if !r.hasWall {
		return r.fallback.WallCase(pattern)
	}
	return r.lookup(wallCaseFn, 1, pattern, r.fallback.WallCase)
}

func (r *Rules) lookup(fn string, kind int, pattern uint8, fallback func(uint8) (tile.Selection, bool)) (tile.Selection, bool) {
	key := kind<<8 | int(pattern)
	if res, ok := r.cache.Get(key); ok {
		return res.sel, res.matched
	}
	sel, matched, err := r.engine.callCase(fn, pattern)
	if err != nil {
		r.engine.log.Error("lua case rule error", zap.String("function", fn), zap.Error(err))
		return fallback(pattern)
	}
	r.cache.Set(key, caseResult{sel: sel, matched: matched}, 1)
	r.cache.Wait()
	return sel, matched
}

// Close releases the Lua VM and the cache.
func (r *Rules) Close() {
	r.cache.Close()
	r.engine.Close()
}

// callCase calls fn(pattern) and reads (case, rotation). A nil case means
// no match.
func (e *Engine) callCase(fn string, pattern uint8) (tile.Selection, bool, error) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      e.vm.GetGlobal(fn),
		NRet:    2,
		Protect: true,
	}, lua.LNumber(pattern)); err != nil {
		return tile.Selection{}, false, err
	}
	c, rot := e.vm.Get(-2), e.vm.Get(-1)
	e.vm.Pop(2)
	if c == lua.LNil {
		return tile.Selection{}, false, nil
	}
	cn, ok := c.(lua.LNumber)
	if !ok || cn < 0 || cn > 255 {
		return tile.Selection{}, false, fmt.Errorf("%s(%d): bad case %v", fn, pattern, c)
	}
	sel := tile.Selection{Case: uint8(cn)}
	if rn, ok := rot.(lua.LNumber); ok {
		sel.Rotation = int(rn) & 3
	}
	return sel, true, nil
}
