package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules defines the engine table in L:
//
//	engine.roll(notation) -> int     rolls dice notation; malformed notation yields 0
//	engine.chance() -> number        uniform draw in [0, 1)
//	engine.log(message)              debug log line tagged with the scope
func (m *Manager) RegisterModules(L *lua.LState, scope string) {
	engine := L.NewTable()
	L.SetField(engine, "roll", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Amount(L.CheckString(1))))
		return 1
	}))
	L.SetField(engine, "chance", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Chance()))
		return 1
	}))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("lua", zap.String("scope", scope), zap.String("message", L.CheckString(1)))
		return 0
	}))
	L.SetGlobal("engine", engine)
}
