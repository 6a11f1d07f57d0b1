package scripting

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/geoquest/internal/game/dice"
)

// GlobalScope is the VM consulted when a scope has no VM of its own.
const GlobalScope = "__global__"

// vm is one LState and the lock that serializes calls into it.
type vm struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// Manager owns one sandboxed VM per scope and dispatches hook calls. Scopes are
// monster types; hooks shared by every monster live in GlobalScope.
//
// Manager is safe for concurrent use. Calls into the same VM are serialized; calls
// into different VMs run concurrently.
type Manager struct {
	mu        sync.RWMutex
	vms       map[string]*vm
	roller    *dice.Roller
	logger    *zap.Logger
	instLimit int
}

// NewManager creates a Manager whose hook calls each get instLimit opcodes.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	return &Manager{
		vms:       make(map[string]*vm),
		roller:    roller,
		logger:    logger,
		instLimit: instLimit,
	}
}

// LoadScope creates a VM for scope from every *.lua file in dir of fsys, executed
// in lexicographic order. An existing VM for scope is replaced.
//
// Postcondition: returns an error on the first read or Lua load failure and leaves
// the previous VM in place.
func (m *Manager) LoadScope(fsys fs.FS, scope, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", dir, scope, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	L := NewSandboxedState()
	m.RegisterModules(L, scope)
	for _, f := range files {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: reading %q: %w", f, err)
		}
		if err := m.run(L, string(src)); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", f, scope, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.vms[scope]; ok {
		old.close()
	}
	m.vms[scope] = &vm{L: L}
	m.mu.Unlock()
	m.logger.Debug("scripts loaded", zap.String("scope", scope), zap.Int("files", len(files)))
	return nil
}

// LoadTree loads dir of fsys as the global scope and each subdirectory of dir as
// the scope named after it.
func (m *Manager) LoadTree(fsys fs.FS, dir string) error {
	if err := m.LoadScope(fsys, GlobalScope, dir); err != nil {
		return err
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("scripting: reading %q: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := m.LoadScope(fsys, e.Name(), path.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir is LoadTree over a directory on disk.
func (m *Manager) LoadDir(dir string) error {
	return m.LoadTree(os.DirFS(dir), ".")
}

func (m *Manager) run(L *lua.LState, src string) error {
	detach := WithBudget(L, m.instLimit)
	defer detach()
	return L.DoString(src)
}

// Scopes returns the loaded scope names, sorted.
func (m *Manager) Scopes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vms))
	for s := range m.vms {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// CallHook calls the named global function in scope's VM, falling back to the
// global VM when the scope has no VM or does not define the hook. Lua runtime errors,
// including an exhausted instruction budget, are logged at warn and never propagated.
//
// Postcondition: Returns the hook's first return value, or LNil when the hook is not
// defined, no VM exists or the call failed.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	own := m.vms[scope]
	global := m.vms[GlobalScope]
	m.mu.RUnlock()

	if own == nil && global == nil {
		m.logger.Info("scripting: no VM for scope", zap.String("scope", scope), zap.String("hook", hook))
		return lua.LNil, nil
	}
	for _, v := range []*vm{own, global} {
		if v == nil {
			continue
		}
		if ret, found := m.call(v, scope, hook, args); found {
			return ret, nil
		}
	}
	return lua.LNil, nil
}

// call runs hook in v and reports whether v defines it.
func (m *Manager) call(v *vm, scope, hook string, args []lua.LValue) (lua.LValue, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return lua.LNil, false
	}
	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, false
	}

	detach := WithBudget(v.L, m.instLimit)
	defer detach()
	if err := v.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, true
	}
	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, true
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for scope, v := range m.vms {
		v.close()
		delete(m.vms, scope)
	}
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed {
		v.L.Close()
		v.closed = true
	}
}
