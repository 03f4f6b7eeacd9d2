// Package symbol implements the compile-time-facing half of the module
// system: ClassDescription (which generates into a runtime
// value.Class) and the Module / AST registry that pkg/cursor resolves
// `load_module` against. Symbol, SymbolTable, and Package themselves
// live in pkg/value since Class and Object need them at the
// value-model level; this package only adds the layer consumed by the
// cursor.
package symbol

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mint-lang/mint/pkg/value"
)

// ModuleState tracks compilation readiness.
type ModuleState int

const (
	NotCompiled ModuleState = iota
	Ready
)

// Node is one bytecode instruction; Operands are interpreted
// per-command by pkg/cursor. Keeping Node a single flat struct (rather
// than one Go type per command) mirrors a tagged-union AST node shape —
// one struct with every field any variant might need — rather than a
// sum-of-interfaces encoding.
type Node struct {
	Command Command
	A, B    int     // integer operands: offsets, jump targets, arities
	Str     string  // symbol / constant text operand
	Num     float64 // numeric constant operand
}

// Module is one compiled unit: its instruction stream, addressed by
// instruction pointer. Constants travel inline in each Node's operands.
type Module struct {
	Id   value.ModuleId
	Name string
	Code []Node
}

// Info is the registry-facing metadata for a module.
type Info struct {
	Id    value.ModuleId
	Name  string
	State ModuleState
}

// ASTRegistry owns every compiled Module plus the id<->name mapping,
// and resolves `load_module` paths. Compiling a module from source text
// is out of this core's scope — CreateMain and CreateFromBuffer accept
// already-assembled Node streams, as if handed over by the external
// compiler.
type ASTRegistry struct {
	mu      sync.RWMutex
	modules map[value.ModuleId]*Module
	byName  map[string]value.ModuleId
	nextID  value.ModuleId
}

// NewASTRegistry creates an empty registry.
func NewASTRegistry() *ASTRegistry {
	return &ASTRegistry{
		modules: make(map[value.ModuleId]*Module),
		byName:  make(map[string]value.ModuleId),
	}
}

// newModuleId mints a fresh id, grounded on SnellerInc-sneller's request-id
// pattern (`uuid.New()` per request) — here truncated to 64 bits since
// ModuleId must stay a light, comparable map key, not a full UUID.
func newModuleId() value.ModuleId {
	u := uuid.New()
	var id uint64
	for _, b := range u[:8] {
		id = id<<8 | uint64(b)
	}
	return value.ModuleId(id)
}

// CreateMain registers the entry module for a program run.
func (r *ASTRegistry) CreateMain(code []Node) *Module {
	return r.add("main", code)
}

// CreateFromBuffer registers an anonymous module compiled from an
// in-memory buffer (e.g. REPL input or eval), matching the registry's
// usual add path.
func (r *ASTRegistry) CreateFromBuffer(name string, code []Node) *Module {
	return r.add(name, code)
}

func (r *ASTRegistry) add(name string, code []Node) *Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := &Module{Id: newModuleId(), Name: name, Code: code}
	r.modules[m.Id] = m
	r.byName[name] = m.Id
	return m
}

// Find resolves a module path to its loaded Module, and whether it was
// already registered.
func (r *ASTRegistry) Find(name string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.modules[id], true
}

// Get resolves a module by id.
func (r *ASTRegistry) Get(id value.ModuleId) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[id]
	return m, ok
}

// NameOf maps an id back to its registered name.
func (r *ASTRegistry) NameOf(id value.ModuleId) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[id]
	if !ok {
		return "", fmt.Errorf("module %v not registered", id)
	}
	return m.Name, nil
}
