package samizdat

// Process-wide state is brought up by a module-init dependency graph,
// each module declaring what it needs and running exactly once, leaves
// first (spec.md §6, §9 "Process-wide state"). Registering a module only
// records a name/deps/fn triple — it allocates nothing and touches no
// class or symbol, so doing it from an ordinary package `init()` is safe
// even though the closures it defers reference not-yet-built bootstrap
// state; only actually calling Bootstrap() runs them.
type moduleDef struct {
	name string
	deps []string
	fn   func()
}

var moduleRegistry []*moduleDef
var moduleByName = map[string]*moduleDef{}

func registerModule(name string, deps []string, fn func()) {
	m := &moduleDef{name: name, deps: deps, fn: fn}
	moduleRegistry = append(moduleRegistry, m)
	moduleByName[name] = m
}

// Bootstrap runs every registered module exactly once, dependencies
// before dependents, and is idempotent: a second call is a no-op. An
// embedder calls this once before constructing or evaluating any value.
var bootstrapped bool

func Bootstrap() {
	if bootstrapped {
		return
	}
	done := map[string]bool{}
	visiting := map[string]bool{}
	var run func(name string)
	run = func(name string) {
		if done[name] {
			return
		}
		if visiting[name] {
			fatalf("module-init dependency cycle at %s", name)
		}
		m, ok := moduleByName[name]
		if !ok {
			fatalf("module-init: unknown dependency %s", name)
		}
		visiting[name] = true
		for _, dep := range m.deps {
			run(dep)
		}
		visiting[name] = false
		m.fn()
		done[name] = true
	}
	for _, m := range moduleRegistry {
		run(m.name)
	}
	bootstrapped = true
}
